package handlers

import (
	"sync"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/SscSPs/car_market_app/internal/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the marketplace binding tags to gin's validator.
// It is safe to call more than once.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("iqphone", func(fl validator.FieldLevel) bool {
			return utils.IsValidPhone(fl.Field().String())
		})
		_ = v.RegisterValidation("governorate", func(fl validator.FieldLevel) bool {
			return domain.IsGovernorate(fl.Field().String())
		})
		_ = v.RegisterValidation("carcurrency", func(fl validator.FieldLevel) bool {
			return pricing.IsSupported(fl.Field().String())
		})
		_ = v.RegisterValidation("transmission", func(fl validator.FieldLevel) bool {
			return domain.Transmission(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("fueltype", func(fl validator.FieldLevel) bool {
			return domain.FuelType(fl.Field().String()).IsValid()
		})
	})
}
