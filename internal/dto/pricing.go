package dto

import (
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/shopspring/decimal"
)

// FormatPriceParams defines query parameters for GET /pricing/format.
type FormatPriceParams struct {
	Price    string `form:"price" binding:"required,numeric"`
	Currency string `form:"currency"`
}

// FormatPriceResponse is the dual-currency display together with the rate used.
type FormatPriceResponse struct {
	pricing.Display
	Rate decimal.Decimal `json:"rate"`
}
