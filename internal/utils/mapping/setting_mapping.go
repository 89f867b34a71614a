package mapping

import (
	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/models"
)

// ToModelSetting converts a domain Setting to a model Setting
func ToModelSetting(d domain.Setting) models.Setting {
	return models.Setting{Key: d.Key, Value: d.Value, UpdatedAt: d.UpdatedAt, UpdatedBy: d.UpdatedBy}
}

// ToDomainSetting converts a model Setting to a domain Setting
func ToDomainSetting(m models.Setting) domain.Setting {
	return domain.Setting{Key: m.Key, Value: m.Value, UpdatedAt: m.UpdatedAt, UpdatedBy: m.UpdatedBy}
}
