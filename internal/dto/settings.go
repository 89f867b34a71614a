package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsResponse is the current site configuration.
type SettingsResponse struct {
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	AdminPhone   string          `json:"adminPhone"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}

// UpdateSettingsRequest is the body of PUT /admin/settings.
// ExchangeRate is IQD per 100 USD.
type UpdateSettingsRequest struct {
	ExchangeRate string `json:"exchangeRate" binding:"required,numeric"`
	AdminPhone   string `json:"adminPhone" binding:"omitempty,max=32"`
}
