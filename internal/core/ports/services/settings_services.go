package services

import (
	"context"

	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/shopspring/decimal"
)

// SettingsSvc manages site settings and the exchange rate snapshot.
type SettingsSvc interface {
	// GetSettings returns the current settings.
	GetSettings(ctx context.Context) (*dto.SettingsResponse, error)

	// UpdateSettings validates and persists settings and refreshes the rate snapshot.
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, adminID string) (*dto.SettingsResponse, error)

	// RefreshRate reloads the exchange rate from storage into the snapshot.
	RefreshRate(ctx context.Context) error

	// CurrentRate returns the effective exchange rate.
	CurrentRate() pricing.Rate

	// FormatPrice renders a price using the current snapshot.
	FormatPrice(price decimal.Decimal, code pricing.Code) pricing.Display
}
