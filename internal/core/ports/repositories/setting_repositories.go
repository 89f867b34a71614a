package repositories

import (
	"context"

	"github.com/SscSPs/car_market_app/internal/core/domain"
)

// SettingRepository reads and writes site settings
type SettingRepository interface {
	// FindSetting returns a single setting by key.
	FindSetting(ctx context.Context, key string) (*domain.Setting, error)

	// ListSettings returns all settings.
	ListSettings(ctx context.Context) ([]domain.Setting, error)

	// UpsertSettings writes all given settings in one transaction.
	UpsertSettings(ctx context.Context, settings []domain.Setting) error
}
