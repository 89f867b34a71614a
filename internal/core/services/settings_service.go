package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/metrics"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/shopspring/decimal"
)

// SettingsService owns the site settings and keeps the RateBook snapshot in sync with them.
type SettingsService struct {
	BaseService
	repo    portsrepo.SettingRepository
	book    *pricing.RateBook
	metrics *metrics.Metrics
}

// NewSettingsService creates the settings service around an existing rate snapshot.
func NewSettingsService(repo portsrepo.SettingRepository, book *pricing.RateBook, m *metrics.Metrics) *SettingsService {
	if book == nil {
		book = pricing.NewRateBook(pricing.DefaultRate)
	}
	m.SetExchangeRate(book.Current().InexactFloat64())
	return &SettingsService{repo: repo, book: book, metrics: m}
}

var _ portssvc.SettingsSvc = (*SettingsService)(nil)

func (s *SettingsService) GetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := s.repo.ListSettings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list settings")
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	resp := &dto.SettingsResponse{ExchangeRate: s.book.Current()}
	for _, setting := range settings {
		switch setting.Key {
		case domain.SettingExchangeRate:
			if rate, err := pricing.ParseRate(setting.Value); err == nil {
				resp.ExchangeRate = rate
			}
		case domain.SettingAdminPhone:
			resp.AdminPhone = setting.Value
		}
		if resp.UpdatedAt == nil || setting.UpdatedAt.After(*resp.UpdatedAt) {
			updated := setting.UpdatedAt
			resp.UpdatedAt = &updated
		}
	}
	return resp, nil
}

func (s *SettingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, adminID string) (*dto.SettingsResponse, error) {
	rate, err := pricing.ParseRate(req.ExchangeRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := s.now()
	updatedBy := adminID
	settings := []domain.Setting{
		{Key: domain.SettingExchangeRate, Value: rate.String(), UpdatedAt: now, UpdatedBy: &updatedBy},
		{Key: domain.SettingAdminPhone, Value: strings.TrimSpace(req.AdminPhone), UpdatedAt: now, UpdatedBy: &updatedBy},
	}
	if err := s.repo.UpsertSettings(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save settings")
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.setRate(rate)
	s.LogInfo(ctx, "Settings updated", slog.String("exchange_rate", rate.String()))
	return &dto.SettingsResponse{
		ExchangeRate: rate,
		AdminPhone:   settings[1].Value,
		UpdatedAt:    &now,
	}, nil
}

// RefreshRate reloads the stored exchange rate. A missing or invalid value keeps the
// current snapshot.
func (s *SettingsService) RefreshRate(ctx context.Context) error {
	setting, err := s.repo.FindSetting(ctx, domain.SettingExchangeRate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Exchange rate not set, keeping current rate",
				slog.String("rate", s.book.Current().String()))
			return nil
		}
		s.metrics.RateRefreshFailed()
		return fmt.Errorf("failed to load exchange rate: %w", err)
	}

	rate, err := pricing.ParseRate(setting.Value)
	if err != nil {
		s.metrics.RateRefreshFailed()
		s.LogWarn(ctx, "Stored exchange rate is invalid, keeping current rate",
			slog.String("value", setting.Value),
			slog.String("rate", s.book.Current().String()))
		return nil
	}

	if !rate.Equal(s.book.Current()) {
		s.LogInfo(ctx, "Exchange rate changed", slog.String("rate", rate.String()))
	}
	s.setRate(rate)
	return nil
}

// RunRefresher reloads the rate every interval until ctx is done.
func (s *SettingsService) RunRefresher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RefreshRate(ctx); err != nil {
				s.LogError(ctx, err, "Exchange rate refresh failed, keeping last known rate",
					slog.String("rate", s.book.Current().String()))
			}
		}
	}
}

func (s *SettingsService) CurrentRate() pricing.Rate {
	return s.book.Current()
}

func (s *SettingsService) FormatPrice(price decimal.Decimal, code pricing.Code) pricing.Display {
	return s.book.Format(price, code)
}

func (s *SettingsService) setRate(rate pricing.Rate) {
	if s.book.Set(rate) {
		s.metrics.SetExchangeRate(rate.InexactFloat64())
	}
}
