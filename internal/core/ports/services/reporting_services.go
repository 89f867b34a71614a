package services

import (
	"context"

	"github.com/SscSPs/car_market_app/internal/core/domain"
)

// ReportingService defines the admin reports
type ReportingService interface {
	// Dashboard returns the headline counts.
	Dashboard(ctx context.Context) (*domain.DashboardCounts, error)

	// FinancialReport returns premium sales and per-governorate counts.
	FinancialReport(ctx context.Context) (*domain.FinancialReport, error)

	// Growth returns days of daily revenue, listings and users, oldest first.
	Growth(ctx context.Context, days int) ([]domain.DailyPoint, error)
}
