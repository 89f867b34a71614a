package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
)

// ReportingRepository defines the aggregate queries behind the admin reports
type ReportingRepository interface {
	// GetDashboardCounts returns the headline counts.
	GetDashboardCounts(ctx context.Context) (*domain.DashboardCounts, error)

	// CountApprovedRequests returns how many premium requests were approved.
	CountApprovedRequests(ctx context.Context) (int64, error)

	// GetGovernorateCounts returns listing counts per governorate, largest first.
	GetGovernorateCounts(ctx context.Context) ([]domain.GovernorateCount, error)

	// GetGrowthActivity returns event timestamps at or after since.
	GetGrowthActivity(ctx context.Context, since time.Time) (*domain.GrowthActivity, error)
}
