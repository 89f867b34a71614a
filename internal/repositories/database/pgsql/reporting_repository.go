package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func (r *reportingRepository) GetDashboardCounts(ctx context.Context) (*domain.DashboardCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM listings) AS listings,
			(SELECT COUNT(*) FROM listings WHERE is_premium) AS premium_listings,
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL) AS users,
			(SELECT COUNT(*) FROM premium_requests WHERE status = $1) AS pending_requests
	`
	var counts domain.DashboardCounts
	err := r.Pool.QueryRow(ctx, query, string(domain.PremiumPending)).Scan(
		&counts.Listings,
		&counts.PremiumListings,
		&counts.Users,
		&counts.PendingRequests,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying dashboard counts: %w", err)
	}
	return &counts, nil
}

func (r *reportingRepository) CountApprovedRequests(ctx context.Context) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM premium_requests WHERE status = $1;`,
		string(domain.PremiumApproved),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting approved requests: %w", err)
	}
	return count, nil
}

func (r *reportingRepository) GetGovernorateCounts(ctx context.Context) ([]domain.GovernorateCount, error) {
	query := `
		SELECT governorate, COUNT(*) AS count
		FROM listings
		GROUP BY governorate
		ORDER BY count DESC, governorate
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying governorate counts: %w", err)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.GovernorateCount, error) {
		var gc domain.GovernorateCount
		err := row.Scan(&gc.Governorate, &gc.Count)
		return gc, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning governorate counts: %w", err)
	}
	return result, nil
}

// GetGrowthActivity loads the raw timestamps; bucketing into calendar days happens in the
// service so the business timezone is applied in one place.
func (r *reportingRepository) GetGrowthActivity(ctx context.Context, since time.Time) (*domain.GrowthActivity, error) {
	var activity domain.GrowthActivity
	var err error

	activity.ApprovedAt, err = r.timestamps(ctx,
		`SELECT reviewed_at FROM premium_requests WHERE status = $2 AND reviewed_at >= $1`,
		since, string(domain.PremiumApproved))
	if err != nil {
		return nil, fmt.Errorf("error querying approvals: %w", err)
	}
	activity.ListingCreatedAt, err = r.timestamps(ctx,
		`SELECT created_at FROM listings WHERE created_at >= $1`, since)
	if err != nil {
		return nil, fmt.Errorf("error querying new listings: %w", err)
	}
	activity.UserCreatedAt, err = r.timestamps(ctx,
		`SELECT created_at FROM users WHERE created_at >= $1`, since)
	if err != nil {
		return nil, fmt.Errorf("error querying new users: %w", err)
	}
	return &activity, nil
}

func (r *reportingRepository) timestamps(ctx context.Context, query string, args ...any) ([]time.Time, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[time.Time])
}
