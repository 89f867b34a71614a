package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPageViewRepository struct {
	BaseRepository
}

func newPgxPageViewRepository(db *pgxpool.Pool) portsrepo.PageViewRepository {
	return &PgxPageViewRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PageViewRepository = (*PgxPageViewRepository)(nil)

func (r *PgxPageViewRepository) SavePageView(ctx context.Context, view domain.PageView) error {
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO page_views (path, visitor_id, created_at) VALUES ($1, $2, $3);`,
		view.Path, view.VisitorID, view.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert page view: %w", err)
	}
	return nil
}

func (r *PgxPageViewRepository) CountDistinctVisitorsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT visitor_id) FROM page_views WHERE created_at >= $1;`,
		since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count visitors: %w", err)
	}
	return count, nil
}
