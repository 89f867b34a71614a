package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
)

// PageViewRepository stores visitor tracking rows
type PageViewRepository interface {
	// SavePageView persists a page view.
	SavePageView(ctx context.Context, view domain.PageView) error

	// CountDistinctVisitorsSince counts unique visitor IDs seen at or after since.
	CountDistinctVisitorsSince(ctx context.Context, since time.Time) (int64, error)
}

// PresenceTracker keeps a short-lived record of who is online.
type PresenceTracker interface {
	// Touch records that visitorID was seen at at.
	Touch(ctx context.Context, visitorID string, at time.Time) error

	// CountOnline counts visitors seen at or after since.
	CountOnline(ctx context.Context, since time.Time) (int64, error)
}
