package services

import (
	"context"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/dto"
)

// VisitorSvc tracks page views and summarises traffic.
type VisitorSvc interface {
	// TrackPageView records a page view. userID wins over the client visitor ID when set.
	TrackPageView(ctx context.Context, req dto.TrackPageViewRequest, userID string) error

	// Stats returns current, weekly and monthly visitor counts.
	Stats(ctx context.Context) (*domain.VisitorStats, error)
}
