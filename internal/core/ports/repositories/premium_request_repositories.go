package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
)

// PremiumRequestReader defines read operations for premium requests
type PremiumRequestReader interface {
	// FindPremiumRequestByID retrieves a single request.
	FindPremiumRequestByID(ctx context.Context, requestID string) (*domain.PremiumRequest, error)

	// ListPremiumRequests returns pending requests, or reviewed ones when reviewed is true, newest first.
	ListPremiumRequests(ctx context.Context, reviewed bool) ([]domain.PremiumRequest, error)

	// ListPendingByUser returns the user's pending requests.
	ListPendingByUser(ctx context.Context, userID string) ([]domain.PremiumRequest, error)

	// HasPendingRequest reports whether the listing already has a pending request.
	HasPendingRequest(ctx context.Context, listingID string) (bool, error)
}

// PremiumRequestWriter defines write operations for premium requests
type PremiumRequestWriter interface {
	// SavePremiumRequest persists a new request.
	SavePremiumRequest(ctx context.Context, req domain.PremiumRequest) error

	// ReviewPremiumRequest moves a pending request to approved or rejected.
	// Approving also flags the listing as premium in the same transaction.
	ReviewPremiumRequest(ctx context.Context, requestID string, status domain.PremiumRequestStatus, reviewerID string, now time.Time) (*domain.PremiumRequest, error)
}

// PremiumRequestRepositoryFacade combines all premium request repository interfaces
type PremiumRequestRepositoryFacade interface {
	PremiumRequestReader
	PremiumRequestWriter
}
