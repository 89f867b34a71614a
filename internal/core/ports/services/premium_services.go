package services

import (
	"context"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/dto"
)

// PremiumSvc runs the manual payment-receipt promotion workflow.
type PremiumSvc interface {
	// SubmitRequest uploads a receipt and opens a pending request for a listing owned by userID.
	SubmitRequest(ctx context.Context, listingID string, receipt dto.FileUpload, userID string) (*domain.PremiumRequest, error)

	// ListPendingForUser returns the caller's pending requests.
	ListPendingForUser(ctx context.Context, userID string) ([]domain.PremiumRequest, error)

	// ListRequests returns pending requests, or reviewed ones when history is true.
	ListRequests(ctx context.Context, history bool) ([]domain.PremiumRequest, error)

	// Approve marks the request approved and the listing premium.
	Approve(ctx context.Context, requestID string, adminID string) (*domain.PremiumRequest, error)

	// Reject marks the request rejected.
	Reject(ctx context.Context, requestID string, adminID string) (*domain.PremiumRequest, error)
}
