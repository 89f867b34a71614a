package dto

import (
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/pricing"
)

// PremiumRequestResponse defines the data returned for a premium request.
type PremiumRequestResponse struct {
	RequestID      string                      `json:"requestID"`
	ListingID      string                      `json:"listingID"`
	UserID         string                      `json:"userID"`
	ReceiptURL     string                      `json:"receiptURL"`
	Status         domain.PremiumRequestStatus `json:"status"`
	CreatedAt      time.Time                   `json:"createdAt"`
	ReviewedAt     *time.Time                  `json:"reviewedAt,omitempty"`
	ReviewedBy     *string                     `json:"reviewedBy,omitempty"`
	ListingTitle   string                      `json:"listingTitle,omitempty"`
	ListingPrice   *pricing.Display            `json:"listingPrice,omitempty"`
	RequesterName  string                      `json:"requesterName,omitempty"`
	RequesterPhone string                      `json:"requesterPhone,omitempty"`
}

// ToPremiumRequestResponse converts a domain.PremiumRequest to its DTO. price may be nil when
// the request was not loaded with its listing.
func ToPremiumRequestResponse(r *domain.PremiumRequest, price *pricing.Display) PremiumRequestResponse {
	return PremiumRequestResponse{
		RequestID:      r.RequestID,
		ListingID:      r.ListingID,
		UserID:         r.UserID,
		ReceiptURL:     r.ReceiptURL,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		ReviewedAt:     r.ReviewedAt,
		ReviewedBy:     r.ReviewedBy,
		ListingTitle:   r.ListingTitle,
		ListingPrice:   price,
		RequesterName:  r.RequesterName,
		RequesterPhone: r.RequesterPhone,
	}
}

// ListPremiumRequestsParams defines query parameters for the admin review queue.
type ListPremiumRequestsParams struct {
	History bool `form:"history"`
}
