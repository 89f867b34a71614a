package domain

import (
	"time"

	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/shopspring/decimal"
)

// PremiumRequestStatus is the review state of a premium request.
type PremiumRequestStatus string

const (
	PremiumPending  PremiumRequestStatus = "pending"
	PremiumApproved PremiumRequestStatus = "approved"
	PremiumRejected PremiumRequestStatus = "rejected"
)

// PremiumRequest is a seller's payment receipt asking for a listing to be promoted.
type PremiumRequest struct {
	RequestID  string
	ListingID  string
	UserID     string
	ReceiptURL string
	Status     PremiumRequestStatus
	CreatedAt  time.Time
	ReviewedAt *time.Time
	ReviewedBy *string

	// Populated on admin reads.
	ListingTitle    string
	ListingPrice    decimal.Decimal
	ListingCurrency pricing.Code
	RequesterName   string
	RequesterPhone  string
}
