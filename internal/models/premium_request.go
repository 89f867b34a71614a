package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PremiumRequest is a row of the premium_requests table with optional admin joins.
type PremiumRequest struct {
	RequestID  string     `db:"request_id"`
	ListingID  string     `db:"listing_id"`
	UserID     string     `db:"user_id"`
	ReceiptURL string     `db:"receipt_url"`
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	ReviewedAt *time.Time `db:"reviewed_at"`
	ReviewedBy *string    `db:"reviewed_by"`

	ListingTitle    *string          `db:"listing_title"`
	ListingPrice    *decimal.Decimal `db:"listing_price"`
	ListingCurrency *string          `db:"listing_currency"`
	RequesterName   *string          `db:"requester_name"`
	RequesterPhone  *string          `db:"requester_phone"`
}
