package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing is a row of the listings table, optionally joined with its seller.
type Listing struct {
	ListingID    string          `db:"listing_id"`
	UserID       string          `db:"user_id"`
	Title        string          `db:"title"`
	Price        decimal.Decimal `db:"price"`
	Currency     string          `db:"currency"`
	Governorate  string          `db:"governorate"`
	Brand        string          `db:"brand"`
	Year         int             `db:"year"`
	Transmission string          `db:"transmission"`
	FuelType     string          `db:"fuel_type"`
	Description  string          `db:"description"`
	Images       []string        `db:"images"`
	IsPremium    bool            `db:"is_premium"`
	AuditFields

	SellerName     *string    `db:"seller_name"`
	SellerPhone    *string    `db:"seller_phone"`
	SellerJoinedAt *time.Time `db:"seller_joined_at"`
}
