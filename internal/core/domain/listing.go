package domain

import (
	"time"

	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/shopspring/decimal"
)

// MaxListingImages is the most photos a single listing can carry.
const MaxListingImages = 10

// Transmission of the car.
type Transmission string

const (
	TransmissionAutomatic Transmission = "automatic"
	TransmissionManual    Transmission = "manual"
)

// IsValid reports whether t is a known transmission.
func (t Transmission) IsValid() bool {
	return t == TransmissionAutomatic || t == TransmissionManual
}

// FuelType of the car.
type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
)

// IsValid reports whether f is a known fuel type.
func (f FuelType) IsValid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric:
		return true
	}
	return false
}

// Governorates lists the Iraqi governorates a listing can be located in.
var Governorates = []string{
	"بغداد", "البصرة", "نينوى", "أربيل", "النجف", "كربلاء", "كركوك", "الأنبار", "ديالى",
	"المثنى", "القادسية", "ميسان", "ذي قار", "صلاح الدين", "دهوك", "السليمانية", "بابل", "واسط",
}

// DefaultGovernorate is used when a listing does not specify one.
const DefaultGovernorate = "بغداد"

// IsGovernorate reports whether name is one of Governorates.
func IsGovernorate(name string) bool {
	for _, g := range Governorates {
		if g == name {
			return true
		}
	}
	return false
}

// SellerSummary is the public part of the listing owner's profile.
type SellerSummary struct {
	FullName string    `json:"fullName"`
	Phone    string    `json:"phone"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Listing is a car advertisement.
type Listing struct {
	ListingID    string
	UserID       string
	Title        string
	Price        decimal.Decimal
	Currency     pricing.Code
	Governorate  string
	Brand        string
	Year         int
	Transmission Transmission
	FuelType     FuelType
	Description  string
	Images       []string
	IsPremium    bool
	AuditFields
	Seller *SellerSummary
}

// ListingFilter holds the public search criteria.
type ListingFilter struct {
	Search       string
	Governorate  string
	PremiumOnly  *bool
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinYear      *int
	MaxYear      *int
	Transmission Transmission
	FuelType     FuelType
	UserID       string
	Limit        int
	// Cursor is the (created_at, listing_id) of the last row of the previous page.
	Cursor *ListingCursor
}

// ListingCursor is a keyset position in newest-first order.
type ListingCursor struct {
	CreatedAt time.Time
	ListingID string
}

// AdminListingFilter narrows the back-office listings table.
type AdminListingFilter struct {
	PremiumOnly *bool
	Search      string
	Sort        SortOrder
	Limit       int
	Offset      int
}
