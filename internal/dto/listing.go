package dto

import (
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/shopspring/decimal"
)

// CreateListingRequest holds the text fields of the multipart POST /listings form.
// Price is kept as a string and parsed into a decimal by the service.
type CreateListingRequest struct {
	Title        string `form:"title" binding:"required,min=3,max=150"`
	Price        string `form:"price" binding:"required,numeric"`
	Currency     string `form:"currency" binding:"omitempty,carcurrency"`
	Governorate  string `form:"governorate" binding:"omitempty,governorate"`
	Brand        string `form:"brand" binding:"required,max=60"`
	Year         int    `form:"year" binding:"required"`
	Transmission string `form:"transmission" binding:"required,transmission"`
	FuelType     string `form:"fuelType" binding:"required,fueltype"`
	Description  string `form:"description" binding:"max=5000"`
}

// UpdateListingRequest defines the data allowed for updating a listing.
// Images, when present, is the subset of existing image URLs to keep.
type UpdateListingRequest struct {
	Title        *string  `json:"title" binding:"omitempty,min=3,max=150"`
	Price        *string  `json:"price" binding:"omitempty,numeric"`
	Currency     *string  `json:"currency" binding:"omitempty,carcurrency"`
	Governorate  *string  `json:"governorate" binding:"omitempty,governorate"`
	Brand        *string  `json:"brand" binding:"omitempty,max=60"`
	Year         *int     `json:"year"`
	Transmission *string  `json:"transmission" binding:"omitempty,transmission"`
	FuelType     *string  `json:"fuelType" binding:"omitempty,fueltype"`
	Description  *string  `json:"description" binding:"omitempty,max=5000"`
	Images       []string `json:"images" binding:"omitempty,max=10"`
}

// SearchListingsParams defines query parameters for the public search.
type SearchListingsParams struct {
	Query        string `form:"q"`
	Governorate  string `form:"governorate"`
	Gov          string `form:"gov"`
	Premium      string `form:"premium" binding:"omitempty,oneof=true false"`
	MinPrice     string `form:"minPrice" binding:"omitempty,numeric"`
	MaxPrice     string `form:"maxPrice" binding:"omitempty,numeric"`
	MinYear      int    `form:"minYear" binding:"omitempty,min=1900,max=2100"`
	MaxYear      int    `form:"maxYear" binding:"omitempty,min=1900,max=2100"`
	Transmission string `form:"transmission" binding:"omitempty,transmission"`
	FuelType     string `form:"fuelType" binding:"omitempty,fueltype"`
	Limit        int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken    string `form:"nextToken"`
}

// AdminListListingsParams defines query parameters for the moderation table.
type AdminListListingsParams struct {
	Status string `form:"status,default=all" binding:"omitempty,oneof=all premium normal"`
	Sort   string `form:"sort,default=newest" binding:"omitempty,oneof=newest oldest"`
	Query  string `form:"q"`
	Limit  int    `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// SetPremiumRequest is the body of PATCH /admin/listings/:id/premium.
type SetPremiumRequest struct {
	IsPremium *bool `json:"isPremium" binding:"required"`
}

// ListingResponse defines the data returned for a listing.
type ListingResponse struct {
	ListingID    string                `json:"listingID"`
	UserID       string                `json:"userID"`
	Title        string                `json:"title"`
	Price        decimal.Decimal       `json:"price"`
	Currency     pricing.Code          `json:"currency"`
	Display      pricing.Display       `json:"display"`
	Governorate  string                `json:"governorate"`
	Brand        string                `json:"brand"`
	Year         int                   `json:"year"`
	Transmission domain.Transmission   `json:"transmission"`
	FuelType     domain.FuelType       `json:"fuelType"`
	Description  string                `json:"description"`
	Images       []string              `json:"images"`
	IsPremium    bool                  `json:"isPremium"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	Seller       *domain.SellerSummary `json:"seller,omitempty"`
}

// ToListingResponse converts a domain.Listing and its computed price display to a ListingResponse DTO
func ToListingResponse(l *domain.Listing, display pricing.Display) ListingResponse {
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return ListingResponse{
		ListingID:    l.ListingID,
		UserID:       l.UserID,
		Title:        l.Title,
		Price:        l.Price,
		Currency:     l.Currency,
		Display:      display,
		Governorate:  l.Governorate,
		Brand:        l.Brand,
		Year:         l.Year,
		Transmission: l.Transmission,
		FuelType:     l.FuelType,
		Description:  l.Description,
		Images:       images,
		IsPremium:    l.IsPremium,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.LastUpdatedAt,
		Seller:       l.Seller,
	}
}

// ListListingsResponse wraps a page of listings.
type ListListingsResponse struct {
	Listings  []ListingResponse `json:"listings"`
	NextToken *string           `json:"nextToken,omitempty"`
}
