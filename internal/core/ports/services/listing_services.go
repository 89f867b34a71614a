package services

import (
	"context"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/dto"
)

// ListingReaderSvc defines read operations for listings
type ListingReaderSvc interface {
	// GetListing retrieves a single listing.
	GetListing(ctx context.Context, listingID string) (*domain.Listing, error)

	// SearchListings runs the public search and returns the next page token, if any.
	SearchListings(ctx context.Context, params dto.SearchListingsParams) ([]domain.Listing, *string, error)

	// ListUserListings returns all listings owned by userID.
	ListUserListings(ctx context.Context, userID string) ([]domain.Listing, error)
}

// ListingWriterSvc defines write operations for listings
type ListingWriterSvc interface {
	// CreateListing compresses and stores images then persists the listing.
	CreateListing(ctx context.Context, userID string, req dto.CreateListingRequest, images []dto.FileUpload) (*domain.Listing, error)

	// UpdateListing edits a listing owned by userID.
	UpdateListing(ctx context.Context, listingID string, req dto.UpdateListingRequest, userID string) (*domain.Listing, error)

	// AddImages appends images to a listing owned by userID.
	AddImages(ctx context.Context, listingID string, images []dto.FileUpload, userID string) (*domain.Listing, error)

	// DeleteListing removes a listing owned by userID, or any listing when userID is an admin.
	DeleteListing(ctx context.Context, listingID string, userID string) error
}

// ListingAdminSvc defines back-office listing moderation
type ListingAdminSvc interface {
	// ListForAdmin returns the moderation table.
	ListForAdmin(ctx context.Context, params dto.AdminListListingsParams) ([]domain.Listing, error)

	// SetPremium toggles the premium flag.
	SetPremium(ctx context.Context, listingID string, premium bool, adminID string) (*domain.Listing, error)
}

// ListingSvcFacade combines all listing service interfaces
type ListingSvcFacade interface {
	ListingReaderSvc
	ListingWriterSvc
	ListingAdminSvc
}
