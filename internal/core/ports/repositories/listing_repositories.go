package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
)

// ListingReader defines read operations for listings
type ListingReader interface {
	// FindListingByID retrieves a listing with its seller summary.
	FindListingByID(ctx context.Context, listingID string) (*domain.Listing, error)

	// SearchListings returns listings matching filter, newest first, keyset paginated.
	SearchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)

	// ListListingsForAdmin returns listings for the back-office table.
	ListListingsForAdmin(ctx context.Context, filter domain.AdminListingFilter) ([]domain.Listing, error)
}

// ListingWriter defines write operations for listings
type ListingWriter interface {
	// SaveListing persists a new listing.
	SaveListing(ctx context.Context, listing domain.Listing) error

	// UpdateListing updates the editable fields and image list of a listing. It fails with
	// apperrors.ErrConflict when the stored images no longer equal previousImages.
	UpdateListing(ctx context.Context, listing domain.Listing, previousImages []string) error

	// AppendImages adds urls to the listing's images as long as the total stays within
	// maxImages, and returns the resulting list.
	AppendImages(ctx context.Context, listingID string, urls []string, maxImages int, updatedBy string, now time.Time) ([]string, error)

	// SetPremium sets the premium flag of a listing.
	SetPremium(ctx context.Context, listingID string, premium bool, updatedBy string, now time.Time) error

	// DeleteListing removes a listing and its premium requests.
	DeleteListing(ctx context.Context, listingID string) error
}

// ListingRepositoryFacade combines all listing-related repository interfaces
type ListingRepositoryFacade interface {
	ListingReader
	ListingWriter
}
