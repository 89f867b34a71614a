package mapping

import (
	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/models"
	"github.com/SscSPs/car_market_app/internal/pricing"
)

// ToModelListing converts a domain Listing to a model Listing
func ToModelListing(d domain.Listing) models.Listing {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return models.Listing{
		ListingID:    d.ListingID,
		UserID:       d.UserID,
		Title:        d.Title,
		Price:        d.Price,
		Currency:     string(d.Currency),
		Governorate:  d.Governorate,
		Brand:        d.Brand,
		Year:         d.Year,
		Transmission: string(d.Transmission),
		FuelType:     string(d.FuelType),
		Description:  d.Description,
		Images:       images,
		IsPremium:    d.IsPremium,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainListing converts a model Listing to a domain Listing.
// The seller summary is attached only when the row was joined with its owner.
func ToDomainListing(m models.Listing) domain.Listing {
	l := domain.Listing{
		ListingID:    m.ListingID,
		UserID:       m.UserID,
		Title:        m.Title,
		Price:        m.Price,
		Currency:     pricing.ParseCode(m.Currency),
		Governorate:  m.Governorate,
		Brand:        m.Brand,
		Year:         m.Year,
		Transmission: domain.Transmission(m.Transmission),
		FuelType:     domain.FuelType(m.FuelType),
		Description:  m.Description,
		Images:       m.Images,
		IsPremium:    m.IsPremium,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.SellerName != nil {
		seller := &domain.SellerSummary{FullName: *m.SellerName}
		if m.SellerPhone != nil {
			seller.Phone = *m.SellerPhone
		}
		if m.SellerJoinedAt != nil {
			seller.JoinedAt = *m.SellerJoinedAt
		}
		l.Seller = seller
	}
	return l
}

// ToDomainListingSlice converts a slice of model Listings to a slice of domain Listings
func ToDomainListingSlice(ms []models.Listing) []domain.Listing {
	ds := make([]domain.Listing, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainListing(m)
	}
	return ds
}
