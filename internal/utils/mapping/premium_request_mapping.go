package mapping

import (
	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/models"
	"github.com/SscSPs/car_market_app/internal/pricing"
)

// ToModelPremiumRequest converts a domain PremiumRequest to a model PremiumRequest
func ToModelPremiumRequest(d domain.PremiumRequest) models.PremiumRequest {
	return models.PremiumRequest{
		RequestID:  d.RequestID,
		ListingID:  d.ListingID,
		UserID:     d.UserID,
		ReceiptURL: d.ReceiptURL,
		Status:     string(d.Status),
		CreatedAt:  d.CreatedAt,
		ReviewedAt: d.ReviewedAt,
		ReviewedBy: d.ReviewedBy,
	}
}

// ToDomainPremiumRequest converts a model PremiumRequest to a domain PremiumRequest
func ToDomainPremiumRequest(m models.PremiumRequest) domain.PremiumRequest {
	d := domain.PremiumRequest{
		RequestID:  m.RequestID,
		ListingID:  m.ListingID,
		UserID:     m.UserID,
		ReceiptURL: m.ReceiptURL,
		Status:     domain.PremiumRequestStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		ReviewedAt: m.ReviewedAt,
		ReviewedBy: m.ReviewedBy,
	}
	if m.ListingTitle != nil {
		d.ListingTitle = *m.ListingTitle
	}
	if m.ListingPrice != nil {
		d.ListingPrice = *m.ListingPrice
	}
	if m.ListingCurrency != nil {
		d.ListingCurrency = pricing.ParseCode(*m.ListingCurrency)
	}
	if m.RequesterName != nil {
		d.RequesterName = *m.RequesterName
	}
	if m.RequesterPhone != nil {
		d.RequesterPhone = *m.RequesterPhone
	}
	return d
}

// ToDomainPremiumRequestSlice converts a slice of model PremiumRequests to domain PremiumRequests
func ToDomainPremiumRequestSlice(ms []models.PremiumRequest) []domain.PremiumRequest {
	ds := make([]domain.PremiumRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPremiumRequest(m)
	}
	return ds
}
