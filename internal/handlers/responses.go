package handlers

import (
	"net/http"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// priceFormatter renders prices with the exchange rate currently in effect.
type priceFormatter interface {
	FormatPrice(price decimal.Decimal, code pricing.Code) pricing.Display
}

func toListingResponse(l *domain.Listing, prices priceFormatter) dto.ListingResponse {
	return dto.ToListingResponse(l, prices.FormatPrice(l.Price, l.Currency))
}

func toListListingsResponse(listings []domain.Listing, nextToken *string, prices priceFormatter) dto.ListListingsResponse {
	out := make([]dto.ListingResponse, len(listings))
	for i := range listings {
		out[i] = toListingResponse(&listings[i], prices)
	}
	return dto.ListListingsResponse{Listings: out, NextToken: nextToken}
}

func toPremiumRequestResponse(r *domain.PremiumRequest, prices priceFormatter) dto.PremiumRequestResponse {
	var price *pricing.Display
	if r.ListingTitle != "" {
		d := prices.FormatPrice(r.ListingPrice, r.ListingCurrency)
		price = &d
	}
	return dto.ToPremiumRequestResponse(r, price)
}

func toPremiumRequestResponses(requests []domain.PremiumRequest, prices priceFormatter) []dto.PremiumRequestResponse {
	out := make([]dto.PremiumRequestResponse, len(requests))
	for i := range requests {
		out[i] = toPremiumRequestResponse(&requests[i], prices)
	}
	return out
}

// limitBody caps the request body size for upload routes.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
