package dto

import (
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardResponse holds the admin headline counts.
type DashboardResponse struct {
	Listings        int64 `json:"listings"`
	PremiumListings int64 `json:"premiumListings"`
	Users           int64 `json:"users"`
	PendingRequests int64 `json:"pendingRequests"`
}

// ToDashboardResponse converts domain.DashboardCounts to its DTO
func ToDashboardResponse(c *domain.DashboardCounts) DashboardResponse {
	return DashboardResponse{
		Listings:        c.Listings,
		PremiumListings: c.PremiumListings,
		Users:           c.Users,
		PendingRequests: c.PendingRequests,
	}
}

// GovernorateCountResponse is one row of the per-governorate breakdown.
type GovernorateCountResponse struct {
	Governorate string `json:"governorate"`
	Count       int64  `json:"count"`
}

// FinancialReportResponse is the premium sales summary.
type FinancialReportResponse struct {
	PremiumListings  int64                      `json:"premiumListings"`
	RegularListings  int64                      `json:"regularListings"`
	ApprovedRequests int64                      `json:"approvedRequests"`
	TotalRevenue     decimal.Decimal            `json:"totalRevenue"`
	Governorates     []GovernorateCountResponse `json:"governorates"`
}

// ToFinancialReportResponse converts domain.FinancialReport to its DTO
func ToFinancialReportResponse(r *domain.FinancialReport) FinancialReportResponse {
	govs := make([]GovernorateCountResponse, len(r.Governorates))
	for i, g := range r.Governorates {
		govs[i] = GovernorateCountResponse{Governorate: g.Governorate, Count: g.Count}
	}
	return FinancialReportResponse{
		PremiumListings:  r.PremiumListings,
		RegularListings:  r.RegularListings,
		ApprovedRequests: r.ApprovedRequests,
		TotalRevenue:     r.TotalRevenue,
		Governorates:     govs,
	}
}

// GrowthReportParams defines query parameters for the growth chart.
type GrowthReportParams struct {
	Days int `form:"days,default=30" binding:"min=1,max=365"`
}

// GrowthPointResponse is one day of the growth chart.
type GrowthPointResponse struct {
	Date        string          `json:"date"`
	Revenue     decimal.Decimal `json:"revenue"`
	NewListings int64           `json:"newListings"`
	NewUsers    int64           `json:"newUsers"`
}

// GrowthReportResponse wraps the growth series.
type GrowthReportResponse struct {
	Days   int                   `json:"days"`
	Points []GrowthPointResponse `json:"points"`
}

// ToGrowthReportResponse converts the daily series to its DTO
func ToGrowthReportResponse(points []domain.DailyPoint) GrowthReportResponse {
	out := make([]GrowthPointResponse, len(points))
	for i, p := range points {
		out[i] = GrowthPointResponse{
			Date:        p.Date.Format(time.DateOnly),
			Revenue:     p.Revenue,
			NewListings: p.NewListings,
			NewUsers:    p.NewUsers,
		}
	}
	return GrowthReportResponse{Days: len(points), Points: out}
}
