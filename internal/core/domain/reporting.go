package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardCounts are the headline numbers on the admin home page.
type DashboardCounts struct {
	Listings        int64
	PremiumListings int64
	Users           int64
	PendingRequests int64
}

// GovernorateCount is the number of listings in one governorate.
type GovernorateCount struct {
	Governorate string
	Count       int64
}

// FinancialReport summarises premium sales.
type FinancialReport struct {
	PremiumListings  int64
	RegularListings  int64
	ApprovedRequests int64
	TotalRevenue     decimal.Decimal
	Governorates     []GovernorateCount
}

// GrowthActivity is the raw event timestamps a growth report is bucketed from.
type GrowthActivity struct {
	ApprovedAt       []time.Time
	ListingCreatedAt []time.Time
	UserCreatedAt    []time.Time
}

// DailyPoint is one day of the growth chart.
type DailyPoint struct {
	Date        time.Time
	Revenue     decimal.Decimal
	NewListings int64
	NewUsers    int64
}

// GrowthWindowStart returns midnight (in loc) of the first day of a days-long window ending on now's date.
func GrowthWindowStart(now time.Time, days int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return today.AddDate(0, 0, -(days - 1))
}

// BuildGrowthSeries buckets activity into days consecutive calendar days starting at start
// (midnight in loc). Days without activity are present with zero values. Events outside
// the window are ignored. Each approved request contributes premiumPrice to revenue.
func BuildGrowthSeries(activity GrowthActivity, start time.Time, days int, loc *time.Location, premiumPrice decimal.Decimal) []DailyPoint {
	if days <= 0 {
		return []DailyPoint{}
	}
	if loc == nil {
		loc = time.UTC
	}
	start = start.In(loc)

	points := make([]DailyPoint, days)
	byDay := make(map[string]int, days)
	for i := range points {
		day := start.AddDate(0, 0, i)
		points[i] = DailyPoint{Date: day, Revenue: decimal.Zero}
		byDay[day.Format(time.DateOnly)] = i
	}

	index := func(t time.Time) (int, bool) {
		i, ok := byDay[t.In(loc).Format(time.DateOnly)]
		return i, ok
	}

	for _, t := range activity.ApprovedAt {
		if i, ok := index(t); ok {
			points[i].Revenue = points[i].Revenue.Add(premiumPrice)
		}
	}
	for _, t := range activity.ListingCreatedAt {
		if i, ok := index(t); ok {
			points[i].NewListings++
		}
	}
	for _, t := range activity.UserCreatedAt {
		if i, ok := index(t); ok {
			points[i].NewUsers++
		}
	}
	return points
}
