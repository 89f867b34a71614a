package domain

import "time"

// PageView is one tracked page load.
type PageView struct {
	Path      string
	VisitorID string
	CreatedAt time.Time
}

// VisitorStats summarises recent traffic.
type VisitorStats struct {
	CurrentOnline int64 `json:"currentOnline"`
	WeeklyVisits  int64 `json:"weeklyVisits"`
	MonthlyVisits int64 `json:"monthlyVisits"`
}
