package domain

import "time"

// Well-known settings keys.
const (
	SettingExchangeRate = "exchange_rate"
	SettingAdminPhone   = "admin_phone"
)

// Setting is a single site-wide key/value configuration row.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
	UpdatedBy *string
}
