package models

import "time"

// Setting is a row of the settings table.
type Setting struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
	UpdatedBy *string   `db:"updated_by"`
}
