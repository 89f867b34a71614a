package models

import (
	"time"
)

// User is a row of the users table.
type User struct {
	UserID       string     `db:"user_id"`
	Phone        string     `db:"phone"`
	LoginEmail   string     `db:"login_email"`
	PasswordHash string     `db:"password_hash"`
	FullName     string     `db:"full_name"`
	Role         string     `db:"role"`
	AvatarURL    *string    `db:"avatar_url"`
	Address      *string    `db:"address"`
	DateOfBirth  *time.Time `db:"date_of_birth"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
