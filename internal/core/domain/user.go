package domain

import "time"

// UserRole determines access to the admin back-office.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a marketplace member. Phone is the login identity.
type User struct {
	UserID       string     `json:"userID"`
	Phone        string     `json:"phone"`
	LoginEmail   string     `json:"-"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"fullName"`
	Role         UserRole   `json:"role"`
	AvatarURL    *string    `json:"avatarURL,omitempty"`
	Address      *string    `json:"address,omitempty"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsAdmin reports whether the user may use the back-office.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role   *UserRole
	Search string
	Sort   SortOrder
	Limit  int
	Offset int
}
