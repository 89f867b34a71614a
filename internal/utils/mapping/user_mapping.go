package mapping

import (
	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Phone:        d.Phone,
		LoginEmail:   d.LoginEmail,
		PasswordHash: d.PasswordHash,
		FullName:     d.FullName,
		Role:         string(d.Role),
		AvatarURL:    d.AvatarURL,
		Address:      d.Address,
		DateOfBirth:  d.DateOfBirth,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Phone:        m.Phone,
		LoginEmail:   m.LoginEmail,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         domain.UserRole(m.Role),
		AvatarURL:    m.AvatarURL,
		Address:      m.Address,
		DateOfBirth:  m.DateOfBirth,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
