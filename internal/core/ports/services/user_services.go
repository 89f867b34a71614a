package services

import (
	"context"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a filtered, paginated list of users.
	ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// UpdateProfile updates the caller's own profile.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)

	// ChangePassword replaces the caller's password.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error

	// UpdateAvatar stores a new avatar image for the caller.
	UpdateAvatar(ctx context.Context, userID string, file dto.FileUpload) (*domain.User, error)
}

// UserAdminSvc defines back-office user management
type UserAdminSvc interface {
	// AdminUpdateUser updates another user's name and phone.
	AdminUpdateUser(ctx context.Context, userID string, req dto.AdminUpdateUserRequest, adminID string) (*domain.User, error)

	// ChangeRole promotes or demotes a user.
	ChangeRole(ctx context.Context, userID string, role domain.UserRole, adminID string) (*domain.User, error)

	// DeleteUser marks a user as deleted (soft delete).
	DeleteUser(ctx context.Context, userID string, adminID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAdminSvc
}
