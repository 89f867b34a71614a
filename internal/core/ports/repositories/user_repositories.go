package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByPhone retrieves a user by their normalised phone number.
	FindUserByPhone(ctx context.Context, phone string) (*domain.User, error)

	// FindUsers retrieves a filtered, paginated list of users.
	FindUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's profile details.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, userID, passwordHash, updatedBy string, now time.Time) error

	// UpdateRole changes a user's role.
	UpdateRole(ctx context.Context, userID string, role domain.UserRole, updatedBy string, now time.Time) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// MarkUserDeleted marks a user as deleted (soft delete).
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
