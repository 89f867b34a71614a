package services

import (
	"context"
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/dto"
)

// AuthSvc registers members and issues access tokens.
type AuthSvc interface {
	// Register creates a user identified by phone number.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login verifies phone and password and returns a signed access token.
	Login(ctx context.Context, req dto.LoginRequest) (token string, expiresAt time.Time, user *domain.User, err error)
}
