package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/platform/config"
	"github.com/SscSPs/car_market_app/internal/utils"
	"github.com/google/uuid"
)

// authService registers members by phone number and issues JWT access tokens.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvc {
	return &authService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	phone, err := utils.NormalizePhone(req.Phone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.FindUserByPhone(ctx, phone); err == nil {
		return nil, fmt.Errorf("phone already registered: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing phone")
		return nil, fmt.Errorf("failed to check existing phone: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Phone:        phone,
		LoginEmail:   utils.LoginEmail(phone),
		PasswordHash: hash,
		FullName:     fullName,
		Role:         domain.RoleUser,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", userID))
	return &user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (string, time.Time, *domain.User, error) {
	phone, err := utils.NormalizePhone(req.Phone)
	if err != nil {
		return "", time.Time{}, nil, apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", time.Time{}, nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to load user for login")
		return "", time.Time{}, nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Login failed: password mismatch", slog.String("user_id", user.UserID))
		return "", time.Time{}, nil, apperrors.ErrUnauthorized
	}

	expiresAt := s.now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return token, expiresAt, user, nil
}
