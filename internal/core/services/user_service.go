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
	"github.com/SscSPs/car_market_app/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	media    portssvc.MediaSvc
}

// NewUserService creates a user service. media may be nil, in which case avatar uploads fail.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, media portssvc.MediaSvc) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, media: media}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error) {
	filter := domain.UserFilter{
		Search: strings.TrimSpace(params.Query),
		Sort:   domain.SortNewest,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.Sort == string(domain.SortOldest) {
		filter.Sort = domain.SortOldest
	}
	if params.Role != "" && params.Role != "all" {
		role := domain.UserRole(params.Role)
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, params.Role)
		}
		filter.Role = &role
	}

	users, err := s.userRepo.FindUsers(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, fmt.Errorf("%w: full name cannot be empty", apperrors.ErrValidation)
		}
		user.FullName = name
	}
	if req.Address != nil {
		user.Address = optionalString(*req.Address)
	}
	if req.DateOfBirth != nil {
		if strings.TrimSpace(*req.DateOfBirth) == "" {
			user.DateOfBirth = nil
		} else {
			dob, err := time.Parse(time.DateOnly, *req.DateOfBirth)
			if err != nil {
				return nil, fmt.Errorf("%w: date of birth must be YYYY-MM-DD", apperrors.ErrValidation)
			}
			if dob.After(s.now()) {
				return nil, fmt.Errorf("%w: date of birth is in the future", apperrors.ErrValidation)
			}
			user.DateOfBirth = &dob
		}
	}

	return s.saveUser(ctx, user, userID)
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to update password", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}

func (s *userService) UpdateAvatar(ctx context.Context, userID string, file dto.FileUpload) (*domain.User, error) {
	if s.media == nil {
		return nil, errors.New("media storage is not configured")
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.media.UploadAvatar(ctx, userID, file)
	if err != nil {
		return nil, err
	}
	previous := user.AvatarURL
	user.AvatarURL = &url

	updated, err := s.saveUser(ctx, user, userID)
	if err != nil {
		s.media.DeleteByURL(ctx, url)
		return nil, err
	}
	if previous != nil && *previous != url {
		s.media.DeleteByURL(ctx, *previous)
	}
	return updated, nil
}

func (s *userService) AdminUpdateUser(ctx context.Context, userID string, req dto.AdminUpdateUserRequest, adminID string) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, fmt.Errorf("%w: full name cannot be empty", apperrors.ErrValidation)
		}
		user.FullName = name
	}
	if req.Phone != nil {
		phone, err := utils.NormalizePhone(*req.Phone)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		if phone != user.Phone {
			existing, err := s.userRepo.FindUserByPhone(ctx, phone)
			switch {
			case err == nil && existing.UserID != user.UserID:
				return nil, fmt.Errorf("phone already registered: %w", apperrors.ErrDuplicate)
			case err != nil && !errors.Is(err, apperrors.ErrNotFound):
				s.LogError(ctx, err, "Failed to check phone uniqueness")
				return nil, err
			}
			user.Phone = phone
			user.LoginEmail = utils.LoginEmail(phone)
		}
	}

	return s.saveUser(ctx, user, adminID)
}

func (s *userService) ChangeRole(ctx context.Context, userID string, role domain.UserRole, adminID string) (*domain.User, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	if userID == adminID && role != domain.RoleAdmin {
		return nil, fmt.Errorf("admins cannot remove their own admin role: %w", apperrors.ErrForbidden)
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role, adminID, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update role", slog.String("user_id", userID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "User role changed", slog.String("user_id", userID), slog.String("role", string(role)))
	return s.GetUserByID(ctx, userID)
}

func (s *userService) DeleteUser(ctx context.Context, userID string, adminID string) error {
	if userID == adminID {
		return fmt.Errorf("admins cannot delete themselves: %w", apperrors.ErrForbidden)
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, s.now(), adminID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		}
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

func (s *userService) saveUser(ctx context.Context, user *domain.User, updatedBy string) (*domain.User, error) {
	user.LastUpdatedAt = s.now()
	user.LastUpdatedBy = updatedBy
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update user", slog.String("user_id", user.UserID))
		}
		return nil, err
	}
	return user, nil
}

// optionalString maps blank input to nil so the column is cleared.
func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
