package dto

import (
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
)

// UserResponse is the public representation of a member profile.
type UserResponse struct {
	UserID      string          `json:"userID"`
	Phone       string          `json:"phone"`
	FullName    string          `json:"fullName"`
	Role        domain.UserRole `json:"role"`
	AvatarURL   *string         `json:"avatarURL,omitempty"`
	Address     *string         `json:"address,omitempty"`
	DateOfBirth *string         `json:"dateOfBirth,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		UserID:    user.UserID,
		Phone:     user.Phone,
		FullName:  user.FullName,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
	}
	if user.DateOfBirth != nil {
		dob := user.DateOfBirth.Format(time.DateOnly)
		resp.DateOfBirth = &dob
	}
	return resp
}

// UpdateProfileRequest defines the data a member may change on their own profile.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateProfileRequest struct {
	FullName    *string `json:"fullName" binding:"omitempty,min=2,max=100"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	DateOfBirth *string `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
}

// ChangePasswordRequest is the body of PUT /me/password.
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// AdminUpdateUserRequest is the body of PUT /admin/users/:id.
type AdminUpdateUserRequest struct {
	FullName *string `json:"fullName" binding:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,iqphone"`
}

// ChangeRoleRequest is the body of PATCH /admin/users/:id/role.
type ChangeRoleRequest struct {
	Role domain.UserRole `json:"role" binding:"required,oneof=user admin"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Role   string `form:"role,default=all" binding:"omitempty,oneof=all user admin"`
	Query  string `form:"q"`
	Sort   string `form:"sort,default=newest" binding:"omitempty,oneof=newest oldest"`
	Limit  int    `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
