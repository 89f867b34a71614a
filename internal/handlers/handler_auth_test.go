package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (s *HandlersTestSuite) TestRegister_Success() {
	req := dto.RegisterRequest{Phone: "0770 123 4567", Password: "secret1", FullName: "Ali Hassan"}
	s.auth.On("Register", mock.Anything, req).
		Return(&domain.User{UserID: "new-user", Phone: "07701234567", FullName: "Ali Hassan", Role: domain.RoleUser}, nil).Once()

	w := s.requestJSON(http.MethodPost, "/api/v1/auth/register", req, "")

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.UserResponse
	s.decode(w, &resp)
	s.Equal("new-user", resp.UserID)
	s.Equal("07701234567", resp.Phone)
}

func (s *HandlersTestSuite) TestRegister_InvalidPhoneRejectedByBinding() {
	w := s.requestJSON(http.MethodPost, "/api/v1/auth/register",
		dto.RegisterRequest{Phone: "0123", Password: "secret1", FullName: "Ali"}, "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.auth.AssertNotCalled(s.T(), "Register", mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestRegister_DuplicatePhone() {
	req := dto.RegisterRequest{Phone: "07701234567", Password: "secret1", FullName: "Ali"}
	s.auth.On("Register", mock.Anything, req).Return(nil, apperrors.ErrDuplicate).Once()

	w := s.requestJSON(http.MethodPost, "/api/v1/auth/register", req, "")
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestLogin_Success() {
	req := dto.LoginRequest{Phone: "07701234567", Password: "secret1"}
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	s.auth.On("Login", mock.Anything, req).
		Return("signed-token", expires, &domain.User{UserID: testUserID, Role: domain.RoleUser}, nil).Once()

	w := s.requestJSON(http.MethodPost, "/api/v1/auth/login", req, "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	s.decode(w, &resp)
	s.Equal("signed-token", resp.Token)
	s.True(expires.Equal(resp.ExpiresAt))
	s.Equal(testUserID, resp.User.UserID)
}

func (s *HandlersTestSuite) TestLogin_WrongPassword() {
	req := dto.LoginRequest{Phone: "07701234567", Password: "nope"}
	s.auth.On("Login", mock.Anything, req).Return("", time.Time{}, nil, apperrors.ErrUnauthorized).Once()

	w := s.requestJSON(http.MethodPost, "/api/v1/auth/login", req, "")

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(w.Body.String(), "Invalid phone or password")
}

func (s *HandlersTestSuite) TestLogin_MissingFields() {
	w := s.requestJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{"phone": "07701234567"}, "")
	s.Equal(http.StatusBadRequest, w.Code)
}
