package handlers_test

import (
	"errors"
	"net/http"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var assertErr = errors.New("database unavailable")

func (s *HandlersTestSuite) TestGetMe() {
	s.users.On("GetUserByID", mock.Anything, testUserID).
		Return(&domain.User{UserID: testUserID, Phone: "07701234567", FullName: "Ali", Role: domain.RoleUser}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/me", nil, "", testUserID)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	s.decode(w, &resp)
	s.Equal("Ali", resp.FullName)
	s.NotContains(w.Body.String(), "password")
}

func (s *HandlersTestSuite) TestUpdateMe_InvalidDate() {
	w := s.requestJSON(http.MethodPut, "/api/v1/me", map[string]string{"dateOfBirth": "10/03/1990"}, testUserID)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestUpdateMe_ServiceValidation() {
	dob := "2999-01-01"
	s.users.On("UpdateProfile", mock.Anything, testUserID, dto.UpdateProfileRequest{DateOfBirth: &dob}).
		Return(nil, apperrors.ErrValidation).Once()

	w := s.requestJSON(http.MethodPut, "/api/v1/me", map[string]string{"dateOfBirth": dob}, testUserID)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestChangePassword() {
	s.users.On("ChangePassword", mock.Anything, testUserID, dto.ChangePasswordRequest{Password: "new-secret"}).Return(nil).Once()

	w := s.requestJSON(http.MethodPut, "/api/v1/me/password", map[string]string{"password": "new-secret"}, testUserID)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlersTestSuite) TestUploadAvatar() {
	body, contentType := s.multipartBody(nil, formFile{field: "avatar", name: "me.png", data: []byte("png")})
	avatar := "/media/avatars/user-1/x.jpg"
	s.users.On("UpdateAvatar", mock.Anything, testUserID, dto.FileUpload{Name: "me.png", Data: []byte("png")}).
		Return(&domain.User{UserID: testUserID, AvatarURL: &avatar}, nil).Once()

	w := s.request(http.MethodPost, "/api/v1/me/avatar", body, contentType, testUserID)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	s.decode(w, &resp)
	s.Require().NotNil(resp.AvatarURL)
	s.Equal(avatar, *resp.AvatarURL)
}

func (s *HandlersTestSuite) TestMyPremiumRequests() {
	s.premium.On("ListPendingForUser", mock.Anything, testUserID).
		Return([]domain.PremiumRequest{{RequestID: "r1", Status: domain.PremiumPending}}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/me/premium-requests", nil, "", testUserID)

	s.Equal(http.StatusOK, w.Code)
	var resp []dto.PremiumRequestResponse
	s.decode(w, &resp)
	s.Len(resp, 1)
}

func (s *HandlersTestSuite) TestPublicSettings() {
	s.settings.On("GetSettings", mock.Anything).
		Return(&dto.SettingsResponse{ExchangeRate: decimal.NewFromInt(150000), AdminPhone: "07700000000"}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/settings/public", nil, "", "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.SettingsResponse
	s.decode(w, &resp)
	s.True(decimal.NewFromInt(150000).Equal(resp.ExchangeRate))
	s.Equal("07700000000", resp.AdminPhone)
}

func (s *HandlersTestSuite) TestUpdateSettings() {
	req := dto.UpdateSettingsRequest{ExchangeRate: "150000", AdminPhone: "07700000000"}
	s.settings.On("UpdateSettings", mock.Anything, req, testAdminID).
		Return(&dto.SettingsResponse{ExchangeRate: decimal.NewFromInt(150000), AdminPhone: "07700000000"}, nil).Once()

	w := s.requestJSON(http.MethodPut, "/api/v1/admin/settings", req, testAdminID)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestUpdateSettings_NonNumericRate() {
	w := s.requestJSON(http.MethodPut, "/api/v1/admin/settings", map[string]string{"exchangeRate": "abc"}, testAdminID)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestFormatPrice() {
	w := s.request(http.MethodGet, "/api/v1/pricing/format?price=100&currency=USD", nil, "", "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.FormatPriceResponse
	s.decode(w, &resp)
	s.Equal("$100", resp.Primary)
	s.Equal(pricing.IQD, resp.SecondaryCode)
	s.True(decimal.NewFromInt(153000).Equal(resp.SecondaryAmount))
	s.True(pricing.DefaultRate.Equal(resp.Rate))
}

func (s *HandlersTestSuite) TestFormatPrice_LargeAmountKeepsDigits() {
	w := s.request(http.MethodGet, "/api/v1/pricing/format?price=9999999999999999&currency=USD", nil, "", "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.FormatPriceResponse
	s.decode(w, &resp)
	s.Equal("$9,999,999,999,999,999", resp.Primary)
	s.NotContains(resp.Secondary, "-")
}

func (s *HandlersTestSuite) TestFormatPrice_TooLarge() {
	w := s.request(http.MethodGet, "/api/v1/pricing/format?price=100000000000000000&currency=USD", nil, "", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestFormatPrice_MissingPrice() {
	w := s.request(http.MethodGet, "/api/v1/pricing/format", nil, "", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestTrackPageView_Anonymous() {
	req := dto.TrackPageViewRequest{Path: "/listings/l1", VisitorID: "v-123"}
	s.visitors.On("TrackPageView", mock.Anything, req, "").Return(nil).Once()

	w := s.requestJSON(http.MethodPost, "/api/v1/page-views", req, "")
	s.Equal(http.StatusAccepted, w.Code)
}

func (s *HandlersTestSuite) TestTrackPageView_SignedIn() {
	req := dto.TrackPageViewRequest{Path: "/"}
	s.visitors.On("TrackPageView", mock.Anything, req, testUserID).Return(nil).Once()

	w := s.requestJSON(http.MethodPost, "/api/v1/page-views", req, testUserID)
	s.Equal(http.StatusAccepted, w.Code)
}

func (s *HandlersTestSuite) TestTrackPageView_InvalidTokenStillTracked() {
	req := dto.TrackPageViewRequest{Path: "/", VisitorID: "v-1"}
	s.visitors.On("TrackPageView", mock.Anything, req, "").Return(nil).Once()

	body := `{"path":"/","visitorId":"v-1"}`
	w := s.requestWithHeader(http.MethodPost, "/api/v1/page-views", body, "Bearer not-a-jwt")
	s.Equal(http.StatusAccepted, w.Code)
}
