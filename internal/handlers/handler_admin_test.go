package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (s *HandlersTestSuite) TestSubmitPremiumRequest() {
	body, contentType := s.multipartBody(nil, formFile{field: "receipt", name: "zaincash.jpg", data: []byte("receipt")})
	s.premium.On("SubmitRequest", mock.Anything, "l1", dto.FileUpload{Name: "zaincash.jpg", Data: []byte("receipt")}, testUserID).
		Return(&domain.PremiumRequest{RequestID: "r1", ListingID: "l1", UserID: testUserID, Status: domain.PremiumPending}, nil).Once()

	w := s.request(http.MethodPost, "/api/v1/listings/l1/premium-requests", body, contentType, testUserID)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.PremiumRequestResponse
	s.decode(w, &resp)
	s.Equal("r1", resp.RequestID)
	s.Equal(domain.PremiumPending, resp.Status)
	s.Nil(resp.ListingPrice)
}

func (s *HandlersTestSuite) TestSubmitPremiumRequest_MissingReceipt() {
	body, contentType := s.multipartBody(map[string]string{"note": "x"})

	w := s.request(http.MethodPost, "/api/v1/listings/l1/premium-requests", body, contentType, testUserID)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestSubmitPremiumRequest_AlreadyPending() {
	body, contentType := s.multipartBody(nil, formFile{field: "receipt", name: "r.pdf", data: []byte("%PDF")})
	s.premium.On("SubmitRequest", mock.Anything, "l1", mock.Anything, testUserID).Return(nil, apperrors.ErrConflict).Once()

	w := s.request(http.MethodPost, "/api/v1/listings/l1/premium-requests", body, contentType, testUserID)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestListPremiumRequests_History() {
	s.premium.On("ListRequests", mock.Anything, true).Return([]domain.PremiumRequest{{
		RequestID:       "r1",
		Status:          domain.PremiumApproved,
		ListingTitle:    "Hyundai Elantra",
		ListingPrice:    decimal.NewFromInt(15300000),
		ListingCurrency: pricing.IQD,
		RequesterName:   "Sara",
	}}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/admin/premium-requests?history=true", nil, "", testAdminID)

	s.Equal(http.StatusOK, w.Code)
	var resp []dto.PremiumRequestResponse
	s.decode(w, &resp)
	s.Require().Len(resp, 1)
	s.Require().NotNil(resp[0].ListingPrice)
	s.Equal("$10,000", resp[0].ListingPrice.Secondary)
	s.Equal("Sara", resp[0].RequesterName)
}

func (s *HandlersTestSuite) TestApprovePremiumRequest() {
	now := time.Now().UTC()
	s.premium.On("Approve", mock.Anything, "r1", testAdminID).
		Return(&domain.PremiumRequest{RequestID: "r1", Status: domain.PremiumApproved, ReviewedAt: &now}, nil).Once()

	w := s.request(http.MethodPost, "/api/v1/admin/premium-requests/r1/approve", nil, "", testAdminID)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestRejectPremiumRequest_AlreadyReviewed() {
	s.premium.On("Reject", mock.Anything, "r1", testAdminID).Return(nil, apperrors.ErrConflict).Once()

	w := s.request(http.MethodPost, "/api/v1/admin/premium-requests/r1/reject", nil, "", testAdminID)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestDashboard() {
	s.reporting.On("Dashboard", mock.Anything).
		Return(&domain.DashboardCounts{Listings: 12, PremiumListings: 3, Users: 7, PendingRequests: 2}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/admin/dashboard", nil, "", testAdminID)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.DashboardResponse
	s.decode(w, &resp)
	s.Equal(dto.DashboardResponse{Listings: 12, PremiumListings: 3, Users: 7, PendingRequests: 2}, resp)
}

func (s *HandlersTestSuite) TestFinancialReport_Error() {
	s.reporting.On("FinancialReport", mock.Anything).Return(nil, assertErr).Once()

	w := s.request(http.MethodGet, "/api/v1/admin/reports", nil, "", testAdminID)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), assertErr.Error())
}

func (s *HandlersTestSuite) TestGrowthReport() {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	s.reporting.On("Growth", mock.Anything, 7).Return([]domain.DailyPoint{
		{Date: day, Revenue: decimal.NewFromInt(5000), NewListings: 2, NewUsers: 1},
	}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/admin/reports/growth?days=7", nil, "", testAdminID)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.GrowthReportResponse
	s.decode(w, &resp)
	s.Require().Len(resp.Points, 1)
	s.Equal("2024-03-10", resp.Points[0].Date)
	s.True(decimal.NewFromInt(5000).Equal(resp.Points[0].Revenue))
}

func (s *HandlersTestSuite) TestGrowthReport_DefaultsToThirtyDays() {
	s.reporting.On("Growth", mock.Anything, 30).Return([]domain.DailyPoint{}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/admin/reports/growth", nil, "", testAdminID)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestGrowthReport_OutOfRange() {
	w := s.request(http.MethodGet, "/api/v1/admin/reports/growth?days=400", nil, "", testAdminID)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestVisitorStats() {
	s.visitors.On("Stats", mock.Anything).
		Return(&domain.VisitorStats{CurrentOnline: 4, WeeklyVisits: 40, MonthlyVisits: 400}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/admin/reports/visitors", nil, "", testAdminID)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"currentOnline":4,"weeklyVisits":40,"monthlyVisits":400}`, w.Body.String())
}

func (s *HandlersTestSuite) TestAdminListUsers() {
	s.users.On("ListUsers", mock.Anything, dto.ListUsersParams{Role: "admin", Query: "077", Sort: "newest", Limit: 50}).
		Return([]domain.User{{UserID: "u2", Role: domain.RoleAdmin}}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/admin/users?role=admin&q=077", nil, "", testAdminID)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListUsersResponse
	s.decode(w, &resp)
	s.Require().Len(resp.Users, 1)
	s.Equal("u2", resp.Users[0].UserID)
}

func (s *HandlersTestSuite) TestChangeRole_SelfDemotionForbidden() {
	s.users.On("ChangeRole", mock.Anything, testAdminID, domain.RoleUser, testAdminID).Return(nil, apperrors.ErrForbidden).Once()

	w := s.requestJSON(http.MethodPatch, "/api/v1/admin/users/"+testAdminID+"/role", map[string]string{"role": "user"}, testAdminID)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlersTestSuite) TestChangeRole_UnknownRole() {
	w := s.requestJSON(http.MethodPatch, "/api/v1/admin/users/u2/role", map[string]string{"role": "owner"}, testAdminID)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestAdminUpdateUser_PhoneTaken() {
	phone := "07801234567"
	s.users.On("AdminUpdateUser", mock.Anything, "u2", dto.AdminUpdateUserRequest{Phone: &phone}, testAdminID).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := s.requestJSON(http.MethodPut, "/api/v1/admin/users/u2", map[string]string{"phone": phone}, testAdminID)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestDeleteUser() {
	s.users.On("DeleteUser", mock.Anything, "u2", testAdminID).Return(nil).Once()

	w := s.request(http.MethodDelete, "/api/v1/admin/users/u2", nil, "", testAdminID)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlersTestSuite) TestAdminDeleteListing() {
	s.listings.On("DeleteListing", mock.Anything, "l1", testAdminID).Return(nil).Once()

	w := s.request(http.MethodDelete, "/api/v1/admin/listings/l1", nil, "", testAdminID)
	s.Equal(http.StatusNoContent, w.Code)
}
