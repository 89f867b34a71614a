package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (string, time.Time, *domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(2) != nil {
		user = args.Get(2).(*domain.User)
	}
	return args.String(0), args.Get(1).(time.Time), user, args.Error(3)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, userID string, file dto.FileUpload) (*domain.User, error) {
	args := m.Called(ctx, userID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AdminUpdateUser(ctx context.Context, userID string, req dto.AdminUpdateUserRequest, adminID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ChangeRole(ctx context.Context, userID string, role domain.UserRole, adminID string) (*domain.User, error) {
	args := m.Called(ctx, userID, role, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string, adminID string) error {
	return m.Called(ctx, userID, adminID).Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock ListingService ---
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) SearchListings(ctx context.Context, params dto.SearchListingsParams) ([]domain.Listing, *string, error) {
	args := m.Called(ctx, params)
	var listings []domain.Listing
	if args.Get(0) != nil {
		listings = args.Get(0).([]domain.Listing)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return listings, next, args.Error(2)
}

func (m *MockListingService) ListUserListings(ctx context.Context, userID string) ([]domain.Listing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockListingService) CreateListing(ctx context.Context, userID string, req dto.CreateListingRequest, images []dto.FileUpload) (*domain.Listing, error) {
	args := m.Called(ctx, userID, req, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) UpdateListing(ctx context.Context, listingID string, req dto.UpdateListingRequest, userID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) AddImages(ctx context.Context, listingID string, images []dto.FileUpload, userID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID, images, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) DeleteListing(ctx context.Context, listingID string, userID string) error {
	return m.Called(ctx, listingID, userID).Error(0)
}

func (m *MockListingService) ListForAdmin(ctx context.Context, params dto.AdminListListingsParams) ([]domain.Listing, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockListingService) SetPremium(ctx context.Context, listingID string, premium bool, adminID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID, premium, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

var _ portssvc.ListingSvcFacade = (*MockListingService)(nil)

// --- Mock PremiumService ---
type MockPremiumService struct {
	mock.Mock
}

func (m *MockPremiumService) SubmitRequest(ctx context.Context, listingID string, receipt dto.FileUpload, userID string) (*domain.PremiumRequest, error) {
	args := m.Called(ctx, listingID, receipt, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PremiumRequest), args.Error(1)
}

func (m *MockPremiumService) ListPendingForUser(ctx context.Context, userID string) ([]domain.PremiumRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PremiumRequest), args.Error(1)
}

func (m *MockPremiumService) ListRequests(ctx context.Context, history bool) ([]domain.PremiumRequest, error) {
	args := m.Called(ctx, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PremiumRequest), args.Error(1)
}

func (m *MockPremiumService) Approve(ctx context.Context, requestID string, adminID string) (*domain.PremiumRequest, error) {
	args := m.Called(ctx, requestID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PremiumRequest), args.Error(1)
}

func (m *MockPremiumService) Reject(ctx context.Context, requestID string, adminID string) (*domain.PremiumRequest, error) {
	args := m.Called(ctx, requestID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PremiumRequest), args.Error(1)
}

var _ portssvc.PremiumSvc = (*MockPremiumService)(nil)

// --- Mock SettingsService ---
// Price formatting uses the real formatter at the default rate.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SettingsResponse), args.Error(1)
}

func (m *MockSettingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, adminID string) (*dto.SettingsResponse, error) {
	args := m.Called(ctx, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SettingsResponse), args.Error(1)
}

func (m *MockSettingsService) RefreshRate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSettingsService) CurrentRate() pricing.Rate {
	return pricing.DefaultRate
}

func (m *MockSettingsService) FormatPrice(price decimal.Decimal, code pricing.Code) pricing.Display {
	return pricing.FormatPrice(price, code, pricing.DefaultRate)
}

var _ portssvc.SettingsSvc = (*MockSettingsService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Dashboard(ctx context.Context) (*domain.DashboardCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardCounts), args.Error(1)
}

func (m *MockReportingService) FinancialReport(ctx context.Context) (*domain.FinancialReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialReport), args.Error(1)
}

func (m *MockReportingService) Growth(ctx context.Context, days int) ([]domain.DailyPoint, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyPoint), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock VisitorService ---
type MockVisitorService struct {
	mock.Mock
}

func (m *MockVisitorService) TrackPageView(ctx context.Context, req dto.TrackPageViewRequest, userID string) error {
	return m.Called(ctx, req, userID).Error(0)
}

func (m *MockVisitorService) Stats(ctx context.Context) (*domain.VisitorStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisitorStats), args.Error(1)
}

var _ portssvc.VisitorSvc = (*MockVisitorService)(nil)
