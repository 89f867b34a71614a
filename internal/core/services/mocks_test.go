package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	args := m.Called(ctx, filter)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, passwordHash, updatedBy, now)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID string, role domain.UserRole, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, role, updatedBy, now)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock ListingRepository ---
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) FindListingByID(ctx context.Context, listingID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	var listing *domain.Listing
	if args.Get(0) != nil {
		listing = args.Get(0).(*domain.Listing)
	}
	return listing, args.Error(1)
}

func (m *MockListingRepository) SearchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	args := m.Called(ctx, filter)
	var listings []domain.Listing
	if args.Get(0) != nil {
		listings = args.Get(0).([]domain.Listing)
	}
	return listings, args.Error(1)
}

func (m *MockListingRepository) ListListingsForAdmin(ctx context.Context, filter domain.AdminListingFilter) ([]domain.Listing, error) {
	args := m.Called(ctx, filter)
	var listings []domain.Listing
	if args.Get(0) != nil {
		listings = args.Get(0).([]domain.Listing)
	}
	return listings, args.Error(1)
}

func (m *MockListingRepository) SaveListing(ctx context.Context, listing domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) UpdateListing(ctx context.Context, listing domain.Listing, previousImages []string) error {
	args := m.Called(ctx, listing, previousImages)
	return args.Error(0)
}

func (m *MockListingRepository) AppendImages(ctx context.Context, listingID string, urls []string, maxImages int, updatedBy string, now time.Time) ([]string, error) {
	args := m.Called(ctx, listingID, urls, maxImages, updatedBy, now)
	var images []string
	if args.Get(0) != nil {
		images = args.Get(0).([]string)
	}
	return images, args.Error(1)
}

func (m *MockListingRepository) SetPremium(ctx context.Context, listingID string, premium bool, updatedBy string, now time.Time) error {
	args := m.Called(ctx, listingID, premium, updatedBy, now)
	return args.Error(0)
}

func (m *MockListingRepository) DeleteListing(ctx context.Context, listingID string) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

// --- Mock PremiumRequestRepository ---
type MockPremiumRequestRepository struct {
	mock.Mock
}

func (m *MockPremiumRequestRepository) FindPremiumRequestByID(ctx context.Context, requestID string) (*domain.PremiumRequest, error) {
	args := m.Called(ctx, requestID)
	var req *domain.PremiumRequest
	if args.Get(0) != nil {
		req = args.Get(0).(*domain.PremiumRequest)
	}
	return req, args.Error(1)
}

func (m *MockPremiumRequestRepository) ListPremiumRequests(ctx context.Context, reviewed bool) ([]domain.PremiumRequest, error) {
	args := m.Called(ctx, reviewed)
	var reqs []domain.PremiumRequest
	if args.Get(0) != nil {
		reqs = args.Get(0).([]domain.PremiumRequest)
	}
	return reqs, args.Error(1)
}

func (m *MockPremiumRequestRepository) ListPendingByUser(ctx context.Context, userID string) ([]domain.PremiumRequest, error) {
	args := m.Called(ctx, userID)
	var reqs []domain.PremiumRequest
	if args.Get(0) != nil {
		reqs = args.Get(0).([]domain.PremiumRequest)
	}
	return reqs, args.Error(1)
}

func (m *MockPremiumRequestRepository) HasPendingRequest(ctx context.Context, listingID string) (bool, error) {
	args := m.Called(ctx, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPremiumRequestRepository) SavePremiumRequest(ctx context.Context, req domain.PremiumRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockPremiumRequestRepository) ReviewPremiumRequest(ctx context.Context, requestID string, status domain.PremiumRequestStatus, reviewerID string, now time.Time) (*domain.PremiumRequest, error) {
	args := m.Called(ctx, requestID, status, reviewerID, now)
	var req *domain.PremiumRequest
	if args.Get(0) != nil {
		req = args.Get(0).(*domain.PremiumRequest)
	}
	return req, args.Error(1)
}

// --- Mock SettingRepository ---
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) FindSetting(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	var setting *domain.Setting
	if args.Get(0) != nil {
		setting = args.Get(0).(*domain.Setting)
	}
	return setting, args.Error(1)
}

func (m *MockSettingRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	var settings []domain.Setting
	if args.Get(0) != nil {
		settings = args.Get(0).([]domain.Setting)
	}
	return settings, args.Error(1)
}

func (m *MockSettingRepository) UpsertSettings(ctx context.Context, settings []domain.Setting) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Mock PageViewRepository ---
type MockPageViewRepository struct {
	mock.Mock
}

func (m *MockPageViewRepository) SavePageView(ctx context.Context, view domain.PageView) error {
	args := m.Called(ctx, view)
	return args.Error(0)
}

func (m *MockPageViewRepository) CountDistinctVisitorsSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock PresenceTracker ---
type MockPresenceTracker struct {
	mock.Mock
}

func (m *MockPresenceTracker) Touch(ctx context.Context, visitorID string, at time.Time) error {
	args := m.Called(ctx, visitorID, at)
	return args.Error(0)
}

func (m *MockPresenceTracker) CountOnline(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetDashboardCounts(ctx context.Context) (*domain.DashboardCounts, error) {
	args := m.Called(ctx)
	var counts *domain.DashboardCounts
	if args.Get(0) != nil {
		counts = args.Get(0).(*domain.DashboardCounts)
	}
	return counts, args.Error(1)
}

func (m *MockReportingRepository) CountApprovedRequests(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) GetGovernorateCounts(ctx context.Context) ([]domain.GovernorateCount, error) {
	args := m.Called(ctx)
	var counts []domain.GovernorateCount
	if args.Get(0) != nil {
		counts = args.Get(0).([]domain.GovernorateCount)
	}
	return counts, args.Error(1)
}

func (m *MockReportingRepository) GetGrowthActivity(ctx context.Context, since time.Time) (*domain.GrowthActivity, error) {
	args := m.Called(ctx, since)
	var activity *domain.GrowthActivity
	if args.Get(0) != nil {
		activity = args.Get(0).(*domain.GrowthActivity)
	}
	return activity, args.Error(1)
}

// --- Mock MediaSvc ---
type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) UploadListingImages(ctx context.Context, userID string, files []dto.FileUpload) []string {
	args := m.Called(ctx, userID, files)
	var urls []string
	if args.Get(0) != nil {
		urls = args.Get(0).([]string)
	}
	return urls
}

func (m *MockMediaService) UploadReceipt(ctx context.Context, userID string, file dto.FileUpload) (string, error) {
	args := m.Called(ctx, userID, file)
	return args.String(0), args.Error(1)
}

func (m *MockMediaService) UploadAvatar(ctx context.Context, userID string, file dto.FileUpload) (string, error) {
	args := m.Called(ctx, userID, file)
	return args.String(0), args.Error(1)
}

func (m *MockMediaService) DeleteByURL(ctx context.Context, urls ...string) {
	m.Called(ctx, urls)
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]domain.EventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}
