package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	"github.com/SscSPs/car_market_app/internal/core/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/metrics"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSettingRepository
	book     *pricing.RateBook
	metrics  *metrics.Metrics
	service  *services.SettingsService
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettingRepository)
	suite.book = pricing.NewRateBook(pricing.DefaultRate)
	suite.metrics = metrics.New(prometheus.NewRegistry())
	suite.service = services.NewSettingsService(suite.mockRepo, suite.book, suite.metrics)
}

func (suite *SettingsServiceTestSuite) TestNew_PublishesInitialRate() {
	suite.Equal(153000.0, testutil.ToFloat64(suite.metrics.ExchangeRate))
}

func (suite *SettingsServiceTestSuite) TestGetSettings() {
	ctx := context.Background()
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	suite.mockRepo.On("ListSettings", ctx).Return([]domain.Setting{
		{Key: domain.SettingExchangeRate, Value: "150000", UpdatedAt: older},
		{Key: domain.SettingAdminPhone, Value: "07700000000", UpdatedAt: newer},
	}, nil).Once()

	resp, err := suite.service.GetSettings(ctx)

	suite.Require().NoError(err)
	suite.True(resp.ExchangeRate.Equal(decimal.NewFromInt(150000)))
	suite.Equal("07700000000", resp.AdminPhone)
	suite.Require().NotNil(resp.UpdatedAt)
	suite.True(resp.UpdatedAt.Equal(newer))
}

func (suite *SettingsServiceTestSuite) TestGetSettings_EmptyUsesCurrentRate() {
	ctx := context.Background()
	suite.mockRepo.On("ListSettings", ctx).Return([]domain.Setting{}, nil).Once()

	resp, err := suite.service.GetSettings(ctx)

	suite.Require().NoError(err)
	suite.True(resp.ExchangeRate.Equal(pricing.DefaultRate))
	suite.Nil(resp.UpdatedAt)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_AppliesRateImmediately() {
	ctx := context.Background()
	suite.mockRepo.On("UpsertSettings", ctx, mock.MatchedBy(func(s []domain.Setting) bool {
		return len(s) == 2 &&
			s[0].Key == domain.SettingExchangeRate && s[0].Value == "145000" &&
			s[1].Key == domain.SettingAdminPhone && s[1].Value == "07701234567" &&
			s[0].UpdatedBy != nil && *s[0].UpdatedBy == "admin-1"
	})).Return(nil).Once()

	resp, err := suite.service.UpdateSettings(ctx, dto.UpdateSettingsRequest{ExchangeRate: "145000", AdminPhone: " 07701234567 "}, "admin-1")

	suite.Require().NoError(err)
	suite.Equal("07701234567", resp.AdminPhone)
	suite.True(suite.service.CurrentRate().Equal(decimal.NewFromInt(145000)))
	suite.Equal(145000.0, testutil.ToFloat64(suite.metrics.ExchangeRate))

	display := suite.service.FormatPrice(decimal.NewFromInt(100), pricing.USD)
	suite.Equal("$100", display.Primary)
	suite.True(display.SecondaryAmount.Equal(decimal.NewFromInt(145000)))
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_InvalidRate() {
	for _, value := range []string{"0", "-5", "abc"} {
		_, err := suite.service.UpdateSettings(context.Background(), dto.UpdateSettingsRequest{ExchangeRate: value}, "admin-1")
		suite.ErrorIs(err, apperrors.ErrValidation, value)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertSettings", mock.Anything, mock.Anything)
	suite.True(suite.service.CurrentRate().Equal(pricing.DefaultRate))
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_RepoErrorKeepsRate() {
	ctx := context.Background()
	suite.mockRepo.On("UpsertSettings", ctx, mock.Anything).Return(assert.AnError).Once()

	_, err := suite.service.UpdateSettings(ctx, dto.UpdateSettingsRequest{ExchangeRate: "140000"}, "admin-1")

	suite.ErrorIs(err, assert.AnError)
	suite.True(suite.service.CurrentRate().Equal(pricing.DefaultRate))
}

// --- RefreshRate Tests ---
func (suite *SettingsServiceTestSuite) TestRefreshRate_LoadsStoredValue() {
	ctx := context.Background()
	suite.mockRepo.On("FindSetting", ctx, domain.SettingExchangeRate).Return(&domain.Setting{Key: domain.SettingExchangeRate, Value: "148500"}, nil).Once()

	suite.Require().NoError(suite.service.RefreshRate(ctx))
	suite.True(suite.book.Current().Equal(decimal.NewFromInt(148500)))
}

func (suite *SettingsServiceTestSuite) TestRefreshRate_MissingKeepsCurrent() {
	ctx := context.Background()
	suite.book.Set(decimal.NewFromInt(150000))
	suite.mockRepo.On("FindSetting", ctx, domain.SettingExchangeRate).Return(nil, apperrors.ErrNotFound).Once()

	suite.Require().NoError(suite.service.RefreshRate(ctx))
	suite.True(suite.book.Current().Equal(decimal.NewFromInt(150000)))
}

func (suite *SettingsServiceTestSuite) TestRefreshRate_InvalidKeepsCurrent() {
	ctx := context.Background()
	suite.mockRepo.On("FindSetting", ctx, domain.SettingExchangeRate).Return(&domain.Setting{Value: "-1"}, nil).Once()

	suite.Require().NoError(suite.service.RefreshRate(ctx))
	suite.True(suite.book.Current().Equal(pricing.DefaultRate))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.RateRefreshFailures))
}

func (suite *SettingsServiceTestSuite) TestRefreshRate_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("FindSetting", ctx, domain.SettingExchangeRate).Return(nil, assert.AnError).Once()

	err := suite.service.RefreshRate(ctx)

	suite.ErrorIs(err, assert.AnError)
	suite.True(suite.book.Current().Equal(pricing.DefaultRate))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.RateRefreshFailures))
}

func (suite *SettingsServiceTestSuite) TestRunRefresher_StopsOnCancel() {
	ctx, cancel := context.WithCancel(context.Background())
	suite.mockRepo.On("FindSetting", mock.Anything, domain.SettingExchangeRate).Return(&domain.Setting{Value: "151000"}, nil)

	done := make(chan struct{})
	go func() {
		suite.service.RunRefresher(ctx, 10*time.Millisecond)
		close(done)
	}()

	suite.Eventually(func() bool {
		return suite.service.CurrentRate().Equal(decimal.NewFromInt(151000))
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		suite.Fail("refresher did not stop")
	}
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
