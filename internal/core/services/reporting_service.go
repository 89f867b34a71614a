package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// MaxGrowthDays is the longest growth window that can be requested.
const MaxGrowthDays = 365

// DefaultPremiumPriceIQD is what one approved premium request earns.
const DefaultPremiumPriceIQD = 5000

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	premiumPrice  decimal.Decimal
	location      *time.Location
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithPremiumPrice sets the revenue earned per approved premium request, in IQD.
func WithPremiumPrice(price decimal.Decimal) ReportingServiceOption {
	return func(s *reportingService) {
		if price.IsPositive() {
			s.premiumPrice = price
		}
	}
}

// WithReportingLocation sets the timezone calendar days are bucketed in.
func WithReportingLocation(loc *time.Location) ReportingServiceOption {
	return func(s *reportingService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithReportingClock overrides the current time, for tests.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.Now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		premiumPrice:  decimal.NewFromInt(DefaultPremiumPriceIQD),
		location:      time.UTC,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) Dashboard(ctx context.Context) (*domain.DashboardCounts, error) {
	counts, err := s.reportingRepo.GetDashboardCounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to get dashboard counts")
		return nil, fmt.Errorf("failed to get dashboard counts: %w", err)
	}
	return counts, nil
}

func (s *reportingService) FinancialReport(ctx context.Context) (*domain.FinancialReport, error) {
	counts, err := s.reportingRepo.GetDashboardCounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to get listing counts for financial report")
		return nil, fmt.Errorf("failed to get listing counts: %w", err)
	}

	approved, err := s.reportingRepo.CountApprovedRequests(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count approved requests")
		return nil, fmt.Errorf("failed to count approved requests: %w", err)
	}

	governorates, err := s.reportingRepo.GetGovernorateCounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to get governorate counts")
		return nil, fmt.Errorf("failed to get governorate counts: %w", err)
	}

	report := &domain.FinancialReport{
		PremiumListings:  counts.PremiumListings,
		RegularListings:  counts.Listings - counts.PremiumListings,
		ApprovedRequests: approved,
		TotalRevenue:     s.premiumPrice.Mul(decimal.NewFromInt(approved)),
		Governorates:     governorates,
	}
	s.LogDebug(ctx, "Financial report generated",
		slog.Int64("approved_requests", approved),
		slog.String("revenue", report.TotalRevenue.String()))
	return report, nil
}

func (s *reportingService) Growth(ctx context.Context, days int) ([]domain.DailyPoint, error) {
	if days < 1 || days > MaxGrowthDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", apperrors.ErrValidation, MaxGrowthDays)
	}

	start := domain.GrowthWindowStart(s.now(), days, s.location)
	activity, err := s.reportingRepo.GetGrowthActivity(ctx, start)
	if err != nil {
		s.LogError(ctx, err, "Failed to load growth activity", slog.Int("days", days))
		return nil, fmt.Errorf("failed to load growth activity: %w", err)
	}

	return domain.BuildGrowthSeries(*activity, start, days, s.location, s.premiumPrice), nil
}
