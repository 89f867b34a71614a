package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/metrics"
)

// Visitor statistics windows.
const (
	OnlineWindow  = 5 * time.Minute
	WeeklyWindow  = 7 * 24 * time.Hour
	MonthlyWindow = 30 * 24 * time.Hour
)

type visitorService struct {
	BaseService
	repo     portsrepo.PageViewRepository
	presence portsrepo.PresenceTracker
	events   portssvc.EventPublisher
	metrics  *metrics.Metrics
}

// NewVisitorService creates the visitor tracking service. presence, events and m are optional;
// without a presence tracker "online" is counted from stored page views.
func NewVisitorService(repo portsrepo.PageViewRepository, presence portsrepo.PresenceTracker, events portssvc.EventPublisher, m *metrics.Metrics) portssvc.VisitorSvc {
	return &visitorService{repo: repo, presence: presence, events: events, metrics: m}
}

var _ portssvc.VisitorSvc = (*visitorService)(nil)

func (s *visitorService) TrackPageView(ctx context.Context, req dto.TrackPageViewRequest, userID string) error {
	path := strings.TrimSpace(req.Path)
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: path must start with /", apperrors.ErrValidation)
	}
	visitorID := userID
	if visitorID == "" {
		visitorID = strings.TrimSpace(req.VisitorID)
	}
	if visitorID == "" {
		return fmt.Errorf("%w: visitor id is required", apperrors.ErrValidation)
	}

	view := domain.PageView{Path: path, VisitorID: visitorID, CreatedAt: s.now()}
	if err := s.repo.SavePageView(ctx, view); err != nil {
		s.LogError(ctx, err, "Failed to save page view", slog.String("path", path))
		return fmt.Errorf("failed to save page view: %w", err)
	}

	if s.presence != nil {
		if err := s.presence.Touch(ctx, visitorID, view.CreatedAt); err != nil {
			s.LogWarn(ctx, "Failed to update presence", slog.String("error", err.Error()))
		}
	}
	s.metrics.PageViewed()

	if s.events != nil {
		evt := domain.Event{Type: domain.EventPageViewed, Path: path, VisitorID: visitorID, OccurredAt: view.CreatedAt}
		if err := s.events.Publish(ctx, evt); err != nil {
			s.LogWarn(ctx, "Failed to publish page view", slog.String("error", err.Error()))
		}
	}
	return nil
}

func (s *visitorService) Stats(ctx context.Context) (*domain.VisitorStats, error) {
	now := s.now()

	online, err := s.countOnline(ctx, now.Add(-OnlineWindow))
	if err != nil {
		return nil, err
	}
	weekly, err := s.repo.CountDistinctVisitorsSince(ctx, now.Add(-WeeklyWindow))
	if err != nil {
		s.LogError(ctx, err, "Failed to count weekly visitors")
		return nil, fmt.Errorf("failed to count weekly visitors: %w", err)
	}
	monthly, err := s.repo.CountDistinctVisitorsSince(ctx, now.Add(-MonthlyWindow))
	if err != nil {
		s.LogError(ctx, err, "Failed to count monthly visitors")
		return nil, fmt.Errorf("failed to count monthly visitors: %w", err)
	}

	return &domain.VisitorStats{CurrentOnline: online, WeeklyVisits: weekly, MonthlyVisits: monthly}, nil
}

func (s *visitorService) countOnline(ctx context.Context, since time.Time) (int64, error) {
	if s.presence != nil {
		online, err := s.presence.CountOnline(ctx, since)
		if err == nil {
			return online, nil
		}
		s.LogWarn(ctx, "Presence tracker unavailable, counting from page views", slog.String("error", err.Error()))
	}
	online, err := s.repo.CountDistinctVisitorsSince(ctx, since)
	if err != nil {
		s.LogError(ctx, err, "Failed to count online visitors")
		return 0, fmt.Errorf("failed to count online visitors: %w", err)
	}
	return online, nil
}
