package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/metrics"
	"github.com/google/uuid"
)

type premiumService struct {
	BaseService
	requestRepo portsrepo.PremiumRequestRepositoryFacade
	listingRepo portsrepo.ListingReader
	media       portssvc.MediaSvc
	events      portssvc.EventPublisher
	metrics     *metrics.Metrics
}

// NewPremiumService creates the premium request workflow. events and m may be nil.
func NewPremiumService(
	requestRepo portsrepo.PremiumRequestRepositoryFacade,
	listingRepo portsrepo.ListingReader,
	media portssvc.MediaSvc,
	events portssvc.EventPublisher,
	m *metrics.Metrics,
) portssvc.PremiumSvc {
	return &premiumService{
		requestRepo: requestRepo,
		listingRepo: listingRepo,
		media:       media,
		events:      events,
		metrics:     m,
	}
}

var _ portssvc.PremiumSvc = (*premiumService)(nil)

func (s *premiumService) SubmitRequest(ctx context.Context, listingID string, receipt dto.FileUpload, userID string) (*domain.PremiumRequest, error) {
	listing, err := s.listingRepo.FindListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.UserID != userID {
		return nil, fmt.Errorf("listing belongs to another user: %w", apperrors.ErrForbidden)
	}
	if listing.IsPremium {
		return nil, fmt.Errorf("listing is already premium: %w", apperrors.ErrConflict)
	}

	pending, err := s.requestRepo.HasPendingRequest(ctx, listingID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check pending requests", slog.String("listing_id", listingID))
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("a request for this listing is already pending: %w", apperrors.ErrConflict)
	}
	if len(receipt.Data) == 0 {
		return nil, fmt.Errorf("%w: receipt is required", apperrors.ErrValidation)
	}

	receiptURL, err := s.media.UploadReceipt(ctx, userID, receipt)
	if err != nil {
		return nil, err
	}

	req := domain.PremiumRequest{
		RequestID:  uuid.NewString(),
		ListingID:  listingID,
		UserID:     userID,
		ReceiptURL: receiptURL,
		Status:     domain.PremiumPending,
		CreatedAt:  s.now(),
	}
	if err := s.requestRepo.SavePremiumRequest(ctx, req); err != nil {
		s.media.DeleteByURL(ctx, receiptURL)
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("a request for this listing is already pending: %w", apperrors.ErrConflict)
		}
		s.LogError(ctx, err, "Failed to save premium request", slog.String("listing_id", listingID))
		return nil, err
	}

	s.publish(ctx, domain.Event{Type: domain.EventPremiumRequested, ListingID: listingID, UserID: userID, RequestID: req.RequestID, Status: string(req.Status)})
	s.LogInfo(ctx, "Premium request submitted",
		slog.String("request_id", req.RequestID),
		slog.String("listing_id", listingID))
	return &req, nil
}

func (s *premiumService) ListPendingForUser(ctx context.Context, userID string) ([]domain.PremiumRequest, error) {
	requests, err := s.requestRepo.ListPendingByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list user premium requests", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list premium requests: %w", err)
	}
	return requests, nil
}

func (s *premiumService) ListRequests(ctx context.Context, history bool) ([]domain.PremiumRequest, error) {
	requests, err := s.requestRepo.ListPremiumRequests(ctx, history)
	if err != nil {
		s.LogError(ctx, err, "Failed to list premium requests", slog.Bool("history", history))
		return nil, fmt.Errorf("failed to list premium requests: %w", err)
	}
	return requests, nil
}

func (s *premiumService) Approve(ctx context.Context, requestID string, adminID string) (*domain.PremiumRequest, error) {
	return s.review(ctx, requestID, domain.PremiumApproved, adminID)
}

func (s *premiumService) Reject(ctx context.Context, requestID string, adminID string) (*domain.PremiumRequest, error) {
	return s.review(ctx, requestID, domain.PremiumRejected, adminID)
}

func (s *premiumService) review(ctx context.Context, requestID string, status domain.PremiumRequestStatus, adminID string) (*domain.PremiumRequest, error) {
	req, err := s.requestRepo.ReviewPremiumRequest(ctx, requestID, status, adminID, s.now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to review premium request",
				slog.String("request_id", requestID),
				slog.String("status", string(status)))
		}
		return nil, err
	}

	s.metrics.PremiumReviewed(string(status))
	s.publish(ctx, domain.Event{Type: domain.EventPremiumReviewed, ListingID: req.ListingID, UserID: req.UserID, RequestID: requestID, Status: string(status)})
	if status == domain.PremiumApproved {
		s.publish(ctx, domain.Event{Type: domain.EventListingPremium, ListingID: req.ListingID, UserID: adminID, Status: "true"})
	}
	s.LogInfo(ctx, "Premium request reviewed",
		slog.String("request_id", requestID),
		slog.String("status", string(status)))
	return req, nil
}

func (s *premiumService) publish(ctx context.Context, event domain.Event) {
	if s.events == nil {
		return
	}
	event.OccurredAt = s.now()
	if err := s.events.Publish(ctx, event); err != nil {
		s.LogWarn(ctx, "Failed to publish event",
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()))
	}
}
