package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/SscSPs/car_market_app/internal/apperrors"
	"github.com/SscSPs/car_market_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/metrics"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/SscSPs/car_market_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	minListingYear = 1980
	// maxOwnListings bounds the "my listings" page.
	maxOwnListings = 200
)

type listingService struct {
	BaseService
	listingRepo portsrepo.ListingRepositoryFacade
	userRepo    portsrepo.UserReader
	media       portssvc.MediaSvc
	events      portssvc.EventPublisher
	metrics     *metrics.Metrics
}

// ListingOption is a functional option for configuring the listing service
type ListingOption func(*listingService)

// WithListingEvents publishes listing lifecycle events to p.
func WithListingEvents(p portssvc.EventPublisher) ListingOption {
	return func(s *listingService) {
		s.events = p
	}
}

// WithListingMetrics records listing counters on m.
func WithListingMetrics(m *metrics.Metrics) ListingOption {
	return func(s *listingService) {
		s.metrics = m
	}
}

// NewListingService creates a new listing service with the provided options
func NewListingService(listingRepo portsrepo.ListingRepositoryFacade, userRepo portsrepo.UserReader, media portssvc.MediaSvc, options ...ListingOption) portssvc.ListingSvcFacade {
	svc := &listingService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		media:       media,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ListingSvcFacade = (*listingService)(nil)

func (s *listingService) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	listing, err := s.listingRepo.FindListingByID(ctx, listingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get listing", slog.String("listing_id", listingID))
		}
		return nil, err
	}
	return listing, nil
}

func (s *listingService) SearchListings(ctx context.Context, params dto.SearchListingsParams) ([]domain.Listing, *string, error) {
	filter, err := searchFilter(params)
	if err != nil {
		return nil, nil, err
	}

	// One extra row tells us whether another page exists.
	limit := filter.Limit
	filter.Limit = limit + 1

	listings, err := s.listingRepo.SearchListings(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to search listings")
		return nil, nil, fmt.Errorf("failed to search listings: %w", err)
	}

	var nextToken *string
	if len(listings) > limit {
		listings = listings[:limit]
		last := listings[len(listings)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ListingID)
		nextToken = &token
	}
	return listings, nextToken, nil
}

func (s *listingService) ListUserListings(ctx context.Context, userID string) ([]domain.Listing, error) {
	listings, err := s.listingRepo.SearchListings(ctx, domain.ListingFilter{UserID: userID, Limit: maxOwnListings})
	if err != nil {
		s.LogError(ctx, err, "Failed to list user listings", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list user listings: %w", err)
	}
	return listings, nil
}

func (s *listingService) CreateListing(ctx context.Context, userID string, req dto.CreateListingRequest, images []dto.FileUpload) (*domain.Listing, error) {
	if len(images) > domain.MaxListingImages {
		return nil, fmt.Errorf("%w: at most %d images are allowed", apperrors.ErrValidation, domain.MaxListingImages)
	}

	now := s.now()
	listing := domain.Listing{
		ListingID: uuid.NewString(),
		UserID:    userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.applyListingFields(&listing, listingFields{
		Title:        &req.Title,
		Price:        &req.Price,
		Currency:     &req.Currency,
		Governorate:  &req.Governorate,
		Brand:        &req.Brand,
		Year:         &req.Year,
		Transmission: &req.Transmission,
		FuelType:     &req.FuelType,
		Description:  &req.Description,
	}); err != nil {
		return nil, err
	}

	listing.Images = s.media.UploadListingImages(ctx, userID, images)
	if len(listing.Images) < len(images) {
		s.LogWarn(ctx, "Some listing images were skipped",
			slog.Int("received", len(images)),
			slog.Int("stored", len(listing.Images)))
	}

	if err := s.listingRepo.SaveListing(ctx, listing); err != nil {
		s.LogError(ctx, err, "Failed to save listing", slog.String("listing_id", listing.ListingID))
		s.media.DeleteByURL(ctx, listing.Images...)
		return nil, err
	}

	s.metrics.ListingCreated()
	s.publish(ctx, domain.Event{Type: domain.EventListingCreated, ListingID: listing.ListingID, UserID: userID})
	s.LogInfo(ctx, "Listing created",
		slog.String("listing_id", listing.ListingID),
		slog.Int("images", len(listing.Images)))
	return &listing, nil
}

func (s *listingService) UpdateListing(ctx context.Context, listingID string, req dto.UpdateListingRequest, userID string) (*domain.Listing, error) {
	listing, err := s.ownedListing(ctx, listingID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.applyListingFields(listing, listingFields{
		Title:        req.Title,
		Price:        req.Price,
		Currency:     req.Currency,
		Governorate:  req.Governorate,
		Brand:        req.Brand,
		Year:         req.Year,
		Transmission: req.Transmission,
		FuelType:     req.FuelType,
		Description:  req.Description,
	}); err != nil {
		return nil, err
	}

	previous := slices.Clone(listing.Images)
	var removed []string
	if req.Images != nil {
		kept, dropped, err := keepImages(listing.Images, req.Images)
		if err != nil {
			return nil, err
		}
		listing.Images = kept
		removed = dropped
	}

	listing.LastUpdatedAt = s.now()
	listing.LastUpdatedBy = userID
	if err := s.listingRepo.UpdateListing(ctx, *listing, previous); err != nil {
		s.LogError(ctx, err, "Failed to update listing", slog.String("listing_id", listingID))
		return nil, err
	}
	s.media.DeleteByURL(ctx, removed...)

	s.publish(ctx, domain.Event{Type: domain.EventListingUpdated, ListingID: listingID, UserID: userID})
	return listing, nil
}

func (s *listingService) AddImages(ctx context.Context, listingID string, images []dto.FileUpload, userID string) (*domain.Listing, error) {
	listing, err := s.ownedListing(ctx, listingID, userID)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no images provided", apperrors.ErrValidation)
	}
	if len(listing.Images)+len(images) > domain.MaxListingImages {
		return nil, fmt.Errorf("%w: a listing can have at most %d images", apperrors.ErrValidation, domain.MaxListingImages)
	}

	added := s.media.UploadListingImages(ctx, userID, images)
	if len(added) == 0 {
		return nil, fmt.Errorf("%w: none of the images could be processed", apperrors.ErrValidation)
	}
	now := s.now()
	stored, err := s.listingRepo.AppendImages(ctx, listingID, added, domain.MaxListingImages, userID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to save added images", slog.String("listing_id", listingID))
		s.media.DeleteByURL(ctx, added...)
		return nil, err
	}
	listing.Images = stored
	listing.LastUpdatedAt = now
	listing.LastUpdatedBy = userID

	s.publish(ctx, domain.Event{Type: domain.EventListingUpdated, ListingID: listingID, UserID: userID})
	return listing, nil
}

func (s *listingService) DeleteListing(ctx context.Context, listingID string, userID string) error {
	listing, err := s.GetListing(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.UserID != userID {
		if err := s.requireAdmin(ctx, userID); err != nil {
			return err
		}
	}

	if err := s.listingRepo.DeleteListing(ctx, listingID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete listing", slog.String("listing_id", listingID))
		}
		return err
	}
	s.media.DeleteByURL(ctx, listing.Images...)

	s.publish(ctx, domain.Event{Type: domain.EventListingDeleted, ListingID: listingID, UserID: userID})
	s.LogInfo(ctx, "Listing deleted", slog.String("listing_id", listingID))
	return nil
}

func (s *listingService) ListForAdmin(ctx context.Context, params dto.AdminListListingsParams) ([]domain.Listing, error) {
	filter := domain.AdminListingFilter{
		Search: strings.TrimSpace(params.Query),
		Sort:   domain.SortNewest,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.Sort == string(domain.SortOldest) {
		filter.Sort = domain.SortOldest
	}
	switch params.Status {
	case "premium":
		filter.PremiumOnly = boolPtr(true)
	case "normal":
		filter.PremiumOnly = boolPtr(false)
	}

	listings, err := s.listingRepo.ListListingsForAdmin(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list listings for admin")
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}

func (s *listingService) SetPremium(ctx context.Context, listingID string, premium bool, adminID string) (*domain.Listing, error) {
	if err := s.listingRepo.SetPremium(ctx, listingID, premium, adminID, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to set premium flag", slog.String("listing_id", listingID))
		}
		return nil, err
	}
	s.publish(ctx, domain.Event{Type: domain.EventListingPremium, ListingID: listingID, UserID: adminID, Status: fmt.Sprint(premium)})
	s.LogInfo(ctx, "Listing premium flag changed", slog.String("listing_id", listingID), slog.Bool("premium", premium))
	return s.GetListing(ctx, listingID)
}

func (s *listingService) ownedListing(ctx context.Context, listingID, userID string) (*domain.Listing, error) {
	listing, err := s.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.UserID != userID {
		return nil, fmt.Errorf("listing belongs to another user: %w", apperrors.ErrForbidden)
	}
	return listing, nil
}

func (s *listingService) requireAdmin(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return err
	}
	if !user.IsAdmin() {
		return fmt.Errorf("listing belongs to another user: %w", apperrors.ErrForbidden)
	}
	return nil
}

func (s *listingService) publish(ctx context.Context, event domain.Event) {
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

// listingFields are the editable listing attributes; nil leaves a field unchanged.
type listingFields struct {
	Title        *string
	Price        *string
	Currency     *string
	Governorate  *string
	Brand        *string
	Year         *int
	Transmission *string
	FuelType     *string
	Description  *string
}

func (s *listingService) applyListingFields(l *domain.Listing, f listingFields) error {
	if f.Title != nil {
		title := strings.TrimSpace(*f.Title)
		if title == "" {
			return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
		}
		l.Title = title
	}
	if f.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*f.Price))
		if err != nil {
			return fmt.Errorf("%w: invalid price", apperrors.ErrValidation)
		}
		if price.IsNegative() {
			return fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidation)
		}
		if price.GreaterThan(pricing.MaxPrice) {
			return fmt.Errorf("%w: price cannot exceed %s", apperrors.ErrValidation, pricing.MaxPrice.String())
		}
		l.Price = price
	}
	if f.Currency != nil {
		code := strings.ToUpper(strings.TrimSpace(*f.Currency))
		if code != "" && !pricing.IsSupported(code) {
			return fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, *f.Currency)
		}
		l.Currency = pricing.ParseCode(code)
	}
	if f.Governorate != nil {
		gov := strings.TrimSpace(*f.Governorate)
		if gov == "" {
			gov = domain.DefaultGovernorate
		}
		if !domain.IsGovernorate(gov) {
			return fmt.Errorf("%w: unknown governorate %q", apperrors.ErrValidation, gov)
		}
		l.Governorate = gov
	}
	if f.Brand != nil {
		brand := strings.TrimSpace(*f.Brand)
		if brand == "" {
			return fmt.Errorf("%w: brand is required", apperrors.ErrValidation)
		}
		l.Brand = brand
	}
	if f.Year != nil {
		maxYear := s.now().Year() + 1
		if *f.Year < minListingYear || *f.Year > maxYear {
			return fmt.Errorf("%w: year must be between %d and %d", apperrors.ErrValidation, minListingYear, maxYear)
		}
		l.Year = *f.Year
	}
	if f.Transmission != nil {
		t := domain.Transmission(strings.TrimSpace(*f.Transmission))
		if !t.IsValid() {
			return fmt.Errorf("%w: unknown transmission %q", apperrors.ErrValidation, *f.Transmission)
		}
		l.Transmission = t
	}
	if f.FuelType != nil {
		ft := domain.FuelType(strings.TrimSpace(*f.FuelType))
		if !ft.IsValid() {
			return fmt.Errorf("%w: unknown fuel type %q", apperrors.ErrValidation, *f.FuelType)
		}
		l.FuelType = ft
	}
	if f.Description != nil {
		l.Description = strings.TrimSpace(*f.Description)
	}
	return nil
}

// keepImages validates that wanted is a subset of current and returns the kept list in
// wanted's order along with the images that were dropped.
func keepImages(current, wanted []string) (kept, dropped []string, err error) {
	existing := make(map[string]bool, len(current))
	for _, u := range current {
		existing[u] = true
	}
	seen := make(map[string]bool, len(wanted))
	kept = make([]string, 0, len(wanted))
	for _, u := range wanted {
		if !existing[u] {
			return nil, nil, fmt.Errorf("%w: image %q does not belong to this listing", apperrors.ErrValidation, u)
		}
		if seen[u] {
			continue
		}
		seen[u] = true
		kept = append(kept, u)
	}
	for _, u := range current {
		if !seen[u] {
			dropped = append(dropped, u)
		}
	}
	return kept, dropped, nil
}

func searchFilter(params dto.SearchListingsParams) (domain.ListingFilter, error) {
	filter := domain.ListingFilter{
		Search:       strings.TrimSpace(params.Query),
		Governorate:  strings.TrimSpace(params.Governorate),
		Transmission: domain.Transmission(params.Transmission),
		FuelType:     domain.FuelType(params.FuelType),
		Limit:        params.Limit,
	}
	if filter.Governorate == "" {
		filter.Governorate = strings.TrimSpace(params.Gov)
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	switch params.Premium {
	case "true":
		filter.PremiumOnly = boolPtr(true)
	case "false":
		filter.PremiumOnly = boolPtr(false)
	}

	var err error
	if filter.MinPrice, err = optionalDecimal(params.MinPrice, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = optionalDecimal(params.MaxPrice, "maxPrice"); err != nil {
		return filter, err
	}
	if params.MinYear > 0 {
		filter.MinYear = &params.MinYear
	}
	if params.MaxYear > 0 {
		filter.MaxYear = &params.MaxYear
	}

	if params.NextToken != "" {
		createdAt, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.Cursor = &domain.ListingCursor{CreatedAt: createdAt, ListingID: id}
	}
	return filter, nil
}

func optionalDecimal(raw, field string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s", apperrors.ErrValidation, field)
	}
	return &d, nil
}

func boolPtr(v bool) *bool {
	return &v
}
