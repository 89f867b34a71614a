package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/imaging"
	"github.com/SscSPs/car_market_app/internal/metrics"
	"github.com/SscSPs/car_market_app/internal/platform/config"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/shopspring/decimal"
)

// Infrastructure groups the non-database collaborators the services need.
// Presence, Events and Metrics are optional.
type Infrastructure struct {
	Blobs    portsrepo.BlobStore
	Presence portsrepo.PresenceTracker
	Events   portssvc.EventPublisher
	Metrics  *metrics.Metrics
	RateBook *pricing.RateBook
}

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The concrete settings service is returned as well so the caller can run its refresher.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, infra Infrastructure) (*portssvc.ServiceContainer, *SettingsService, error) {
	container := &portssvc.ServiceContainer{}

	media, err := NewMediaService(infra.Blobs, imaging.Options{
		MaxWidth: cfg.ImageMaxWidth,
		Quality:  cfg.ImageQuality,
	}, infra.Metrics)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create media service: %w", err)
	}
	container.Media = media

	settings := NewSettingsService(repos.SettingRepo, infra.RateBook, infra.Metrics)
	container.Settings = settings

	container.Auth = NewAuthService(cfg, repos.UserRepo)
	container.User = NewUserService(repos.UserRepo, media)
	container.Listing = NewListingService(repos.ListingRepo, repos.UserRepo, media,
		WithListingEvents(infra.Events),
		WithListingMetrics(infra.Metrics),
	)
	container.Premium = NewPremiumService(repos.PremiumRequestRepo, repos.ListingRepo, media, infra.Events, infra.Metrics)
	container.Reporting = NewReportingService(repos.ReportingRepo,
		WithPremiumPrice(decimal.NewFromInt(cfg.PremiumPriceIQD)),
		WithReportingLocation(cfg.Location()),
	)
	container.Visitor = NewVisitorService(repos.PageViewRepo, infra.Presence, infra.Events, infra.Metrics)

	return container, settings, nil
}
