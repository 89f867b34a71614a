package handlers

import (
	"net/http"
	"strings"

	"github.com/SscSPs/car_market_app/cmd/docs"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/middleware"
	"github.com/SscSPs/car_market_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Dependencies are the non-service collaborators the router needs.
type Dependencies struct {
	// Events feeds the Server-Sent Events endpoints.
	Events portssvc.EventSubscriber
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// MediaFS is served under cfg.MediaBaseURL when that is a local path.
	MediaFS afero.Fs
	// LoginLimiter throttles /auth/login per client IP; nil disables it.
	LoginLimiter *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps Dependencies,
) {
	RegisterValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	setupMediaRoutes(r, cfg, deps.MediaFS)

	setupAPIV1Routes(r, cfg, services, deps)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps Dependencies,
) {
	v1 := r.Group("/api/v1")

	listings := newListingHandler(services.Listing, services.Settings, deps.Events, cfg.MaxUploadBytes)
	users := newUserHandler(services.User, services.Listing, services.Premium, services.Settings)
	premium := newPremiumHandler(services.Premium, services.Settings, cfg.MaxUploadBytes)
	settings := newSettingsHandler(services.Settings)
	reporting := newReportingHandler(services.Reporting, services.Visitor, deps.Events)

	// Public routes
	registerAuthRoutes(v1, services.Auth, deps.LoginLimiter)
	registerPublicListingRoutes(v1, listings)
	registerPublicSettingsRoutes(v1, settings)
	registerVisitorRoutes(v1, newVisitorHandler(services.Visitor), middleware.OptionalAuthMiddleware(cfg.JWTSecret))

	// Member routes
	authed := v1.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	registerMeRoutes(authed, users)
	registerListingRoutes(authed, listings)
	registerPremiumRoutes(authed, premium)

	// Back-office routes; the role is checked against the stored profile on every request.
	admin := authed.Group("/admin", middleware.RequireAdmin(services.User))
	registerReportingRoutes(admin, reporting)
	registerAdminListingRoutes(admin, listings)
	registerAdminPremiumRoutes(admin, premium)
	registerAdminUserRoutes(admin, users)
	registerAdminSettingsRoutes(admin, settings)
}

// setupMediaRoutes serves stored uploads when media URLs point back at this server.
func setupMediaRoutes(r *gin.Engine, cfg *config.Config, fs afero.Fs) {
	if fs == nil || !strings.HasPrefix(cfg.MediaBaseURL, "/") {
		return
	}
	r.StaticFS(cfg.MediaBaseURL, afero.NewHttpFs(fs).Dir("/"))
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
