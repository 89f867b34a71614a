package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type visitorHandler struct {
	visitorService portssvc.VisitorSvc
}

func newVisitorHandler(vs portssvc.VisitorSvc) *visitorHandler {
	return &visitorHandler{visitorService: vs}
}

// registerVisitorRoutes registers page-view tracking. optionalAuth identifies signed-in callers.
func registerVisitorRoutes(rg *gin.RouterGroup, h *visitorHandler, optionalAuth gin.HandlerFunc) {
	rg.POST("/page-views", optionalAuth, h.trackPageView)
}

// trackPageView godoc
// @Summary Track a page view
// @Description Signed-in callers are counted by user ID, anonymous ones by visitorId
// @Tags visitors
// @Accept  json
// @Param   view body dto.TrackPageViewRequest true "Page view"
// @Success 202 "Accepted"
// @Failure 400 {object} ErrorResponse
// @Router /page-views [post]
func (h *visitorHandler) trackPageView(c *gin.Context) {
	var req dto.TrackPageViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.visitorService.TrackPageView(c.Request.Context(), req, userID); err != nil {
		respondError(c, err, "Failed to track page view")
		return
	}
	c.Status(http.StatusAccepted)
}
