package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// premiumHandler handles the payment-receipt promotion workflow.
type premiumHandler struct {
	premiumService portssvc.PremiumSvc
	prices         priceFormatter
	maxUploadBytes int64
}

func newPremiumHandler(ps portssvc.PremiumSvc, prices priceFormatter, maxUploadBytes int64) *premiumHandler {
	return &premiumHandler{premiumService: ps, prices: prices, maxUploadBytes: maxUploadBytes}
}

// registerPremiumRoutes registers the seller side. rg must be authenticated.
func registerPremiumRoutes(rg *gin.RouterGroup, h *premiumHandler) {
	rg.POST("/listings/:id/premium-requests", limitBody(h.maxUploadBytes), h.submitRequest)
}

// registerAdminPremiumRoutes registers the review queue.
func registerAdminPremiumRoutes(admin *gin.RouterGroup, h *premiumHandler) {
	requests := admin.Group("/premium-requests")
	{
		requests.GET("", h.listRequests)
		requests.POST("/:id/approve", h.approve)
		requests.POST("/:id/reject", h.reject)
	}
}

// submitRequest godoc
// @Summary Request premium placement
// @Description Uploads a payment receipt for an owned listing and opens a pending request
// @Tags premium
// @Accept  multipart/form-data
// @Produce  json
// @Param   id path string true "Listing ID"
// @Param   receipt formData file true "Payment receipt (image or PDF)"
// @Success 201 {object} dto.PremiumRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already premium or a request is pending"
// @Security BearerAuth
// @Router /listings/{id}/premium-requests [post]
func (h *premiumHandler) submitRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	receipt, err := readFormFile(c, "receipt")
	if err != nil {
		badRequest(c, err)
		return
	}

	req, err := h.premiumService.SubmitRequest(c.Request.Context(), c.Param("id"), receipt, userID)
	if err != nil {
		respondError(c, err, "Failed to submit premium request")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Premium request submitted", slog.String("request_id", req.RequestID))
	c.JSON(http.StatusCreated, toPremiumRequestResponse(req, h.prices))
}

// listRequests godoc
// @Summary List premium requests
// @Description Pending requests by default, reviewed ones with history=true. Newest first.
// @Tags admin
// @Produce  json
// @Param   history query bool false "Show reviewed requests"
// @Success 200 {array} dto.PremiumRequestResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/premium-requests [get]
func (h *premiumHandler) listRequests(c *gin.Context) {
	var params dto.ListPremiumRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}

	requests, err := h.premiumService.ListRequests(c.Request.Context(), params.History)
	if err != nil {
		respondError(c, err, "Failed to list premium requests")
		return
	}
	c.JSON(http.StatusOK, toPremiumRequestResponses(requests, h.prices))
}

// approve godoc
// @Summary Approve a premium request
// @Tags admin
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {object} dto.PremiumRequestResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request already reviewed"
// @Security BearerAuth
// @Router /admin/premium-requests/{id}/approve [post]
func (h *premiumHandler) approve(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	req, err := h.premiumService.Approve(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		respondError(c, err, "Failed to approve premium request")
		return
	}
	c.JSON(http.StatusOK, toPremiumRequestResponse(req, h.prices))
}

// reject godoc
// @Summary Reject a premium request
// @Tags admin
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {object} dto.PremiumRequestResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request already reviewed"
// @Security BearerAuth
// @Router /admin/premium-requests/{id}/reject [post]
func (h *premiumHandler) reject(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	req, err := h.premiumService.Reject(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		respondError(c, err, "Failed to reject premium request")
		return
	}
	c.JSON(http.StatusOK, toPremiumRequestResponse(req, h.prices))
}
