package handlers

import (
	"net/http"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles the admin reports and traffic widgets.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	visitorService   portssvc.VisitorSvc
	events           portssvc.EventSubscriber
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService, vs portssvc.VisitorSvc, events portssvc.EventSubscriber) *reportingHandler {
	return &reportingHandler{reportingService: rs, visitorService: vs, events: events}
}

// registerReportingRoutes registers reporting routes under the admin group.
func registerReportingRoutes(admin *gin.RouterGroup, h *reportingHandler) {
	admin.GET("/dashboard", h.getDashboard)
	reports := admin.Group("/reports")
	{
		reports.GET("", h.getFinancialReport)
		reports.GET("/growth", h.getGrowth)
		reports.GET("/visitors", h.getVisitorStats)
	}
	admin.GET("/visitors/stream", h.streamVisitors)
}

// getDashboard godoc
// @Summary Dashboard counts
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	counts, err := h.reportingService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(counts))
}

// getFinancialReport godoc
// @Summary Financial report
// @Description Premium against regular listings, approved requests, revenue and listings per governorate
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.FinancialReportResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/reports [get]
func (h *reportingHandler) getFinancialReport(c *gin.Context) {
	report, err := h.reportingService.FinancialReport(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to generate financial report")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialReportResponse(report))
}

// getGrowth godoc
// @Summary Growth chart
// @Description Daily revenue, new listings and new users, oldest first
// @Tags admin
// @Produce  json
// @Param   days query int false "Number of days (1-365)" default(30)
// @Success 200 {object} dto.GrowthReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/reports/growth [get]
func (h *reportingHandler) getGrowth(c *gin.Context) {
	var params dto.GrowthReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}

	points, err := h.reportingService.Growth(c.Request.Context(), params.Days)
	if err != nil {
		respondError(c, err, "Failed to generate growth report")
		return
	}
	c.JSON(http.StatusOK, dto.ToGrowthReportResponse(points))
}

// getVisitorStats godoc
// @Summary Visitor statistics
// @Tags admin
// @Produce  json
// @Success 200 {object} domain.VisitorStats
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/reports/visitors [get]
func (h *reportingHandler) getVisitorStats(c *gin.Context) {
	stats, err := h.visitorService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load visitor statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// streamVisitors godoc
// @Summary Follow page views
// @Tags admin
// @Produce  text/event-stream
// @Success 200 {object} domain.Event
// @Security BearerAuth
// @Router /admin/visitors/stream [get]
func (h *reportingHandler) streamVisitors(c *gin.Context) {
	streamEvents(c, h.events, domain.StreamVisitors)
}
