package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/middleware"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// settingsHandler serves site settings and price formatting.
type settingsHandler struct {
	settingsService portssvc.SettingsSvc
}

func newSettingsHandler(ss portssvc.SettingsSvc) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

// registerPublicSettingsRoutes registers the routes the storefront reads.
func registerPublicSettingsRoutes(rg *gin.RouterGroup, h *settingsHandler) {
	rg.GET("/settings/public", h.getSettings)
	rg.GET("/pricing/format", h.formatPrice)
}

// registerAdminSettingsRoutes registers the settings editor.
func registerAdminSettingsRoutes(admin *gin.RouterGroup, h *settingsHandler) {
	admin.GET("/settings", h.getSettings)
	admin.PUT("/settings", h.updateSettings)
}

// getSettings godoc
// @Summary Site settings
// @Description Exchange rate (IQD per 100 USD) and the phone number premium payments go to
// @Tags settings
// @Produce  json
// @Success 200 {object} dto.SettingsResponse
// @Failure 500 {object} ErrorResponse
// @Router /settings/public [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// updateSettings godoc
// @Summary Update site settings
// @Description Stores the exchange rate and admin phone. The new rate is used immediately.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateSettingsRequest true "Settings"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/settings [put]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), req, adminID)
	if err != nil {
		respondError(c, err, "Failed to update settings")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Settings updated", slog.String("exchange_rate", settings.ExchangeRate.String()))
	c.JSON(http.StatusOK, settings)
}

// formatPrice godoc
// @Summary Format a price
// @Description Renders a price in its currency and the other one using the current rate
// @Tags settings
// @Produce  json
// @Param   price query string true "Amount"
// @Param   currency query string false "IQD or USD" default(IQD)
// @Success 200 {object} dto.FormatPriceResponse
// @Failure 400 {object} ErrorResponse
// @Router /pricing/format [get]
func (h *settingsHandler) formatPrice(c *gin.Context) {
	var params dto.FormatPriceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}
	price, err := decimal.NewFromString(params.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid price"})
		return
	}
	if price.GreaterThan(pricing.MaxPrice) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Price is too large"})
		return
	}

	c.JSON(http.StatusOK, dto.FormatPriceResponse{
		Display: h.settingsService.FormatPrice(price, pricing.ParseCode(params.Currency)),
		Rate:    h.settingsService.CurrentRate(),
	})
}
