package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// listingHandler handles HTTP requests related to car listings.
type listingHandler struct {
	listingService portssvc.ListingSvcFacade
	prices         priceFormatter
	events         portssvc.EventSubscriber
	maxUploadBytes int64
}

// newListingHandler creates a new listingHandler.
func newListingHandler(ls portssvc.ListingSvcFacade, prices priceFormatter, events portssvc.EventSubscriber, maxUploadBytes int64) *listingHandler {
	return &listingHandler{
		listingService: ls,
		prices:         prices,
		events:         events,
		maxUploadBytes: maxUploadBytes,
	}
}

// registerPublicListingRoutes registers the browsing routes that need no account.
func registerPublicListingRoutes(rg *gin.RouterGroup, h *listingHandler) {
	listings := rg.Group("/listings")
	{
		listings.GET("", h.searchListings)
		listings.GET("/stream", h.streamListings)
		listings.GET("/:id", h.getListing)
	}
}

// registerListingRoutes registers the seller routes. rg must be authenticated.
func registerListingRoutes(rg *gin.RouterGroup, h *listingHandler) {
	listings := rg.Group("/listings")
	{
		listings.POST("", limitBody(h.maxUploadBytes), h.createListing)
		listings.PUT("/:id", h.updateListing)
		listings.POST("/:id/images", limitBody(h.maxUploadBytes), h.addImages)
		listings.DELETE("/:id", h.deleteListing)
	}
}

// registerAdminListingRoutes registers the moderation table routes.
func registerAdminListingRoutes(admin *gin.RouterGroup, h *listingHandler) {
	listings := admin.Group("/listings")
	{
		listings.GET("", h.adminListListings)
		listings.PATCH("/:id/premium", h.setPremium)
		listings.DELETE("/:id", h.deleteListing)
	}
}

// searchListings godoc
// @Summary Search listings
// @Description Public newest-first search with keyset pagination
// @Tags listings
// @Produce  json
// @Param   q query string false "Brand or title contains"
// @Param   governorate query string false "Governorate"
// @Param   premium query string false "true or false"
// @Param   minPrice query string false "Minimum price"
// @Param   maxPrice query string false "Maximum price"
// @Param   minYear query int false "Minimum year"
// @Param   maxYear query int false "Maximum year"
// @Param   transmission query string false "automatic or manual"
// @Param   fuelType query string false "petrol, diesel, hybrid or electric"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListListingsResponse
// @Failure 400 {object} ErrorResponse
// @Router /listings [get]
func (h *listingHandler) searchListings(c *gin.Context) {
	var params dto.SearchListingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}

	listings, nextToken, err := h.listingService.SearchListings(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to search listings")
		return
	}
	c.JSON(http.StatusOK, toListListingsResponse(listings, nextToken, h.prices))
}

// getListing godoc
// @Summary Get a listing
// @Tags listings
// @Produce  json
// @Param   id path string true "Listing ID"
// @Success 200 {object} dto.ListingResponse
// @Failure 404 {object} ErrorResponse
// @Router /listings/{id} [get]
func (h *listingHandler) getListing(c *gin.Context) {
	listing, err := h.listingService.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve listing")
		return
	}
	c.JSON(http.StatusOK, toListingResponse(listing, h.prices))
}

// streamListings godoc
// @Summary Follow listing changes
// @Description Server-Sent Events for created, updated, deleted and promoted listings
// @Tags listings
// @Produce  text/event-stream
// @Success 200 {object} domain.Event
// @Router /listings/stream [get]
func (h *listingHandler) streamListings(c *gin.Context) {
	streamEvents(c, h.events, domain.StreamListings)
}

// createListing godoc
// @Summary Create a listing
// @Description Creates a listing from form fields and up to ten photos. Photos are compressed; ones that cannot be processed are skipped.
// @Tags listings
// @Accept  multipart/form-data
// @Produce  json
// @Param   title formData string true "Title"
// @Param   price formData string true "Price"
// @Param   currency formData string false "IQD or USD"
// @Param   governorate formData string false "Governorate"
// @Param   brand formData string true "Brand"
// @Param   year formData int true "Model year"
// @Param   transmission formData string true "automatic or manual"
// @Param   fuelType formData string true "petrol, diesel, hybrid or electric"
// @Param   description formData string false "Description"
// @Param   images formData file false "Photos"
// @Success 201 {object} dto.ListingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /listings [post]
func (h *listingHandler) createListing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateListingRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	images, err := readFormFiles(c, "images")
	if err != nil {
		badRequest(c, err)
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), userID, req, images)
	if err != nil {
		respondError(c, err, "Failed to create listing")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Listing created",
		slog.String("listing_id", listing.ListingID), slog.Int("images", len(listing.Images)))
	c.JSON(http.StatusCreated, toListingResponse(listing, h.prices))
}

// updateListing godoc
// @Summary Update a listing
// @Description Edits fields of an owned listing. images, when sent, lists the existing photos to keep.
// @Tags listings
// @Accept  json
// @Produce  json
// @Param   id path string true "Listing ID"
// @Param   listing body dto.UpdateListingRequest true "Fields to update"
// @Success 200 {object} dto.ListingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /listings/{id} [put]
func (h *listingHandler) updateListing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	listing, err := h.listingService.UpdateListing(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update listing")
		return
	}
	c.JSON(http.StatusOK, toListingResponse(listing, h.prices))
}

// addImages godoc
// @Summary Add photos to a listing
// @Tags listings
// @Accept  multipart/form-data
// @Produce  json
// @Param   id path string true "Listing ID"
// @Param   images formData file true "Photos"
// @Success 200 {object} dto.ListingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /listings/{id}/images [post]
func (h *listingHandler) addImages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	images, err := readFormFiles(c, "images")
	if err != nil {
		badRequest(c, err)
		return
	}

	listing, err := h.listingService.AddImages(c.Request.Context(), c.Param("id"), images, userID)
	if err != nil {
		respondError(c, err, "Failed to add images")
		return
	}
	c.JSON(http.StatusOK, toListingResponse(listing, h.prices))
}

// deleteListing godoc
// @Summary Delete a listing
// @Description Deletes a listing owned by the caller, or any listing for admins
// @Tags listings
// @Param   id path string true "Listing ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /listings/{id} [delete]
func (h *listingHandler) deleteListing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.listingService.DeleteListing(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete listing")
		return
	}
	c.Status(http.StatusNoContent)
}

// adminListListings godoc
// @Summary List listings for moderation
// @Tags admin
// @Produce  json
// @Param   status query string false "all, premium or normal" default(all)
// @Param   sort query string false "newest or oldest" default(newest)
// @Param   q query string false "Brand or title contains"
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListListingsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/listings [get]
func (h *listingHandler) adminListListings(c *gin.Context) {
	var params dto.AdminListListingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}

	listings, err := h.listingService.ListForAdmin(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list listings")
		return
	}
	c.JSON(http.StatusOK, toListListingsResponse(listings, nil, h.prices))
}

// setPremium godoc
// @Summary Toggle premium
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   id path string true "Listing ID"
// @Param   premium body dto.SetPremiumRequest true "Premium flag"
// @Success 200 {object} dto.ListingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/listings/{id}/premium [patch]
func (h *listingHandler) setPremium(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.SetPremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	listing, err := h.listingService.SetPremium(c.Request.Context(), c.Param("id"), *req.IsPremium, adminID)
	if err != nil {
		respondError(c, err, "Failed to update listing")
		return
	}
	c.JSON(http.StatusOK, toListingResponse(listing, h.prices))
}
