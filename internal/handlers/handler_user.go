package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
	"github.com/SscSPs/car_market_app/internal/dto"
	"github.com/SscSPs/car_market_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService    portssvc.UserSvcFacade
	listingService portssvc.ListingReaderSvc
	premiumService portssvc.PremiumSvc
	prices         priceFormatter
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade, ls portssvc.ListingReaderSvc, ps portssvc.PremiumSvc, prices priceFormatter) *userHandler {
	return &userHandler{
		userService:    us,
		listingService: ls,
		premiumService: ps,
		prices:         prices,
	}
}

// registerMeRoutes registers the caller's own profile routes.
func registerMeRoutes(rg *gin.RouterGroup, h *userHandler) {
	me := rg.Group("/me")
	{
		me.GET("", h.getMe)
		me.PUT("", h.updateMe)
		me.PUT("/password", h.changePassword)
		me.POST("/avatar", h.uploadAvatar)
		me.GET("/listings", h.myListings)
		me.GET("/premium-requests", h.myPremiumRequests)
	}
}

// registerAdminUserRoutes registers back-office user management.
func registerAdminUserRoutes(admin *gin.RouterGroup, h *userHandler) {
	users := admin.Group("/users")
	{
		users.GET("", h.listUsers)
		users.PUT("/:id", h.adminUpdateUser)
		users.PATCH("/:id/role", h.changeRole)
		users.DELETE("/:id", h.deleteUser)
	}
}

// getMe godoc
// @Summary Get own profile
// @Tags me
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateMe godoc
// @Summary Update own profile
// @Description Updates the caller's name, address and date of birth
// @Tags me
// @Accept  json
// @Produce  json
// @Param   profile body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [put]
func (h *userHandler) updateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// changePassword godoc
// @Summary Change own password
// @Tags me
// @Accept  json
// @Param   password body dto.ChangePasswordRequest true "New password"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/password [put]
func (h *userHandler) changePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Password changed")
	c.Status(http.StatusNoContent)
}

// uploadAvatar godoc
// @Summary Upload avatar
// @Description Compresses and stores a new profile picture
// @Tags me
// @Accept  multipart/form-data
// @Produce  json
// @Param   avatar formData file true "Avatar image"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/avatar [post]
func (h *userHandler) uploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	file, err := readFormFile(c, "avatar")
	if err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.userService.UpdateAvatar(c.Request.Context(), userID, file)
	if err != nil {
		respondError(c, err, "Failed to update avatar")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// myListings godoc
// @Summary List own listings
// @Tags me
// @Produce  json
// @Success 200 {object} dto.ListListingsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/listings [get]
func (h *userHandler) myListings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listings, err := h.listingService.ListUserListings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list listings")
		return
	}
	c.JSON(http.StatusOK, toListListingsResponse(listings, nil, h.prices))
}

// myPremiumRequests godoc
// @Summary List own pending premium requests
// @Tags me
// @Produce  json
// @Success 200 {array} dto.PremiumRequestResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/premium-requests [get]
func (h *userHandler) myPremiumRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := h.premiumService.ListPendingForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list premium requests")
		return
	}
	c.JSON(http.StatusOK, toPremiumRequestResponses(requests, h.prices))
}

// listUsers godoc
// @Summary List users
// @Description Retrieves members filtered by role and a name or phone search
// @Tags admin
// @Produce  json
// @Param   role query string false "all, user or admin" default(all)
// @Param   q query string false "Name or phone contains"
// @Param   sort query string false "newest or oldest" default(newest)
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// adminUpdateUser godoc
// @Summary Update a user
// @Description Changes another member's name or phone number
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   user body dto.AdminUpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Phone already registered"
// @Security BearerAuth
// @Router /admin/users/{id} [put]
func (h *userHandler) adminUpdateUser(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.userService.AdminUpdateUser(c.Request.Context(), c.Param("id"), req, adminID)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// changeRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   role body dto.ChangeRoleRequest true "New role"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Admins cannot demote themselves"
// @Security BearerAuth
// @Router /admin/users/{id}/role [patch]
func (h *userHandler) changeRole(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.userService.ChangeRole(c.Request.Context(), c.Param("id"), req.Role, adminID)
	if err != nil {
		respondError(c, err, "Failed to change role")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User role changed",
		slog.String("target_user_id", user.UserID), slog.String("role", string(user.Role)))
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Soft-deletes a member and removes their listings
// @Tags admin
// @Param   id path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Admins cannot delete themselves"
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id"), adminID); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}
