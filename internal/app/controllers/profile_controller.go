package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/middleware"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// ProfileController handles profile and leaderboard operations
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetOwnProfile retrieves the current user's profile
// @Summary Get my profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=views.ProfileView}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail} "No profile yet"
// @Router /profile [get]
func (c *ProfileController) GetOwnProfile(ctx *gin.Context) {
	view, err := c.profileService.GetOwnProfile(ctx, sessionFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, view)
}

// GetProfile retrieves another user's profile
// @Summary Get a profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=views.ProfileView}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail} "Profile not found"
// @Router /profile/{id} [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	view, err := c.profileService.GetProfile(ctx, sessionFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, view)
}

// UpdateProfile edits the current user's profile
// @Summary Update my profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=views.ProfileView}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail} "Invalid field"
// @Router /profile [patch]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	view, err := c.profileService.UpdateProfile(ctx, sessionFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, view)
}

// Leaderboard retrieves the most active users
// @Summary Top active users
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of users (default: 10)"
// @Success 200 {object} dto.APIResponse{data=[]views.TopUserRow}
// @Router /leaderboard [get]
func (c *ProfileController) Leaderboard(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(services.DefaultLeaderboardSize)))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("limit", "limit must be a number"))
		return
	}

	rows, err := c.profileService.Leaderboard(ctx, sessionFrom(ctx), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, rows)
}
