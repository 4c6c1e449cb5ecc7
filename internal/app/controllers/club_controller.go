package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/app/views"
	"github.com/yigit/uniconnect/internal/middleware"
)

// ClubController handles club-related operations
type ClubController struct {
	clubService services.ClubService
	sequencer   *views.Sequencer
}

// NewClubController creates a new ClubController
func NewClubController(clubService services.ClubService, sequencer *views.Sequencer) *ClubController {
	return &ClubController{clubService: clubService, sequencer: sequencer}
}

// ListClubs retrieves the club directory
// @Summary List clubs
// @Description Clubs with their university, newest first
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param seq query int false "Client request sequence"
// @Param view query string false "View instance id"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse[views.ClubCard]}
// @Router /clubs [get]
func (c *ClubController) ListClubs(ctx *gin.Context) {
	seq := beginSequenced(ctx, c.sequencer, "clubs")

	resp, err := c.clubService.ListClubs(ctx, sessionFrom(ctx), pageFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	seq.respond(ctx, resp)
}

// JoinClub adds the current user to a club
// @Summary Join a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Success 201 {object} dto.APIResponse{data=models.ClubMembership}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail} "Club not found"
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail} "Already a member"
// @Router /clubs/{id}/membership [post]
func (c *ClubController) JoinClub(ctx *gin.Context) {
	membership, err := c.clubService.JoinClub(ctx, sessionFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, membership)
}

// LeaveClub removes the current user from a club
// @Summary Leave a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail} "Not a member"
// @Router /clubs/{id}/membership [delete]
func (c *ClubController) LeaveClub(ctx *gin.Context) {
	if err := c.clubService.LeaveClub(ctx, sessionFrom(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Left club"})
}

// ListMembers retrieves a club's members
// @Summary List club members
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse[views.MemberRow]}
// @Router /clubs/{id}/members [get]
func (c *ClubController) ListMembers(ctx *gin.Context) {
	resp, err := c.clubService.ListMembers(ctx, sessionFrom(ctx), ctx.Param("id"), pageFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, resp)
}
