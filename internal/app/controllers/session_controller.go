package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/middleware"
)

// SessionController exposes the current session and sign-out
type SessionController struct {
	sessionService services.SessionService
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService services.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// CurrentSession returns the caller's session, or null with the sign-in target
// @Summary Current session
// @Tags session
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse}
// @Router /session [get]
func (c *SessionController) CurrentSession(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.sessionService.CurrentSession(sessionFrom(ctx)))
}

// SignOut ends the session at the provider and notifies open views
// @Summary Sign out
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse}
// @Failure 502 {object} dto.APIResponse{error=dto.ErrorDetail} "Provider error"
// @Router /session/sign-out [post]
func (c *SessionController) SignOut(ctx *gin.Context) {
	if err := c.sessionService.SignOut(ctx, sessionFrom(ctx), middleware.GetAccessToken(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, c.sessionService.CurrentSession(nil))
}

// Health reports that the server is up
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /health [get]
func Health(ctx *gin.Context) {
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "ok"})
}
