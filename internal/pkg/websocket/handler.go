package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/middleware"
)

// IdentitySubscriber delivers identity changes for one user until the
// returned function is called.
type IdentitySubscriber interface {
	OnIdentityChange(userID string, callback func(models.IdentityEvent)) (unsubscribe func())
}

// Handler for WebSocket connections
type Handler struct {
	hub        *Hub
	subscriber IdentitySubscriber
	upgrader   websocket.Upgrader
	signInPath string
	logger     zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, subscriber IdentitySubscriber, allowedOrigins []string, signInPath string, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:        hub,
		subscriber: subscriber,
		upgrader:   NewUpgrader(allowedOrigins),
		signInPath: signInPath,
		logger:     logger,
	}
}

// HandleConnection godoc
// @Summary Stream identity changes for the current session
// @Description Upgrades to a WebSocket that pushes SIGNED_OUT events so open views can redirect to sign-in
// @Tags session, websocket
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /session/events [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeAuthRequired, "Authentication required"),
		))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("userID", session.UserID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 16),
		userID: session.UserID,
		logger: h.logger,
	}
	if !h.hub.add(client) {
		conn.Close()
		return
	}

	client.unsubscribe = h.subscriber.OnIdentityChange(session.UserID, func(event models.IdentityEvent) {
		msg := Message{
			Type:      event.Type,
			UserID:    event.UserID,
			Timestamp: event.Timestamp,
		}
		if event.Type == models.IdentitySignedOut {
			msg.RedirectTo = h.signInPath
		}
		h.hub.Send(client, msg)
	})

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("userID", session.UserID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
