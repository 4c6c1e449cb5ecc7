package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/pkg/auth"
	"github.com/yigit/uniconnect/internal/pkg/logger"
)

const (
	sessionKey     = "session"
	accessTokenKey = "accessToken"
)

// SessionVerifier turns a provider access token into a session.
type SessionVerifier interface {
	VerifySession(token string) (*models.Session, error)
}

// SessionGate resolves the caller's identity before any protected handler
// runs. Requests without a valid session are answered with AUTH_REQUIRED and
// the sign-in redirect target, and the chain is aborted.
type SessionGate struct {
	verifier   SessionVerifier
	signInPath string
}

// NewSessionGate creates a new SessionGate
func NewSessionGate(verifier SessionVerifier, signInPath string) *SessionGate {
	return &SessionGate{
		verifier:   verifier,
		signInPath: signInPath,
	}
}

// SignInPath is where unauthenticated visitors are sent.
func (g *SessionGate) SignInPath() string {
	return g.signInPath
}

// Require aborts the request unless it carries a valid session.
func (g *SessionGate) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, token, err := g.resolve(c)
		if err != nil {
			logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Session gate rejected request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewFailureResponse(g.authRequired(err)))
			return
		}

		setSession(c, session, token)
		c.Next()
	}
}

// Optional attaches the session when a valid token is present and never aborts.
func (g *SessionGate) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session, token, err := g.resolve(c); err == nil {
			setSession(c, session, token)
		}
		c.Next()
	}
}

func (g *SessionGate) resolve(c *gin.Context) (*models.Session, string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		// Browsers cannot set headers on websocket upgrades.
		header = c.Query("access_token")
	}

	token, err := auth.ExtractBearerToken(strings.Trim(header, "\"'"))
	if err != nil {
		return nil, "", err
	}

	session, err := g.verifier.VerifySession(token)
	if err != nil {
		return nil, "", err
	}
	return session, token, nil
}

func (g *SessionGate) authRequired(err error) *dto.ErrorDetail {
	reason := "Session missing"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		reason = "Session expired"
	case errors.Is(err, auth.ErrInvalidToken):
		reason = "Session invalid"
	}

	return dto.NewErrorDetail(dto.ErrorCodeAuthRequired, "Authentication required").
		WithSeverity(dto.ErrorSeverityInfo).
		WithDetails(gin.H{
			"redirectTo": g.signInPath,
			"reason":     reason,
		})
}

func setSession(c *gin.Context, session *models.Session, token string) {
	c.Set(sessionKey, session)
	c.Set(accessTokenKey, token)
}

// GetSession returns the session attached by the gate.
func GetSession(c *gin.Context) (*models.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*models.Session)
	return session, ok && session != nil
}

// GetAccessToken returns the raw token the session was verified from.
func GetAccessToken(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}
