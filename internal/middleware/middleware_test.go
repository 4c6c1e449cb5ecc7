package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
	"github.com/yigit/uniconnect/internal/pkg/auth"
)

type stubVerifier struct {
	session *models.Session
	err     error
	calls   int
}

func (s *stubVerifier) VerifySession(token string) (*models.Session, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if token != "good" {
		return nil, auth.ErrInvalidToken
	}
	return s.session, nil
}

type envelope struct {
	Success bool             `json:"success"`
	Error   *dto.ErrorDetail `json:"error"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newGateRouter(verifier SessionVerifier, handlerCalls *int) *gin.Engine {
	gate := NewSessionGate(verifier, "/auth")
	r := gin.New()
	r.GET("/protected", gate.Require(), func(c *gin.Context) {
		*handlerCalls++
		session, ok := GetSession(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": session.UserID, "token": GetAccessToken(c)})
	})
	r.GET("/optional", gate.Optional(), func(c *gin.Context) {
		_, ok := GetSession(c)
		c.JSON(http.StatusOK, gin.H{"signedIn": ok})
	})
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSessionGateWithoutSessionRedirectsAndStops(t *testing.T) {
	verifier := &stubVerifier{}
	handlerCalls := 0
	r := newGateRouter(verifier, &handlerCalls)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, handlerCalls, "handler must not run without a session")
	assert.Equal(t, 0, verifier.calls)

	body := decodeEnvelope(t, w)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeAuthRequired, body.Error.Code)
	assert.Equal(t, dto.ErrorSeverityInfo, body.Error.Severity)
	details, ok := body.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "/auth", details["redirectTo"])
	assert.Equal(t, "Session missing", details["reason"])
}

func TestSessionGateRejectsExpiredToken(t *testing.T) {
	handlerCalls := 0
	r := newGateRouter(&stubVerifier{err: auth.ErrExpiredToken}, &handlerCalls)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, handlerCalls)
	details := decodeEnvelope(t, w).Error.Details.(map[string]interface{})
	assert.Equal(t, "Session expired", details["reason"])
}

func TestSessionGatePassesSession(t *testing.T) {
	handlerCalls := 0
	verifier := &stubVerifier{session: &models.Session{UserID: "u-1", ExpiresAt: time.Now().Add(time.Hour)}}
	r := newGateRouter(verifier, &handlerCalls)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, handlerCalls)
	assert.JSONEq(t, `{"userId":"u-1","token":"good"}`, w.Body.String())

	// websocket clients send the token as a query parameter
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected?access_token=good", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalSessionNeverAborts(t *testing.T) {
	handlerCalls := 0
	r := newGateRouter(&stubVerifier{}, &handlerCalls)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/optional", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"signedIn":false}`, w.Body.String())
}

func TestErrorDetailFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     dto.ErrorCode
		severity dto.ErrorSeverity
		message  string
	}{
		{
			name:     "validation",
			err:      apperrors.NewValidationError("content", "content is required"),
			status:   http.StatusBadRequest,
			code:     dto.ErrorCodeValidationFailed,
			severity: dto.ErrorSeverityError,
			message:  "content is required",
		},
		{
			name:     "not found is an empty state",
			err:      fmt.Errorf("fetch: %w", apperrors.ErrProfileNotFound),
			status:   http.StatusNotFound,
			code:     dto.ErrorCodeResourceNotFound,
			severity: dto.ErrorSeverityInfo,
			message:  "fetch: profile not found",
		},
		{
			name:     "store message verbatim",
			err:      &apperrors.StoreError{Op: "createPost", Code: "42501", Message: "permission denied for table posts"},
			status:   http.StatusBadGateway,
			code:     dto.ErrorCodeDatabaseError,
			severity: dto.ErrorSeverityError,
			message:  "permission denied for table posts",
		},
		{
			name:     "conflict",
			err:      apperrors.NewConflictError("already a member"),
			status:   http.StatusConflict,
			code:     dto.ErrorCodeResourceAlreadyExists,
			severity: dto.ErrorSeverityWarning,
			message:  "already a member",
		},
		{
			name:     "unknown",
			err:      errors.New("boom"),
			status:   http.StatusInternalServerError,
			code:     dto.ErrorCodeInternalServer,
			severity: dto.ErrorSeverityError,
			message:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := ErrorDetailFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, detail.Code)
			assert.Equal(t, tt.severity, detail.Severity)
			assert.Equal(t, tt.message, detail.Message)
		})
	}
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	r := gin.New()
	r.POST("/posts", func(c *gin.Context) {
		var req dto.CreateCommentRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/posts", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decodeEnvelope(t, w).Error.Code)
}
