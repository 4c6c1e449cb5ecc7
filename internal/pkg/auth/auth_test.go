package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(userID string) Claims {
	return Claims{
		Email: "ada@uni.edu",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "provider",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestVerifySession(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: testSecret, Issuer: "provider"})
	userID := uuid.NewString()

	session, err := svc.VerifySession(signToken(t, testSecret, validClaims(userID)))
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, "ada@uni.edu", session.Email)
	assert.False(t, session.ExpiresAt.IsZero())
}

func TestVerifySessionRejects(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: testSecret, Issuer: "provider"})
	userID := uuid.NewString()

	expired := validClaims(userID)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	_, err := svc.VerifySession(signToken(t, testSecret, expired))
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = svc.VerifySession(signToken(t, "other-secret", validClaims(userID)))
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := validClaims(userID)
	wrongIssuer.Issuer = "someone-else"
	_, err = svc.VerifySession(signToken(t, testSecret, wrongIssuer))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifySession(signToken(t, testSecret, validClaims("42")))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifySession("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	for _, tc := range []struct {
		header string
		want   string
	}{
		{header: "Bearer abc", want: "abc"},
		{header: "bearer  abc ", want: "abc"},
		{header: "abc", want: "abc"},
	} {
		token, err := ExtractBearerToken(tc.header)
		require.NoError(t, err, tc.header)
		assert.Equal(t, tc.want, token, tc.header)
	}

	for _, header := range []string{"", "Bearer ", "Bearer", "BEARER   ", "Basic dXNlcjpwdw=="} {
		_, err := ExtractBearerToken(header)
		assert.ErrorIs(t, err, ErrInvalidFormat, "%q", header)
	}
}

func TestProviderSignOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewProviderClient(srv.URL, time.Second)
	require.NoError(t, client.SignOut(context.Background(), "tok"))
	assert.Equal(t, "Bearer tok", gotAuth)

	assert.NoError(t, NewProviderClient("", 0).SignOut(context.Background(), "tok"))
}

func TestProviderSignOutFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewProviderClient(srv.URL, time.Second).SignOut(context.Background(), "tok")
	assert.Error(t, err)
}
