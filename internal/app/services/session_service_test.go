package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

type stubProvider struct {
	err    error
	tokens []string
}

func (p *stubProvider) SignOut(_ context.Context, token string) error {
	p.tokens = append(p.tokens, token)
	return p.err
}

func TestCurrentSession(t *testing.T) {
	svc := NewSessionService(nil, "/sign-in", testClock, zerolog.Nop())

	resp := svc.CurrentSession(nil)
	assert.Nil(t, resp.Session)
	assert.Equal(t, "/sign-in", resp.RedirectTo)

	session := &models.Session{UserID: "u1"}
	resp = svc.CurrentSession(session)
	assert.Equal(t, session, resp.Session)
	assert.Empty(t, resp.RedirectTo)
}

func TestSignOutPublishesSignedOut(t *testing.T) {
	provider := &stubProvider{}
	svc := NewSessionService(provider, "/sign-in", testClock, zerolog.Nop())

	var got []models.IdentityEvent
	unsubscribe := svc.OnIdentityChange("u1", func(e models.IdentityEvent) { got = append(got, e) })
	defer unsubscribe()
	svc.OnIdentityChange("u2", func(models.IdentityEvent) { t.Error("other user notified") })

	require.NoError(t, svc.SignOut(context.Background(), &models.Session{UserID: "u1"}, "token-1"))

	assert.Equal(t, []string{"token-1"}, provider.tokens)
	require.Len(t, got, 1)
	assert.Equal(t, models.IdentitySignedOut, got[0].Type)
	assert.Equal(t, testNow, got[0].Timestamp)
}

func TestSignOutProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("provider unavailable")}
	svc := NewSessionService(provider, "/sign-in", testClock, zerolog.Nop())

	notified := false
	svc.OnIdentityChange("u1", func(models.IdentityEvent) { notified = true })

	err := svc.SignOut(context.Background(), &models.Session{UserID: "u1"}, "t")
	assert.ErrorIs(t, err, apperrors.ErrStore)
	assert.Equal(t, "provider unavailable", err.Error())
	assert.False(t, notified)

	assert.ErrorIs(t, svc.SignOut(context.Background(), nil, ""), apperrors.ErrAuthRequired)
}

func TestUnsubscribeReleasesExactlyOnce(t *testing.T) {
	svc := NewSessionService(nil, "/sign-in", testClock, zerolog.Nop())

	calls := 0
	first := svc.OnIdentityChange("u1", func(models.IdentityEvent) { calls++ })
	second := svc.OnIdentityChange("u1", func(models.IdentityEvent) {})
	assert.Equal(t, 2, svc.SubscriberCount("u1"))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			first()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, svc.SubscriberCount("u1"))

	svc.Publish(models.IdentityEvent{Type: models.IdentitySignedOut, UserID: "u1"})
	assert.Zero(t, calls)

	second()
	second()
	assert.Zero(t, svc.SubscriberCount("u1"))
}

func TestCallbackMayUnsubscribeItself(t *testing.T) {
	svc := NewSessionService(nil, "/sign-in", testClock, zerolog.Nop())

	var unsubscribe func()
	unsubscribe = svc.OnIdentityChange("u1", func(models.IdentityEvent) { unsubscribe() })

	assert.NotPanics(t, func() {
		svc.Publish(models.IdentityEvent{Type: models.IdentitySignedOut, UserID: "u1"})
	})
	assert.Zero(t, svc.SubscriberCount("u1"))
}
