package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
)

// SignOutProvider revokes an access token at the identity provider.
type SignOutProvider interface {
	SignOut(ctx context.Context, accessToken string) error
}

// SessionService defines the interface for session operations
type SessionService interface {
	// CurrentSession returns the session, or the sign-in target when there is none.
	CurrentSession(session *models.Session) *dto.SessionResponse
	SignOut(ctx context.Context, session *models.Session, accessToken string) error
	// OnIdentityChange registers callback for userID's identity events. The
	// returned function releases the subscription; calling it again is a no-op.
	OnIdentityChange(userID string, callback func(models.IdentityEvent)) (unsubscribe func())
	Publish(event models.IdentityEvent)
	SubscriberCount(userID string) int
}

type sessionServiceImpl struct {
	provider   SignOutProvider
	signInPath string
	clock      helpers.Clock
	logger     zerolog.Logger

	mu          sync.RWMutex
	nextID      uint64
	subscribers map[string]map[uint64]func(models.IdentityEvent)
}

// NewSessionService creates a new SessionService
func NewSessionService(provider SignOutProvider, signInPath string, clock helpers.Clock, logger zerolog.Logger) SessionService {
	if clock == nil {
		clock = helpers.SystemClock
	}
	return &sessionServiceImpl{
		provider:    provider,
		signInPath:  signInPath,
		clock:       clock,
		logger:      logger,
		subscribers: make(map[string]map[uint64]func(models.IdentityEvent)),
	}
}

func (s *sessionServiceImpl) CurrentSession(session *models.Session) *dto.SessionResponse {
	if session == nil {
		return &dto.SessionResponse{RedirectTo: s.signInPath}
	}
	return &dto.SessionResponse{Session: session}
}

// SignOut revokes the token at the provider and tells every open view of the
// user to return to sign-in.
func (s *sessionServiceImpl) SignOut(ctx context.Context, session *models.Session, accessToken string) error {
	if err := requireSession(session); err != nil {
		return err
	}

	if s.provider != nil {
		if err := s.provider.SignOut(ctx, accessToken); err != nil {
			s.logger.Error().Err(err).Str("userID", session.UserID).Msg("Provider sign-out failed")
			return apperrors.NewStoreError("session.sign_out", err)
		}
	}

	s.Publish(models.IdentityEvent{
		Type:      models.IdentitySignedOut,
		UserID:    session.UserID,
		Timestamp: s.clock(),
	})
	s.logger.Info().Str("userID", session.UserID).Msg("User signed out")
	return nil
}

func (s *sessionServiceImpl) OnIdentityChange(userID string, callback func(models.IdentityEvent)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	if s.subscribers[userID] == nil {
		s.subscribers[userID] = make(map[uint64]func(models.IdentityEvent))
	}
	s.subscribers[userID][id] = callback
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers[userID], id)
			if len(s.subscribers[userID]) == 0 {
				delete(s.subscribers, userID)
			}
		})
	}
}

// Publish delivers event to the user's subscribers outside the lock, so a
// callback may unsubscribe itself.
func (s *sessionServiceImpl) Publish(event models.IdentityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock()
	}

	s.mu.RLock()
	callbacks := make([]func(models.IdentityEvent), 0, len(s.subscribers[event.UserID]))
	for _, cb := range s.subscribers[event.UserID] {
		callbacks = append(callbacks, cb)
	}
	s.mu.RUnlock()

	for _, cb := range callbacks {
		cb(event)
	}
	s.logger.Debug().
		Str("userID", event.UserID).
		Str("type", string(event.Type)).
		Int("subscribers", len(callbacks)).
		Msg("Identity event published")
}

func (s *sessionServiceImpl) SubscriberCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers[userID])
}
