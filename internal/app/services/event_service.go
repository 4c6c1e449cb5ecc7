package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/app/views"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
)

// EventService defines the interface for event operations
type EventService interface {
	ListUpcoming(ctx context.Context, session *models.Session, page models.Page) (*dto.ListResponse[views.EventCard], error)
}

type eventServiceImpl struct {
	eventRepo repositories.EventRepository
	clock     helpers.Clock
	logger    zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repositories.EventRepository, clock helpers.Clock, logger zerolog.Logger) EventService {
	if clock == nil {
		clock = helpers.SystemClock
	}
	return &eventServiceImpl{eventRepo: eventRepo, clock: clock, logger: logger}
}

// ListUpcoming returns events dated at or after the current time, soonest first.
// The clock is read once, so the filter and the relative times agree.
func (s *eventServiceImpl) ListUpcoming(ctx context.Context, session *models.Session, page models.Page) (*dto.ListResponse[views.EventCard], error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	page = normalizePage(page)
	now := s.clock()

	rows, total, err := s.eventRepo.ListUpcomingEvents(ctx, now, page)
	if err != nil {
		s.logger.Error().Err(err).Time("now", now).Msg("Failed to list upcoming events")
		return nil, err
	}
	return listResponse(views.EventCards(rows, now), total, page), nil
}
