package memory

import (
	"context"
	"sort"
	"time"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

type eventRepository struct {
	db *DB
}

// NewEventRepository creates the in-memory event repository.
func NewEventRepository(db *DB) repositories.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) ListUpcomingEvents(_ context.Context, now time.Time, page models.Page) ([]models.EventWithClub, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := []models.EventWithClub{}
	for _, e := range r.db.events {
		if e.EventDate.Before(now) {
			continue
		}
		row := models.EventWithClub{Event: *e}
		if c, ok := r.db.clubs[e.ClubID]; ok {
			row.ClubName = stringPtr(c.Name)
			row.UniversityID = stringPtr(c.UniversityID)
			if u, ok := r.db.universities[c.UniversityID]; ok {
				row.UniversityName = stringPtr(u.Name)
			}
		}
		items = append(items, row)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].EventDate.Equal(items[j].EventDate) {
			return items[i].EventDate.Before(items[j].EventDate)
		}
		return items[i].ID < items[j].ID
	})

	out, total := pageOf(items, page)
	return out, total, nil
}

func (r *eventRepository) CreateEvent(_ context.Context, insert models.EventInsert) (*models.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id, err := newID(insert.ID)
	if err != nil {
		return nil, err
	}
	if _, ok := r.db.clubs[insert.ClubID]; !ok {
		return nil, foreignKeyError("events", "club_id")
	}

	e := &models.Event{
		ID:          id,
		ClubID:      insert.ClubID,
		Title:       insert.Title,
		Description: insert.Description,
		EventDate:   insert.EventDate.UTC(),
		Location:    insert.Location,
		ImageURL:    insert.ImageURL,
		CreatedAt:   r.db.now(),
	}
	if _, exists := r.db.events[id]; exists {
		return nil, apperrors.NewConflictError("duplicate key value violates unique constraint \"events_pkey\"")
	}
	r.db.events[id] = e
	out := *e
	return &out, nil
}
