package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniconnect/internal/app/models"
)

// PostgresEventRepository handles database operations for events.
type PostgresEventRepository struct {
	DB DBTX
}

// NewEventRepository creates a new instance of PostgresEventRepository.
func NewEventRepository(db DBTX) *PostgresEventRepository {
	return &PostgresEventRepository{DB: db}
}

// upcomingEventsQuery selects events on or after now, soonest first. now is
// bound as a parameter so the caller's clock decides the boundary.
func upcomingEventsQuery(now time.Time, page models.Page) squirrel.SelectBuilder {
	builder := psql.Select(
		"e.id", "e.club_id", "e.title", "e.description", "e.event_date", "e.location",
		"e.image_url", "e.rsvp_count", "e.created_at",
		"c.name AS club_name", "c.university_id", "u.name AS university_name",
		totalCountColumn,
	).
		From("events e").
		LeftJoin("clubs c ON c.id = e.club_id").
		LeftJoin("universities u ON u.id = c.university_id").
		Where(squirrel.GtOrEq{"e.event_date": now}).
		OrderBy("e.event_date ASC", "e.id ASC")
	return paginate(builder, page)
}

// ListUpcomingEvents retrieves a page of upcoming events with club and university names.
func (r *PostgresEventRepository) ListUpcomingEvents(ctx context.Context, now time.Time, page models.Page) ([]models.EventWithClub, int64, error) {
	rows, err := queryRows(ctx, r.DB, "listUpcomingEvents", upcomingEventsQuery(now, page), func(rows pgx.Rows) (paged[models.EventWithClub], error) {
		var row paged[models.EventWithClub]
		e := &row.item
		err := rows.Scan(
			&e.ID, &e.ClubID, &e.Title, &e.Description, &e.EventDate, &e.Location,
			&e.ImageURL, &e.RsvpCount, &e.CreatedAt,
			&e.ClubName, &e.UniversityID, &e.UniversityName,
			&row.total,
		)
		return row, err
	})
	if err != nil {
		return nil, 0, err
	}
	items, total := splitPaged(rows)
	return items, total, nil
}

// CreateEvent inserts an event.
func (r *PostgresEventRepository) CreateEvent(ctx context.Context, insert models.EventInsert) (*models.Event, error) {
	builder := psql.Insert("events").
		SetMap(insert.Columns()).
		Suffix("RETURNING id, club_id, title, description, event_date, location, image_url, rsvp_count, created_at")

	var e models.Event
	err := queryRow(ctx, r.DB, "createEvent", builder, func(row pgx.Row) error {
		return row.Scan(&e.ID, &e.ClubID, &e.Title, &e.Description, &e.EventDate, &e.Location, &e.ImageURL, &e.RsvpCount, &e.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}
