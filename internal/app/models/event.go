package models

import "time"

// Event is a row of events. RsvpCount is maintained by the store.
type Event struct {
	ID          string    `json:"id" db:"id"`
	ClubID      string    `json:"clubId" db:"club_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	EventDate   time.Time `json:"eventDate" db:"event_date"`
	Location    string    `json:"location" db:"location"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	RsvpCount   int       `json:"rsvpCount" db:"rsvp_count"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// EventInsert creates an event.
type EventInsert struct {
	ID          *string
	ClubID      string
	Title       string
	Description *string
	EventDate   time.Time
	Location    string
	ImageURL    *string
}

// Columns returns the columns to insert.
func (i EventInsert) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"club_id":    i.ClubID,
		"title":      i.Title,
		"event_date": i.EventDate,
		"location":   i.Location,
	}
	setColumn(cols, "id", i.ID)
	setColumn(cols, "description", i.Description)
	setColumn(cols, "image_url", i.ImageURL)
	return cols
}

// EventUpdate changes an event.
type EventUpdate struct {
	Title       *string
	Description *string
	EventDate   *time.Time
	Location    *string
	ImageURL    *string
}

// Changes returns the columns to set.
func (u EventUpdate) Changes() map[string]interface{} {
	cols := map[string]interface{}{}
	setColumn(cols, "title", u.Title)
	setColumn(cols, "description", u.Description)
	setColumn(cols, "event_date", u.EventDate)
	setColumn(cols, "location", u.Location)
	setColumn(cols, "image_url", u.ImageURL)
	return cols
}

// EventWithClub is an event joined with its club and the club's university.
// Either join may be absent.
type EventWithClub struct {
	Event
	ClubName       *string `json:"clubName,omitempty" db:"club_name"`
	UniversityID   *string `json:"universityId,omitempty" db:"university_id"`
	UniversityName *string `json:"universityName,omitempty" db:"university_name"`
}
