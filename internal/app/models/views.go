package models

import "time"

// Read-only rows of the store's derived views. Every column is nullable
// because the store reports view columns as such.

// CourseRating is a row of course_ratings.
type CourseRating struct {
	CourseCode     *string  `json:"courseCode,omitempty" db:"course_code"`
	DepartmentName *string  `json:"departmentName,omitempty" db:"department_name"`
	UniversityName *string  `json:"universityName,omitempty" db:"university_name"`
	AverageRating  *float64 `json:"averageRating,omitempty" db:"average_rating"`
	ReviewCount    *int64   `json:"reviewCount,omitempty" db:"review_count"`
}

// TopActiveUser is a row of top_active_users.
type TopActiveUser struct {
	ID             *string   `json:"id,omitempty" db:"id"`
	FullName       *string   `json:"fullName,omitempty" db:"full_name"`
	Role           *UserRole `json:"role,omitempty" db:"role"`
	PostCount      *int      `json:"postCount,omitempty" db:"post_count"`
	DepartmentName *string   `json:"departmentName,omitempty" db:"department_name"`
	UniversityName *string   `json:"universityName,omitempty" db:"university_name"`
}

// UpcomingEvent is a row of upcoming_events.
type UpcomingEvent struct {
	ID             *string    `json:"id,omitempty" db:"id"`
	ClubID         *string    `json:"clubId,omitempty" db:"club_id"`
	Title          *string    `json:"title,omitempty" db:"title"`
	Description    *string    `json:"description,omitempty" db:"description"`
	EventDate      *time.Time `json:"eventDate,omitempty" db:"event_date"`
	Location       *string    `json:"location,omitempty" db:"location"`
	ImageURL       *string    `json:"imageUrl,omitempty" db:"image_url"`
	RsvpCount      *int       `json:"rsvpCount,omitempty" db:"rsvp_count"`
	CreatedAt      *time.Time `json:"createdAt,omitempty" db:"created_at"`
	ClubName       *string    `json:"clubName,omitempty" db:"club_name"`
	UniversityID   *string    `json:"universityId,omitempty" db:"university_id"`
	UniversityName *string    `json:"universityName,omitempty" db:"university_name"`
}
