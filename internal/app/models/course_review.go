package models

import "time"

// Rating bounds enforced by the course_reviews check constraint.
const (
	MinRating = 1
	MaxRating = 5
)

// CourseReview is a row of course_reviews.
type CourseReview struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"userId" db:"user_id"`
	DepartmentID *string   `json:"departmentId,omitempty" db:"department_id"`
	CourseCode   string    `json:"courseCode" db:"course_code"`
	Rating       int       `json:"rating" db:"rating"`
	Comment      *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// CourseReviewInsert creates a review.
type CourseReviewInsert struct {
	ID           *string
	UserID       string
	DepartmentID *string
	CourseCode   string
	Rating       int
	Comment      *string
}

// Columns returns the columns to insert.
func (i CourseReviewInsert) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"user_id":     i.UserID,
		"course_code": i.CourseCode,
		"rating":      i.Rating,
	}
	setColumn(cols, "id", i.ID)
	setColumn(cols, "department_id", i.DepartmentID)
	setColumn(cols, "comment", i.Comment)
	return cols
}

// CourseReviewUpdate changes a review.
type CourseReviewUpdate struct {
	DepartmentID *string
	CourseCode   *string
	Rating       *int
	Comment      *string
}

// Changes returns the columns to set.
func (u CourseReviewUpdate) Changes() map[string]interface{} {
	cols := map[string]interface{}{}
	setColumn(cols, "department_id", u.DepartmentID)
	setColumn(cols, "course_code", u.CourseCode)
	setColumn(cols, "rating", u.Rating)
	setColumn(cols, "comment", u.Comment)
	return cols
}
