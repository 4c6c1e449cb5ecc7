package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniconnect/internal/app/models"
)

// PostgresCourseReviewRepository handles database operations for course reviews.
type PostgresCourseReviewRepository struct {
	DB DBTX
}

// NewCourseReviewRepository creates a new instance of PostgresCourseReviewRepository.
func NewCourseReviewRepository(db DBTX) *PostgresCourseReviewRepository {
	return &PostgresCourseReviewRepository{DB: db}
}

// CreateCourseReview inserts a review. The rating range is also checked by the store.
func (r *PostgresCourseReviewRepository) CreateCourseReview(ctx context.Context, insert models.CourseReviewInsert) (*models.CourseReview, error) {
	builder := psql.Insert("course_reviews").
		SetMap(insert.Columns()).
		Suffix("RETURNING id, user_id, department_id, course_code, rating, comment, created_at")

	var cr models.CourseReview
	err := queryRow(ctx, r.DB, "createCourseReview", builder, func(row pgx.Row) error {
		return row.Scan(&cr.ID, &cr.UserID, &cr.DepartmentID, &cr.CourseCode, &cr.Rating, &cr.Comment, &cr.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

func courseRatingsQuery(page models.Page) squirrel.SelectBuilder {
	builder := psql.Select(
		"course_code", "department_name", "university_name", "average_rating", "review_count",
		totalCountColumn,
	).
		From("course_ratings").
		OrderBy("average_rating DESC NULLS LAST", "review_count DESC NULLS LAST", "course_code ASC")
	return paginate(builder, page)
}

// ListCourseRatings reads a page of the course_ratings view, best rated first.
func (r *PostgresCourseReviewRepository) ListCourseRatings(ctx context.Context, page models.Page) ([]models.CourseRating, int64, error) {
	rows, err := queryRows(ctx, r.DB, "listCourseRatings", courseRatingsQuery(page), func(rows pgx.Rows) (paged[models.CourseRating], error) {
		var row paged[models.CourseRating]
		cr := &row.item
		err := rows.Scan(&cr.CourseCode, &cr.DepartmentName, &cr.UniversityName, &cr.AverageRating, &cr.ReviewCount, &row.total)
		return row, err
	})
	if err != nil {
		return nil, 0, err
	}
	items, total := splitPaged(rows)
	return items, total, nil
}
