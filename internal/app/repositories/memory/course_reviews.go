package memory

import (
	"context"
	"math"
	"sort"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

type courseReviewRepository struct {
	db *DB
}

// NewCourseReviewRepository creates the in-memory course review repository.
func NewCourseReviewRepository(db *DB) repositories.CourseReviewRepository {
	return &courseReviewRepository{db: db}
}

func (r *courseReviewRepository) CreateCourseReview(_ context.Context, insert models.CourseReviewInsert) (*models.CourseReview, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id, err := newID(insert.ID)
	if err != nil {
		return nil, err
	}
	if insert.Rating < models.MinRating || insert.Rating > models.MaxRating {
		return nil, apperrors.NewValidationError("rating", "new row for relation \"course_reviews\" violates check constraint \"course_reviews_rating_check\"")
	}
	if _, ok := r.db.profiles[insert.UserID]; !ok {
		return nil, foreignKeyError("course_reviews", "user_id")
	}
	if insert.DepartmentID != nil {
		if _, ok := r.db.departments[*insert.DepartmentID]; !ok {
			return nil, foreignKeyError("course_reviews", "department_id")
		}
	}

	cr := &models.CourseReview{
		ID:           id,
		UserID:       insert.UserID,
		DepartmentID: insert.DepartmentID,
		CourseCode:   insert.CourseCode,
		Rating:       insert.Rating,
		Comment:      insert.Comment,
		CreatedAt:    r.db.now(),
	}
	r.db.reviews[id] = cr
	out := *cr
	return &out, nil
}

// ListCourseRatings aggregates reviews per course and department, as the
// course_ratings view does.
func (r *courseReviewRepository) ListCourseRatings(_ context.Context, page models.Page) ([]models.CourseRating, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	type group struct {
		courseCode   string
		departmentID *string
		sum, count   int64
	}
	groups := map[string]*group{}
	for _, cr := range r.db.reviews {
		key := cr.CourseCode + "|"
		if cr.DepartmentID != nil {
			key += *cr.DepartmentID
		}
		g, ok := groups[key]
		if !ok {
			g = &group{courseCode: cr.CourseCode, departmentID: cr.DepartmentID}
			groups[key] = g
		}
		g.sum += int64(cr.Rating)
		g.count++
	}

	items := make([]models.CourseRating, 0, len(groups))
	for _, g := range groups {
		// The view rounds to two decimals.
		avg := math.Round(float64(g.sum)/float64(g.count)*100) / 100
		count := g.count
		code := g.courseCode
		row := models.CourseRating{CourseCode: &code, AverageRating: &avg, ReviewCount: &count}
		row.DepartmentName, row.UniversityName = r.db.departmentNames(g.departmentID)
		items = append(items, row)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if *items[i].AverageRating != *items[j].AverageRating {
			return *items[i].AverageRating > *items[j].AverageRating
		}
		if *items[i].ReviewCount != *items[j].ReviewCount {
			return *items[i].ReviewCount > *items[j].ReviewCount
		}
		return *items[i].CourseCode < *items[j].CourseCode
	})

	out, total := pageOf(items, page)
	return out, total, nil
}
