package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/app/views"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
	"github.com/yigit/uniconnect/internal/pkg/validation"
)

// CourseReviewService defines the interface for course review operations
type CourseReviewService interface {
	CreateReview(ctx context.Context, session *models.Session, req *dto.CreateCourseReviewRequest) (*models.CourseReview, error)
	ListRatings(ctx context.Context, session *models.Session, page models.Page) (*dto.ListResponse[views.CourseRatingRow], error)
}

type courseReviewServiceImpl struct {
	reviewRepo repositories.CourseReviewRepository
	logger     zerolog.Logger
}

// NewCourseReviewService creates a new CourseReviewService
func NewCourseReviewService(reviewRepo repositories.CourseReviewRepository, logger zerolog.Logger) CourseReviewService {
	return &courseReviewServiceImpl{reviewRepo: reviewRepo, logger: logger}
}

// CreateReview records the session user's rating of a course.
func (s *courseReviewServiceImpl) CreateReview(ctx context.Context, session *models.Session, req *dto.CreateCourseReviewRequest) (*models.CourseReview, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	courseCode, err := validation.NewStringValidation("courseCode", req.CourseCode).
		WithPattern(validation.CompiledPatterns.CourseCode).
		Validate()
	if err != nil {
		return nil, err
	}
	if err := validation.NewNumericValidation("rating", req.Rating).WithRange(models.MinRating, models.MaxRating).Validate(); err != nil {
		return nil, err
	}
	if err := validation.OptionalUUID("departmentId", req.DepartmentID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.CreateCourseReview(ctx, models.CourseReviewInsert{
		UserID:       session.UserID,
		DepartmentID: req.DepartmentID,
		CourseCode:   courseCode,
		Rating:       req.Rating,
		Comment:      helpers.TrimmedOrNil(req.Comment),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("courseCode", courseCode).Msg("Failed to create course review")
		return nil, err
	}
	return review, nil
}

// ListRatings returns one page of the course_ratings view, best rated first.
func (s *courseReviewServiceImpl) ListRatings(ctx context.Context, session *models.Session, page models.Page) (*dto.ListResponse[views.CourseRatingRow], error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	rows, total, err := s.reviewRepo.ListCourseRatings(ctx, page)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list course ratings")
		return nil, err
	}
	return listResponse(views.CourseRatingRows(rows), total, page), nil
}
