package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/middleware"
)

// CourseReviewController handles course reviews and ratings
type CourseReviewController struct {
	reviewService services.CourseReviewService
}

// NewCourseReviewController creates a new CourseReviewController
func NewCourseReviewController(reviewService services.CourseReviewService) *CourseReviewController {
	return &CourseReviewController{reviewService: reviewService}
}

// CreateReview rates a course
// @Summary Review a course
// @Tags course-reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseReviewRequest true "Course and rating"
// @Success 201 {object} dto.APIResponse{data=models.CourseReview}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail} "Rating out of range"
// @Router /course-reviews [post]
func (c *CourseReviewController) CreateReview(ctx *gin.Context) {
	var req dto.CreateCourseReviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	review, err := c.reviewService.CreateReview(ctx, sessionFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, review)
}

// ListRatings retrieves aggregated course ratings
// @Summary List course ratings
// @Tags course-reviews
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse[views.CourseRatingRow]}
// @Router /course-ratings [get]
func (c *CourseReviewController) ListRatings(ctx *gin.Context) {
	resp, err := c.reviewService.ListRatings(ctx, sessionFrom(ctx), pageFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, resp)
}
