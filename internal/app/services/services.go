package services

// Services defined in this package:
// - FeedService: posts, likes, comments and the category tabs
// - ClubService: club directory and memberships
// - EventService: upcoming events
// - ResourceService: shared course resources
// - ProfileService: profile pages and the leaderboard
// - CourseReviewService: course reviews and aggregated ratings
// - UniversityService: universities and departments
// - SessionService: current session, sign-out and identity-change fan-out
//
// Every call that acts for a user receives the verified session explicitly.

import (
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
)

// requireSession rejects calls made without a verified identity.
func requireSession(session *models.Session) error {
	if session == nil || session.UserID == "" {
		return apperrors.ErrAuthRequired
	}
	return nil
}

// normalizePage applies the configured page defaults.
func normalizePage(page models.Page) models.Page {
	page.Page, page.Size = helpers.NormalizePage(page.Page, page.Size)
	return page
}

// listResponse wraps one page of display items with its pagination info.
func listResponse[T any](items []T, total int64, page models.Page) *dto.ListResponse[T] {
	resp := dto.NewListResponse(items, helpers.NewPaginationInfo(total, page.Page, page.Size))
	return &resp
}
