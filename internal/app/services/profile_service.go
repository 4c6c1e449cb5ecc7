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

// DefaultLeaderboardSize is used when the caller asks for no particular size.
const DefaultLeaderboardSize = 10

// ProfileService defines the interface for profile operations
type ProfileService interface {
	GetOwnProfile(ctx context.Context, session *models.Session) (*views.ProfileView, error)
	GetProfile(ctx context.Context, session *models.Session, userID string) (*views.ProfileView, error)
	UpdateProfile(ctx context.Context, session *models.Session, req *dto.UpdateProfileRequest) (*views.ProfileView, error)
	Leaderboard(ctx context.Context, session *models.Session, limit int) ([]views.TopUserRow, error)
}

type profileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repositories.ProfileRepository, logger zerolog.Logger) ProfileService {
	return &profileServiceImpl{profileRepo: profileRepo, logger: logger}
}

// GetOwnProfile returns the session user's profile page.
func (s *profileServiceImpl) GetOwnProfile(ctx context.Context, session *models.Session) (*views.ProfileView, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	return s.fetch(ctx, session.UserID)
}

// GetProfile returns another user's profile page.
func (s *profileServiceImpl) GetProfile(ctx context.Context, session *models.Session, userID string) (*views.ProfileView, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validation.UUID("userId", userID); err != nil {
		return nil, err
	}
	return s.fetch(ctx, userID)
}

func (s *profileServiceImpl) fetch(ctx context.Context, userID string) (*views.ProfileView, error) {
	row, err := s.profileRepo.FetchProfileWithDepartment(ctx, userID)
	if err != nil {
		s.logger.Debug().Err(err).Str("userID", userID).Msg("Profile lookup failed")
		return nil, err
	}
	view := views.NewProfileView(*row)
	return &view, nil
}

// UpdateProfile applies the fields present in req to the session user's profile.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, session *models.Session, req *dto.UpdateProfileRequest) (*views.ProfileView, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	update, err := profileUpdateFrom(req)
	if err != nil {
		return nil, err
	}

	if !update.Empty() {
		if _, err := s.profileRepo.UpdateProfile(ctx, session.UserID, update); err != nil {
			s.logger.Error().Err(err).Str("userID", session.UserID).Msg("Failed to update profile")
			return nil, err
		}
		s.logger.Info().Str("userID", session.UserID).Msg("Profile updated")
	}
	return s.fetch(ctx, session.UserID)
}

func profileUpdateFrom(req *dto.UpdateProfileRequest) (models.ProfileUpdate, error) {
	update := models.ProfileUpdate{
		DepartmentID: req.DepartmentID,
		Bio:          req.Bio,
		AvatarURL:    helpers.TrimmedOrNil(req.AvatarURL),
		Skills:       req.Skills,
		Interests:    req.Interests,
		Year:         req.Year,
	}

	if req.FullName != nil {
		name, err := validation.NewStringValidation("fullName", *req.FullName).WithMaxLength(120).Validate()
		if err != nil {
			return update, err
		}
		update.FullName = &name
	}
	if err := validation.OptionalUUID("departmentId", req.DepartmentID); err != nil {
		return update, err
	}
	if req.Year != nil {
		if err := validation.NewNumericValidation("year", *req.Year).WithRange(1, 10).Validate(); err != nil {
			return update, err
		}
	}
	return update, nil
}

// Leaderboard returns the most active users from the top_active_users view.
func (s *profileServiceImpl) Leaderboard(ctx context.Context, session *models.Session, limit int) ([]views.TopUserRow, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	if limit > helpers.MaxPageSize {
		limit = helpers.MaxPageSize
	}

	rows, err := s.profileRepo.ListTopActiveUsers(ctx, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load leaderboard")
		return nil, err
	}
	return views.TopUserRows(rows), nil
}
