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

// ClubService defines the interface for club operations
type ClubService interface {
	ListClubs(ctx context.Context, session *models.Session, page models.Page) (*dto.ListResponse[views.ClubCard], error)
	JoinClub(ctx context.Context, session *models.Session, clubID string) (*models.ClubMembership, error)
	LeaveClub(ctx context.Context, session *models.Session, clubID string) error
	ListMembers(ctx context.Context, session *models.Session, clubID string, page models.Page) (*dto.ListResponse[views.MemberRow], error)
}

type clubServiceImpl struct {
	clubRepo repositories.ClubRepository
	logger   zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(clubRepo repositories.ClubRepository, logger zerolog.Logger) ClubService {
	return &clubServiceImpl{clubRepo: clubRepo, logger: logger}
}

// ListClubs returns one page of the club directory, newest first.
func (s *clubServiceImpl) ListClubs(ctx context.Context, session *models.Session, page models.Page) (*dto.ListResponse[views.ClubCard], error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	rows, total, err := s.clubRepo.ListClubs(ctx, page)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list clubs")
		return nil, err
	}
	return listResponse(views.ClubCards(rows), total, page), nil
}

// JoinClub adds the session user to a club as a plain member.
func (s *clubServiceImpl) JoinClub(ctx context.Context, session *models.Session, clubID string) (*models.ClubMembership, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validation.UUID("clubId", clubID); err != nil {
		return nil, err
	}

	insert := models.ClubMembershipInsert{ClubID: clubID, UserID: session.UserID, Role: helpers.Ptr(models.MembershipRoleMember)}

	membership, err := s.clubRepo.JoinClub(ctx, insert)
	if err != nil {
		s.logger.Warn().Err(err).Str("clubID", clubID).Str("userID", session.UserID).Msg("Failed to join club")
		return nil, err
	}

	s.logger.Info().Str("clubID", clubID).Str("userID", session.UserID).Msg("User joined club")
	return membership, nil
}

// LeaveClub removes the session user from a club.
func (s *clubServiceImpl) LeaveClub(ctx context.Context, session *models.Session, clubID string) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if err := validation.UUID("clubId", clubID); err != nil {
		return err
	}

	if err := s.clubRepo.LeaveClub(ctx, clubID, session.UserID); err != nil {
		s.logger.Warn().Err(err).Str("clubID", clubID).Str("userID", session.UserID).Msg("Failed to leave club")
		return err
	}
	return nil
}

// ListMembers returns one page of a club's members.
func (s *clubServiceImpl) ListMembers(ctx context.Context, session *models.Session, clubID string, page models.Page) (*dto.ListResponse[views.MemberRow], error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validation.UUID("clubId", clubID); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	rows, total, err := s.clubRepo.ListClubMembers(ctx, clubID, page)
	if err != nil {
		s.logger.Error().Err(err).Str("clubID", clubID).Msg("Failed to list club members")
		return nil, err
	}
	return listResponse(views.MemberRows(rows), total, page), nil
}
