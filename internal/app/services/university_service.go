package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/pkg/validation"
)

// UniversityService defines the interface for university and department lookups
type UniversityService interface {
	ListUniversities(ctx context.Context) ([]models.University, error)
	ListDepartments(ctx context.Context, universityID *string) ([]models.Department, error)
}

type universityServiceImpl struct {
	universityRepo repositories.UniversityRepository
	logger         zerolog.Logger
}

// NewUniversityService creates a new UniversityService
func NewUniversityService(universityRepo repositories.UniversityRepository, logger zerolog.Logger) UniversityService {
	return &universityServiceImpl{universityRepo: universityRepo, logger: logger}
}

// ListUniversities returns every university by name.
func (s *universityServiceImpl) ListUniversities(ctx context.Context) ([]models.University, error) {
	universities, err := s.universityRepo.ListUniversities(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list universities")
		return nil, err
	}
	return universities, nil
}

// ListDepartments returns departments, optionally of one university.
func (s *universityServiceImpl) ListDepartments(ctx context.Context, universityID *string) ([]models.Department, error) {
	if err := validation.OptionalUUID("universityId", universityID); err != nil {
		return nil, err
	}

	departments, err := s.universityRepo.ListDepartments(ctx, universityID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list departments")
		return nil, err
	}
	return departments, nil
}
