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

// ResourceService defines the interface for shared resource operations
type ResourceService interface {
	ListResources(ctx context.Context, session *models.Session, page models.Page) (*dto.ListResponse[views.ResourceCard], error)
	CreateResource(ctx context.Context, session *models.Session, req *dto.CreateResourceRequest) (*views.ResourceCard, error)
	RecordDownload(ctx context.Context, session *models.Session, resourceID string) (*dto.DownloadResponse, error)
}

type resourceServiceImpl struct {
	resourceRepo repositories.ResourceRepository
	clock        helpers.Clock
	logger       zerolog.Logger
}

// NewResourceService creates a new ResourceService
func NewResourceService(resourceRepo repositories.ResourceRepository, clock helpers.Clock, logger zerolog.Logger) ResourceService {
	if clock == nil {
		clock = helpers.SystemClock
	}
	return &resourceServiceImpl{resourceRepo: resourceRepo, clock: clock, logger: logger}
}

// ListResources returns one page of resources, newest first.
func (s *resourceServiceImpl) ListResources(ctx context.Context, session *models.Session, page models.Page) (*dto.ListResponse[views.ResourceCard], error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	rows, total, err := s.resourceRepo.ListResources(ctx, page)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list resources")
		return nil, err
	}
	return listResponse(views.ResourceCards(rows, s.clock()), total, page), nil
}

// CreateResource shares a resource URL uploaded by the session user.
func (s *resourceServiceImpl) CreateResource(ctx context.Context, session *models.Session, req *dto.CreateResourceRequest) (*views.ResourceCard, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	courseCode, err := validation.NewStringValidation("courseCode", req.CourseCode).
		WithPattern(validation.CompiledPatterns.CourseCode).
		Validate()
	if err != nil {
		return nil, err
	}
	title, err := validation.NewStringValidation("title", req.Title).WithMaxLength(200).Validate()
	if err != nil {
		return nil, err
	}
	fileURL, err := validation.NewStringValidation("fileUrl", req.FileURL).Validate()
	if err != nil {
		return nil, err
	}
	if err := validation.OptionalUUID("departmentId", req.DepartmentID); err != nil {
		return nil, err
	}

	resource, err := s.resourceRepo.CreateResource(ctx, models.ResourceInsert{
		UserID:       session.UserID,
		DepartmentID: req.DepartmentID,
		CourseCode:   courseCode,
		Title:        title,
		FileURL:      fileURL,
		ResourceType: helpers.TrimmedOrNil(req.ResourceType),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("userID", session.UserID).Msg("Failed to create resource")
		return nil, err
	}

	card := views.NewResourceCard(models.ResourceWithRelations{Resource: *resource}, s.clock())
	return &card, nil
}

// RecordDownload counts one download and returns the new total.
func (s *resourceServiceImpl) RecordDownload(ctx context.Context, session *models.Session, resourceID string) (*dto.DownloadResponse, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validation.UUID("resourceId", resourceID); err != nil {
		return nil, err
	}

	downloads, err := s.resourceRepo.RecordDownload(ctx, resourceID)
	if err != nil {
		s.logger.Warn().Err(err).Str("resourceID", resourceID).Msg("Failed to record download")
		return nil, err
	}
	return &dto.DownloadResponse{ResourceID: resourceID, Downloads: downloads}, nil
}
