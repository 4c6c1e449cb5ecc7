package memory

import (
	"context"
	"time"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

type resourceRepository struct {
	db *DB
}

// NewResourceRepository creates the in-memory resource repository.
func NewResourceRepository(db *DB) repositories.ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) ListResources(_ context.Context, page models.Page) ([]models.ResourceWithRelations, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := make([]models.ResourceWithRelations, 0, len(r.db.resources))
	for _, res := range r.db.resources {
		row := models.ResourceWithRelations{Resource: *res}
		if p, ok := r.db.profiles[res.UserID]; ok {
			row.UploaderName = stringPtr(p.FullName)
		}
		row.DepartmentName, _ = r.db.departmentNames(res.DepartmentID)
		items = append(items, row)
	}
	newestFirst(items,
		func(r models.ResourceWithRelations) time.Time { return r.CreatedAt },
		func(r models.ResourceWithRelations) string { return r.ID },
	)

	out, total := pageOf(items, page)
	return out, total, nil
}

func (r *resourceRepository) CreateResource(_ context.Context, insert models.ResourceInsert) (*models.Resource, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id, err := newID(insert.ID)
	if err != nil {
		return nil, err
	}
	if _, exists := r.db.resources[id]; exists {
		return nil, apperrors.NewConflictError("duplicate key value violates unique constraint \"resources_pkey\"")
	}
	if _, ok := r.db.profiles[insert.UserID]; !ok {
		return nil, foreignKeyError("resources", "user_id")
	}
	if insert.DepartmentID != nil {
		if _, ok := r.db.departments[*insert.DepartmentID]; !ok {
			return nil, foreignKeyError("resources", "department_id")
		}
	}

	res := &models.Resource{
		ID:           id,
		UserID:       insert.UserID,
		DepartmentID: insert.DepartmentID,
		CourseCode:   insert.CourseCode,
		Title:        insert.Title,
		FileURL:      insert.FileURL,
		ResourceType: insert.ResourceType,
		CreatedAt:    r.db.now(),
	}
	r.db.resources[id] = res
	out := *res
	return &out, nil
}

func (r *resourceRepository) RecordDownload(_ context.Context, resourceID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	res, ok := r.db.resources[resourceID]
	if !ok {
		return 0, apperrors.NewNotFoundError("resource not found")
	}
	res.Downloads++
	return res.Downloads, nil
}
