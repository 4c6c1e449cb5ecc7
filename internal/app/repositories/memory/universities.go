package memory

import (
	"context"
	"sort"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

type universityRepository struct {
	db *DB
}

// NewUniversityRepository creates the in-memory university repository.
func NewUniversityRepository(db *DB) repositories.UniversityRepository {
	return &universityRepository{db: db}
}

func (r *universityRepository) ListUniversities(_ context.Context) ([]models.University, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := make([]models.University, 0, len(r.db.universities))
	for _, u := range r.db.universities {
		items = append(items, *u)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *universityRepository) ListDepartments(_ context.Context, universityID *string) ([]models.Department, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := make([]models.Department, 0, len(r.db.departments))
	for _, d := range r.db.departments {
		if universityID != nil && d.UniversityID != *universityID {
			continue
		}
		items = append(items, *d)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *universityRepository) CreateUniversity(_ context.Context, insert models.UniversityInsert) (*models.University, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id, err := newID(insert.ID)
	if err != nil {
		return nil, err
	}
	if _, exists := r.db.universities[id]; exists {
		return nil, apperrors.NewConflictError("duplicate key value violates unique constraint \"universities_pkey\"")
	}

	u := &models.University{ID: id, Name: insert.Name, Location: insert.Location, CreatedAt: r.db.now()}
	r.db.universities[id] = u
	out := *u
	return &out, nil
}

func (r *universityRepository) CreateDepartment(_ context.Context, insert models.DepartmentInsert) (*models.Department, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id, err := newID(insert.ID)
	if err != nil {
		return nil, err
	}
	if _, exists := r.db.departments[id]; exists {
		return nil, apperrors.NewConflictError("duplicate key value violates unique constraint \"departments_pkey\"")
	}
	if _, ok := r.db.universities[insert.UniversityID]; !ok {
		return nil, foreignKeyError("departments", "university_id")
	}

	d := &models.Department{ID: id, Name: insert.Name, UniversityID: insert.UniversityID, CreatedAt: r.db.now()}
	r.db.departments[id] = d
	out := *d
	return &out, nil
}
