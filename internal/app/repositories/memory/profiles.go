package memory

import (
	"context"
	"sort"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

type profileRepository struct {
	db *DB
}

// NewProfileRepository creates the in-memory profile repository.
func NewProfileRepository(db *DB) repositories.ProfileRepository {
	return &profileRepository{db: db}
}

func copyProfile(p *models.Profile) models.Profile {
	out := *p
	out.Skills = cloneStrings(p.Skills)
	out.Interests = cloneStrings(p.Interests)
	return out
}

func (r *profileRepository) FetchProfile(_ context.Context, userID string) (*models.Profile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	out := copyProfile(p)
	return &out, nil
}

func (r *profileRepository) FetchProfileWithDepartment(_ context.Context, userID string) (*models.ProfileWithDepartment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	out := &models.ProfileWithDepartment{Profile: copyProfile(p)}
	out.DepartmentName, out.UniversityName = r.db.departmentNames(p.DepartmentID)
	return out, nil
}

// departmentNames resolves the optional department and its university.
func (db *DB) departmentNames(departmentID *string) (department, university *string) {
	if departmentID == nil {
		return nil, nil
	}
	d, ok := db.departments[*departmentID]
	if !ok {
		return nil, nil
	}
	department = stringPtr(d.Name)
	if u, ok := db.universities[d.UniversityID]; ok {
		university = stringPtr(u.Name)
	}
	return department, university
}

func (r *profileRepository) CreateProfile(_ context.Context, insert models.ProfileInsert) (*models.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, err := newID(&insert.ID); err != nil {
		return nil, err
	}
	if _, exists := r.db.profiles[insert.ID]; exists {
		return nil, apperrors.NewConflictError("duplicate key value violates unique constraint \"profiles_pkey\"")
	}

	role := models.RoleStudent
	if insert.Role != nil {
		if !insert.Role.Valid() {
			return nil, apperrors.NewValidationError("role", "invalid input value for enum user_role: \""+string(*insert.Role)+"\"")
		}
		role = *insert.Role
	}
	if insert.DepartmentID != nil {
		if _, ok := r.db.departments[*insert.DepartmentID]; !ok {
			return nil, foreignKeyError("profiles", "department_id")
		}
	}

	now := r.db.now()
	p := &models.Profile{
		ID:           insert.ID,
		FullName:     insert.FullName,
		Role:         role,
		DepartmentID: insert.DepartmentID,
		Bio:          insert.Bio,
		AvatarURL:    insert.AvatarURL,
		Skills:       cloneStrings(insert.Skills),
		Interests:    cloneStrings(insert.Interests),
		Year:         insert.Year,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.db.profiles[p.ID] = p
	out := copyProfile(p)
	return &out, nil
}

func (r *profileRepository) UpdateProfile(_ context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	if update.Empty() {
		out := copyProfile(p)
		return &out, nil
	}
	if update.Role != nil && !update.Role.Valid() {
		return nil, apperrors.NewValidationError("role", "invalid input value for enum user_role: \""+string(*update.Role)+"\"")
	}
	if update.DepartmentID != nil {
		if _, ok := r.db.departments[*update.DepartmentID]; !ok {
			return nil, foreignKeyError("profiles", "department_id")
		}
	}

	if update.FullName != nil {
		p.FullName = *update.FullName
	}
	if update.Role != nil {
		p.Role = *update.Role
	}
	if update.DepartmentID != nil {
		p.DepartmentID = update.DepartmentID
	}
	if update.Bio != nil {
		p.Bio = update.Bio
	}
	if update.AvatarURL != nil {
		p.AvatarURL = update.AvatarURL
	}
	if update.Skills != nil {
		p.Skills = cloneStrings(*update.Skills)
	}
	if update.Interests != nil {
		p.Interests = cloneStrings(*update.Interests)
	}
	if update.Year != nil {
		p.Year = update.Year
	}
	p.UpdatedAt = r.db.now()

	out := copyProfile(p)
	return &out, nil
}

func (r *profileRepository) ListTopActiveUsers(_ context.Context, limit int) ([]models.TopActiveUser, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	profiles := make([]*models.Profile, 0, len(r.db.profiles))
	for _, p := range r.db.profiles {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].PostCount != profiles[j].PostCount {
			return profiles[i].PostCount > profiles[j].PostCount
		}
		return profiles[i].FullName < profiles[j].FullName
	})
	if limit > 0 && len(profiles) > limit {
		profiles = profiles[:limit]
	}

	items := make([]models.TopActiveUser, 0, len(profiles))
	for _, p := range profiles {
		id, name, role, count := p.ID, p.FullName, p.Role, p.PostCount
		row := models.TopActiveUser{ID: &id, FullName: &name, Role: &role, PostCount: &count}
		row.DepartmentName, row.UniversityName = r.db.departmentNames(p.DepartmentID)
		items = append(items, row)
	}
	return items, nil
}
