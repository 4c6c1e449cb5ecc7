package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// PostgresProfileRepository handles database operations for profiles.
type PostgresProfileRepository struct {
	DB DBTX
}

// NewProfileRepository creates a new instance of PostgresProfileRepository.
func NewProfileRepository(db DBTX) *PostgresProfileRepository {
	return &PostgresProfileRepository{DB: db}
}

const profileReturning = "RETURNING id, full_name, role, department_id, bio, avatar_url, skills, interests, post_count, year, created_at, updated_at"

var profileColumns = []string{
	"p.id", "p.full_name", "p.role", "p.department_id", "p.bio", "p.avatar_url",
	"p.skills", "p.interests", "p.post_count", "p.year", "p.created_at", "p.updated_at",
}

func profileTargets(p *models.Profile) []interface{} {
	return []interface{}{
		&p.ID, &p.FullName, &p.Role, &p.DepartmentID, &p.Bio, &p.AvatarURL,
		&p.Skills, &p.Interests, &p.PostCount, &p.Year, &p.CreatedAt, &p.UpdatedAt,
	}
}

// notFoundAsProfile reports a missing row as a missing profile.
func notFoundAsProfile(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrProfileNotFound
	}
	return err
}

// FetchProfile returns exactly one profile or ErrProfileNotFound.
func (r *PostgresProfileRepository) FetchProfile(ctx context.Context, userID string) (*models.Profile, error) {
	builder := psql.Select(profileColumns...).From("profiles p").Where(squirrel.Eq{"p.id": userID})

	var p models.Profile
	err := queryRow(ctx, r.DB, "fetchProfile", builder, func(row pgx.Row) error {
		return row.Scan(profileTargets(&p)...)
	})
	if err != nil {
		return nil, notFoundAsProfile(err)
	}
	return &p, nil
}

func profileWithDepartmentQuery(userID string) squirrel.SelectBuilder {
	columns := append([]string{}, profileColumns...)
	columns = append(columns, "d.name AS department_name", "u.name AS university_name")
	return psql.Select(columns...).
		From("profiles p").
		LeftJoin("departments d ON d.id = p.department_id").
		LeftJoin("universities u ON u.id = d.university_id").
		Where(squirrel.Eq{"p.id": userID})
}

// FetchProfileWithDepartment returns the profile with department and university names.
func (r *PostgresProfileRepository) FetchProfileWithDepartment(ctx context.Context, userID string) (*models.ProfileWithDepartment, error) {
	var p models.ProfileWithDepartment
	err := queryRow(ctx, r.DB, "fetchProfileWithDepartment", profileWithDepartmentQuery(userID), func(row pgx.Row) error {
		targets := append(profileTargets(&p.Profile), &p.DepartmentName, &p.UniversityName)
		return row.Scan(targets...)
	})
	if err != nil {
		return nil, notFoundAsProfile(err)
	}
	return &p, nil
}

// CreateProfile inserts a profile for a provider identity.
func (r *PostgresProfileRepository) CreateProfile(ctx context.Context, insert models.ProfileInsert) (*models.Profile, error) {
	builder := psql.Insert("profiles").SetMap(insert.Columns()).Suffix(profileReturning)

	var p models.Profile
	err := queryRow(ctx, r.DB, "createProfile", builder, func(row pgx.Row) error {
		return row.Scan(profileTargets(&p)...)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func profileUpdateQuery(userID string, update models.ProfileUpdate) squirrel.UpdateBuilder {
	return psql.Update("profiles").
		SetMap(update.Changes()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": userID}).
		Suffix(profileReturning)
}

// UpdateProfile applies the set fields and returns the updated profile.
func (r *PostgresProfileRepository) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	if update.Empty() {
		return r.FetchProfile(ctx, userID)
	}

	var p models.Profile
	err := queryRow(ctx, r.DB, "updateProfile", profileUpdateQuery(userID, update), func(row pgx.Row) error {
		return row.Scan(profileTargets(&p)...)
	})
	if err != nil {
		return nil, notFoundAsProfile(err)
	}
	return &p, nil
}

func topActiveUsersQuery(limit int) squirrel.SelectBuilder {
	return psql.Select("id", "full_name", "role", "post_count", "department_name", "university_name").
		From("top_active_users").
		OrderBy("post_count DESC NULLS LAST", "full_name ASC").
		Limit(uint64(limit))
}

// ListTopActiveUsers reads the top_active_users view.
func (r *PostgresProfileRepository) ListTopActiveUsers(ctx context.Context, limit int) ([]models.TopActiveUser, error) {
	return queryRows(ctx, r.DB, "listTopActiveUsers", topActiveUsersQuery(limit), func(rows pgx.Rows) (models.TopActiveUser, error) {
		var u models.TopActiveUser
		err := rows.Scan(&u.ID, &u.FullName, &u.Role, &u.PostCount, &u.DepartmentName, &u.UniversityName)
		return u, err
	})
}
