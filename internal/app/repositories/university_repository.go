package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniconnect/internal/app/models"
)

// PostgresUniversityRepository handles database operations for universities and departments.
type PostgresUniversityRepository struct {
	DB DBTX
}

// NewUniversityRepository creates a new instance of PostgresUniversityRepository.
func NewUniversityRepository(db DBTX) *PostgresUniversityRepository {
	return &PostgresUniversityRepository{DB: db}
}

// ListUniversities returns every university by name.
func (r *PostgresUniversityRepository) ListUniversities(ctx context.Context) ([]models.University, error) {
	builder := psql.Select("id", "name", "location", "created_at").From("universities").OrderBy("name ASC")
	return queryRows(ctx, r.DB, "listUniversities", builder, func(rows pgx.Rows) (models.University, error) {
		var u models.University
		err := rows.Scan(&u.ID, &u.Name, &u.Location, &u.CreatedAt)
		return u, err
	})
}

func departmentListQuery(universityID *string) squirrel.SelectBuilder {
	builder := psql.Select("id", "name", "university_id", "created_at").From("departments")
	if universityID != nil {
		builder = builder.Where(squirrel.Eq{"university_id": *universityID})
	}
	return builder.OrderBy("name ASC")
}

// ListDepartments returns departments by name, optionally for one university.
func (r *PostgresUniversityRepository) ListDepartments(ctx context.Context, universityID *string) ([]models.Department, error) {
	return queryRows(ctx, r.DB, "listDepartments", departmentListQuery(universityID), func(rows pgx.Rows) (models.Department, error) {
		var d models.Department
		err := rows.Scan(&d.ID, &d.Name, &d.UniversityID, &d.CreatedAt)
		return d, err
	})
}

// CreateUniversity inserts a university.
func (r *PostgresUniversityRepository) CreateUniversity(ctx context.Context, insert models.UniversityInsert) (*models.University, error) {
	builder := psql.Insert("universities").SetMap(insert.Columns()).Suffix("RETURNING id, name, location, created_at")

	var u models.University
	err := queryRow(ctx, r.DB, "createUniversity", builder, func(row pgx.Row) error {
		return row.Scan(&u.ID, &u.Name, &u.Location, &u.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateDepartment inserts a department.
func (r *PostgresUniversityRepository) CreateDepartment(ctx context.Context, insert models.DepartmentInsert) (*models.Department, error) {
	builder := psql.Insert("departments").SetMap(insert.Columns()).Suffix("RETURNING id, name, university_id, created_at")

	var d models.Department
	err := queryRow(ctx, r.DB, "createDepartment", builder, func(row pgx.Row) error {
		return row.Scan(&d.ID, &d.Name, &d.UniversityID, &d.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}
