package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// PostgresResourceRepository handles database operations for shared resources.
type PostgresResourceRepository struct {
	DB DBTX
}

// NewResourceRepository creates a new instance of PostgresResourceRepository.
func NewResourceRepository(db DBTX) *PostgresResourceRepository {
	return &PostgresResourceRepository{DB: db}
}

func resourceListQuery(page models.Page) squirrel.SelectBuilder {
	builder := psql.Select(
		"r.id", "r.user_id", "r.department_id", "r.course_code", "r.title", "r.file_url",
		"r.resource_type", "r.downloads", "r.created_at",
		"pr.full_name AS uploader_name", "d.name AS department_name",
		totalCountColumn,
	).
		From("resources r").
		LeftJoin("profiles pr ON pr.id = r.user_id").
		LeftJoin("departments d ON d.id = r.department_id").
		OrderBy("r.created_at DESC", "r.id DESC")
	return paginate(builder, page)
}

// ListResources retrieves a page of resources, newest first.
func (r *PostgresResourceRepository) ListResources(ctx context.Context, page models.Page) ([]models.ResourceWithRelations, int64, error) {
	rows, err := queryRows(ctx, r.DB, "listResources", resourceListQuery(page), func(rows pgx.Rows) (paged[models.ResourceWithRelations], error) {
		var row paged[models.ResourceWithRelations]
		res := &row.item
		err := rows.Scan(
			&res.ID, &res.UserID, &res.DepartmentID, &res.CourseCode, &res.Title, &res.FileURL,
			&res.ResourceType, &res.Downloads, &res.CreatedAt,
			&res.UploaderName, &res.DepartmentName,
			&row.total,
		)
		return row, err
	})
	if err != nil {
		return nil, 0, err
	}
	items, total := splitPaged(rows)
	return items, total, nil
}

// CreateResource inserts a resource.
func (r *PostgresResourceRepository) CreateResource(ctx context.Context, insert models.ResourceInsert) (*models.Resource, error) {
	builder := psql.Insert("resources").
		SetMap(insert.Columns()).
		Suffix("RETURNING id, user_id, department_id, course_code, title, file_url, resource_type, downloads, created_at")

	var res models.Resource
	err := queryRow(ctx, r.DB, "createResource", builder, func(row pgx.Row) error {
		return row.Scan(&res.ID, &res.UserID, &res.DepartmentID, &res.CourseCode, &res.Title, &res.FileURL, &res.ResourceType, &res.Downloads, &res.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// recordDownloadQuery increments the counter in one statement.
func recordDownloadQuery(resourceID string) squirrel.UpdateBuilder {
	return psql.Update("resources").
		Set("downloads", squirrel.Expr("downloads + 1")).
		Where(squirrel.Eq{"id": resourceID}).
		Suffix("RETURNING downloads")
}

// RecordDownload increments a resource's download counter.
func (r *PostgresResourceRepository) RecordDownload(ctx context.Context, resourceID string) (int, error) {
	var downloads int
	err := queryRow(ctx, r.DB, "recordDownload", recordDownloadQuery(resourceID), func(row pgx.Row) error {
		return row.Scan(&downloads)
	})
	if errors.Is(err, apperrors.ErrNotFound) {
		return 0, apperrors.NewNotFoundError("resource not found")
	}
	return downloads, err
}
