package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/pkg/dberrors"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
	"github.com/yigit/uniconnect/internal/pkg/logger"
)

// DBTX is the subset of pgxpool.Pool and pgx.Tx the repositories need.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql builds statements with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// totalCountColumn returns the unpaged row count alongside every row, so a
// page and its total come from one snapshot.
const totalCountColumn = "COUNT(*) OVER() AS total_count"

// UniversityRepository reads and writes universities and departments.
type UniversityRepository interface {
	ListUniversities(ctx context.Context) ([]models.University, error)
	ListDepartments(ctx context.Context, universityID *string) ([]models.Department, error)
	CreateUniversity(ctx context.Context, insert models.UniversityInsert) (*models.University, error)
	CreateDepartment(ctx context.Context, insert models.DepartmentInsert) (*models.Department, error)
}

// ProfileRepository reads and writes profiles.
type ProfileRepository interface {
	FetchProfile(ctx context.Context, userID string) (*models.Profile, error)
	FetchProfileWithDepartment(ctx context.Context, userID string) (*models.ProfileWithDepartment, error)
	CreateProfile(ctx context.Context, insert models.ProfileInsert) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error)
	ListTopActiveUsers(ctx context.Context, limit int) ([]models.TopActiveUser, error)
}

// PostRepository reads and writes posts, likes and comments.
type PostRepository interface {
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.PostWithAuthor, int64, error)
	CreatePost(ctx context.Context, insert models.PostInsert) (*models.Post, error)
	// ToggleLike removes the caller's like when currentlyLiked, otherwise adds
	// it, and returns the post's like count after the write.
	ToggleLike(ctx context.Context, postID, userID string, currentlyLiked bool) (int, error)
	LikedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error)
	ListComments(ctx context.Context, postID string, page models.Page) ([]models.CommentWithAuthor, int64, error)
	CreateComment(ctx context.Context, insert models.CommentInsert) (*models.Comment, error)
}

// ClubRepository reads and writes clubs and memberships.
type ClubRepository interface {
	ListClubs(ctx context.Context, page models.Page) ([]models.ClubWithUniversity, int64, error)
	CreateClub(ctx context.Context, insert models.ClubInsert) (*models.Club, error)
	JoinClub(ctx context.Context, insert models.ClubMembershipInsert) (*models.ClubMembership, error)
	LeaveClub(ctx context.Context, clubID, userID string) error
	ListClubMembers(ctx context.Context, clubID string, page models.Page) ([]models.ClubMember, int64, error)
}

// EventRepository reads and writes events.
type EventRepository interface {
	ListUpcomingEvents(ctx context.Context, now time.Time, page models.Page) ([]models.EventWithClub, int64, error)
	CreateEvent(ctx context.Context, insert models.EventInsert) (*models.Event, error)
}

// ResourceRepository reads and writes shared resources.
type ResourceRepository interface {
	ListResources(ctx context.Context, page models.Page) ([]models.ResourceWithRelations, int64, error)
	CreateResource(ctx context.Context, insert models.ResourceInsert) (*models.Resource, error)
	// RecordDownload increments the download counter and returns the new value.
	RecordDownload(ctx context.Context, resourceID string) (int, error)
}

// CourseReviewRepository reads and writes course reviews.
type CourseReviewRepository interface {
	CreateCourseReview(ctx context.Context, insert models.CourseReviewInsert) (*models.CourseReview, error)
	ListCourseRatings(ctx context.Context, page models.Page) ([]models.CourseRating, int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Universities  UniversityRepository
	Profiles      ProfileRepository
	Posts         PostRepository
	Clubs         ClubRepository
	Events        EventRepository
	Resources     ResourceRepository
	CourseReviews CourseReviewRepository
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Universities:  NewUniversityRepository(db),
		Profiles:      NewProfileRepository(db),
		Posts:         NewPostRepository(db),
		Clubs:         NewClubRepository(db),
		Events:        NewEventRepository(db),
		Resources:     NewResourceRepository(db),
		CourseReviews: NewCourseReviewRepository(db),
	}
}

// paginate applies the page's offset and limit to a select.
func paginate(builder squirrel.SelectBuilder, page models.Page) squirrel.SelectBuilder {
	offset, limit := helpers.CalculateOffsetLimit(page.Page, page.Size)
	return builder.Offset(offset).Limit(limit)
}

// toSQL renders a builder, logging failures the same way for every query.
func toSQL(op string, builder squirrel.Sqlizer) (string, []interface{}, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building SQL")
		return "", nil, dberrors.Classify(op, err)
	}
	return sql, args, nil
}

// queryRow runs a single-row statement and scans it with scan.
func queryRow(ctx context.Context, db DBTX, op string, builder squirrel.Sqlizer, scan func(pgx.Row) error) error {
	sql, args, err := toSQL(op, builder)
	if err != nil {
		return err
	}

	if err := scan(db.QueryRow(ctx, sql, args...)); err != nil {
		if err != pgx.ErrNoRows {
			logger.Error().Err(err).Str("op", op).Msg("Error executing query")
		}
		return dberrors.Classify(op, err)
	}
	return nil
}

// queryRows runs a multi-row statement and scans each row with scan.
func queryRows[T any](ctx context.Context, db DBTX, op string, builder squirrel.Sqlizer, scan func(pgx.Rows) (T, error)) ([]T, error) {
	sql, args, err := toSQL(op, builder)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing query")
		return nil, dberrors.Classify(op, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			logger.Error().Err(err).Str("op", op).Msg("Error scanning row")
			return nil, dberrors.Classify(op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error iterating rows")
		return nil, dberrors.Classify(op, err)
	}
	return items, nil
}

// exec runs a statement that returns no rows.
func exec(ctx context.Context, db DBTX, op string, builder squirrel.Sqlizer) (int64, error) {
	sql, args, err := toSQL(op, builder)
	if err != nil {
		return 0, err
	}

	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing statement")
		return 0, dberrors.Classify(op, err)
	}
	return tag.RowsAffected(), nil
}

// paged is a row together with the window total.
type paged[T any] struct {
	item  T
	total int64
}

// splitPaged separates rows from the window total.
func splitPaged[T any](rows []paged[T]) ([]T, int64) {
	items := make([]T, len(rows))
	var total int64
	for i, row := range rows {
		items[i] = row.item
		total = row.total
	}
	return items, total
}
