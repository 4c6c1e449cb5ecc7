package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// PostgresClubRepository handles database operations for clubs and memberships.
type PostgresClubRepository struct {
	DB DBTX
}

// NewClubRepository creates a new instance of PostgresClubRepository.
func NewClubRepository(db DBTX) *PostgresClubRepository {
	return &PostgresClubRepository{DB: db}
}

const clubReturning = "RETURNING id, name, university_id, description, avatar_url, member_count, created_at"

func clubListQuery(page models.Page) squirrel.SelectBuilder {
	builder := psql.Select(
		"c.id", "c.name", "c.university_id", "c.description", "c.avatar_url",
		"c.member_count", "c.created_at",
		"u.name AS university_name",
		totalCountColumn,
	).
		From("clubs c").
		LeftJoin("universities u ON u.id = c.university_id").
		OrderBy("c.created_at DESC", "c.id DESC")
	return paginate(builder, page)
}

// ListClubs retrieves a page of clubs with their university name, newest first.
func (r *PostgresClubRepository) ListClubs(ctx context.Context, page models.Page) ([]models.ClubWithUniversity, int64, error) {
	rows, err := queryRows(ctx, r.DB, "listClubs", clubListQuery(page), func(rows pgx.Rows) (paged[models.ClubWithUniversity], error) {
		var row paged[models.ClubWithUniversity]
		c := &row.item
		err := rows.Scan(
			&c.ID, &c.Name, &c.UniversityID, &c.Description, &c.AvatarURL,
			&c.MemberCount, &c.CreatedAt, &c.UniversityName, &row.total,
		)
		return row, err
	})
	if err != nil {
		return nil, 0, err
	}
	items, total := splitPaged(rows)
	return items, total, nil
}

// CreateClub inserts a club.
func (r *PostgresClubRepository) CreateClub(ctx context.Context, insert models.ClubInsert) (*models.Club, error) {
	builder := psql.Insert("clubs").SetMap(insert.Columns()).Suffix(clubReturning)

	var c models.Club
	err := queryRow(ctx, r.DB, "createClub", builder, func(row pgx.Row) error {
		return row.Scan(&c.ID, &c.Name, &c.UniversityID, &c.Description, &c.AvatarURL, &c.MemberCount, &c.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// JoinClub inserts a membership. Joining twice is a conflict.
func (r *PostgresClubRepository) JoinClub(ctx context.Context, insert models.ClubMembershipInsert) (*models.ClubMembership, error) {
	builder := psql.Insert("club_memberships").
		SetMap(insert.Columns()).
		Suffix("RETURNING id, club_id, user_id, role, joined_at")

	var m models.ClubMembership
	err := queryRow(ctx, r.DB, "joinClub", builder, func(row pgx.Row) error {
		return row.Scan(&m.ID, &m.ClubID, &m.UserID, &m.Role, &m.JoinedAt)
	})
	switch {
	case errors.Is(err, apperrors.ErrConflict):
		return nil, apperrors.NewConflictError("already a member of this club")
	case errors.Is(err, apperrors.ErrNotFound):
		return nil, apperrors.ErrClubNotFound
	case err != nil:
		return nil, err
	}
	return &m, nil
}

// LeaveClub deletes the membership. Leaving a club one is not in is not found.
func (r *PostgresClubRepository) LeaveClub(ctx context.Context, clubID, userID string) error {
	builder := psql.Delete("club_memberships").Where(squirrel.Eq{"club_id": clubID, "user_id": userID})
	affected, err := exec(ctx, r.DB, "leaveClub", builder)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("membership not found")
	}
	return nil
}

func clubMembersQuery(clubID string, page models.Page) squirrel.SelectBuilder {
	builder := psql.Select(
		"m.id", "m.club_id", "m.user_id", "m.role", "m.joined_at",
		"pr.full_name", "pr.avatar_url", "pr.role AS user_role",
		totalCountColumn,
	).
		From("club_memberships m").
		LeftJoin("profiles pr ON pr.id = m.user_id").
		Where(squirrel.Eq{"m.club_id": clubID}).
		OrderBy("m.joined_at ASC", "m.id ASC")
	return paginate(builder, page)
}

// ListClubMembers retrieves a page of a club's members in join order.
func (r *PostgresClubRepository) ListClubMembers(ctx context.Context, clubID string, page models.Page) ([]models.ClubMember, int64, error) {
	rows, err := queryRows(ctx, r.DB, "listClubMembers", clubMembersQuery(clubID, page), func(rows pgx.Rows) (paged[models.ClubMember], error) {
		var row paged[models.ClubMember]
		m := &row.item
		err := rows.Scan(
			&m.ID, &m.ClubID, &m.UserID, &m.Role, &m.JoinedAt,
			&m.FullName, &m.AvatarURL, &m.UserRole, &row.total,
		)
		return row, err
	})
	if err != nil {
		return nil, 0, err
	}
	items, total := splitPaged(rows)
	return items, total, nil
}
