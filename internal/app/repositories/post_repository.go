package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// PostgresPostRepository handles database operations for posts, likes and comments.
type PostgresPostRepository struct {
	DB DBTX
}

// NewPostRepository creates a new instance of PostgresPostRepository.
func NewPostRepository(db DBTX) *PostgresPostRepository {
	return &PostgresPostRepository{DB: db}
}

var postColumns = []string{
	"p.id", "p.user_id", "p.content", "p.category", "p.image_url",
	"p.like_count", "p.comment_count", "p.created_at",
}

// postListQuery selects one feed page, newest first, with the author's
// profile. A nil category selects every category.
func postListQuery(filter models.PostFilter) squirrel.SelectBuilder {
	columns := append([]string{}, postColumns...)
	columns = append(columns,
		"pr.full_name AS author_full_name",
		"pr.avatar_url AS author_avatar_url",
		"pr.role AS author_role",
		totalCountColumn,
	)

	builder := psql.Select(columns...).
		From("posts p").
		LeftJoin("profiles pr ON pr.id = p.user_id")
	if filter.Category != nil {
		builder = builder.Where(squirrel.Eq{"p.category": *filter.Category})
	}
	builder = builder.OrderBy("p.created_at DESC", "p.id DESC")
	return paginate(builder, filter.Page)
}

func scanPostWithAuthor(rows pgx.Rows) (paged[models.PostWithAuthor], error) {
	var row paged[models.PostWithAuthor]
	p := &row.item
	err := rows.Scan(
		&p.ID, &p.UserID, &p.Content, &p.Category, &p.ImageURL,
		&p.LikeCount, &p.CommentCount, &p.CreatedAt,
		&p.Author.FullName, &p.Author.AvatarURL, &p.Author.Role,
		&row.total,
	)
	return row, err
}

// ListPosts retrieves one feed page and the total number of matching posts.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.PostWithAuthor, int64, error) {
	rows, err := queryRows(ctx, r.DB, "listPosts", postListQuery(filter), scanPostWithAuthor)
	if err != nil {
		return nil, 0, err
	}
	items, total := splitPaged(rows)
	return items, total, nil
}

func postInsertQuery(insert models.PostInsert) squirrel.InsertBuilder {
	return psql.Insert("posts").
		SetMap(insert.Columns()).
		Suffix("RETURNING id, user_id, content, category, image_url, like_count, comment_count, created_at")
}

// CreatePost inserts one post and returns the stored row.
func (r *PostgresPostRepository) CreatePost(ctx context.Context, insert models.PostInsert) (*models.Post, error) {
	var p models.Post
	err := queryRow(ctx, r.DB, "createPost", postInsertQuery(insert), func(row pgx.Row) error {
		return row.Scan(&p.ID, &p.UserID, &p.Content, &p.Category, &p.ImageURL, &p.LikeCount, &p.CommentCount, &p.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// likeWriteQuery deletes the (post, user) like when liked, otherwise inserts
// it. A duplicate insert is a no-op, so a pair never has more than one row.
func likeWriteQuery(postID, userID string, currentlyLiked bool) squirrel.Sqlizer {
	if currentlyLiked {
		return psql.Delete("post_likes").
			Where(squirrel.Eq{"post_id": postID, "user_id": userID})
	}
	return psql.Insert("post_likes").
		SetMap(models.PostLikeInsert{PostID: postID, UserID: userID}.Columns()).
		Suffix("ON CONFLICT (post_id, user_id) DO NOTHING")
}

// ToggleLike writes the like change and reads back the trigger-maintained count.
func (r *PostgresPostRepository) ToggleLike(ctx context.Context, postID, userID string, currentlyLiked bool) (int, error) {
	if _, err := exec(ctx, r.DB, "toggleLike", likeWriteQuery(postID, userID, currentlyLiked)); err != nil {
		// A missing profile keeps the store's user_id error.
		if apperrors.Constraint(err) == "post_likes_post_id_fkey" {
			return 0, apperrors.ErrPostNotFound
		}
		return 0, err
	}

	var count int
	err := queryRow(ctx, r.DB, "toggleLike", psql.Select("like_count").From("posts").Where(squirrel.Eq{"id": postID}), func(row pgx.Row) error {
		return row.Scan(&count)
	})
	if errors.Is(err, apperrors.ErrNotFound) {
		return 0, apperrors.ErrPostNotFound
	}
	return count, err
}

func likedPostIDsQuery(userID string, postIDs []string) squirrel.SelectBuilder {
	builder := psql.Select("post_id").From("post_likes").Where(squirrel.Eq{"user_id": userID})
	if len(postIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"post_id": postIDs})
	}
	return builder
}

// LikedPostIDs returns which of postIDs the user has liked. An empty postIDs
// returns every post the user has liked.
func (r *PostgresPostRepository) LikedPostIDs(ctx context.Context, userID string, postIDs []string) ([]string, error) {
	return queryRows(ctx, r.DB, "likedPostIds", likedPostIDsQuery(userID, postIDs), func(rows pgx.Rows) (string, error) {
		var id string
		err := rows.Scan(&id)
		return id, err
	})
}

func commentListQuery(postID string, page models.Page) squirrel.SelectBuilder {
	builder := psql.Select(
		"c.id", "c.post_id", "c.user_id", "c.text", "c.like_count", "c.created_at",
		"pr.full_name AS author_full_name",
		"pr.avatar_url AS author_avatar_url",
		"pr.role AS author_role",
		totalCountColumn,
	).
		From("comments c").
		LeftJoin("profiles pr ON pr.id = c.user_id").
		Where(squirrel.Eq{"c.post_id": postID}).
		OrderBy("c.created_at ASC", "c.id ASC")
	return paginate(builder, page)
}

// ListComments retrieves a page of a post's comments, oldest first.
func (r *PostgresPostRepository) ListComments(ctx context.Context, postID string, page models.Page) ([]models.CommentWithAuthor, int64, error) {
	rows, err := queryRows(ctx, r.DB, "listComments", commentListQuery(postID, page), func(rows pgx.Rows) (paged[models.CommentWithAuthor], error) {
		var row paged[models.CommentWithAuthor]
		c := &row.item
		err := rows.Scan(
			&c.ID, &c.PostID, &c.UserID, &c.Text, &c.LikeCount, &c.CreatedAt,
			&c.Author.FullName, &c.Author.AvatarURL, &c.Author.Role,
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

// CreateComment inserts one comment. A missing post is reported as not found.
func (r *PostgresPostRepository) CreateComment(ctx context.Context, insert models.CommentInsert) (*models.Comment, error) {
	builder := psql.Insert("comments").
		SetMap(insert.Columns()).
		Suffix("RETURNING id, post_id, user_id, text, like_count, created_at")

	var c models.Comment
	err := queryRow(ctx, r.DB, "createComment", builder, func(row pgx.Row) error {
		return row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.LikeCount, &c.CreatedAt)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	return &c, nil
}
