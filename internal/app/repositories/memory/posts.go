package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

type postRepository struct {
	db *DB
}

// NewPostRepository creates the in-memory post repository.
func NewPostRepository(db *DB) repositories.PostRepository {
	return &postRepository{db: db}
}

func likeKey(postID, userID string) string {
	return postID + "/" + userID
}

func (db *DB) author(userID string) models.PostAuthor {
	p, ok := db.profiles[userID]
	if !ok {
		return models.PostAuthor{}
	}
	name, role := p.FullName, p.Role
	return models.PostAuthor{FullName: &name, AvatarURL: p.AvatarURL, Role: &role}
}

func (r *postRepository) ListPosts(_ context.Context, filter models.PostFilter) ([]models.PostWithAuthor, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := make([]models.PostWithAuthor, 0, len(r.db.posts))
	for _, p := range r.db.posts {
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		items = append(items, models.PostWithAuthor{Post: *p, Author: r.db.author(p.UserID)})
	}
	newestFirst(items,
		func(p models.PostWithAuthor) time.Time { return p.CreatedAt },
		func(p models.PostWithAuthor) string { return p.ID },
	)

	page, total := pageOf(items, filter.Page)
	return page, total, nil
}

func (r *postRepository) CreatePost(_ context.Context, insert models.PostInsert) (*models.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id, err := newID(insert.ID)
	if err != nil {
		return nil, err
	}
	if _, exists := r.db.posts[id]; exists {
		return nil, apperrors.NewConflictError("duplicate key value violates unique constraint \"posts_pkey\"")
	}
	if strings.TrimSpace(insert.Content) == "" {
		return nil, apperrors.NewValidationError("content", "new row for relation \"posts\" violates check constraint \"posts_content_not_blank\"")
	}

	category := models.CategoryGeneral
	if insert.Category != nil {
		if !insert.Category.Valid() {
			return nil, apperrors.NewValidationError("category", "invalid input value for enum post_category: \""+string(*insert.Category)+"\"")
		}
		category = *insert.Category
	}

	author, ok := r.db.profiles[insert.UserID]
	if !ok {
		return nil, foreignKeyError("posts", "user_id")
	}

	createdAt := r.db.now()
	if insert.CreatedAt != nil {
		createdAt = insert.CreatedAt.UTC()
	}

	p := &models.Post{
		ID:        id,
		UserID:    insert.UserID,
		Content:   insert.Content,
		Category:  category,
		ImageURL:  insert.ImageURL,
		CreatedAt: createdAt,
	}
	r.db.posts[id] = p
	author.PostCount++

	out := *p
	return &out, nil
}

func (r *postRepository) ToggleLike(_ context.Context, postID, userID string, currentlyLiked bool) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	post, ok := r.db.posts[postID]
	if !ok {
		return 0, apperrors.ErrPostNotFound
	}

	key := likeKey(postID, userID)
	_, liked := r.db.likes[key]
	switch {
	case currentlyLiked && liked:
		delete(r.db.likes, key)
		post.LikeCount--
	case !currentlyLiked && !liked:
		if _, ok := r.db.profiles[userID]; !ok {
			return 0, foreignKeyError("post_likes", "user_id")
		}
		id, _ := newID(nil)
		r.db.likes[key] = &models.PostLike{ID: id, PostID: postID, UserID: userID, CreatedAt: r.db.now()}
		post.LikeCount++
	}

	return post.LikeCount, nil
}

func (r *postRepository) LikedPostIDs(_ context.Context, userID string, postIDs []string) ([]string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ids := []string{}
	if len(postIDs) == 0 {
		for _, like := range r.db.likes {
			if like.UserID == userID {
				ids = append(ids, like.PostID)
			}
		}
		sort.Strings(ids)
		return ids, nil
	}

	for _, postID := range postIDs {
		if _, ok := r.db.likes[likeKey(postID, userID)]; ok {
			ids = append(ids, postID)
		}
	}
	return ids, nil
}

func (r *postRepository) ListComments(_ context.Context, postID string, page models.Page) ([]models.CommentWithAuthor, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := []models.CommentWithAuthor{}
	for _, c := range r.db.comments {
		if c.PostID == postID {
			items = append(items, models.CommentWithAuthor{Comment: *c, Author: r.db.author(c.UserID)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})

	out, total := pageOf(items, page)
	return out, total, nil
}

func (r *postRepository) CreateComment(_ context.Context, insert models.CommentInsert) (*models.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id, err := newID(insert.ID)
	if err != nil {
		return nil, err
	}
	post, ok := r.db.posts[insert.PostID]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	if _, ok := r.db.profiles[insert.UserID]; !ok {
		return nil, foreignKeyError("comments", "user_id")
	}

	c := &models.Comment{
		ID:        id,
		PostID:    insert.PostID,
		UserID:    insert.UserID,
		Text:      insert.Text,
		CreatedAt: r.db.now(),
	}
	r.db.comments[id] = c
	post.CommentCount++

	out := *c
	return &out, nil
}
