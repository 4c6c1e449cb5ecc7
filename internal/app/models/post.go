package models

import "time"

// Post is a row of posts. LikeCount and CommentCount are maintained by the store.
type Post struct {
	ID           string       `json:"id" db:"id"`
	UserID       string       `json:"userId" db:"user_id"`
	Content      string       `json:"content" db:"content"`
	Category     PostCategory `json:"category" db:"category"`
	ImageURL     *string      `json:"imageUrl,omitempty" db:"image_url"`
	LikeCount    int          `json:"likeCount" db:"like_count"`
	CommentCount int          `json:"commentCount" db:"comment_count"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
}

// PostInsert creates a post. Category defaults to general in the store.
type PostInsert struct {
	ID        *string
	UserID    string
	Content   string
	Category  *PostCategory
	ImageURL  *string
	CreatedAt *time.Time
}

// Columns returns the columns to insert.
func (i PostInsert) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"user_id": i.UserID,
		"content": i.Content,
	}
	setColumn(cols, "id", i.ID)
	setColumn(cols, "category", i.Category)
	setColumn(cols, "image_url", i.ImageURL)
	setColumn(cols, "created_at", i.CreatedAt)
	return cols
}

// PostUpdate changes a post.
type PostUpdate struct {
	Content  *string
	Category *PostCategory
	ImageURL *string
}

// Changes returns the columns to set.
func (u PostUpdate) Changes() map[string]interface{} {
	cols := map[string]interface{}{}
	setColumn(cols, "content", u.Content)
	setColumn(cols, "category", u.Category)
	setColumn(cols, "image_url", u.ImageURL)
	return cols
}

// PostAuthor is the profile subset joined onto feed posts.
type PostAuthor struct {
	FullName  *string   `json:"fullName,omitempty" db:"author_full_name"`
	AvatarURL *string   `json:"avatarUrl,omitempty" db:"author_avatar_url"`
	Role      *UserRole `json:"role,omitempty" db:"author_role"`
}

// PostWithAuthor is a post joined with its author's profile.
type PostWithAuthor struct {
	Post
	Author PostAuthor `json:"author"`
}

// PostFilter selects a page of the feed. A nil Category means all categories.
type PostFilter struct {
	Category *PostCategory
	Page
}

// PostLike is a row of post_likes.
type PostLike struct {
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PostLikeInsert creates a like.
type PostLikeInsert struct {
	ID     *string
	PostID string
	UserID string
}

// Columns returns the columns to insert.
func (i PostLikeInsert) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"post_id": i.PostID,
		"user_id": i.UserID,
	}
	setColumn(cols, "id", i.ID)
	return cols
}

// PostLikeUpdate exists for contract completeness; likes are only inserted or deleted.
type PostLikeUpdate struct {
	PostID *string
	UserID *string
}

// Changes returns the columns to set.
func (u PostLikeUpdate) Changes() map[string]interface{} {
	cols := map[string]interface{}{}
	setColumn(cols, "post_id", u.PostID)
	setColumn(cols, "user_id", u.UserID)
	return cols
}

// Comment is a row of comments.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	LikeCount int       `json:"likeCount" db:"like_count"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CommentInsert creates a comment.
type CommentInsert struct {
	ID     *string
	PostID string
	UserID string
	Text   string
}

// Columns returns the columns to insert.
func (i CommentInsert) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"post_id": i.PostID,
		"user_id": i.UserID,
		"text":    i.Text,
	}
	setColumn(cols, "id", i.ID)
	return cols
}

// CommentUpdate changes a comment.
type CommentUpdate struct {
	Text *string
}

// Changes returns the columns to set.
func (u CommentUpdate) Changes() map[string]interface{} {
	cols := map[string]interface{}{}
	setColumn(cols, "text", u.Text)
	return cols
}

// CommentWithAuthor is a comment joined with its author's profile.
type CommentWithAuthor struct {
	Comment
	Author PostAuthor `json:"author"`
}
