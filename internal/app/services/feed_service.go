package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/app/views"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
	"github.com/yigit/uniconnect/internal/pkg/validation"
)

// FeedService defines the interface for feed operations
type FeedService interface {
	ListPosts(ctx context.Context, session *models.Session, category string, page models.Page) (*dto.ListResponse[views.PostCard], error)
	CreatePost(ctx context.Context, session *models.Session, req *dto.CreatePostRequest) (*views.PostCard, error)
	// ToggleLike always returns the like state the client should show. When
	// the store rejects the write, that state is the pre-click snapshot.
	ToggleLike(ctx context.Context, session *models.Session, postID string, req *dto.ToggleLikeRequest) (*views.LikeState, error)
	ListComments(ctx context.Context, session *models.Session, postID string, page models.Page) (*dto.ListResponse[views.CommentView], error)
	CreateComment(ctx context.Context, session *models.Session, postID string, req *dto.CreateCommentRequest) (*views.CommentView, error)
	Categories() []dto.CategoryOption
}

// feedServiceImpl implements FeedService
type feedServiceImpl struct {
	postRepo    repositories.PostRepository
	profileRepo repositories.ProfileRepository
	clock       helpers.Clock
	logger      zerolog.Logger
}

// NewFeedService creates a new FeedService
func NewFeedService(
	postRepo repositories.PostRepository,
	profileRepo repositories.ProfileRepository,
	clock helpers.Clock,
	logger zerolog.Logger,
) FeedService {
	if clock == nil {
		clock = helpers.SystemClock
	}
	return &feedServiceImpl{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		clock:       clock,
		logger:      logger,
	}
}

// ListPosts returns one page of the feed, newest first, with the caller's likes marked.
func (s *feedServiceImpl) ListPosts(ctx context.Context, session *models.Session, category string, page models.Page) (*dto.ListResponse[views.PostCard], error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	filterCategory, err := models.ParseCategoryFilter(category)
	if err != nil {
		return nil, err
	}
	page = normalizePage(page)

	rows, total, err := s.postRepo.ListPosts(ctx, models.PostFilter{Category: filterCategory, Page: page})
	if err != nil {
		s.logger.Error().Err(err).Str("category", category).Msg("Failed to list posts")
		return nil, err
	}

	likes := views.LikeSet(nil)
	if len(rows) > 0 {
		ids := make([]string, len(rows))
		for i, row := range rows {
			ids[i] = row.ID
		}
		liked, err := s.postRepo.LikedPostIDs(ctx, session.UserID, ids)
		if err != nil {
			s.logger.Error().Err(err).Str("userID", session.UserID).Msg("Failed to load liked posts")
			return nil, err
		}
		likes = views.NewLikeSet(liked)
	}

	return listResponse(views.PostCards(rows, likes, s.clock()), total, page), nil
}

// CreatePost validates the post locally and inserts it for the session user.
func (s *feedServiceImpl) CreatePost(ctx context.Context, session *models.Session, req *dto.CreatePostRequest) (*views.PostCard, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	content, err := validation.NewStringValidation("content", req.Content).
		WithMaxLength(validation.PostContentMaxLength).
		Validate()
	if err != nil {
		return nil, err
	}

	category := models.CategoryGeneral
	if req.Category != "" {
		if category, err = models.ParsePostCategory(req.Category); err != nil {
			return nil, err
		}
	}

	post, err := s.postRepo.CreatePost(ctx, models.PostInsert{
		UserID:   session.UserID,
		Content:  content,
		Category: &category,
		ImageURL: helpers.TrimmedOrNil(req.ImageURL),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("userID", session.UserID).Msg("Failed to create post")
		return nil, err
	}

	row := models.PostWithAuthor{Post: *post}
	if profile, err := s.profileRepo.FetchProfile(ctx, session.UserID); err == nil {
		role := profile.Role
		row.Author = models.PostAuthor{FullName: &profile.FullName, AvatarURL: profile.AvatarURL, Role: &role}
	} else {
		s.logger.Warn().Err(err).Str("userID", session.UserID).Msg("Created post without author profile")
	}

	card := views.NewPostCard(row, false, s.clock())
	return &card, nil
}

// ToggleLike applies the click tentatively, then commits with the store's count or reverts.
func (s *feedServiceImpl) ToggleLike(ctx context.Context, session *models.Session, postID string, req *dto.ToggleLikeRequest) (*views.LikeState, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validation.UUID("postId", postID); err != nil {
		return nil, err
	}

	toggle := views.BeginLikeToggle(views.PostCard{
		ID:        postID,
		Liked:     req.CurrentlyLiked,
		LikeCount: req.DisplayedLikeCount,
	})

	count, err := s.postRepo.ToggleLike(ctx, postID, session.UserID, toggle.WasLiked())
	if err != nil {
		reverted := toggle.Revert().LikeState()
		event := s.logger.Warn()
		if errors.Is(err, apperrors.ErrStore) {
			event = s.logger.Error()
		}
		event.Err(err).Str("postID", postID).Str("userID", session.UserID).Msg("Like toggle reverted")
		return &reverted, err
	}

	committed := toggle.Commit(count).LikeState()
	return &committed, nil
}

// ListComments returns one page of a post's comments, oldest first.
func (s *feedServiceImpl) ListComments(ctx context.Context, session *models.Session, postID string, page models.Page) (*dto.ListResponse[views.CommentView], error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validation.UUID("postId", postID); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	rows, total, err := s.postRepo.ListComments(ctx, postID, page)
	if err != nil {
		s.logger.Error().Err(err).Str("postID", postID).Msg("Failed to list comments")
		return nil, err
	}
	return listResponse(views.CommentViews(rows, s.clock()), total, page), nil
}

// CreateComment adds a comment from the session user.
func (s *feedServiceImpl) CreateComment(ctx context.Context, session *models.Session, postID string, req *dto.CreateCommentRequest) (*views.CommentView, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validation.UUID("postId", postID); err != nil {
		return nil, err
	}
	text, err := validation.NewStringValidation("text", req.Text).
		WithMaxLength(validation.CommentMaxLength).
		Validate()
	if err != nil {
		return nil, err
	}

	comment, err := s.postRepo.CreateComment(ctx, models.CommentInsert{PostID: postID, UserID: session.UserID, Text: text})
	if err != nil {
		s.logger.Error().Err(err).Str("postID", postID).Msg("Failed to create comment")
		return nil, err
	}

	row := models.CommentWithAuthor{Comment: *comment}
	if profile, err := s.profileRepo.FetchProfile(ctx, session.UserID); err == nil {
		role := profile.Role
		row.Author = models.PostAuthor{FullName: &profile.FullName, AvatarURL: profile.AvatarURL, Role: &role}
	}
	return &views.CommentViews([]models.CommentWithAuthor{row}, s.clock())[0], nil
}

// Categories lists the feed tabs: "all" followed by every post category.
func (s *feedServiceImpl) Categories() []dto.CategoryOption {
	options := make([]dto.CategoryOption, 0, len(models.PostCategories)+1)
	options = append(options, dto.CategoryOption{Value: models.CategoryAll, Label: "All"})
	for _, c := range models.PostCategories {
		options = append(options, dto.CategoryOption{Value: string(c), Label: c.Label()})
	}
	return options
}
