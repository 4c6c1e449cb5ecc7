package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/app/views"
	"github.com/yigit/uniconnect/internal/middleware"
)

// FeedController handles feed-related operations
type FeedController struct {
	feedService services.FeedService
	sequencer   *views.Sequencer
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService services.FeedService, sequencer *views.Sequencer) *FeedController {
	return &FeedController{
		feedService: feedService,
		sequencer:   sequencer,
	}
}

// ListPosts retrieves one page of the feed
// @Summary List feed posts
// @Description Posts with their authors, newest first. category=all or empty applies no filter. Pass seq to have stale responses flagged.
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param category query string false "Post category or all"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param seq query int false "Client request sequence"
// @Param view query string false "View instance id"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse[views.PostCard]}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail} "Unknown category"
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail} "No session"
// @Failure 502 {object} dto.APIResponse{error=dto.ErrorDetail} "Store error"
// @Router /feed/posts [get]
func (c *FeedController) ListPosts(ctx *gin.Context) {
	seq := beginSequenced(ctx, c.sequencer, "feed")

	resp, err := c.feedService.ListPosts(ctx, sessionFrom(ctx), ctx.Query("category"), pageFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	seq.respond(ctx, resp)
}

// CreatePost publishes a post
// @Summary Create a post
// @Tags feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Post content and category"
// @Success 201 {object} dto.APIResponse{data=views.PostCard}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail} "Empty content or unknown category"
// @Failure 502 {object} dto.APIResponse{error=dto.ErrorDetail} "Store error"
// @Router /feed/posts [post]
func (c *FeedController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	card, err := c.feedService.CreatePost(ctx, sessionFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, card)
}

// ToggleLike likes or unlikes a post
// @Summary Toggle a like
// @Description Send the liked state currently displayed. On failure the response still carries the state to restore.
// @Tags feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body dto.ToggleLikeRequest true "Displayed like state"
// @Success 200 {object} dto.APIResponse{data=views.LikeState}
// @Failure 404 {object} dto.APIResponse{data=views.LikeState,error=dto.ErrorDetail} "Post not found"
// @Failure 502 {object} dto.APIResponse{data=views.LikeState,error=dto.ErrorDetail} "Store error, state reverted"
// @Router /feed/posts/{id}/like [post]
func (c *FeedController) ToggleLike(ctx *gin.Context) {
	var req dto.ToggleLikeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	state, err := c.feedService.ToggleLike(ctx, sessionFrom(ctx), ctx.Param("id"), &req)
	if err != nil {
		if state == nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		status, detail := middleware.ErrorDetailFor(err)
		_ = ctx.Error(err)
		resp := dto.NewFailureResponse(detail)
		resp.Data = state
		ctx.AbortWithStatusJSON(status, resp)
		return
	}
	respond(ctx, http.StatusOK, state)
}

// ListComments retrieves a post's comments
// @Summary List comments
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse[views.CommentView]}
// @Router /feed/posts/{id}/comments [get]
func (c *FeedController) ListComments(ctx *gin.Context) {
	resp, err := c.feedService.ListComments(ctx, sessionFrom(ctx), ctx.Param("id"), pageFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, resp)
}

// CreateComment comments on a post
// @Summary Create a comment
// @Tags feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body dto.CreateCommentRequest true "Comment text"
// @Success 201 {object} dto.APIResponse{data=views.CommentView}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail} "Post not found"
// @Router /feed/posts/{id}/comments [post]
func (c *FeedController) CreateComment(ctx *gin.Context) {
	var req dto.CreateCommentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	comment, err := c.feedService.CreateComment(ctx, sessionFrom(ctx), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, comment)
}

// Categories lists the feed tabs
// @Summary List post categories
// @Tags feed
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryOption}
// @Router /feed/categories [get]
func (c *FeedController) Categories(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.feedService.Categories())
}
