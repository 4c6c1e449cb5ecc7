package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/app/views"
	"github.com/yigit/uniconnect/internal/middleware"
)

// ResourceController handles shared resource operations
type ResourceController struct {
	resourceService services.ResourceService
	sequencer       *views.Sequencer
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService services.ResourceService, sequencer *views.Sequencer) *ResourceController {
	return &ResourceController{resourceService: resourceService, sequencer: sequencer}
}

// ListResources retrieves shared resources
// @Summary List resources
// @Description Resources with uploader and department names, newest first
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param seq query int false "Client request sequence"
// @Param view query string false "View instance id"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse[views.ResourceCard]}
// @Router /resources [get]
func (c *ResourceController) ListResources(ctx *gin.Context) {
	seq := beginSequenced(ctx, c.sequencer, "resources")

	resp, err := c.resourceService.ListResources(ctx, sessionFrom(ctx), pageFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	seq.respond(ctx, resp)
}

// CreateResource shares a resource
// @Summary Share a resource
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateResourceRequest true "Resource details"
// @Success 201 {object} dto.APIResponse{data=views.ResourceCard}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail} "Invalid course code or URL"
// @Router /resources [post]
func (c *ResourceController) CreateResource(ctx *gin.Context) {
	var req dto.CreateResourceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	card, err := c.resourceService.CreateResource(ctx, sessionFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, card)
}

// RecordDownload counts a download
// @Summary Record a download
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.DownloadResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail} "Resource not found"
// @Router /resources/{id}/download [post]
func (c *ResourceController) RecordDownload(ctx *gin.Context) {
	resp, err := c.resourceService.RecordDownload(ctx, sessionFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, resp)
}
