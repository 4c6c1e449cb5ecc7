package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/middleware"
)

// UniversityController handles university and department lookups
type UniversityController struct {
	universityService services.UniversityService
}

// NewUniversityController creates a new UniversityController
func NewUniversityController(universityService services.UniversityService) *UniversityController {
	return &UniversityController{universityService: universityService}
}

// ListUniversities retrieves all universities
// @Summary List universities
// @Tags universities
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.University}
// @Router /universities [get]
func (c *UniversityController) ListUniversities(ctx *gin.Context) {
	universities, err := c.universityService.ListUniversities(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, universities)
}

// ListDepartments retrieves departments
// @Summary List departments
// @Tags universities
// @Produce json
// @Param universityId query string false "Filter by university ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Department}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail} "Invalid university ID"
// @Router /departments [get]
func (c *UniversityController) ListDepartments(ctx *gin.Context) {
	var universityID *string
	if id := ctx.Query("universityId"); id != "" {
		universityID = &id
	}

	departments, err := c.universityService.ListDepartments(ctx, universityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, departments)
}
