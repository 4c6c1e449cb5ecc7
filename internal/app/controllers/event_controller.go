package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/app/views"
	"github.com/yigit/uniconnect/internal/middleware"
)

// EventController handles event-related operations
type EventController struct {
	eventService services.EventService
	sequencer    *views.Sequencer
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, sequencer *views.Sequencer) *EventController {
	return &EventController{eventService: eventService, sequencer: sequencer}
}

// ListUpcoming retrieves upcoming events
// @Summary List upcoming events
// @Description Events dated now or later with club and university names, soonest first
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param seq query int false "Client request sequence"
// @Param view query string false "View instance id"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse[views.EventCard]}
// @Router /events/upcoming [get]
func (c *EventController) ListUpcoming(ctx *gin.Context) {
	seq := beginSequenced(ctx, c.sequencer, "events")

	resp, err := c.eventService.ListUpcoming(ctx, sessionFrom(ctx), pageFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	seq.respond(ctx, resp)
}
