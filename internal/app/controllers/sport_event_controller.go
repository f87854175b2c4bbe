package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/app/models/dto"
	"github.com/lukasw/clubsite/internal/app/repositories"
	"github.com/lukasw/clubsite/internal/app/services"
	"github.com/lukasw/clubsite/internal/middleware"
)

// SportEventController handles sport event operations
type SportEventController struct {
	eventService *services.SportEventService
}

// NewSportEventController creates a new SportEventController
func NewSportEventController(eventService *services.SportEventService) *SportEventController {
	return &SportEventController{eventService: eventService}
}

// List retrieves visible sport events
// @Summary List sport events
// @Description Returns the events visible to the caller. Anonymous callers only see public events. Optional filters narrow the result.
// @Tags sport-events
// @Produce json
// @Security BearerAuth
// @Param creatorId query int false "Only events created by this user"
// @Param sportId query int false "Only events of this sport"
// @Param clubId query int false "Only events involving this club"
// @Success 200 {object} dto.APIResponse{data=[]models.SportEvent}
// @Router /sport-events [get]
func (c *SportEventController) List(ctx *gin.Context) {
	filter := repositories.EventFilter{
		CreatorID: queryID(ctx, "creatorId"),
		SportID:   queryID(ctx, "sportId"),
		ClubID:    queryID(ctx, "clubId"),
	}

	events, err := c.eventService.List(ctx.Request.Context(), optionalUserID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: events, Timestamp: time.Now()})
}

// Get retrieves one sport event
// @Summary Get a sport event
// @Description Returns one event with matches, teams, sets and scores. Events the caller may not see are reported as not found.
// @Tags sport-events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event id"
// @Success 200 {object} dto.APIResponse{data=models.SportEvent}
// @Failure 404 {object} dto.ErrorResponse "Unknown or hidden event"
// @Router /sport-events/{id} [get]
func (c *SportEventController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	ev, err := c.eventService.Get(ctx.Request.Context(), optionalUserID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: ev, Timestamp: time.Now()})
}

// Create stores a new sport event graph
// @Summary Create a sport event
// @Description Stores a new event with its matches, teams, sets and scores. The caller becomes the creator. Exactly one club must be marked as host.
// @Tags sport-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SportEvent true "Event graph"
// @Success 201 {object} dto.APIResponse{data=models.SportEvent}
// @Failure 400 {object} dto.ErrorResponse "Structural validation failed"
// @Router /sport-events [post]
func (c *SportEventController) Create(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	var ev models.SportEvent
	if err := ctx.ShouldBindJSON(&ev); err != nil {
		badPayload(ctx)
		return
	}

	created, err := c.eventService.Create(ctx.Request.Context(), userID, &ev)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: created, Timestamp: time.Now()})
}

// Update replaces a sport event graph
// @Summary Update a sport event
// @Description Replaces the whole event graph. Only the creator and approved trainers of the hosting club for the event's sport may update.
// @Tags sport-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event id"
// @Param request body models.SportEvent true "New event graph"
// @Success 200 {object} dto.APIResponse{data=models.SportEvent}
// @Failure 403 {object} dto.ErrorResponse "Not allowed to edit"
// @Failure 404 {object} dto.ErrorResponse "Unknown or hidden event"
// @Router /sport-events/{id} [put]
func (c *SportEventController) Update(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var ev models.SportEvent
	if err := ctx.ShouldBindJSON(&ev); err != nil {
		badPayload(ctx)
		return
	}

	updated, err := c.eventService.Update(ctx.Request.Context(), userID, id, &ev)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: updated, Timestamp: time.Now()})
}

// Delete removes a sport event
// @Summary Delete a sport event
// @Tags sport-events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event id"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not allowed to delete"
// @Router /sport-events/{id} [delete]
func (c *SportEventController) Delete(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.Delete(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Event deleted"},
		Timestamp: time.Now(),
	})
}

// optionalUserID returns the authenticated user id or nil for anonymous calls
func optionalUserID(ctx *gin.Context) *int64 {
	if id, ok := middleware.UserID(ctx); ok {
		return &id
	}
	return nil
}
