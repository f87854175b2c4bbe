package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lukasw/clubsite/internal/app/models/dto"
	"github.com/lukasw/clubsite/internal/app/services"
	"github.com/lukasw/clubsite/internal/middleware"
)

// ReferenceController serves the lookup tables for the event editor
type ReferenceController struct {
	referenceService *services.ReferenceService
}

// NewReferenceController creates a new ReferenceController
func NewReferenceController(referenceService *services.ReferenceService) *ReferenceController {
	return &ReferenceController{referenceService: referenceService}
}

// GetSports lists all sports
// @Summary List sports
// @Tags reference
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Sport}
// @Router /sports [get]
func (c *ReferenceController) GetSports(ctx *gin.Context) {
	sports, err := c.referenceService.GetSports(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: sports, Timestamp: time.Now()})
}

// GetSportLocations lists all locations
// @Summary List sport locations
// @Tags reference
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.SportLocation}
// @Router /sport-locations [get]
func (c *ReferenceController) GetSportLocations(ctx *gin.Context) {
	locations, err := c.referenceService.GetSportLocations(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: locations, Timestamp: time.Now()})
}

// GetSportEventTypes lists all event types
// @Summary List sport event types
// @Tags reference
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.SportEventType}
// @Router /sport-event-types [get]
func (c *ReferenceController) GetSportEventTypes(ctx *gin.Context) {
	types, err := c.referenceService.GetSportEventTypes(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: types, Timestamp: time.Now()})
}

// GetSportClubs lists all clubs
// @Summary List sport clubs
// @Tags reference
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.SportClub}
// @Router /sport-clubs [get]
func (c *ReferenceController) GetSportClubs(ctx *gin.Context) {
	clubs, err := c.referenceService.GetSportClubs(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: clubs, Timestamp: time.Now()})
}
