package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lukasw/clubsite/internal/app/models/dto"
	"github.com/lukasw/clubsite/internal/app/services"
	"github.com/lukasw/clubsite/internal/middleware"
)

// TimerController handles time tracking operations
type TimerController struct {
	timerService *services.TimerService
}

// NewTimerController creates a new TimerController
func NewTimerController(timerService *services.TimerService) *TimerController {
	return &TimerController{timerService: timerService}
}

// List retrieves all timers of the caller
// @Summary List own timers
// @Tags timers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Timer}
// @Router /timers [get]
func (c *TimerController) List(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	timers, err := c.timerService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: timers, Timestamp: time.Now()})
}

// Get retrieves one timer
// @Summary Get a timer
// @Tags timers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Timer id"
// @Success 200 {object} dto.APIResponse{data=models.Timer}
// @Failure 404 {object} dto.ErrorResponse "Unknown timer"
// @Router /timers/{id} [get]
func (c *TimerController) Get(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	timer, err := c.timerService.Get(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: timer, Timestamp: time.Now()})
}

// Create adds a new stopped timer
// @Summary Create a timer
// @Tags timers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddTimerRequest true "Timer name"
// @Success 201 {object} dto.APIResponse{data=models.Timer}
// @Router /timers [post]
func (c *TimerController) Create(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	var req dto.AddTimerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badPayload(ctx)
		return
	}

	timer, err := c.timerService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: timer, Timestamp: time.Now()})
}

// Update persists timer state
// @Summary Update a timer
// @Description Persists name, elapsed seconds and running state. A null startTime means the timer is stopped.
// @Tags timers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Timer id"
// @Param request body dto.UpdateTimerRequest true "New timer state"
// @Success 200 {object} dto.APIResponse{data=models.Timer}
// @Failure 404 {object} dto.ErrorResponse "Unknown timer"
// @Router /timers/{id} [put]
func (c *TimerController) Update(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTimerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badPayload(ctx)
		return
	}

	timer, err := c.timerService.Update(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: timer, Timestamp: time.Now()})
}

// Delete removes a timer
// @Summary Delete a timer
// @Tags timers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Timer id"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Unknown timer"
// @Router /timers/{id} [delete]
func (c *TimerController) Delete(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.timerService.Delete(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Timer deleted"},
		Timestamp: time.Now(),
	})
}
