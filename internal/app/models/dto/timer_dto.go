package dto

import "time"

// AddTimerRequest creates a new stopped timer
type AddTimerRequest struct {
	Name string `json:"name" binding:"required" example:"Piano practice"`
}

// UpdateTimerRequest updates timer state. StartTime null means stopped.
type UpdateTimerRequest struct {
	Name           string     `json:"name" binding:"required"`
	ElapsedSeconds int64      `json:"elapsedSeconds"`
	StartTime      *time.Time `json:"startTime"`
}
