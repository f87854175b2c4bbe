package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lukasw/clubsite/internal/app/models/dto"
)

// Controllers defined in this package:
// - AuthController: registration, activation, login, token lifecycle
// - UserController: profile, email, password, account deletion
// - SportEventController: sport event graph CRUD
// - ReferenceController: lookup data for the event editor
// - MembershipController: club membership requests and approvals
// - TimerController: per-user time tracking

func unauthorized(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

func badPayload(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload")
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// pathID parses a path parameter as int64, responding with 400 on failure
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// queryID parses an optional int64 query parameter
func queryID(ctx *gin.Context, name string) *int64 {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
