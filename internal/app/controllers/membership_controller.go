package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lukasw/clubsite/internal/app/models/dto"
	"github.com/lukasw/clubsite/internal/app/services"
	"github.com/lukasw/clubsite/internal/middleware"
)

// MembershipController handles club membership operations
type MembershipController struct {
	membershipService *services.MembershipService
}

// NewMembershipController creates a new MembershipController
func NewMembershipController(membershipService *services.MembershipService) *MembershipController {
	return &MembershipController{membershipService: membershipService}
}

// Request asks for membership in a club
// @Summary Request club membership
// @Description Adds an unapproved sport entry to the caller's membership in the club. A trainer has to approve it before it grants anything.
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clubId path int true "Club id"
// @Param request body dto.RequestMembershipRequest true "Sport and desired role"
// @Success 201 {object} dto.APIResponse{data=models.SportClubMembership}
// @Failure 404 {object} dto.ErrorResponse "Unknown club"
// @Failure 409 {object} dto.ErrorResponse "Entry already requested"
// @Router /sport-clubs/{clubId}/memberships [post]
func (c *MembershipController) Request(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}
	clubID, ok := pathID(ctx, "clubId")
	if !ok {
		return
	}

	var req dto.RequestMembershipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badPayload(ctx)
		return
	}

	membership, err := c.membershipService.Request(ctx.Request.Context(), userID, clubID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: membership, Timestamp: time.Now()})
}

// GetOwn retrieves the caller's membership in a club
// @Summary Get own club membership
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param clubId path int true "Club id"
// @Success 200 {object} dto.APIResponse{data=models.SportClubMembership}
// @Failure 404 {object} dto.ErrorResponse "No membership in this club"
// @Router /sport-clubs/{clubId}/memberships/me [get]
func (c *MembershipController) GetOwn(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}
	clubID, ok := pathID(ctx, "clubId")
	if !ok {
		return
	}

	membership, err := c.membershipService.GetOwn(ctx.Request.Context(), userID, clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: membership, Timestamp: time.Now()})
}

// List retrieves every membership of a club
// @Summary List club memberships
// @Description Returns all memberships of the club. Only approved members of the club may see the list.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param clubId path int true "Club id"
// @Success 200 {object} dto.APIResponse{data=[]models.SportClubMembership}
// @Failure 403 {object} dto.ErrorResponse "Not an approved member"
// @Router /sport-clubs/{clubId}/memberships [get]
func (c *MembershipController) List(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}
	clubID, ok := pathID(ctx, "clubId")
	if !ok {
		return
	}

	memberships, err := c.membershipService.ListByClub(ctx.Request.Context(), userID, clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: memberships, Timestamp: time.Now()})
}

// Approve approves a membership's sport entry
// @Summary Approve a membership entry
// @Description Approves one sport entry of a membership. Only approved trainers of the club for that sport may approve.
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clubId path int true "Club id"
// @Param request body dto.ApproveMembershipRequest true "User and sport to approve"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not a trainer for this sport"
// @Failure 404 {object} dto.ErrorResponse "No such membership entry"
// @Router /sport-clubs/{clubId}/memberships/approve [post]
func (c *MembershipController) Approve(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}
	clubID, ok := pathID(ctx, "clubId")
	if !ok {
		return
	}

	var req dto.ApproveMembershipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badPayload(ctx)
		return
	}

	if err := c.membershipService.Approve(ctx.Request.Context(), userID, clubID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Membership approved"},
		Timestamp: time.Now(),
	})
}

// Remove drops one sport entry from a membership
// @Summary Remove a membership entry
// @Description Removes one sport entry. Users may remove their own entries; trainers of the club for that sport may remove anyone's.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param clubId path int true "Club id"
// @Param userId path int true "User whose entry to remove"
// @Param sportId path int true "Sport of the entry"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not allowed to remove this entry"
// @Router /sport-clubs/{clubId}/memberships/{userId}/sports/{sportId} [delete]
func (c *MembershipController) Remove(ctx *gin.Context) {
	actorID, ok := middleware.UserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}
	clubID, ok := pathID(ctx, "clubId")
	if !ok {
		return
	}
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	sportID, ok := pathID(ctx, "sportId")
	if !ok {
		return
	}

	if err := c.membershipService.Remove(ctx.Request.Context(), actorID, clubID, userID, sportID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Membership entry removed"},
		Timestamp: time.Now(),
	})
}
