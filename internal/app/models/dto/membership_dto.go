package dto

import "github.com/lukasw/clubsite/internal/app/models"

// RequestMembershipRequest asks for membership in a club for one sport
type RequestMembershipRequest struct {
	SportID      int64               `json:"sportId" binding:"required" example:"1"`
	MemberStatus models.MemberStatus `json:"memberStatus" example:"0"`
}

// ApproveMembershipRequest approves one sport/status entry of a membership
type ApproveMembershipRequest struct {
	UserID  int64 `json:"userId" binding:"required"`
	SportID int64 `json:"sportId" binding:"required"`
}
