package services

import (
	"context"
	"fmt"

	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/app/models/dto"
	"github.com/lukasw/clubsite/internal/pkg/apperrors"
)

// MembershipService handles club membership requests and approvals
type MembershipService struct {
	membershipRepo MembershipStore
	userRepo       UserStore
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(membershipRepo MembershipStore, userRepo UserStore) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
	}
}

// Request adds an unapproved sport entry to the user's membership in a club,
// creating the membership if it is the first sport.
func (s *MembershipService) Request(ctx context.Context, userID, clubID int64, req *dto.RequestMembershipRequest) (*models.SportClubMembership, error) {
	exists, err := s.membershipRepo.ClubExists(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrSportClubNotFound
	}

	if err := s.membershipRepo.AddSport(ctx, userID, clubID, req.SportID, req.MemberStatus); err != nil {
		return nil, err
	}
	return s.membershipRepo.GetByUserAndClub(ctx, userID, clubID)
}

// GetOwn retrieves the caller's membership in a club
func (s *MembershipService) GetOwn(ctx context.Context, userID, clubID int64) (*models.SportClubMembership, error) {
	return s.membershipRepo.GetByUserAndClub(ctx, userID, clubID)
}

// ListByClub retrieves every membership of a club. Only approved members of
// the club and admins may see the list.
func (s *MembershipService) ListByClub(ctx context.Context, actorID, clubID int64) ([]models.SportClubMembership, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if actor.AccessLevel != models.AccessLevelAdmin && !s.approvedInClub(actor, clubID) {
		return nil, apperrors.ErrPermissionDenied
	}

	return s.membershipRepo.ListByClub(ctx, clubID)
}

// Approve marks a membership's sport entry as approved. Only approved trainers
// of the club for that sport and admins may approve.
func (s *MembershipService) Approve(ctx context.Context, actorID, clubID int64, req *dto.ApproveMembershipRequest) error {
	if err := s.requireTrainer(ctx, actorID, clubID, req.SportID); err != nil {
		return err
	}
	return s.membershipRepo.ApproveSport(ctx, req.UserID, clubID, req.SportID)
}

// Remove drops one sport entry from a membership. Users may remove their own
// entries; trainers of the club for that sport and admins may remove anyone's.
func (s *MembershipService) Remove(ctx context.Context, actorID, clubID, userID, sportID int64) error {
	if actorID != userID {
		if err := s.requireTrainer(ctx, actorID, clubID, sportID); err != nil {
			return err
		}
	}
	return s.membershipRepo.RemoveSport(ctx, userID, clubID, sportID)
}

func (s *MembershipService) requireTrainer(ctx context.Context, actorID, clubID, sportID int64) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if actor.AccessLevel == models.AccessLevelAdmin {
		return nil
	}

	trainer := models.MemberStatusTrainer
	for _, m := range actor.Memberships {
		if m.SportClubID == clubID && m.Covers(sportID, &trainer) {
			return nil
		}
	}
	return apperrors.ErrPermissionDenied
}

func (s *MembershipService) approvedInClub(user *models.User, clubID int64) bool {
	for _, m := range user.Memberships {
		if m.SportClubID == clubID && m.ApprovedAny() {
			return true
		}
	}
	return false
}
