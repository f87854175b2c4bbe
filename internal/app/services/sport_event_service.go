package services

import (
	"context"
	"fmt"

	"github.com/lukasw/clubsite/internal/app/authz"
	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/app/repositories"
	"github.com/lukasw/clubsite/internal/pkg/apperrors"
)

// SportEventService handles sport event graph CRUD with visibility checks
type SportEventService struct {
	eventRepo  EventStore
	userRepo   UserStore
	authorizer *authz.EventAuthorizer
}

// NewSportEventService creates a new SportEventService
func NewSportEventService(eventRepo EventStore, userRepo UserStore, authorizer *authz.EventAuthorizer) *SportEventService {
	return &SportEventService{
		eventRepo:  eventRepo,
		userRepo:   userRepo,
		authorizer: authorizer,
	}
}

// List retrieves the events the user may see. A nil userID means an
// unauthenticated request, which only sees public events.
func (s *SportEventService) List(ctx context.Context, userID *int64, filter repositories.EventFilter) ([]models.SportEvent, error) {
	user, err := s.loadViewer(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	visible := []models.SportEvent{}
	for i := range events {
		if s.authorizer.CanView(user, &events[i]) {
			visible = append(visible, events[i])
		}
	}
	return visible, nil
}

// Get retrieves one event. Events the user may not see are reported as not
// found so their existence does not leak.
func (s *SportEventService) Get(ctx context.Context, userID *int64, id int64) (*models.SportEvent, error) {
	user, err := s.loadViewer(ctx, userID)
	if err != nil {
		return nil, err
	}

	ev, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.authorizer.CanView(user, ev) {
		return nil, apperrors.ErrSportEventNotFound
	}
	return ev, nil
}

// Create stores a new event graph owned by the user
func (s *SportEventService) Create(ctx context.Context, userID int64, ev *models.SportEvent) (*models.SportEvent, error) {
	ev.ID = nil
	ev.CreatorID = userID

	if err := validateEventGraph(ev); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, ev); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, *ev.ID)
}

// Update replaces the whole event graph. The creator never changes.
func (s *SportEventService) Update(ctx context.Context, userID, id int64, ev *models.SportEvent) (*models.SportEvent, error) {
	existing, err := s.authorizeEdit(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	ev.ID = existing.ID
	ev.CreatorID = existing.CreatorID

	if err := validateEventGraph(ev); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, ev); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, id)
}

// Delete removes an event
func (s *SportEventService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.authorizeEdit(ctx, userID, id); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}

func (s *SportEventService) loadViewer(ctx context.Context, userID *int64) (*models.User, error) {
	if userID == nil {
		return nil, nil
	}
	user, err := s.userRepo.GetByID(ctx, *userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *SportEventService) authorizeEdit(ctx context.Context, userID, eventID int64) (*models.SportEvent, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !s.authorizer.CanView(user, ev) {
		return nil, apperrors.ErrSportEventNotFound
	}
	if !s.authorizer.CanEdit(user, ev) {
		return nil, apperrors.ErrPermissionDenied
	}
	return ev, nil
}

// validateEventGraph checks the structural invariants of an incoming event:
// a valid visibility level, exactly one hosting club among the associated
// clubs (a blank draft with no clubs is fine), and dense zero-based team and
// set numbering with scores only for teams that exist.
func validateEventGraph(ev *models.SportEvent) error {
	if !ev.Visibility.Valid() {
		return apperrors.ErrInvalidVisibility
	}

	hosts := 0
	seen := make(map[int64]bool, len(ev.Clubs))
	for _, c := range ev.Clubs {
		if seen[c.SportClubID] {
			return apperrors.NewBadRequestError("duplicate club on event")
		}
		seen[c.SportClubID] = true
		if c.Host {
			hosts++
		}
	}
	if len(ev.Clubs) > 0 && hosts != 1 {
		return apperrors.ErrNoHostClub
	}

	if !ev.EndTime.After(ev.StartTime) {
		return apperrors.NewBadRequestError("event end must be after its start")
	}

	for mi := range ev.Matches {
		m := &ev.Matches[mi]
		for i, t := range m.Teams {
			if t.TeamNumber != i {
				return apperrors.NewBadRequestError(fmt.Sprintf("match %d: team numbers must be contiguous from 0", mi))
			}
		}
		for i, set := range m.Sets {
			if set.SetNumber != i {
				return apperrors.NewBadRequestError(fmt.Sprintf("match %d: set numbers must be contiguous from 0", mi))
			}
			for _, sc := range set.Scores {
				if sc.TeamNumber < 0 || sc.TeamNumber >= len(m.Teams) {
					return apperrors.NewBadRequestError(fmt.Sprintf("match %d set %d: score for unknown team %d", mi, i, sc.TeamNumber))
				}
			}
		}
	}

	return nil
}
