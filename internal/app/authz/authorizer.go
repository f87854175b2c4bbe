// Package authz decides who may see and who may change sport events.
package authz

import (
	"github.com/lukasw/clubsite/internal/app/models"
)

// EventAuthorizer evaluates event visibility and edit permissions against a
// user's club memberships. A nil user means an unauthenticated request.
type EventAuthorizer struct{}

// NewEventAuthorizer creates a new EventAuthorizer
func NewEventAuthorizer() *EventAuthorizer {
	return &EventAuthorizer{}
}

// CanView reports whether the user may see the event. Each visibility level
// includes everyone admitted by the levels below it.
func (a *EventAuthorizer) CanView(user *models.User, ev *models.SportEvent) bool {
	if ev.Visibility == models.VisibilityPublic {
		return true
	}
	if user == nil {
		return false
	}
	if user.ID == ev.CreatorID || user.AccessLevel == models.AccessLevelAdmin {
		return true
	}

	if ev.Visibility >= models.VisibilityParticipants {
		for _, id := range ev.Participants() {
			if id == user.ID {
				return true
			}
		}
	}

	if ev.Visibility >= models.VisibilityClubSport {
		if a.memberOfEventClub(user, ev, true) {
			return true
		}
	}

	if ev.Visibility >= models.VisibilityClub {
		if a.memberOfEventClub(user, ev, false) {
			return true
		}
	}

	return false
}

// CanEdit reports whether the user may change or delete the event. Besides the
// creator, approved trainers of the hosting club may, but only for the event's
// sport.
func (a *EventAuthorizer) CanEdit(user *models.User, ev *models.SportEvent) bool {
	if user == nil {
		return false
	}
	if user.ID == ev.CreatorID || user.AccessLevel == models.AccessLevelAdmin {
		return true
	}

	hostID := ev.HostClubID()
	if hostID == 0 {
		return false
	}

	trainer := models.MemberStatusTrainer
	for _, m := range user.Memberships {
		if m.SportClubID == hostID && m.Covers(ev.SportID, &trainer) {
			return true
		}
	}
	return false
}

// memberOfEventClub checks for an approved membership in any club attached to
// the event. With sportMatch set, only entries for the event's sport count.
func (a *EventAuthorizer) memberOfEventClub(user *models.User, ev *models.SportEvent, sportMatch bool) bool {
	for _, ec := range ev.Clubs {
		for _, m := range user.Memberships {
			if m.SportClubID != ec.SportClubID {
				continue
			}
			if sportMatch {
				if m.Covers(ev.SportID, nil) {
					return true
				}
			} else if m.ApprovedAny() {
				return true
			}
		}
	}
	return false
}
