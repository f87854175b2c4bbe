// Package eventsync reconciles locally cached and edited sport events against
// the authoritative remote collection. It offers two strategies: Pull, which
// discards local state in favor of the remote snapshot, and Sync, a three-way
// merge that preserves local edits by demoting conflicting events into the
// uncommitted collection instead of overwriting either side.
package eventsync

import (
	"github.com/lukasw/clubsite/internal/app/models"
)

// Equal reports whether two sport events are deeply equal in every field
// relevant to persistence, including clubs, matches, teams, sets and scores.
// Expanded relation objects (user profiles, sport names) are display data and
// do not participate; only their ids do. Nil receivers compare equal to nil.
func Equal(a, b *models.SportEvent) bool {
	if a == nil || b == nil {
		return a == b
	}
	if (a.ID == nil) != (b.ID == nil) {
		return false
	}
	if a.ID != nil && *a.ID != *b.ID {
		return false
	}
	if !a.StartTime.Equal(b.StartTime) || !a.EndTime.Equal(b.EndTime) {
		return false
	}
	if a.Description != b.Description || a.Visibility != b.Visibility {
		return false
	}
	if a.CreatorID != b.CreatorID || a.SportID != b.SportID ||
		a.LocationID != b.LocationID || a.EventTypeID != b.EventTypeID {
		return false
	}

	if len(a.Clubs) != len(b.Clubs) {
		return false
	}
	for i := range a.Clubs {
		if a.Clubs[i].SportClubID != b.Clubs[i].SportClubID || a.Clubs[i].Host != b.Clubs[i].Host {
			return false
		}
	}

	if len(a.Matches) != len(b.Matches) {
		return false
	}
	for i := range a.Matches {
		if !equalMatch(&a.Matches[i], &b.Matches[i]) {
			return false
		}
	}
	return true
}

func equalMatch(a, b *models.SportMatch) bool {
	if a.ID != b.ID || a.Description != b.Description {
		return false
	}

	if len(a.Teams) != len(b.Teams) {
		return false
	}
	for i := range a.Teams {
		at, bt := &a.Teams[i], &b.Teams[i]
		if at.TeamNumber != bt.TeamNumber || len(at.Users) != len(bt.Users) {
			return false
		}
		for j := range at.Users {
			if at.Users[j].ID != bt.Users[j].ID {
				return false
			}
		}
	}

	if len(a.Sets) != len(b.Sets) {
		return false
	}
	for i := range a.Sets {
		as, bs := &a.Sets[i], &b.Sets[i]
		if as.ID != bs.ID || as.SetNumber != bs.SetNumber || len(as.Scores) != len(bs.Scores) {
			return false
		}
		for j := range as.Scores {
			if as.Scores[j] != bs.Scores[j] {
				return false
			}
		}
	}
	return true
}
