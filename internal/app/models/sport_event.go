package models

import (
	"time"
)

// SportEvent is the root of the nested event graph. An event whose ID is nil has
// never been persisted; such events only exist in the client-side uncommitted
// collection and never in the authoritative cache.
type SportEvent struct {
	ID          *int64          `json:"id,omitempty" db:"id"`
	StartTime   time.Time       `json:"startTime" db:"start_time"`
	EndTime     time.Time       `json:"endTime" db:"end_time"`
	Description string          `json:"description" db:"description"`
	Visibility  Visibility      `json:"visibility" db:"visibility" example:"0"`
	CreatorID   int64           `json:"creatorId" db:"creator_id"`
	Creator     *User           `json:"creator,omitempty"`       // Relation, no db tag
	SportID     int64           `json:"sportId" db:"sport_id"`
	Sport       *Sport          `json:"sport,omitempty"`         // Relation, no db tag
	LocationID  int64           `json:"sportLocationId" db:"sport_location_id"`
	Location    *SportLocation  `json:"sportLocation,omitempty"` // Relation, no db tag
	EventTypeID int64           `json:"sportEventTypeId" db:"sport_event_type_id"`
	EventType   *SportEventType `json:"sportEventType,omitempty"` // Relation, no db tag
	Clubs       []EventClub     `json:"sportClubs"`
	Matches     []SportMatch    `json:"sportMatch"`
}

// EventClub associates a club with an event. Exactly one entry per event should
// carry Host=true, conventionally the first.
type EventClub struct {
	SportClubID int64      `json:"sportClubId" db:"sport_club_id"`
	SportClub   *SportClub `json:"sportClub,omitempty"` // Relation, no db tag
	Host        bool       `json:"host" db:"host"`
}

// SportMatch is one match within an event. Matches created on the client before
// being saved carry a synthetic negative id so they stay distinguishable until
// persistence assigns a real one.
type SportMatch struct {
	ID          int64           `json:"id" db:"id"`
	Description string          `json:"description" db:"description"`
	Teams       []SportTeam     `json:"sportTeam"`
	Sets        []SportMatchSet `json:"sportMatchSet"`
}

// Persisted reports whether the match has a server-assigned id.
func (m *SportMatch) Persisted() bool {
	return m.ID > 0
}

// SportTeam groups users within a match. TeamNumber values are dense and
// zero-based per match; deleting a team renumbers the rest.
type SportTeam struct {
	TeamNumber int       `json:"teamNumber" db:"team_number"`
	Users      []UserRef `json:"user"`
}

// SportMatchSet is one set of a match. SetNumber values are dense and zero-based
// per match. Scores holds exactly one entry per existing team number.
type SportMatchSet struct {
	ID        int64        `json:"id" db:"id"`
	SetNumber int          `json:"setNumber" db:"set_number"`
	Scores    []SportScore `json:"sportScore"`
}

// SportScore is one team's score in a set.
type SportScore struct {
	TeamNumber int `json:"teamNumber" db:"team_number"`
	Score      int `json:"score" db:"score"`
}

// HostClubID returns the id of the club marked as host, or 0 when none is.
func (e *SportEvent) HostClubID() int64 {
	for _, c := range e.Clubs {
		if c.Host {
			return c.SportClubID
		}
	}
	return 0
}

// Participants collects the distinct ids of every user placed on a team.
func (e *SportEvent) Participants() []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, m := range e.Matches {
		for _, t := range m.Teams {
			for _, u := range t.Users {
				if _, ok := seen[u.ID]; ok {
					continue
				}
				seen[u.ID] = struct{}{}
				ids = append(ids, u.ID)
			}
		}
	}
	return ids
}

// Clone returns a deep copy of the event graph. Edits to the copy never alias
// slices or nested structs of the original, which is what the reconciliation
// engine relies on to keep its pristine cache separate from UI state.
func (e *SportEvent) Clone() SportEvent {
	out := *e
	if e.ID != nil {
		id := *e.ID
		out.ID = &id
	}
	if e.Clubs != nil {
		out.Clubs = make([]EventClub, len(e.Clubs))
		copy(out.Clubs, e.Clubs)
	}
	if e.Matches != nil {
		out.Matches = make([]SportMatch, len(e.Matches))
		for i := range e.Matches {
			out.Matches[i] = e.Matches[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the match.
func (m *SportMatch) Clone() SportMatch {
	out := *m
	if m.Teams != nil {
		out.Teams = make([]SportTeam, len(m.Teams))
		for i, t := range m.Teams {
			out.Teams[i] = t
			if t.Users != nil {
				out.Teams[i].Users = make([]UserRef, len(t.Users))
				copy(out.Teams[i].Users, t.Users)
			}
		}
	}
	if m.Sets != nil {
		out.Sets = make([]SportMatchSet, len(m.Sets))
		for i, s := range m.Sets {
			out.Sets[i] = s
			if s.Scores != nil {
				out.Sets[i].Scores = make([]SportScore, len(s.Scores))
				copy(out.Sets[i].Scores, s.Scores)
			}
		}
	}
	return out
}
