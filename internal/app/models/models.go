package models

// Visibility controls who may see a sport event and its nested data.
// Levels are ordered from most restrictive to fully public.
type Visibility int

const (
	// VisibilityCreator - only the creator sees the event
	VisibilityCreator Visibility = iota
	// VisibilityParticipants - creator plus every user placed on a team
	VisibilityParticipants
	// VisibilityClubSport - additionally approved club members for the event's sport
	VisibilityClubSport
	// VisibilityClub - additionally any approved member of an associated club
	VisibilityClub
	// VisibilityPublic - everyone, including anonymous visitors
	VisibilityPublic
)

// Valid reports whether the visibility level is one of the defined values.
func (v Visibility) Valid() bool {
	return v >= VisibilityCreator && v <= VisibilityPublic
}

// MemberStatus describes the role of a user inside a club for one sport.
type MemberStatus int

const (
	MemberStatusMember  MemberStatus = 0
	MemberStatusTrainer MemberStatus = 1
)

// AccessLevel is the site-wide permission level of a user account.
type AccessLevel int

const (
	AccessLevelUser  AccessLevel = 0
	AccessLevelAdmin AccessLevel = 1
)
