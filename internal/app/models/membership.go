package models

// SportClubMembership links a user to a club. Approval is tracked per
// sport/status pair in MembershipSport entries, not for the membership as a whole.
type SportClubMembership struct {
	ID          int64             `json:"id" db:"id"`
	UserID      int64             `json:"userId" db:"user_id"`
	SportClubID int64             `json:"sportClubId" db:"sport_club_id"`
	User        *User             `json:"user,omitempty"`      // Relation, no db tag
	SportClub   *SportClub        `json:"sportClub,omitempty"` // Relation, no db tag
	Sports      []MembershipSport `json:"membershipSport"`
}

// MembershipSport is one sport a membership covers, with its role and approval state.
type MembershipSport struct {
	SportID      int64        `json:"sportId" db:"sport_id"`
	Sport        *Sport       `json:"sport,omitempty"` // Relation, no db tag
	MemberStatus MemberStatus `json:"memberStatus" db:"member_status" example:"0"`
	Approved     bool         `json:"approved" db:"approved"`
}

// Covers reports whether the membership has an approved entry for the sport,
// optionally restricted to a given status.
func (m *SportClubMembership) Covers(sportID int64, status *MemberStatus) bool {
	for _, ms := range m.Sports {
		if !ms.Approved || ms.SportID != sportID {
			continue
		}
		if status == nil || ms.MemberStatus == *status {
			return true
		}
	}
	return false
}

// Approved reports whether any sport entry of the membership is approved.
func (m *SportClubMembership) ApprovedAny() bool {
	for _, ms := range m.Sports {
		if ms.Approved {
			return true
		}
	}
	return false
}
