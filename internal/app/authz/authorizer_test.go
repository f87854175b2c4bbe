package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lukasw/clubsite/internal/app/models"
)

func eventID(v int64) *int64 { return &v }

func testEvent(visibility models.Visibility) *models.SportEvent {
	return &models.SportEvent{
		ID:         eventID(1),
		Visibility: visibility,
		CreatorID:  10,
		SportID:    3,
		Clubs: []models.EventClub{
			{SportClubID: 7, Host: true},
		},
		Matches: []models.SportMatch{
			{
				ID: 1,
				Teams: []models.SportTeam{
					{TeamNumber: 0, Users: []models.UserRef{{ID: 20}}},
					{TeamNumber: 1, Users: []models.UserRef{{ID: 21}}},
				},
			},
		},
	}
}

func userWithMembership(id, clubID, sportID int64, status models.MemberStatus, approved bool) *models.User {
	return &models.User{
		ID: id,
		Memberships: []models.SportClubMembership{
			{
				UserID:      id,
				SportClubID: clubID,
				Sports: []models.MembershipSport{
					{SportID: sportID, MemberStatus: status, Approved: approved},
				},
			},
		},
	}
}

func TestCanView(t *testing.T) {
	authorizer := NewEventAuthorizer()

	tests := []struct {
		name       string
		visibility models.Visibility
		user       *models.User
		want       bool
	}{
		{"public event, anonymous", models.VisibilityPublic, nil, true},
		{"creator-only, anonymous", models.VisibilityCreator, nil, false},
		{"creator-only, creator", models.VisibilityCreator, &models.User{ID: 10}, true},
		{"creator-only, participant", models.VisibilityCreator, &models.User{ID: 20}, false},
		{"participants, participant", models.VisibilityParticipants, &models.User{ID: 20}, true},
		{"participants, stranger", models.VisibilityParticipants, &models.User{ID: 99}, false},
		{
			"club-sport, approved member of event sport",
			models.VisibilityClubSport,
			userWithMembership(30, 7, 3, models.MemberStatusMember, true),
			true,
		},
		{
			"club-sport, approved member of other sport",
			models.VisibilityClubSport,
			userWithMembership(30, 7, 4, models.MemberStatusMember, true),
			false,
		},
		{
			"club-sport, unapproved member of event sport",
			models.VisibilityClubSport,
			userWithMembership(30, 7, 3, models.MemberStatusMember, false),
			false,
		},
		{
			"club, approved member of other sport",
			models.VisibilityClub,
			userWithMembership(30, 7, 4, models.MemberStatusMember, true),
			true,
		},
		{
			"club, member of other club",
			models.VisibilityClub,
			userWithMembership(30, 8, 3, models.MemberStatusMember, true),
			false,
		},
		{"admin sees everything", models.VisibilityCreator, &models.User{ID: 99, AccessLevel: models.AccessLevelAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := testEvent(tt.visibility)
			assert.Equal(t, tt.want, authorizer.CanView(tt.user, ev))
		})
	}
}

func TestCanEdit(t *testing.T) {
	authorizer := NewEventAuthorizer()

	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{"anonymous", nil, false},
		{"creator", &models.User{ID: 10}, true},
		{"participant", &models.User{ID: 20}, false},
		{"approved host club trainer for event sport", userWithMembership(30, 7, 3, models.MemberStatusTrainer, true), true},
		{"unapproved host club trainer", userWithMembership(30, 7, 3, models.MemberStatusTrainer, false), false},
		{"approved host club trainer for other sport", userWithMembership(30, 7, 4, models.MemberStatusTrainer, true), false},
		{"approved host club member", userWithMembership(30, 7, 3, models.MemberStatusMember, true), false},
		{"trainer of non-host club", userWithMembership(30, 8, 3, models.MemberStatusTrainer, true), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := testEvent(models.VisibilityPublic)
			assert.Equal(t, tt.want, authorizer.CanEdit(tt.user, ev))
		})
	}
}

func TestCanEditNoHostClub(t *testing.T) {
	authorizer := NewEventAuthorizer()
	ev := testEvent(models.VisibilityPublic)
	ev.Clubs = []models.EventClub{{SportClubID: 7, Host: false}}

	trainer := userWithMembership(30, 7, 3, models.MemberStatusTrainer, true)
	assert.False(t, authorizer.CanEdit(trainer, ev))
	assert.True(t, authorizer.CanEdit(&models.User{ID: 10}, ev))
}
