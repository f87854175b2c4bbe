package eventsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lukasw/clubsite/internal/app/models"
)

func fullEvent() models.SportEvent {
	start := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
	return models.SportEvent{
		ID:          id64(44),
		StartTime:   start,
		EndTime:     start.Add(90 * time.Minute),
		Description: "league round",
		Visibility:  models.VisibilityClub,
		CreatorID:   3,
		SportID:     2,
		LocationID:  6,
		EventTypeID: 1,
		Clubs: []models.EventClub{
			{SportClubID: 5, Host: true},
			{SportClubID: 8},
		},
		Matches: []models.SportMatch{
			{
				ID:          12,
				Description: "semifinal",
				Teams: []models.SportTeam{
					{TeamNumber: 0, Users: []models.UserRef{{ID: 3}, {ID: 4}}},
					{TeamNumber: 1, Users: []models.UserRef{{ID: 5}}},
				},
				Sets: []models.SportMatchSet{
					{ID: 31, SetNumber: 0, Scores: []models.SportScore{
						{TeamNumber: 0, Score: 21},
						{TeamNumber: 1, Score: 18},
					}},
				},
			},
		},
	}
}

func TestEqualCloneAlwaysEqual(t *testing.T) {
	ev := fullEvent()
	clone := ev.Clone()
	assert.True(t, Equal(&ev, &clone))

	// Editing the clone must not reach back into the original.
	clone.Matches[0].Sets[0].Scores[1].Score = 25
	assert.False(t, Equal(&ev, &clone))
	assert.Equal(t, 18, ev.Matches[0].Sets[0].Scores[1].Score)
}

func TestEqualDetectsNestedDifferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.SportEvent)
	}{
		{"id cleared", func(e *models.SportEvent) { e.ID = nil }},
		{"start time", func(e *models.SportEvent) { e.StartTime = e.StartTime.Add(time.Minute) }},
		{"description", func(e *models.SportEvent) { e.Description = "changed" }},
		{"visibility", func(e *models.SportEvent) { e.Visibility = models.VisibilityPublic }},
		{"club host flag", func(e *models.SportEvent) { e.Clubs[1].Host = true }},
		{"club removed", func(e *models.SportEvent) { e.Clubs = e.Clubs[:1] }},
		{"match description", func(e *models.SportEvent) { e.Matches[0].Description = "final" }},
		{"team member", func(e *models.SportEvent) { e.Matches[0].Teams[1].Users[0].ID = 99 }},
		{"score", func(e *models.SportEvent) { e.Matches[0].Sets[0].Scores[0].Score = 22 }},
		{"set removed", func(e *models.SportEvent) { e.Matches[0].Sets = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := fullEvent()
			b := fullEvent()
			tt.mutate(&b)
			assert.False(t, Equal(&a, &b))
		})
	}
}

func TestEqualIgnoresExpandedRelations(t *testing.T) {
	a := fullEvent()
	b := fullEvent()
	b.Creator = &models.User{ID: 3, Username: "someone"}
	b.Sport = &models.Sport{ID: 2, Name: "Volleyball"}
	assert.True(t, Equal(&a, &b))
}

func TestEqualNilHandling(t *testing.T) {
	ev := fullEvent()
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(&ev, nil))
	assert.False(t, Equal(nil, &ev))
}
