package eventsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasw/clubsite/internal/app/models"
)

func TestAddMatchUsesDescendingSyntheticIDs(t *testing.T) {
	ev := &models.SportEvent{Matches: []models.SportMatch{{ID: 10}, {ID: -2}}}

	m := AddMatch(ev)

	assert.Equal(t, int64(-3), m.ID)
	assert.False(t, m.Persisted())
	assert.Empty(t, m.Teams)
	assert.Empty(t, m.Sets)

	m2 := AddMatch(ev)
	assert.Equal(t, int64(-4), m2.ID)
}

func TestAddTeamExtendsEverySet(t *testing.T) {
	m := &models.SportMatch{}
	AddTeam(m)
	AddSet(m)
	AddSet(m)

	team := AddTeam(m)

	assert.Equal(t, 1, team.TeamNumber)
	for _, set := range m.Sets {
		require.Len(t, set.Scores, 2)
		assert.Equal(t, models.SportScore{TeamNumber: 1, Score: 0}, set.Scores[1])
	}
}

func TestDeleteTeamRenumbersTeamsAndScores(t *testing.T) {
	m := &models.SportMatch{}
	AddTeam(m)
	AddTeam(m)
	AddTeam(m)
	set := AddSet(m)
	set.Scores[0].Score = 10
	set.Scores[1].Score = 20
	set.Scores[2].Score = 30

	DeleteTeam(m, 1)

	require.Len(t, m.Teams, 2)
	assert.Equal(t, 0, m.Teams[0].TeamNumber)
	assert.Equal(t, 1, m.Teams[1].TeamNumber)

	// The old team 2 keeps its score under its new number 1.
	require.Len(t, m.Sets[0].Scores, 2)
	assert.Equal(t, models.SportScore{TeamNumber: 0, Score: 10}, m.Sets[0].Scores[0])
	assert.Equal(t, models.SportScore{TeamNumber: 1, Score: 30}, m.Sets[0].Scores[1])
}

func TestDeleteLastTeamClearsSets(t *testing.T) {
	m := &models.SportMatch{}
	AddTeam(m)
	AddSet(m)
	AddSet(m)

	DeleteTeam(m, 0)

	assert.Empty(t, m.Teams)
	assert.Empty(t, m.Sets)
}

func TestDeleteTeamUnknownNumberIsNoOp(t *testing.T) {
	m := &models.SportMatch{}
	AddTeam(m)
	AddSet(m)

	DeleteTeam(m, 5)

	assert.Len(t, m.Teams, 1)
	assert.Len(t, m.Sets, 1)
}

func TestDeleteSetRenumbers(t *testing.T) {
	m := &models.SportMatch{}
	AddTeam(m)
	AddSet(m)
	s1 := AddSet(m)
	s1.Scores[0].Score = 7
	AddSet(m)

	DeleteSet(m, 0)

	require.Len(t, m.Sets, 2)
	assert.Equal(t, 0, m.Sets[0].SetNumber)
	assert.Equal(t, 7, m.Sets[0].Scores[0].Score)
	assert.Equal(t, 1, m.Sets[1].SetNumber)
}

func TestWinnerTeamNumbers(t *testing.T) {
	m := &models.SportMatch{}
	AddTeam(m)
	AddTeam(m)

	// Set 0: team 1 wins. Set 1: team 0 wins. Set 2: tie, first entry (team 0)
	// keeps it. Expected per-team set wins: team 0 has 2, team 1 has 1.
	s0 := AddSet(m)
	s0.Scores[0].Score = 10
	s0.Scores[1].Score = 21

	s1 := AddSet(m)
	s1.Scores[0].Score = 21
	s1.Scores[1].Score = 15

	s2 := AddSet(m)
	s2.Scores[0].Score = 21
	s2.Scores[1].Score = 21

	assert.Equal(t, []int{2, 1}, WinnerTeamNumbers(m))
}

func TestWinnerTeamNumbersSkipsEmptyScoreSets(t *testing.T) {
	m := &models.SportMatch{}
	AddTeam(m)
	AddTeam(m)

	s0 := AddSet(m)
	s0.Scores[0].Score = 5
	s0.Scores[1].Score = 9

	// A set stripped of score entries contributes no win.
	s1 := AddSet(m)
	s1.Scores = nil

	assert.Equal(t, []int{0, 1}, WinnerTeamNumbers(m))
}

func TestWinnerTeamNumbersNoTeams(t *testing.T) {
	m := &models.SportMatch{}
	assert.Empty(t, WinnerTeamNumbers(m))
}
