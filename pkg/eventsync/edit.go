package eventsync

import (
	"sort"

	"github.com/lukasw/clubsite/internal/app/models"
)

// Edit helpers for the nested match/team/set/score structure. They apply
// uniformly to persisted and uncommitted events and maintain the dense
// numbering invariants: team and set numbers stay contiguous from 0, and
// every set carries one score entry per team.

// AddMatch appends a blank match to the event. Until saved it carries a
// synthetic id below every sibling id so it stays distinguishable locally.
func AddMatch(ev *models.SportEvent) *models.SportMatch {
	id := int64(0)
	for i := range ev.Matches {
		if ev.Matches[i].ID < id {
			id = ev.Matches[i].ID
		}
	}

	ev.Matches = append(ev.Matches, models.SportMatch{
		ID:    id - 1,
		Teams: []models.SportTeam{},
		Sets:  []models.SportMatchSet{},
	})
	return &ev.Matches[len(ev.Matches)-1]
}

// AddTeam appends a team with the next team number and gives every existing
// set a zero score entry for it.
func AddTeam(m *models.SportMatch) *models.SportTeam {
	teamNumber := len(m.Teams)
	m.Teams = append(m.Teams, models.SportTeam{
		TeamNumber: teamNumber,
		Users:      []models.UserRef{},
	})

	for i := range m.Sets {
		m.Sets[i].Scores = append(m.Sets[i].Scores, models.SportScore{TeamNumber: teamNumber})
	}
	return &m.Teams[len(m.Teams)-1]
}

// DeleteTeam removes the team and renumbers the higher-numbered teams down by
// one, along with their score entries in every set. When the last team goes,
// the sets go with it.
func DeleteTeam(m *models.SportMatch, teamNumber int) {
	idx := -1
	for i := range m.Teams {
		if m.Teams[i].TeamNumber == teamNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	m.Teams = append(m.Teams[:idx], m.Teams[idx+1:]...)
	for i := range m.Teams {
		if m.Teams[i].TeamNumber > teamNumber {
			m.Teams[i].TeamNumber--
		}
	}

	if len(m.Teams) == 0 {
		m.Sets = []models.SportMatchSet{}
		return
	}

	for si := range m.Sets {
		set := &m.Sets[si]
		scores := set.Scores[:0]
		for _, sc := range set.Scores {
			if sc.TeamNumber == teamNumber {
				continue
			}
			if sc.TeamNumber > teamNumber {
				sc.TeamNumber--
			}
			scores = append(scores, sc)
		}
		set.Scores = scores
	}
}

// AddSet appends a set with the next set number and a zero score entry for
// every current team.
func AddSet(m *models.SportMatch) *models.SportMatchSet {
	scores := make([]models.SportScore, 0, len(m.Teams))
	for _, t := range m.Teams {
		scores = append(scores, models.SportScore{TeamNumber: t.TeamNumber})
	}

	m.Sets = append(m.Sets, models.SportMatchSet{
		SetNumber: len(m.Sets),
		Scores:    scores,
	})
	return &m.Sets[len(m.Sets)-1]
}

// DeleteSet removes the set and renumbers the higher-numbered sets down by one
func DeleteSet(m *models.SportMatch, setNumber int) {
	idx := -1
	for i := range m.Sets {
		if m.Sets[i].SetNumber == setNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	m.Sets = append(m.Sets[:idx], m.Sets[idx+1:]...)
	for i := range m.Sets {
		if m.Sets[i].SetNumber > setNumber {
			m.Sets[i].SetNumber--
		}
	}
}

// WinnerTeamNumbers counts, per team, the sets that team won. Within a set the
// win goes to the strictly highest score; on a tie the first entry in
// iteration order keeps it. A team missing its score entry in a set simply
// cannot win that set. The result is indexed by team number.
func WinnerTeamNumbers(m *models.SportMatch) []int {
	wins := make([]int, len(m.Teams))
	if len(m.Teams) == 0 {
		return wins
	}

	sets := make([]models.SportMatchSet, len(m.Sets))
	copy(sets, m.Sets)
	sort.Slice(sets, func(i, j int) bool { return sets[i].SetNumber < sets[j].SetNumber })

	for _, set := range sets {
		if len(set.Scores) == 0 {
			continue
		}
		best := set.Scores[0]
		for _, sc := range set.Scores[1:] {
			if sc.Score > best.Score {
				best = sc
			}
		}
		if best.TeamNumber >= 0 && best.TeamNumber < len(wins) {
			wins[best.TeamNumber]++
		}
	}
	return wins
}
