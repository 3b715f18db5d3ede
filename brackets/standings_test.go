package brackets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/friends-league/models"
)

func score(home, away string, hs, as int) models.Match {
	return models.Match{HomeTeam: home, AwayTeam: away, HomeScore: &hs, AwayScore: &as}
}

func TestComputeStandings_TieBreakByName(t *testing.T) {
	matches := []models.Match{
		score("Alpha", "C", 2, 0),
		score("Alpha", "D", 1, 0),
		score("C", "Alpha", 1, 0),
		score("D", "Alpha", 3, 1),
		score("Beta", "C", 2, 0),
		score("Beta", "D", 1, 0),
		score("C", "Beta", 1, 0),
		score("D", "Beta", 3, 1),
	}

	rows := ComputeStandings(matches, []string{"Beta", "C", "Alpha", "D"})

	want := []models.StandingRow{
		{Position: 1, Team: "D", Played: 4, Won: 2, Lost: 2, GoalsFor: 6, GoalsAgainst: 4, GoalDifference: 2, Points: 6},
		{Position: 2, Team: "Alpha", Played: 4, Won: 2, Lost: 2, GoalsFor: 4, GoalsAgainst: 4, GoalDifference: 0, Points: 6},
		{Position: 3, Team: "Beta", Played: 4, Won: 2, Lost: 2, GoalsFor: 4, GoalsAgainst: 4, GoalDifference: 0, Points: 6},
		{Position: 4, Team: "C", Played: 4, Won: 2, Lost: 2, GoalsFor: 2, GoalsAgainst: 4, GoalDifference: -2, Points: 6},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("standings mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeStandings_UnbeatenLeader(t *testing.T) {
	matches := []models.Match{
		score("X", "Y", 2, 0),
		score("Y", "X", 0, 1),
		score("X", "Z", 3, 1),
		score("Z", "X", 1, 2),
		score("Y", "Z", 1, 1),
		score("Z", "Y", 0, 0),
	}

	rows := ComputeStandings(matches, []string{"Y", "Z", "X"})
	require.Len(t, rows, 3)

	leader, ok := Leader(rows)
	require.True(t, ok)
	assert.Equal(t, "X", leader.Team)
	assert.Equal(t, 4, leader.Played)
	assert.Equal(t, 4, leader.Won)
	assert.Equal(t, 12, leader.Points)
	assert.Equal(t, 1, leader.Position)

	// Y and Z are level on points and goal difference; Z scored more.
	assert.Equal(t, "Z", rows[1].Team)
	assert.Equal(t, 2, rows[1].Drawn)
	assert.Equal(t, 2, rows[1].Points)
	assert.Equal(t, -3, rows[1].GoalDifference)
	assert.Equal(t, "Y", rows[2].Team)
}

func TestComputeStandings_ZeroGamesBaseline(t *testing.T) {
	rows := ComputeStandings(nil, []string{"Lions", "Bears", "Wolves"})

	want := []models.StandingRow{
		{Position: 1, Team: "Bears"},
		{Position: 2, Team: "Lions"},
		{Position: 3, Team: "Wolves"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("baseline mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeStandings_IgnoresUnscoredAndUnknown(t *testing.T) {
	one := 1
	matches := []models.Match{
		score("A", "B", 1, 0),
		{HomeTeam: "B", AwayTeam: "A", HomeScore: &one},
		score("A", "Ghost", 5, 0),
	}

	rows := ComputeStandings(matches, []string{"A", "B"})
	assert.Equal(t, 1, rows[0].Played)
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, 1, rows[1].Played)
	assert.Equal(t, 1, rows[1].Lost)
}

func TestComputeStandings_Idempotent(t *testing.T) {
	matches := []models.Match{
		score("A", "B", 2, 2),
		score("B", "C", 0, 1),
		score("C", "A", 3, 0),
	}
	teams := []string{"A", "B", "C"}

	first := ComputeStandings(matches, teams)
	second := ComputeStandings(matches, teams)
	assert.Empty(t, cmp.Diff(first, second))
	assert.Equal(t, []string{"A", "B", "C"}, teams)
}

func TestLeader_Empty(t *testing.T) {
	_, ok := Leader(nil)
	assert.False(t, ok)
}
