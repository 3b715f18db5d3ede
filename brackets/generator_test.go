package brackets

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/friends-league/models"
)

var eightTeams = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

func TestKnockoutGenerator_SingleLeg(t *testing.T) {
	matches, err := Generate(GenerateParams{TournamentID: "t1", Teams: eightTeams, Format: models.FormatKnockout8})
	require.NoError(t, err)
	require.Len(t, matches, 7)

	labels := make([]string, len(matches))
	for i, m := range matches {
		labels[i] = m.RoundLabel
		assert.Equal(t, "t1", m.TournamentID)
		if i > 0 {
			assert.Greater(t, m.MatchDay, matches[i-1].MatchDay, "match days must strictly increase")
		}
	}
	assert.Equal(t, []string{"QF1", "QF2", "QF3", "QF4", "SF1", "SF2", "Final"}, labels)

	seeded := make([]string, 0, 8)
	for _, m := range matches[:4] {
		assert.False(t, m.HasPendingSlot())
		seeded = append(seeded, m.HomeTeam, m.AwayTeam)
	}
	sort.Strings(seeded)
	assert.Equal(t, eightTeams, seeded, "quarter-finals must use every team exactly once")

	sf1, sf2, final := matches[4], matches[5], matches[6]
	assert.Equal(t, "Winner of QF1", sf1.HomeTeam)
	assert.Equal(t, "Winner of QF2", sf1.AwayTeam)
	assert.Equal(t, "Winner of QF3", sf2.HomeTeam)
	assert.Equal(t, "Winner of QF4", sf2.AwayTeam)
	assert.Equal(t, &models.SlotRef{Stage: models.StageQF, Index: 1}, sf1.HomeSource)
	assert.Equal(t, &models.SlotRef{Stage: models.StageQF, Index: 4}, sf2.AwaySource)

	assert.Equal(t, "Winner of SF1", final.HomeTeam)
	assert.Equal(t, "Winner of SF2", final.AwayTeam)
	assert.Equal(t, &models.SlotRef{Stage: models.StageSF, Index: 2}, final.AwaySource)
}

func TestKnockoutGenerator_TwoLegs(t *testing.T) {
	matches, err := Generate(GenerateParams{Teams: eightTeams, Format: models.FormatKnockout8, Legs: 2})
	require.NoError(t, err)
	require.Len(t, matches, 13)

	for i := 0; i < 12; i += 2 {
		first, second := matches[i], matches[i+1]
		assert.Equal(t, first.RoundLabel, second.RoundLabel)
		assert.Equal(t, 1, first.Leg)
		assert.Equal(t, 2, second.Leg)
		assert.Equal(t, first.HomeTeam, second.AwayTeam)
		assert.Equal(t, first.AwayTeam, second.HomeTeam)
	}
	assert.Equal(t, "Final", matches[12].RoundLabel)
	assert.Equal(t, 13, matches[12].MatchDay)
	assert.Equal(t, 8, ExpectedMatches(models.StageQF, 2))
	assert.Equal(t, 4, ExpectedMatches(models.StageSF, 2))
	assert.Equal(t, 1, ExpectedMatches(models.StageFinal, 2))
}

func TestKnockoutGenerator_SeedingUsesRand(t *testing.T) {
	gen := func(seed uint64) []models.Match {
		m, err := Generate(GenerateParams{
			Teams:  eightTeams,
			Format: models.FormatKnockout8,
			Rand:   rand.New(rand.NewPCG(seed, seed)),
		})
		require.NoError(t, err)
		return m
	}
	assert.Equal(t, gen(42), gen(42))

	input := append([]string(nil), eightTeams...)
	_, err := Generate(GenerateParams{Teams: input, Format: models.FormatKnockout8})
	require.NoError(t, err)
	assert.Equal(t, eightTeams, input, "caller's team slice must not be shuffled in place")
}

func TestKnockoutGenerator_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		teams []string
		legs  int
	}{
		{name: "seven teams", teams: eightTeams[:7]},
		{name: "nine teams", teams: append(append([]string(nil), eightTeams...), "I")},
		{name: "duplicate", teams: []string{"A", "B", "C", "D", "E", "F", "G", "A"}},
		{name: "blank name", teams: []string{"A", "B", "C", "D", "E", "F", "G", " "}},
		{name: "three legs", teams: eightTeams, legs: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(GenerateParams{Teams: tt.teams, Format: models.FormatKnockout8, Legs: tt.legs})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRoundRobinGenerator(t *testing.T) {
	for n := 2; n <= 7; n++ {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			teams := make([]string, n)
			for i := range teams {
				teams[i] = fmt.Sprintf("Team %d", i+1)
			}

			matches, err := Generate(GenerateParams{TournamentID: "league", Teams: teams, Format: models.FormatLeague})
			require.NoError(t, err)
			require.Len(t, matches, n*(n-1))

			pairs := make(map[[2]string]int)
			for i, m := range matches {
				assert.NotEqual(t, m.HomeTeam, m.AwayTeam)
				assert.Equal(t, i+1, m.MatchDay)
				assert.False(t, m.HasPendingSlot())
				assert.Contains(t, []string{models.LabelLeagueFirstLeg, models.LabelLeagueSecondLeg}, m.RoundLabel)
				pairs[[2]string{m.HomeTeam, m.AwayTeam}]++
			}
			for _, x := range teams {
				for _, y := range teams {
					if x == y {
						continue
					}
					assert.Equal(t, 1, pairs[[2]string{x, y}], "%s vs %s", x, y)
				}
			}
		})
	}
}

func TestRoundRobinGenerator_FirstLegsBeforeSecondLegs(t *testing.T) {
	matches, err := Generate(GenerateParams{Teams: []string{"X", "Y", "Z"}, Format: models.FormatLeague})
	require.NoError(t, err)

	for i, m := range matches {
		if i < 3 {
			assert.Equal(t, models.LabelLeagueFirstLeg, m.RoundLabel)
		} else {
			assert.Equal(t, models.LabelLeagueSecondLeg, m.RoundLabel)
		}
	}
	assert.Equal(t, "X", matches[0].HomeTeam)
	assert.Equal(t, "Y", matches[0].AwayTeam)
	assert.Equal(t, "Y", matches[3].HomeTeam)
	assert.Equal(t, "X", matches[3].AwayTeam)
}

func TestRoundRobinGenerator_InvalidInput(t *testing.T) {
	for _, teams := range [][]string{nil, {"Solo"}, {"A", "A"}, {"A", ""}} {
		_, err := Generate(GenerateParams{Teams: teams, Format: models.FormatLeague})
		assert.ErrorIs(t, err, ErrInvalidInput, "teams %q", teams)
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	_, err := Generate(GenerateParams{Teams: eightTeams, Format: "swiss"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSortByMatchDay_Stable(t *testing.T) {
	input := []models.Match{
		{ID: "c", MatchDay: 3},
		{ID: "a1", MatchDay: 1},
		{ID: "b", MatchDay: 2},
		{ID: "a2", MatchDay: 1},
	}
	sorted := SortByMatchDay(input)

	ids := make([]string, len(sorted))
	for i, m := range sorted {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"a1", "a2", "b", "c"}, ids)
	assert.Equal(t, "c", input[0].ID, "input must not be reordered")
}
