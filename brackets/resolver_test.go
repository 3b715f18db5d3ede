package brackets

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/friends-league/models"
)

var playedAt = time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

func played(label string, day int, home, away string, hs, as int) models.Match {
	return models.Match{
		ID:          label + "-" + home,
		RoundLabel:  label,
		HomeTeam:    home,
		AwayTeam:    away,
		MatchDay:    day,
		HomeScore:   &hs,
		AwayScore:   &as,
		CompletedAt: &playedAt,
	}
}

func quarterFinals() []models.Match {
	return []models.Match{
		played("QF1", 1, "A", "B", 3, 1),
		played("QF2", 2, "C", "D", 2, 0),
		played("QF3", 3, "E", "F", 1, 0),
		played("QF4", 4, "G", "H", 4, 2),
	}
}

func TestResolveSemifinalists(t *testing.T) {
	got, err := ResolveSemifinalists(quarterFinals())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "E", "G"}, got)
}

func TestResolveSemifinalists_IgnoresInputOrder(t *testing.T) {
	base := quarterFinals()
	base = append(base, played("SF1", 5, "A", "C", 0, 1))
	want, err := ResolveSemifinalists(base)
	require.NoError(t, err)

	permutations := [][]int{
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{1, 2, 3, 4, 0},
	}
	for _, perm := range permutations {
		shuffled := make([]models.Match, len(base))
		for i, p := range perm {
			shuffled[i] = base[p]
		}
		got, err := ResolveSemifinalists(shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got, "permutation %v", perm)
	}
}

func TestResolvePairing_AwayGoals(t *testing.T) {
	legs := []models.Match{
		played("QF1", 1, "A", "B", 1, 2),
		played("QF1", 2, "B", "A", 0, 1),
	}
	res := ResolvePairing(models.SlotRef{Stage: models.StageQF, Index: 1}, legs)

	assert.Equal(t, OutcomeResolved, res.Outcome)
	assert.Equal(t, [2]int{2, 2}, res.Aggregate)
	assert.Equal(t, [2]int{1, 2}, res.AwayGoals)
	assert.Equal(t, "B", res.Winner)

	reversed := ResolvePairing(models.SlotRef{Stage: models.StageQF, Index: 1}, []models.Match{legs[1], legs[0]})
	assert.Equal(t, "B", reversed.Winner)
}

func TestResolvePairing_Aggregate(t *testing.T) {
	legs := []models.Match{
		played("SF2", 9, "X", "Y", 0, 1),
		played("SF2", 10, "Y", "X", 1, 3),
	}
	res := ResolvePairing(models.SlotRef{Stage: models.StageSF, Index: 2}, legs)
	assert.Equal(t, OutcomeResolved, res.Outcome)
	assert.Equal(t, "X", res.Winner)
	assert.Equal(t, [2]int{3, 2}, res.Aggregate)
}

func TestResolveSemifinalists_TieRequiresReplay(t *testing.T) {
	matches := []models.Match{
		played("QF1", 1, "A", "B", 1, 1),
		played("QF1", 2, "B", "A", 1, 1),
		played("QF2", 3, "C", "D", 2, 0),
		played("QF2", 4, "D", "C", 0, 0),
		played("QF3", 5, "E", "F", 1, 0),
		played("QF3", 6, "F", "E", 0, 0),
		played("QF4", 7, "G", "H", 0, 0),
		played("QF4", 8, "H", "G", 2, 2),
	}

	got, err := ResolveSemifinalists(matches)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTieRequiresReplay))

	var tieErr *TieError
	require.ErrorAs(t, err, &tieErr)
	assert.Equal(t, []models.SlotRef{{Stage: models.StageQF, Index: 1}}, tieErr.Slots)
	assert.Equal(t, []string{"", "C", "E", "G"}, got, "QF4 is decided on away goals")
	assert.Contains(t, err.Error(), "QF1")
}

func TestResolvePairing_SingleLegDrawIsTie(t *testing.T) {
	res := ResolvePairing(models.SlotRef{Stage: models.StageQF, Index: 2}, []models.Match{played("QF2", 2, "C", "D", 1, 1)})
	assert.Equal(t, OutcomeTied, res.Outcome)
	assert.Empty(t, res.Winner)
}

func TestResolvePairing_NotReady(t *testing.T) {
	slot := models.SlotRef{Stage: models.StageSF, Index: 1}
	pending := models.Match{RoundLabel: "SF1", MatchDay: 5, HomeTeam: "A", AwayTeam: "Winner of QF2",
		AwaySource: &models.SlotRef{Stage: models.StageQF, Index: 2}}
	unplayed := models.Match{RoundLabel: "SF1", MatchDay: 6, HomeTeam: "C", AwayTeam: "A"}

	tests := []struct {
		name string
		legs []models.Match
	}{
		{name: "no legs"},
		{name: "unplayed", legs: []models.Match{played("SF1", 5, "A", "C", 1, 0), unplayed}},
		{name: "placeholder", legs: []models.Match{pending}},
		{name: "mismatched teams", legs: []models.Match{played("SF1", 5, "A", "C", 1, 0), played("SF1", 6, "E", "A", 1, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, OutcomeNotReady, ResolvePairing(slot, tt.legs).Outcome)
		})
	}
}

func TestResolveFinalistsAndFinal(t *testing.T) {
	matches := append(quarterFinals(),
		played("SF1", 5, "A", "C", 0, 2),
		played("SF2", 6, "E", "G", 3, 2),
	)
	finalists, err := ResolveFinalists(matches)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "E"}, finalists)

	winner, err := ResolveFinal(matches)
	require.NoError(t, err)
	assert.Empty(t, winner, "final not played yet")

	winner, err = ResolveFinal(append(matches, played("Final", 7, "C", "E", 1, 2)))
	require.NoError(t, err)
	assert.Equal(t, "E", winner)

	_, err = ResolveFinal(append(matches, played("Final", 7, "C", "E", 2, 2)))
	assert.ErrorIs(t, err, ErrTieRequiresReplay)
}
