package brackets

import (
	"fmt"
	"math/rand/v2"

	"github.com/Dosada05/friends-league/models"
)

// side is one participant of a pairing: a known team or the winner of an earlier slot.
type side struct {
	team   string
	source *models.SlotRef
}

func (s side) name() string {
	if s.source != nil {
		return s.source.Placeholder()
	}
	return s.team
}

type KnockoutGenerator struct{}

func NewKnockoutGenerator() ScheduleGenerator {
	return &KnockoutGenerator{}
}

func (g *KnockoutGenerator) Name() string {
	return "Knockout8"
}

// Generate seeds 8 teams at random into QF1..QF4, then links SF1/SF2 and the Final
// to the earlier slots by reference.
func (g *KnockoutGenerator) Generate(params GenerateParams) ([]models.Match, error) {
	if err := ValidateTeams(params.Teams, models.FormatKnockout8); err != nil {
		return nil, err
	}
	legs := params.Legs
	if legs == 0 {
		legs = 1
	}
	if legs != 1 && legs != 2 {
		return nil, fmt.Errorf("%w: knockout pairings support 1 or 2 legs, got %d", ErrInvalidInput, legs)
	}

	seeded := shuffleTeams(params.Teams, params.Rand)

	matches := make([]models.Match, 0, 6*legs+1)
	matchDay := 0
	emit := func(slot models.SlotRef, home, away side, legCount int) {
		for leg := 1; leg <= legCount; leg++ {
			h, a := home, away
			if leg%2 == 0 {
				h, a = away, home
			}
			matchDay++
			matches = append(matches, models.Match{
				TournamentID: params.TournamentID,
				RoundLabel:   slot.Label(),
				Leg:          leg,
				HomeTeam:     h.name(),
				AwayTeam:     a.name(),
				HomeSource:   cloneSlot(h.source),
				AwaySource:   cloneSlot(a.source),
				MatchDay:     matchDay,
			})
		}
	}

	for i := 0; i < models.StageQF.Slots(); i++ {
		slot := models.SlotRef{Stage: models.StageQF, Index: i + 1}
		emit(slot, side{team: seeded[2*i]}, side{team: seeded[2*i+1]}, legs)
	}
	for i := 0; i < models.StageSF.Slots(); i++ {
		slot := models.SlotRef{Stage: models.StageSF, Index: i + 1}
		emit(slot, winnerOf(models.StageQF, 2*i+1), winnerOf(models.StageQF, 2*i+2), legs)
	}
	emit(models.SlotRef{Stage: models.StageFinal, Index: 1}, winnerOf(models.StageSF, 1), winnerOf(models.StageSF, 2), 1)

	return SortByMatchDay(matches), nil
}

func cloneSlot(s *models.SlotRef) *models.SlotRef {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func winnerOf(stage models.Stage, index int) side {
	return side{source: &models.SlotRef{Stage: stage, Index: index}}
}

// shuffleTeams returns a Fisher-Yates permutation of teams; the input is left untouched.
func shuffleTeams(teams []string, rng *rand.Rand) []string {
	shuffled := make([]string, len(teams))
	copy(shuffled, teams)

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(shuffled) - 1; i > 0; i-- {
		j := intN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// ExpectedMatches is the number of matches a knockout stage holds for the given legs.
func ExpectedMatches(stage models.Stage, legs int) int {
	if legs == 0 {
		legs = 1
	}
	if stage == models.StageFinal {
		return 1
	}
	return stage.Slots() * legs
}
