package brackets

import (
	"strings"

	"github.com/Dosada05/friends-league/models"
)

type Outcome string

const (
	OutcomeNotReady Outcome = "not_ready"
	OutcomeResolved Outcome = "resolved"
	OutcomeTied     Outcome = "tied"
)

// Resolution is the result of one knockout pairing across all of its legs.
// Teams[0] is the home side of the earliest leg.
type Resolution struct {
	Slot      models.SlotRef `json:"slot"`
	Outcome   Outcome        `json:"outcome"`
	Winner    string         `json:"winner,omitempty"`
	Legs      int            `json:"legs"`
	Teams     [2]string      `json:"teams"`
	Aggregate [2]int         `json:"aggregate"`
	AwayGoals [2]int         `json:"away_goals"`
}

// TieError lists pairings whose aggregate and away goals are both level.
type TieError struct {
	Slots []models.SlotRef
}

func (e *TieError) Error() string {
	labels := make([]string, len(e.Slots))
	for i, s := range e.Slots {
		labels[i] = s.Label()
	}
	return ErrTieRequiresReplay.Error() + ": " + strings.Join(labels, ", ")
}

func (e *TieError) Is(target error) bool {
	return target == ErrTieRequiresReplay
}

// ResolvePairing decides a single pairing. Every leg must be completed and have both
// participants known, otherwise the pairing is not ready.
func ResolvePairing(slot models.SlotRef, legs []models.Match) Resolution {
	res := Resolution{Slot: slot, Outcome: OutcomeNotReady, Legs: len(legs)}
	if len(legs) == 0 {
		return res
	}
	for _, leg := range legs {
		if !leg.IsCompleted() || leg.HasPendingSlot() {
			return res
		}
	}

	ordered := SortByMatchDay(legs)
	teamA, teamB := ordered[0].HomeTeam, ordered[0].AwayTeam
	res.Teams = [2]string{teamA, teamB}

	for _, leg := range ordered {
		home, away := *leg.HomeScore, *leg.AwayScore
		switch {
		case leg.HomeTeam == teamA && leg.AwayTeam == teamB:
			res.Aggregate[0] += home
			res.Aggregate[1] += away
			res.AwayGoals[1] += away
		case leg.HomeTeam == teamB && leg.AwayTeam == teamA:
			res.Aggregate[0] += away
			res.Aggregate[1] += home
			res.AwayGoals[0] += away
		default:
			// legs of one pairing disagree on who is playing
			return Resolution{Slot: slot, Outcome: OutcomeNotReady, Legs: len(legs)}
		}
	}

	switch {
	case res.Aggregate[0] > res.Aggregate[1]:
		res.Winner = teamA
	case res.Aggregate[1] > res.Aggregate[0]:
		res.Winner = teamB
	case len(ordered) > 1 && res.AwayGoals[0] > res.AwayGoals[1]:
		res.Winner = teamA
	case len(ordered) > 1 && res.AwayGoals[1] > res.AwayGoals[0]:
		res.Winner = teamB
	default:
		res.Outcome = OutcomeTied
		return res
	}
	res.Outcome = OutcomeResolved
	return res
}

// ResolveRound resolves every pairing of a knockout stage in slot order.
func ResolveRound(matches []models.Match, stage models.Stage) []Resolution {
	bySlot := make(map[string][]models.Match)
	for _, m := range matches {
		bySlot[m.RoundLabel] = append(bySlot[m.RoundLabel], m)
	}

	out := make([]Resolution, 0, stage.Slots())
	for i := 1; i <= stage.Slots(); i++ {
		slot := models.SlotRef{Stage: stage, Index: i}
		out = append(out, ResolvePairing(slot, bySlot[slot.Label()]))
	}
	return out
}

// ResolveSemifinalists returns the winners of QF1..QF4. Slots without a winner are empty
// strings; tied slots are also reported through a *TieError.
func ResolveSemifinalists(matches []models.Match) ([]string, error) {
	return winners(ResolveRound(matches, models.StageQF))
}

// ResolveFinalists returns the winners of SF1 and SF2.
func ResolveFinalists(matches []models.Match) ([]string, error) {
	return winners(ResolveRound(matches, models.StageSF))
}

// ResolveFinal returns the tournament winner, or "" if the Final is not decided.
func ResolveFinal(matches []models.Match) (string, error) {
	w, err := winners(ResolveRound(matches, models.StageFinal))
	return w[0], err
}

func winners(resolutions []Resolution) ([]string, error) {
	out := make([]string, len(resolutions))
	var tied []models.SlotRef
	for i, r := range resolutions {
		switch r.Outcome {
		case OutcomeResolved:
			out[i] = r.Winner
		case OutcomeTied:
			tied = append(tied, r.Slot)
		}
	}
	if len(tied) > 0 {
		return out, &TieError{Slots: tied}
	}
	return out, nil
}
