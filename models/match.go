package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Stage is the round group a match belongs to.
type Stage string

const (
	StageLeague Stage = "League"
	StageQF     Stage = "QF"
	StageSF     Stage = "SF"
	StageFinal  Stage = "Final"
)

// Slots returns how many pairings the stage holds in a knockout bracket.
func (s Stage) Slots() int {
	switch s {
	case StageQF:
		return 4
	case StageSF:
		return 2
	case StageFinal:
		return 1
	default:
		return 0
	}
}

// Next returns the stage fed by the winners of s.
func (s Stage) Next() (Stage, bool) {
	switch s {
	case StageQF:
		return StageSF, true
	case StageSF:
		return StageFinal, true
	default:
		return "", false
	}
}

const (
	LabelLeagueFirstLeg  = "Leg 1"
	LabelLeagueSecondLeg = "Leg 2"
	LabelFinal           = "Final"

	placeholderPrefix = "Winner of "
)

// SlotRef points at the outcome of one knockout pairing, e.g. QF 1.
type SlotRef struct {
	Stage Stage `json:"stage"`
	Index int   `json:"index"`
}

// Label is the round label of the pairing: QF1, SF2, Final.
func (s SlotRef) Label() string {
	if s.Stage == StageFinal {
		return LabelFinal
	}
	return string(s.Stage) + strconv.Itoa(s.Index)
}

// Placeholder is the display name used for the pairing's winner until it is known.
func (s SlotRef) Placeholder() string {
	return placeholderPrefix + s.Label()
}

func (s SlotRef) String() string {
	return s.Label()
}

// ParseSlotRef parses a round label (QF1..QF4, SF1, SF2, Final).
func ParseSlotRef(label string) (SlotRef, error) {
	if label == LabelFinal {
		return SlotRef{Stage: StageFinal, Index: 1}, nil
	}
	for _, stage := range []Stage{StageQF, StageSF} {
		rest, ok := strings.CutPrefix(label, string(stage))
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(rest)
		if err != nil || idx < 1 || idx > stage.Slots() {
			return SlotRef{}, fmt.Errorf("invalid %s index in round label %q", stage, label)
		}
		return SlotRef{Stage: stage, Index: idx}, nil
	}
	return SlotRef{}, fmt.Errorf("round label %q is not a knockout slot", label)
}

// Match представляет матч турнира. Счёт и CompletedAt выставляются одновременно.
type Match struct {
	ID           string     `json:"id" db:"id"`
	TournamentID string     `json:"tournament_id" db:"tournament_id"`
	RoundLabel   string     `json:"round_label" db:"round_label"`
	Leg          int        `json:"leg" db:"leg"`
	HomeTeam     string     `json:"home_team" db:"home_team"`
	AwayTeam     string     `json:"away_team" db:"away_team"`
	HomeSource   *SlotRef   `json:"home_source,omitempty" db:"home_source"` // non-nil while HomeTeam is a placeholder
	AwaySource   *SlotRef   `json:"away_source,omitempty" db:"away_source"`
	MatchDay     int        `json:"match_day" db:"match_day"`
	HomeScore    *int       `json:"home_score,omitempty" db:"home_score"`
	AwayScore    *int       `json:"away_score,omitempty" db:"away_score"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

func (m Match) IsCompleted() bool {
	return m.HomeScore != nil && m.AwayScore != nil && m.CompletedAt != nil
}

// HasScores reports whether both scores are present.
func (m Match) HasScores() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// HasPendingSlot reports whether either participant is still an unresolved placeholder.
func (m Match) HasPendingSlot() bool {
	return m.HomeSource != nil || m.AwaySource != nil
}

// Stage derives the round group from the round label.
func (m Match) Stage() Stage {
	if slot, err := ParseSlotRef(m.RoundLabel); err == nil {
		return slot.Stage
	}
	return StageLeague
}

// Slot returns the knockout pairing the match belongs to.
func (m Match) Slot() (SlotRef, bool) {
	slot, err := ParseSlotRef(m.RoundLabel)
	return slot, err == nil
}
