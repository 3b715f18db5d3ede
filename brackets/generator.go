package brackets

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/Dosada05/friends-league/models"
)

var (
	ErrInvalidInput      = errors.New("invalid tournament input")
	ErrTieRequiresReplay = errors.New("tie requires replay")
)

type GenerateParams struct {
	TournamentID string
	Teams        []string
	Format       models.TournamentFormat
	// Legs per quarter- and semi-final pairing. Zero means one leg. Ignored by leagues.
	Legs int
	// Rand drives the knockout seeding shuffle. Nil uses the global source.
	Rand *rand.Rand
}

type ScheduleGenerator interface {
	Generate(params GenerateParams) ([]models.Match, error)

	Name() string
}

func NewGenerator(format models.TournamentFormat) (ScheduleGenerator, error) {
	switch format {
	case models.FormatLeague:
		return NewRoundRobinGenerator(), nil
	case models.FormatKnockout8:
		return NewKnockoutGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidInput, format)
	}
}

// Generate builds the full ordered schedule for a tournament.
func Generate(params GenerateParams) ([]models.Match, error) {
	g, err := NewGenerator(params.Format)
	if err != nil {
		return nil, err
	}
	return g.Generate(params)
}

// ValidateTeams checks the team list against the format's size rules.
func ValidateTeams(teams []string, format models.TournamentFormat) error {
	seen := make(map[string]struct{}, len(teams))
	for i, team := range teams {
		if strings.TrimSpace(team) == "" {
			return fmt.Errorf("%w: team #%d has an empty name", ErrInvalidInput, i+1)
		}
		if _, dup := seen[team]; dup {
			return fmt.Errorf("%w: duplicate team name %q", ErrInvalidInput, team)
		}
		seen[team] = struct{}{}
	}

	switch format {
	case models.FormatLeague:
		if len(teams) < 2 {
			return fmt.Errorf("%w: a league needs at least 2 teams, got %d", ErrInvalidInput, len(teams))
		}
	case models.FormatKnockout8:
		if len(teams) != models.KnockoutTeamCount {
			return fmt.Errorf("%w: a knockout needs exactly %d teams, got %d", ErrInvalidInput, models.KnockoutTeamCount, len(teams))
		}
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrInvalidInput, format)
	}
	return nil
}

// SortByMatchDay returns a copy of matches stably ordered by match day.
func SortByMatchDay(matches []models.Match) []models.Match {
	sorted := make([]models.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchDay < sorted[j].MatchDay
	})
	return sorted
}
