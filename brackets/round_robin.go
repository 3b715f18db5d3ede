package brackets

import (
	"github.com/Dosada05/friends-league/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() ScheduleGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate creates a double round-robin: every pair meets twice with home and away swapped.
// All first legs come before all second legs and every match gets its own match day.
func (g *RoundRobinGenerator) Generate(params GenerateParams) ([]models.Match, error) {
	teams := params.Teams
	if err := ValidateTeams(teams, models.FormatLeague); err != nil {
		return nil, err
	}

	pairs := len(teams) * (len(teams) - 1) / 2
	matches := make([]models.Match, 0, pairs*2)
	matchDay := 0

	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			matchDay++
			matches = append(matches,
				models.Match{
					TournamentID: params.TournamentID,
					RoundLabel:   models.LabelLeagueFirstLeg,
					Leg:          1,
					HomeTeam:     teams[i],
					AwayTeam:     teams[j],
					MatchDay:     matchDay,
				},
				models.Match{
					TournamentID: params.TournamentID,
					RoundLabel:   models.LabelLeagueSecondLeg,
					Leg:          2,
					HomeTeam:     teams[j],
					AwayTeam:     teams[i],
					MatchDay:     matchDay + pairs,
				},
			)
		}
	}

	return SortByMatchDay(matches), nil
}
