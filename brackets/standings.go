package brackets

import (
	"sort"

	"github.com/Dosada05/friends-league/models"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

// ComputeStandings builds the league table from scratch. Matches without both scores,
// or naming a team outside teams, are ignored.
func ComputeStandings(matches []models.Match, teams []string) []models.StandingRow {
	rows := make([]models.StandingRow, len(teams))
	index := make(map[string]*models.StandingRow, len(teams))
	for i, team := range teams {
		rows[i] = models.StandingRow{Team: team}
		index[team] = &rows[i]
	}

	for _, m := range matches {
		if !m.HasScores() {
			continue
		}
		home, away := index[m.HomeTeam], index[m.AwayTeam]
		if home == nil || away == nil || home == away {
			continue
		}
		hs, as := *m.HomeScore, *m.AwayScore

		home.Played++
		away.Played++
		home.GoalsFor += hs
		home.GoalsAgainst += as
		away.GoalsFor += as
		away.GoalsAgainst += hs
		home.GoalDifference = home.GoalsFor - home.GoalsAgainst
		away.GoalDifference = away.GoalsFor - away.GoalsAgainst

		switch {
		case hs > as:
			home.Won++
			home.Points += pointsForWin
			away.Lost++
		case as > hs:
			away.Won++
			away.Points += pointsForWin
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
			home.Points += pointsForDraw
			away.Points += pointsForDraw
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// Leader returns the top row of the table.
func Leader(rows []models.StandingRow) (models.StandingRow, bool) {
	if len(rows) == 0 {
		return models.StandingRow{}, false
	}
	return rows[0], true
}
