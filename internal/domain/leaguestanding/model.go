package leaguestanding

import (
	"sort"

	"github.com/riskibarqy/fsl-league/internal/domain/match"
)

const (
	PointsPerWin  = 3
	PointsPerDraw = 1
)

// Standing represents a league table row for one team. It is always derived
// from recorded matches and never stored.
type Standing struct {
	TeamID         string
	TeamName       string
	Position       int
	Played         int
	Won            int
	Draw           int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// Compute derives teamID's row from matches. Matches the team did not play
// in are ignored.
func Compute(teamID string, matches []match.Match) Standing {
	row := Standing{TeamID: teamID}
	for _, m := range matches {
		own, opp, ok := m.Scores(teamID)
		if !ok {
			continue
		}

		row.Played++
		row.GoalsFor += own
		row.GoalsAgainst += opp
		switch {
		case own > opp:
			row.Won++
		case own == opp:
			row.Draw++
		default:
			row.Lost++
		}
	}

	row.GoalDifference = row.GoalsFor - row.GoalsAgainst
	row.Points = PointsPerWin*row.Won + PointsPerDraw*row.Draw
	return row
}

// Rank orders rows by points descending, keeping input order for ties, and
// assigns 1-based positions.
func Rank(rows []Standing) []Standing {
	out := append([]Standing(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}
