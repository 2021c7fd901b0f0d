package match

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fsl-league/internal/domain/fixture"
)

var ErrInvalidOutcome = errors.New("invalid outcome")

// Outcome is the result of a match from the home side's perspective.
type Outcome string

const (
	OutcomeHomeWin Outcome = "home win"
	OutcomeAwayWin Outcome = "away win"
	OutcomeDraw    Outcome = "draw"
)

func ParseOutcome(raw string) (Outcome, error) {
	switch o := Outcome(strings.ToLower(strings.TrimSpace(raw))); o {
	case OutcomeHomeWin, OutcomeAwayWin, OutcomeDraw:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOutcome, raw)
	}
}

// Match is the played instance of a fixture.
type Match struct {
	ID          string
	FixtureID   string
	Gameweek    int
	HomeTeamID  string
	AwayTeamID  string
	KickoffDate time.Time
	HomeScore   int
	AwayScore   int
}

// FromFixture copies the fixture's schedule metadata onto a new match.
func FromFixture(id string, f fixture.Fixture, homeScore, awayScore int) Match {
	return Match{
		ID:          id,
		FixtureID:   f.ID,
		Gameweek:    f.Gameweek,
		HomeTeamID:  f.HomeTeamID,
		AwayTeamID:  f.AwayTeamID,
		KickoffDate: f.KickoffDate,
		HomeScore:   homeScore,
		AwayScore:   awayScore,
	}
}

func (m Match) Outcome() Outcome {
	switch {
	case m.HomeScore > m.AwayScore:
		return OutcomeHomeWin
	case m.AwayScore > m.HomeScore:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

func (m Match) Involves(teamID string) bool {
	return teamID != "" && (m.HomeTeamID == teamID || m.AwayTeamID == teamID)
}

// Scores returns (own, opponent) goals for teamID. ok is false when the team
// did not play in the match.
func (m Match) Scores(teamID string) (own, opponent int, ok bool) {
	switch teamID {
	case m.HomeTeamID:
		return m.HomeScore, m.AwayScore, true
	case m.AwayTeamID:
		return m.AwayScore, m.HomeScore, true
	default:
		return 0, 0, false
	}
}

// ByFixtureID indexes matches by their fixture.
func ByFixtureID(items []Match) map[string]Match {
	out := make(map[string]Match, len(items))
	for _, item := range items {
		out[item.FixtureID] = item
	}
	return out
}
