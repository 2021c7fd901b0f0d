package prediction

import (
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/fsl-league/internal/domain/match"
)

var (
	ErrDuplicateChallenge = errors.New("challenge already entered for gameweek")
	ErrEmptyPredictions   = errors.New("at least one prediction is required")
	ErrFixtureOutsideWeek = errors.New("fixture is not scheduled in the challenge gameweek")
)

// Bonus tiers. Only exactly four or exactly three correct predictions pay.
const (
	BonusFourCorrect  = 7
	BonusThreeCorrect = 5
)

// Prediction is a per-fixture outcome guess.
type Prediction struct {
	FixtureID string
	Outcome   match.Outcome
}

// Challenge is a user's entry into one gameweek's prediction contest.
type Challenge struct {
	ID          string
	UserID      string
	Gameweek    int
	Predictions []Prediction
}

func (c Challenge) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("challenge id is required")
	}
	if c.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if c.Gameweek < 1 {
		return fmt.Errorf("gameweek must be >= 1")
	}
	return nil
}

// CorrectCount counts predictions whose fixture was played and whose outcome
// matches the recorded result. Unplayed fixtures are skipped.
func (c Challenge) CorrectCount(matchesByFixture map[string]match.Match) int {
	correct := 0
	for _, p := range c.Predictions {
		m, ok := matchesByFixture[p.FixtureID]
		if !ok {
			continue
		}
		if m.Outcome() == p.Outcome {
			correct++
		}
	}
	return correct
}

// Bonus maps a correct count onto the fixed payout table.
func Bonus(correct int) int {
	switch correct {
	case 4:
		return BonusFourCorrect
	case 3:
		return BonusThreeCorrect
	default:
		return 0
	}
}

// FromMap builds a prediction set from fixture id to raw outcome, ordered by
// fixture id.
func FromMap(raw map[string]string) ([]Prediction, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyPredictions
	}
	out := make([]Prediction, 0, len(raw))
	for fixtureID, value := range raw {
		if fixtureID == "" {
			return nil, fmt.Errorf("fixture id is required")
		}
		outcome, err := match.ParseOutcome(value)
		if err != nil {
			return nil, err
		}
		out = append(out, Prediction{FixtureID: fixtureID, Outcome: outcome})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FixtureID < out[j].FixtureID })
	return out, nil
}
