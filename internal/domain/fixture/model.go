package fixture

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidFixture   = errors.New("invalid fixture")
	ErrDuplicateFixture = errors.New("fixture already scheduled")
)

// Fixture is a scheduled pairing of two real teams in a gameweek.
type Fixture struct {
	ID          string
	Gameweek    int
	HomeTeamID  string
	AwayTeamID  string
	KickoffDate time.Time
}

func (f Fixture) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidFixture)
	}
	if f.Gameweek < 1 {
		return fmt.Errorf("%w: gameweek must be >= 1, got %d", ErrInvalidFixture, f.Gameweek)
	}
	if f.HomeTeamID == "" || f.AwayTeamID == "" {
		return fmt.Errorf("%w: home and away teams are required", ErrInvalidFixture)
	}
	if f.HomeTeamID == f.AwayTeamID {
		return fmt.Errorf("%w: a team cannot play itself", ErrInvalidFixture)
	}
	if f.KickoffDate.IsZero() {
		return fmt.Errorf("%w: kickoff date is required", ErrInvalidFixture)
	}
	return nil
}

// Date truncates t to a UTC calendar day, the granularity fixtures are
// scheduled at.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
