package gameweek

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/fsl-league/internal/domain/fantasy"
	"github.com/riskibarqy/fsl-league/internal/domain/match"
	"github.com/riskibarqy/fsl-league/internal/domain/player"
	"github.com/riskibarqy/fsl-league/internal/domain/prediction"
)

var ErrOwnerWithoutRoster = errors.New("challenge owner has no roster")

// State is the active gameweek counter.
type State struct {
	Current int
}

// Initial is the counter value used when nothing has been stored yet.
func Initial() State {
	return State{Current: 1}
}

func (s State) Next() State {
	return State{Current: s.Current + 1}
}

// Snapshot is everything a close reads. Matches are keyed by fixture id.
type Snapshot struct {
	State      State
	Challenges []prediction.Challenge
	Matches    map[string]match.Match
	Rosters    []fantasy.Roster
	Players    []player.Player
}

// Bonus is a challenge payout credited to the owner's roster.
type Bonus struct {
	ChallengeID string
	UserID      string
	RosterID    string
	Correct     int
	Points      int
}

// Fault is a swallowed inconsistency met while closing. The affected roster
// or challenge contributes 0 points.
type Fault struct {
	RosterID    string
	UserID      string
	ChallengeID string
	Err         error
}

func (f Fault) Error() string {
	switch {
	case f.ChallengeID != "":
		return fmt.Sprintf("challenge %s: %v", f.ChallengeID, f.Err)
	default:
		return fmt.Sprintf("roster %s: %v", f.RosterID, f.Err)
	}
}

func (f Fault) Unwrap() error {
	return f.Err
}

// Transition is the result of closing the active gameweek. Rosters and
// Players hold the full post-close state of every row in the snapshot.
type Transition struct {
	From     State
	To       State
	Bonuses  []Bonus
	Rosters  []fantasy.Roster
	Players  []player.Player
	Faults   []Fault
	ClosedAt time.Time
}

// Close computes the week-close transition without touching the snapshot:
// challenge bonuses first, then every roster folds its current points into
// its season total, then every player folds and resets, then the counter
// moves on. Rosters are scored against player points from before the reset.
func Close(s Snapshot) Transition {
	t := Transition{
		From:    s.State,
		To:      s.State.Next(),
		Rosters: make([]fantasy.Roster, 0, len(s.Rosters)),
		Players: make([]player.Player, 0, len(s.Players)),
	}

	rosterIdx := make(map[string]int, len(s.Rosters))
	for _, r := range s.Rosters {
		rosterIdx[r.UserID] = len(t.Rosters)
		t.Rosters = append(t.Rosters, r.Clone())
	}

	for _, c := range s.Challenges {
		if c.Gameweek != s.State.Current {
			continue
		}
		correct := c.CorrectCount(s.Matches)
		points := prediction.Bonus(correct)
		if points == 0 {
			continue
		}
		idx, ok := rosterIdx[c.UserID]
		if !ok {
			t.Faults = append(t.Faults, Fault{UserID: c.UserID, ChallengeID: c.ID, Err: ErrOwnerWithoutRoster})
			continue
		}
		t.Rosters[idx].TotalPoints += points
		t.Bonuses = append(t.Bonuses, Bonus{
			ChallengeID: c.ID,
			UserID:      c.UserID,
			RosterID:    t.Rosters[idx].ID,
			Correct:     correct,
			Points:      points,
		})
	}

	players := player.ByID(s.Players)
	for i := range t.Rosters {
		points, err := fantasy.CurrentPoints(t.Rosters[i], players)
		if err != nil {
			t.Faults = append(t.Faults, Fault{RosterID: t.Rosters[i].ID, UserID: t.Rosters[i].UserID, Err: err})
			continue
		}
		t.Rosters[i].TotalPoints += points
	}

	for _, p := range s.Players {
		p.TotalPoints += p.CurrentPoints
		p.CurrentPoints = 0
		t.Players = append(t.Players, p)
	}

	return t
}
