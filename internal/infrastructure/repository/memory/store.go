package memory

import (
	"sync"

	"github.com/riskibarqy/fsl-league/internal/domain/fantasy"
	"github.com/riskibarqy/fsl-league/internal/domain/fixture"
	"github.com/riskibarqy/fsl-league/internal/domain/match"
	"github.com/riskibarqy/fsl-league/internal/domain/player"
	"github.com/riskibarqy/fsl-league/internal/domain/prediction"
	"github.com/riskibarqy/fsl-league/internal/domain/team"
	"github.com/riskibarqy/fsl-league/internal/domain/user"
)

// Store holds every table behind one lock, so operations spanning several
// repositories (match results, gameweek close) are atomic the same way a
// database transaction would be.
type Store struct {
	mu sync.RWMutex

	teams      map[string]team.Team
	players    map[string]player.Player
	fixtures   map[string]fixture.Fixture
	results    map[string]match.Result   // by fixture id
	rosters    map[string]fantasy.Roster // by user id
	users      map[string]user.User
	challenges map[string]prediction.Challenge
	gameweek   int

	// failpoint, when set, is called between the write stages of Advance.
	failpoint func(stage string) error
}

func NewStore() *Store {
	return &Store{
		teams:      make(map[string]team.Team),
		players:    make(map[string]player.Player),
		fixtures:   make(map[string]fixture.Fixture),
		results:    make(map[string]match.Result),
		rosters:    make(map[string]fantasy.Roster),
		users:      make(map[string]user.User),
		challenges: make(map[string]prediction.Challenge),
	}
}

// Repositories are views over a shared Store.
func (s *Store) Teams() *TeamRepository           { return &TeamRepository{s: s} }
func (s *Store) Players() *PlayerRepository       { return &PlayerRepository{s: s} }
func (s *Store) Fixtures() *FixtureRepository     { return &FixtureRepository{s: s} }
func (s *Store) Matches() *MatchRepository        { return &MatchRepository{s: s} }
func (s *Store) Rosters() *RosterRepository       { return &RosterRepository{s: s} }
func (s *Store) Users() *UserRepository           { return &UserRepository{s: s} }
func (s *Store) Challenges() *ChallengeRepository { return &ChallengeRepository{s: s} }
func (s *Store) Gameweeks() *GameweekRepository   { return &GameweekRepository{s: s} }

func cloneResult(r match.Result) match.Result {
	r.Ledger = match.Ledger{
		Saves:       cloneEntries(r.Ledger.Saves),
		Goals:       cloneEntries(r.Ledger.Goals),
		Assists:     cloneEntries(r.Ledger.Assists),
		YellowCards: cloneEntries(r.Ledger.YellowCards),
		RedCards:    cloneEntries(r.Ledger.RedCards),
	}
	return r
}

func cloneEntries(items []match.Entry) []match.Entry {
	if items == nil {
		return nil
	}
	out := make([]match.Entry, len(items))
	copy(out, items)
	return out
}

func cloneChallenge(c prediction.Challenge) prediction.Challenge {
	c.Predictions = append([]prediction.Prediction(nil), c.Predictions...)
	return c
}
