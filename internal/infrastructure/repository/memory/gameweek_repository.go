package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"

	"github.com/riskibarqy/fsl-league/internal/domain/gameweek"
	"github.com/riskibarqy/fsl-league/internal/domain/match"
	"github.com/riskibarqy/fsl-league/internal/domain/player"
)

type GameweekRepository struct {
	s *Store
}

func (r *GameweekRepository) Current(_ context.Context) (gameweek.State, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.stateLocked(), nil
}

// Advance holds the write lock for the whole close. Writes go to copies of
// the roster and player tables that replace the live ones only after every
// stage succeeded.
func (r *GameweekRepository) Advance(_ context.Context, fn gameweek.AdvanceFunc) (gameweek.Transition, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := gameweek.Snapshot{
		State:      s.stateLocked(),
		Challenges: s.listChallenges(s.stateLocked().Current),
		Matches:    match.ByFixtureID(s.listMatches()),
		Rosters:    s.listRosters(),
		Players:    s.listPlayers(),
	}

	t, err := fn(snap)
	if err != nil {
		return gameweek.Transition{}, err
	}
	if t.From != snap.State {
		return gameweek.Transition{}, fmt.Errorf("transition starts at gameweek %d, active is %d", t.From.Current, snap.State.Current)
	}

	rosters := maps.Clone(s.rosters)
	for _, updated := range t.Rosters {
		current, ok := rosters[updated.UserID]
		if !ok || current.ID != updated.ID {
			return gameweek.Transition{}, fmt.Errorf("roster %s not found", updated.ID)
		}
		current.TotalPoints = updated.TotalPoints
		rosters[updated.UserID] = current
	}
	if err := s.fail("rosters"); err != nil {
		return gameweek.Transition{}, err
	}

	players := maps.Clone(s.players)
	for _, updated := range t.Players {
		current, ok := players[updated.ID]
		if !ok {
			return gameweek.Transition{}, fmt.Errorf("player %s not found", updated.ID)
		}
		current.CurrentPoints = updated.CurrentPoints
		current.TotalPoints = updated.TotalPoints
		players[updated.ID] = current
	}
	if err := s.fail("players"); err != nil {
		return gameweek.Transition{}, err
	}
	if err := s.fail("counter"); err != nil {
		return gameweek.Transition{}, err
	}

	s.rosters = rosters
	s.players = players
	s.gameweek = t.To.Current
	return t, nil
}

func (s *Store) stateLocked() gameweek.State {
	if s.gameweek < 1 {
		return gameweek.Initial()
	}
	return gameweek.State{Current: s.gameweek}
}

// listPlayers expects the read lock.
func (s *Store) listPlayers() []player.Player {
	out := make([]player.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) fail(stage string) error {
	if s.failpoint == nil {
		return nil
	}
	return s.failpoint(stage)
}
