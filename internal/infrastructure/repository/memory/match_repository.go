package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fsl-league/internal/domain/match"
)

type MatchRepository struct {
	s *Store
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.listMatches(), nil
}

func (r *MatchRepository) GetByFixtureID(_ context.Context, fixtureID string) (match.Match, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res, ok := r.s.results[fixtureID]
	return res.Match, ok, nil
}

func (r *MatchRepository) GetResult(_ context.Context, fixtureID string) (match.Result, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res, ok := r.s.results[fixtureID]
	if !ok {
		return match.Result{}, false, nil
	}
	return cloneResult(res), true, nil
}

// SaveResult swaps the whole result under the write lock; readers see the
// previous ledger or the new one, never a mix.
func (r *MatchRepository) SaveResult(_ context.Context, result match.Result) (match.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.fixtures[result.Match.FixtureID]; !ok {
		return match.Match{}, fmt.Errorf("fixture %s not found", result.Match.FixtureID)
	}
	if existing, ok := r.s.results[result.Match.FixtureID]; ok {
		result.Match.ID = existing.Match.ID
	}
	r.s.results[result.Match.FixtureID] = cloneResult(result)
	return result.Match, nil
}

// listMatches expects the read lock.
func (s *Store) listMatches() []match.Match {
	out := make([]match.Match, 0, len(s.results))
	for _, res := range s.results {
		out = append(out, res.Match)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gameweek != out[j].Gameweek {
			return out[i].Gameweek < out[j].Gameweek
		}
		if !out[i].KickoffDate.Equal(out[j].KickoffDate) {
			return out[i].KickoffDate.Before(out[j].KickoffDate)
		}
		return out[i].FixtureID < out[j].FixtureID
	})
	return out
}
