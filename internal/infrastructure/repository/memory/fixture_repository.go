package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fsl-league/internal/domain/fixture"
)

type FixtureRepository struct {
	s *Store
}

func (r *FixtureRepository) List(_ context.Context) ([]fixture.Fixture, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.listFixtures(0), nil
}

func (r *FixtureRepository) ListByGameweek(_ context.Context, gameweek int) ([]fixture.Fixture, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.listFixtures(gameweek), nil
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.fixtures[fixtureID]
	return item, ok, nil
}

func (r *FixtureRepository) Create(_ context.Context, item fixture.Fixture) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.fixtures[item.ID]; ok {
		return fmt.Errorf("%w: id=%s", fixture.ErrDuplicateFixture, item.ID)
	}
	day := fixture.Date(item.KickoffDate)
	for _, existing := range r.s.fixtures {
		if existing.HomeTeamID == item.HomeTeamID &&
			existing.AwayTeamID == item.AwayTeamID &&
			fixture.Date(existing.KickoffDate).Equal(day) {
			return fmt.Errorf("%w: %s vs %s on %s", fixture.ErrDuplicateFixture, item.HomeTeamID, item.AwayTeamID, day.Format("2006-01-02"))
		}
	}
	r.s.fixtures[item.ID] = item
	return nil
}

// listFixtures expects the read lock. gameweek 0 lists everything.
func (s *Store) listFixtures(gameweek int) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(s.fixtures))
	for _, f := range s.fixtures {
		if gameweek > 0 && f.Gameweek != gameweek {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gameweek != out[j].Gameweek {
			return out[i].Gameweek < out[j].Gameweek
		}
		if !out[i].KickoffDate.Equal(out[j].KickoffDate) {
			return out[i].KickoffDate.Before(out[j].KickoffDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
