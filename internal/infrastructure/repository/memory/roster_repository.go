package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fsl-league/internal/domain/fantasy"
)

type RosterRepository struct {
	s *Store
}

func (r *RosterRepository) GetByUserID(_ context.Context, userID string) (fantasy.Roster, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	roster, ok := r.s.rosters[userID]
	if !ok {
		return fantasy.Roster{}, false, nil
	}
	return roster.Clone(), true, nil
}

func (r *RosterRepository) List(_ context.Context) ([]fantasy.Roster, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.listRosters(), nil
}

func (r *RosterRepository) Save(_ context.Context, roster fantasy.Roster) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.s.rosters[roster.UserID]; ok {
		if existing.ID != roster.ID {
			return fmt.Errorf("user %s already owns roster %s", roster.UserID, existing.ID)
		}
		roster.TotalPoints = existing.TotalPoints
	} else {
		roster.TotalPoints = 0
	}
	r.s.rosters[roster.UserID] = roster.Clone()
	return nil
}

// listRosters expects the read lock.
func (s *Store) listRosters() []fantasy.Roster {
	out := make([]fantasy.Roster, 0, len(s.rosters))
	for _, roster := range s.rosters {
		out = append(out, roster.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
