package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/fsl-league/internal/domain/team"
)

type TeamRepository struct {
	s *Store
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]team.Team, 0, len(r.s.teams))
	for _, item := range r.s.teams {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) UpsertTeams(_ context.Context, items []team.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		r.s.teams[item.ID] = item
	}
	return nil
}
