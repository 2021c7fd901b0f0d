package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fsl-league/internal/domain/player"
)

type PlayerRepository struct {
	s *Store
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]player.Player, 0, len(r.s.players))
	for _, p := range r.s.players {
		if filter.Position != "" && p.Position != filter.Position {
			continue
		}
		if filter.TeamID != "" && p.TeamID != filter.TeamID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.s.players[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PlayerRepository) UpsertPlayers(_ context.Context, items []player.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, item := range items {
		if item.ID == "" {
			continue
		}
		if existing, ok := r.s.players[item.ID]; ok {
			item.CurrentPoints = existing.CurrentPoints
			item.TotalPoints = existing.TotalPoints
		}
		r.s.players[item.ID] = item
	}
	return nil
}

func (r *PlayerRepository) SetCurrentPoints(_ context.Context, points map[string]int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id := range points {
		if _, ok := r.s.players[id]; !ok {
			return fmt.Errorf("player %s not found", id)
		}
	}
	for id, value := range points {
		p := r.s.players[id]
		p.CurrentPoints = value
		r.s.players[id] = p
	}
	return nil
}
