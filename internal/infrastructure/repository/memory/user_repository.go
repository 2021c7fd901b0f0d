package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fsl-league/internal/domain/fantasy"
	"github.com/riskibarqy/fsl-league/internal/domain/user"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[userID]
	return u, ok, nil
}

func (r *UserRepository) Create(_ context.Context, u user.User, roster fantasy.Roster) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; ok {
		return fmt.Errorf("%w: id=%s", user.ErrDuplicateUser, u.ID)
	}
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Username, u.Username) || strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("%w: %s", user.ErrDuplicateUser, u.Username)
		}
	}
	if _, ok := r.s.rosters[u.ID]; ok {
		return fmt.Errorf("%w: roster exists for user %s", user.ErrDuplicateUser, u.ID)
	}

	r.s.users[u.ID] = u
	roster.UserID = u.ID
	r.s.rosters[u.ID] = roster.Clone()
	return nil
}
