package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fsl-league/internal/domain/prediction"
)

type ChallengeRepository struct {
	s *Store
}

func (r *ChallengeRepository) GetByUserAndGameweek(_ context.Context, userID string, gameweek int) (prediction.Challenge, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.challenges {
		if c.UserID == userID && c.Gameweek == gameweek {
			return cloneChallenge(c), true, nil
		}
	}
	return prediction.Challenge{}, false, nil
}

func (r *ChallengeRepository) ListByGameweek(_ context.Context, gameweek int) ([]prediction.Challenge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.listChallenges(gameweek), nil
}

func (r *ChallengeRepository) Create(_ context.Context, challenge prediction.Challenge) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.challenges {
		if c.ID == challenge.ID || (c.UserID == challenge.UserID && c.Gameweek == challenge.Gameweek) {
			return fmt.Errorf("%w: user=%s gameweek=%d", prediction.ErrDuplicateChallenge, challenge.UserID, challenge.Gameweek)
		}
	}
	r.s.challenges[challenge.ID] = cloneChallenge(challenge)
	return nil
}

func (r *ChallengeRepository) ReplacePredictions(_ context.Context, challengeID string, predictions []prediction.Prediction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.challenges[challengeID]
	if !ok {
		return fmt.Errorf("challenge %s not found", challengeID)
	}
	c.Predictions = append([]prediction.Prediction(nil), predictions...)
	r.s.challenges[challengeID] = c
	return nil
}

// listChallenges expects the read lock.
func (s *Store) listChallenges(gameweek int) []prediction.Challenge {
	out := make([]prediction.Challenge, 0)
	for _, c := range s.challenges {
		if c.Gameweek == gameweek {
			out = append(out, cloneChallenge(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
