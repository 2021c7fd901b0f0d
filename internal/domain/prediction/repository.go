package prediction

import "context"

// Repository persists prediction challenges.
type Repository interface {
	GetByUserAndGameweek(ctx context.Context, userID string, gameweek int) (Challenge, bool, error)
	ListByGameweek(ctx context.Context, gameweek int) ([]Challenge, error)
	// Create fails with ErrDuplicateChallenge when the user already entered
	// the gameweek.
	Create(ctx context.Context, challenge Challenge) error
	// ReplacePredictions swaps the challenge's prediction set in full.
	ReplacePredictions(ctx context.Context, challengeID string, predictions []Prediction) error
}
