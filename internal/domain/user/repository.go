package user

import (
	"context"

	"github.com/riskibarqy/fsl-league/internal/domain/fantasy"
)

// Repository persists users.
type Repository interface {
	GetByID(ctx context.Context, userID string) (User, bool, error)
	// Create stores the user together with its empty roster. It fails with
	// ErrDuplicateUser when the username or email is taken.
	Create(ctx context.Context, u User, roster fantasy.Roster) error
}
