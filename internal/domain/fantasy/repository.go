package fantasy

import "context"

// Repository describes roster persistence needs from use cases.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Roster, bool, error)
	List(ctx context.Context) ([]Roster, error)
	// Save replaces the roster's name, members and captain. TotalPoints is
	// owned by the gameweek advancer and is not written here.
	Save(ctx context.Context, roster Roster) error
}
