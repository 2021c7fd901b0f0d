package fixture

import "context"

// Repository exposes fixture persistence.
type Repository interface {
	List(ctx context.Context) ([]Fixture, error)
	ListByGameweek(ctx context.Context, gameweek int) ([]Fixture, error)
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
	// Create returns ErrDuplicateFixture when the same home team, away team
	// and kickoff date are already scheduled.
	Create(ctx context.Context, item Fixture) error
}
