package match

import "context"

// Repository persists matches and their ledgers.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	GetByFixtureID(ctx context.Context, fixtureID string) (Match, bool, error)
	GetResult(ctx context.Context, fixtureID string) (Result, bool, error)
	// SaveResult upserts the match keyed by fixture and replaces all five
	// ledgers in a single transaction. An existing match keeps its id; the
	// stored match is returned.
	SaveResult(ctx context.Context, result Result) (Match, error)
}
