package player

import "context"

// Filter narrows player listings. Zero values match everything.
type Filter struct {
	Position Position
	TeamID   string
}

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	// UpsertPlayers inserts new players and refreshes the reference fields
	// (name, team, position, price) of existing ones. Points are untouched.
	UpsertPlayers(ctx context.Context, items []Player) error
	// SetCurrentPoints overwrites current_points for every listed player in
	// one atomic write.
	SetCurrentPoints(ctx context.Context, points map[string]int) error
}
