package gameweek

import "context"

// AdvanceFunc turns the locked snapshot into the transition to persist.
type AdvanceFunc func(Snapshot) (Transition, error)

// Repository owns the gameweek counter and the close transaction.
type Repository interface {
	// Current returns Initial() when no counter has been stored.
	Current(ctx context.Context) (State, error)
	// Advance loads the snapshot for the active week, calls fn and writes
	// the returned transition. Reads and writes share one transaction; an
	// error from fn or from any write leaves stored state untouched.
	Advance(ctx context.Context, fn AdvanceFunc) (Transition, error)
}
