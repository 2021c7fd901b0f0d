package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fsl-league/internal/domain/gameweek"
	"github.com/riskibarqy/fsl-league/internal/domain/match"
	"github.com/riskibarqy/fsl-league/internal/domain/player"
	qb "github.com/riskibarqy/fsl-league/internal/platform/querybuilder"
)

type GameweekRepository struct {
	db *sqlx.DB
}

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

const selectGameweekStateQuery = `SELECT current_week FROM gameweek_state WHERE id = 1`

func (r *GameweekRepository) Current(ctx context.Context) (gameweek.State, error) {
	var current int
	if err := r.db.GetContext(ctx, &current, selectGameweekStateQuery); err != nil {
		if isNotFound(err) {
			return gameweek.Initial(), nil
		}
		return gameweek.State{}, fmt.Errorf("get gameweek state: %w", err)
	}
	return gameweek.State{Current: current}, nil
}

// Advance runs the whole close in one transaction. A transaction-scoped
// advisory lock keeps concurrent closes from interleaving, and the roster and
// player rows are locked for the duration of the read-compute-write.
func (r *GameweekRepository) Advance(ctx context.Context, fn gameweek.AdvanceFunc) (gameweek.Transition, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return gameweek.Transition{}, fmt.Errorf("begin tx for gameweek close: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, gameweekLockKey); err != nil {
		return gameweek.Transition{}, fmt.Errorf("acquire gameweek lock: %w", err)
	}

	snap, err := loadSnapshot(ctx, tx)
	if err != nil {
		return gameweek.Transition{}, err
	}

	t, err := fn(snap)
	if err != nil {
		return gameweek.Transition{}, err
	}
	if t.From != snap.State {
		return gameweek.Transition{}, fmt.Errorf("transition starts at gameweek %d, active is %d", t.From.Current, snap.State.Current)
	}

	if err := updateRosterTotals(ctx, tx, t); err != nil {
		return gameweek.Transition{}, err
	}
	if err := updatePlayerPoints(ctx, tx, t.Players); err != nil {
		return gameweek.Transition{}, err
	}

	const upsertStateQuery = `
INSERT INTO gameweek_state (id, current_week, updated_at)
VALUES (1, $1, NOW())
ON CONFLICT (id)
DO UPDATE SET
    current_week = EXCLUDED.current_week,
    updated_at = EXCLUDED.updated_at`
	if _, err := tx.ExecContext(ctx, upsertStateQuery, t.To.Current); err != nil {
		return gameweek.Transition{}, fmt.Errorf("store gameweek counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return gameweek.Transition{}, fmt.Errorf("commit gameweek close tx: %w", err)
	}
	return t, nil
}

func loadSnapshot(ctx context.Context, tx *sqlx.Tx) (gameweek.Snapshot, error) {
	state := gameweek.Initial()
	var current int
	if err := tx.GetContext(ctx, &current, selectGameweekStateQuery+` FOR UPDATE`); err != nil {
		if !isNotFound(err) {
			return gameweek.Snapshot{}, fmt.Errorf("lock gameweek state: %w", err)
		}
	} else {
		state = gameweek.State{Current: current}
	}

	challenges, err := selectChallenges(ctx, tx, qb.Eq("gameweek", state.Current))
	if err != nil {
		return gameweek.Snapshot{}, err
	}
	matches, err := listMatches(ctx, tx)
	if err != nil {
		return gameweek.Snapshot{}, err
	}
	rosters, err := selectRosters(ctx, tx, true)
	if err != nil {
		return gameweek.Snapshot{}, err
	}

	playersSQL, playersArgs, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("public_id").
		ForUpdate().
		ToSQL()
	if err != nil {
		return gameweek.Snapshot{}, fmt.Errorf("build lock players query: %w", err)
	}
	var playerRows []playerTableModel
	if err := tx.SelectContext(ctx, &playerRows, playersSQL, playersArgs...); err != nil {
		return gameweek.Snapshot{}, fmt.Errorf("lock players: %w", err)
	}

	return gameweek.Snapshot{
		State:      state,
		Challenges: challenges,
		Matches:    match.ByFixtureID(matches),
		Rosters:    rosters,
		Players:    playersFromRows(playerRows),
	}, nil
}

func updateRosterTotals(ctx context.Context, tx *sqlx.Tx, t gameweek.Transition) error {
	if len(t.Rosters) == 0 {
		return nil
	}
	ids := make([]string, 0, len(t.Rosters))
	totals := make([]int64, 0, len(t.Rosters))
	for _, roster := range t.Rosters {
		ids = append(ids, roster.ID)
		totals = append(totals, int64(roster.TotalPoints))
	}

	query, args, err := qb.Update("fantasy_rosters AS r").
		SetExpr("total_points", "v.total_points").
		SetExpr("updated_at", "NOW()").
		From("UNNEST(?::text[], ?::bigint[]) AS v(public_id, total_points)", pq.Array(ids), pq.Array(totals)).
		Where(qb.Expr("r.public_id = v.public_id")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build roster totals query: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update roster totals: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected != int64(len(ids)) {
		return fmt.Errorf("update roster totals: %d of %d rosters found", affected, len(ids))
	}
	return nil
}

func updatePlayerPoints(ctx context.Context, tx *sqlx.Tx, players []player.Player) error {
	if len(players) == 0 {
		return nil
	}
	ids := make([]string, 0, len(players))
	current := make([]int64, 0, len(players))
	totals := make([]int64, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
		current = append(current, int64(p.CurrentPoints))
		totals = append(totals, int64(p.TotalPoints))
	}

	query, args, err := qb.Update("players AS p").
		SetExpr("current_points", "v.current_points").
		SetExpr("total_points", "v.total_points").
		SetExpr("updated_at", "NOW()").
		From("UNNEST(?::text[], ?::bigint[], ?::bigint[]) AS v(public_id, current_points, total_points)",
			pq.Array(ids), pq.Array(current), pq.Array(totals)).
		Where(qb.Expr("p.public_id = v.public_id")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build fold player points query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("fold player points: %w", err)
	}
	return nil
}
