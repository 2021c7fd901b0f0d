package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fsl-league/internal/domain/player"
	qb "github.com/riskibarqy/fsl-league/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"public_id",
	"team_public_id",
	"name",
	"position",
	"price",
	"current_points",
	"total_points",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	var conds []qb.Condition
	if filter.Position != "" {
		conds = append(conds, qb.Eq("position", string(filter.Position)))
	}
	if filter.TeamID != "" {
		conds = append(conds, qb.Eq("team_public_id", filter.TeamID))
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(conds...).
		OrderBy("name", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	return playersFromRows(rows), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("public_id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("public_id", stringSliceToAny(playerIDs))).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}
	return playersFromRows(rows), nil
}

// UpsertPlayers leaves current_points and total_points untouched on conflict.
func (r *PlayerRepository) UpsertPlayers(ctx context.Context, items []player.Player) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertPlayerQuery = `
INSERT INTO players (public_id, team_public_id, name, position, price)
VALUES (:public_id, :team_public_id, :name, :position, :price)
ON CONFLICT (public_id)
DO UPDATE SET
    team_public_id = EXCLUDED.team_public_id,
    name = EXCLUDED.name,
    position = EXCLUDED.position,
    price = EXCLUDED.price,
    updated_at = NOW()`

	for _, item := range items {
		query, args, err := sqlx.Named(upsertPlayerQuery, map[string]any{
			"public_id":      item.ID,
			"team_public_id": item.TeamID,
			"name":           item.Name,
			"position":       string(item.Position),
			"price":          int64(item.Price),
		})
		if err != nil {
			return fmt.Errorf("bind upsert player=%s query: %w", item.ID, err)
		}
		query = tx.Rebind(query)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player=%s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player upsert tx: %w", err)
	}
	return nil
}

// SetCurrentPoints writes every value or none. An id without a row aborts
// the batch.
func (r *PlayerRepository) SetCurrentPoints(ctx context.Context, points map[string]int) error {
	if len(points) == 0 {
		return nil
	}

	ids := make([]string, 0, len(points))
	for id := range points {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	values := make([]int64, 0, len(ids))
	for _, id := range ids {
		values = append(values, int64(points[id]))
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player points: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("players AS p").
		SetExpr("current_points", "v.points").
		SetExpr("updated_at", "NOW()").
		From("UNNEST(?::text[], ?::bigint[]) AS v(public_id, points)", pq.Array(ids), pq.Array(values)).
		Where(qb.Expr("p.public_id = v.public_id")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set player points query: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set player current points: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected player rows: %w", err)
	}
	if affected != int64(len(ids)) {
		return fmt.Errorf("set player current points: %d of %d players found", affected, len(ids))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player points tx: %w", err)
	}
	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:            row.PublicID,
		TeamID:        row.TeamPublicID,
		Name:          row.Name,
		Position:      player.Position(row.Position),
		Price:         player.Price(row.Price),
		CurrentPoints: row.CurrentPoints,
		TotalPoints:   row.TotalPoints,
	}
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}
