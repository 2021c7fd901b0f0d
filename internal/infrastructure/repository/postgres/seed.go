package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fsl-league/internal/domain/fixture"
	"github.com/riskibarqy/fsl-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo league into an empty database. It is a no-op
// once any team exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	data := memory.Seed()

	for _, t := range data.Teams {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (public_id, name)
VALUES (:public_id, :name)
ON CONFLICT (public_id) DO NOTHING`, teamTableModel{PublicID: t.ID, Name: t.Name})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, p := range data.Players {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, team_public_id, name, position, price)
VALUES (:public_id, :team_public_id, :name, :position, :price)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":      p.ID,
			"team_public_id": p.TeamID,
			"name":           p.Name,
			"position":       string(p.Position),
			"price":          int64(p.Price),
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, f := range data.Fixtures {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO fixtures (public_id, gameweek, home_team_public_id, away_team_public_id, kickoff_date)
VALUES (:public_id, :gameweek, :home_team_public_id, :away_team_public_id, :kickoff_date)
ON CONFLICT (public_id) DO NOTHING`, fixtureTableModel{
			PublicID:         f.ID,
			Gameweek:         f.Gameweek,
			HomeTeamPublicID: f.HomeTeamID,
			AwayTeamPublicID: f.AwayTeamID,
			KickoffDate:      fixture.Date(f.KickoffDate),
		})
		if err != nil {
			return fmt.Errorf("bind seed fixture %s query: %w", f.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed fixture %s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
