package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fsl-league/internal/domain/fantasy"
	qb "github.com/riskibarqy/fsl-league/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

var rosterSelectColumns = []string{
	"public_id",
	"user_public_id",
	"name",
	"captain_player_public_id",
	"total_points",
	"updated_at",
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetByUserID(ctx context.Context, userID string) (fantasy.Roster, bool, error) {
	items, err := selectRosters(ctx, r.db, false, qb.Eq("user_public_id", userID))
	if err != nil {
		return fantasy.Roster{}, false, err
	}
	if len(items) == 0 {
		return fantasy.Roster{}, false, nil
	}
	return items[0], true, nil
}

func (r *RosterRepository) List(ctx context.Context) ([]fantasy.Roster, error) {
	return selectRosters(ctx, r.db, false)
}

// Save writes name, captain and members. total_points is owned by the
// gameweek close and never changes here.
func (r *RosterRepository) Save(ctx context.Context, roster fantasy.Roster) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for roster save: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := writeRoster(ctx, tx, roster); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s already owns another roster: %w", roster.UserID, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster save tx: %w", err)
	}
	return nil
}

func writeRoster(ctx context.Context, tx *sqlx.Tx, roster fantasy.Roster) error {
	const upsertRosterQuery = `
INSERT INTO fantasy_rosters (public_id, user_public_id, name, captain_player_public_id)
VALUES (:public_id, :user_public_id, :name, :captain_player_public_id)
ON CONFLICT (public_id)
DO UPDATE SET
    name = EXCLUDED.name,
    captain_player_public_id = EXCLUDED.captain_player_public_id,
    updated_at = NOW()`

	query, args, err := sqlx.Named(upsertRosterQuery, map[string]any{
		"public_id":                roster.ID,
		"user_public_id":           roster.UserID,
		"name":                     roster.Name,
		"captain_player_public_id": nullString(roster.CaptainID),
	})
	if err != nil {
		return fmt.Errorf("bind upsert roster query: %w", err)
	}
	query = tx.Rebind(query)
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert roster=%s: %w", roster.ID, err)
	}

	deleteSQL, deleteArgs, err := qb.DeleteFrom("fantasy_roster_players").
		Where(qb.Eq("roster_public_id", roster.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete roster members query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
		return fmt.Errorf("delete roster members roster=%s: %w", roster.ID, err)
	}

	if len(roster.PlayerIDs) == 0 {
		return nil
	}
	insert := qb.InsertInto("fantasy_roster_players").Columns("roster_public_id", "player_public_id", "slot")
	for slot, playerID := range roster.PlayerIDs {
		insert.Values(roster.ID, playerID, slot)
	}
	insertSQL, insertArgs, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert roster members query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("insert roster members roster=%s: %w", roster.ID, err)
	}
	return nil
}

func selectRosters(ctx context.Context, q sqlx.QueryerContext, forUpdate bool, conds ...qb.Condition) ([]fantasy.Roster, error) {
	builder := qb.Select(rosterSelectColumns...).From("fantasy_rosters").
		Where(conds...).
		OrderBy("public_id")
	if forUpdate {
		builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select rosters query: %w", err)
	}

	var rows []rosterTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select rosters: %w", err)
	}
	if len(rows) == 0 {
		return []fantasy.Roster{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PublicID)
	}
	membersSQL, membersArgs, err := qb.Select("roster_public_id", "player_public_id", "slot").
		From("fantasy_roster_players").
		Where(qb.In("roster_public_id", stringSliceToAny(ids))).
		OrderBy("roster_public_id", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster members query: %w", err)
	}

	var memberRows []rosterMemberTableModel
	if err := sqlx.SelectContext(ctx, q, &memberRows, membersSQL, membersArgs...); err != nil {
		return nil, fmt.Errorf("select roster members: %w", err)
	}
	members := make(map[string][]string, len(rows))
	for _, m := range memberRows {
		members[m.RosterPublicID] = append(members[m.RosterPublicID], m.PlayerPublicID)
	}

	out := make([]fantasy.Roster, 0, len(rows))
	for _, row := range rows {
		out = append(out, fantasy.Roster{
			ID:          row.PublicID,
			UserID:      row.UserPublicID,
			Name:        row.Name,
			PlayerIDs:   members[row.PublicID],
			CaptainID:   row.CaptainPlayerPublicID.String,
			TotalPoints: row.TotalPoints,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return out, nil
}
