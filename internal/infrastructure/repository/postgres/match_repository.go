package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fsl-league/internal/domain/fixture"
	"github.com/riskibarqy/fsl-league/internal/domain/match"
	qb "github.com/riskibarqy/fsl-league/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

var matchSelectColumns = []string{
	"public_id",
	"fixture_public_id",
	"gameweek",
	"home_team_public_id",
	"away_team_public_id",
	"kickoff_date",
	"home_score",
	"away_score",
}

var matchStatSelectColumns = []string{
	"match_public_id",
	"stat_type",
	"player_public_id",
	"team_public_id",
	"count",
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	return listMatches(ctx, r.db)
}

func listMatches(ctx context.Context, q sqlx.QueryerContext) ([]match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		OrderBy("gameweek", "kickoff_date", "fixture_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) GetByFixtureID(ctx context.Context, fixtureID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("fixture_public_id", fixtureID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by fixture query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by fixture: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) GetResult(ctx context.Context, fixtureID string) (match.Result, bool, error) {
	m, ok, err := r.GetByFixtureID(ctx, fixtureID)
	if err != nil || !ok {
		return match.Result{}, ok, err
	}

	query, args, err := qb.Select(matchStatSelectColumns...).From("match_player_stats").
		Where(qb.Eq("match_public_id", m.ID)).
		OrderBy("stat_type", "player_public_id").
		ToSQL()
	if err != nil {
		return match.Result{}, false, fmt.Errorf("build select match stats query: %w", err)
	}

	var rows []matchStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return match.Result{}, false, fmt.Errorf("select match stats: %w", err)
	}

	var ledger match.Ledger
	for _, row := range rows {
		stat, err := match.ParseStatType(row.StatType)
		if err != nil {
			return match.Result{}, false, fmt.Errorf("decode match stat for match=%s: %w", m.ID, err)
		}
		appendEntry(&ledger, stat, match.Entry{PlayerID: row.PlayerPublicID, TeamID: row.TeamPublicID, Count: row.Count})
	}

	return match.Result{Match: m, Ledger: ledger}, true, nil
}

// SaveResult upserts the match row keyed by fixture and swaps its stat rows
// inside one transaction. The stored public id wins over result.Match.ID on
// a rewrite.
func (r *MatchRepository) SaveResult(ctx context.Context, result match.Result) (match.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, fmt.Errorf("begin tx for match result: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	m := result.Match
	const upsertMatchQuery = `
INSERT INTO matches (
    public_id,
    fixture_public_id,
    gameweek,
    home_team_public_id,
    away_team_public_id,
    kickoff_date,
    home_score,
    away_score
) VALUES (:public_id, :fixture_public_id, :gameweek, :home_team_public_id, :away_team_public_id, :kickoff_date, :home_score, :away_score)
ON CONFLICT (fixture_public_id)
DO UPDATE SET
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    updated_at = NOW()
RETURNING public_id`

	upsertSQL, upsertArgs, err := sqlx.Named(upsertMatchQuery, matchTableModel{
		PublicID:         m.ID,
		FixturePublicID:  m.FixtureID,
		Gameweek:         m.Gameweek,
		HomeTeamPublicID: m.HomeTeamID,
		AwayTeamPublicID: m.AwayTeamID,
		KickoffDate:      fixture.Date(m.KickoffDate),
		HomeScore:        m.HomeScore,
		AwayScore:        m.AwayScore,
	})
	if err != nil {
		return match.Match{}, fmt.Errorf("bind upsert match query: %w", err)
	}
	upsertSQL = tx.Rebind(upsertSQL)

	var publicID string
	if err := tx.QueryRowxContext(ctx, upsertSQL, upsertArgs...).Scan(&publicID); err != nil {
		return match.Match{}, fmt.Errorf("upsert match fixture=%s: %w", m.FixtureID, err)
	}
	m.ID = publicID

	deleteSQL, deleteArgs, err := qb.DeleteFrom("match_player_stats").
		Where(qb.Eq("match_public_id", publicID)).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build delete match stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
		return match.Match{}, fmt.Errorf("delete match stats match=%s: %w", publicID, err)
	}

	if result.Ledger.Len() > 0 {
		insert := qb.InsertInto("match_player_stats").Columns(matchStatSelectColumns...)
		for _, stat := range match.AllStatTypes {
			for _, e := range result.Ledger.Entries(stat) {
				insert.Values(publicID, string(stat), e.PlayerID, e.TeamID, e.Count)
			}
		}
		insertSQL, insertArgs, err := insert.ToSQL()
		if err != nil {
			return match.Match{}, fmt.Errorf("build insert match stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return match.Match{}, fmt.Errorf("insert match stats match=%s: %w", publicID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return match.Match{}, fmt.Errorf("commit match result tx: %w", err)
	}
	return m, nil
}

func appendEntry(l *match.Ledger, stat match.StatType, e match.Entry) {
	switch stat {
	case match.StatSaves:
		l.Saves = append(l.Saves, e)
	case match.StatGoals:
		l.Goals = append(l.Goals, e)
	case match.StatAssists:
		l.Assists = append(l.Assists, e)
	case match.StatYellowCards:
		l.YellowCards = append(l.YellowCards, e)
	case match.StatRedCards:
		l.RedCards = append(l.RedCards, e)
	}
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:          row.PublicID,
		FixtureID:   row.FixturePublicID,
		Gameweek:    row.Gameweek,
		HomeTeamID:  row.HomeTeamPublicID,
		AwayTeamID:  row.AwayTeamPublicID,
		KickoffDate: fixture.Date(row.KickoffDate),
		HomeScore:   row.HomeScore,
		AwayScore:   row.AwayScore,
	}
}
