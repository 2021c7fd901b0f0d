package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fsl-league/internal/domain/fixture"
	qb "github.com/riskibarqy/fsl-league/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

var fixtureSelectColumns = []string{
	"public_id",
	"gameweek",
	"home_team_public_id",
	"away_team_public_id",
	"kickoff_date",
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	return r.list(ctx)
}

func (r *FixtureRepository) ListByGameweek(ctx context.Context, gameweek int) ([]fixture.Fixture, error) {
	return r.list(ctx, qb.Eq("gameweek", gameweek))
}

func (r *FixtureRepository) list(ctx context.Context, conds ...qb.Condition) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureSelectColumns...).From("fixtures").
		Where(conds...).
		OrderBy("gameweek", "kickoff_date", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(fixtureSelectColumns...).From("fixtures").
		Where(qb.Eq("public_id", fixtureID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build select fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture by id: %w", err)
	}
	return fixtureFromRow(row), true, nil
}

func (r *FixtureRepository) Create(ctx context.Context, item fixture.Fixture) error {
	query, args, err := qb.InsertModel("fixtures", fixtureTableModel{
		PublicID:         item.ID,
		Gameweek:         item.Gameweek,
		HomeTeamPublicID: item.HomeTeamID,
		AwayTeamPublicID: item.AwayTeamID,
		KickoffDate:      fixture.Date(item.KickoffDate),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert fixture query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", fixture.ErrDuplicateFixture, item.ID)
		}
		return fmt.Errorf("insert fixture: %w", err)
	}
	return nil
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:          row.PublicID,
		Gameweek:    row.Gameweek,
		HomeTeamID:  row.HomeTeamPublicID,
		AwayTeamID:  row.AwayTeamPublicID,
		KickoffDate: fixture.Date(row.KickoffDate),
	}
}
