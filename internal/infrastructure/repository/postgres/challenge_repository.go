package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fsl-league/internal/domain/match"
	"github.com/riskibarqy/fsl-league/internal/domain/prediction"
	qb "github.com/riskibarqy/fsl-league/internal/platform/querybuilder"
)

type ChallengeRepository struct {
	db *sqlx.DB
}

func NewChallengeRepository(db *sqlx.DB) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

func (r *ChallengeRepository) GetByUserAndGameweek(ctx context.Context, userID string, gameweek int) (prediction.Challenge, bool, error) {
	items, err := selectChallenges(ctx, r.db, qb.Eq("user_public_id", userID), qb.Eq("gameweek", gameweek))
	if err != nil {
		return prediction.Challenge{}, false, err
	}
	if len(items) == 0 {
		return prediction.Challenge{}, false, nil
	}
	return items[0], true, nil
}

func (r *ChallengeRepository) ListByGameweek(ctx context.Context, gameweek int) ([]prediction.Challenge, error) {
	return selectChallenges(ctx, r.db, qb.Eq("gameweek", gameweek))
}

func (r *ChallengeRepository) Create(ctx context.Context, c prediction.Challenge) error {
	query, args, err := qb.InsertModel("prediction_challenges", challengeTableModel{
		PublicID:     c.ID,
		UserPublicID: c.UserID,
		Gameweek:     c.Gameweek,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert challenge query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user=%s gameweek=%d", prediction.ErrDuplicateChallenge, c.UserID, c.Gameweek)
		}
		return fmt.Errorf("insert challenge: %w", err)
	}
	return nil
}

func (r *ChallengeRepository) ReplacePredictions(ctx context.Context, challengeID string, predictions []prediction.Prediction) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for predictions: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM prediction_challenges WHERE public_id = $1)`, challengeID); err != nil {
		return fmt.Errorf("check challenge=%s: %w", challengeID, err)
	}
	if !exists {
		return fmt.Errorf("challenge %s not found", challengeID)
	}

	deleteSQL, deleteArgs, err := qb.DeleteFrom("predictions").
		Where(qb.Eq("challenge_public_id", challengeID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete predictions query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
		return fmt.Errorf("delete predictions challenge=%s: %w", challengeID, err)
	}

	if len(predictions) > 0 {
		insert := qb.InsertInto("predictions").Columns("challenge_public_id", "fixture_public_id", "outcome")
		for _, p := range predictions {
			insert.Values(challengeID, p.FixtureID, string(p.Outcome))
		}
		insertSQL, insertArgs, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert predictions query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return fmt.Errorf("insert predictions challenge=%s: %w", challengeID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit predictions tx: %w", err)
	}
	return nil
}

func selectChallenges(ctx context.Context, q sqlx.QueryerContext, conds ...qb.Condition) ([]prediction.Challenge, error) {
	query, args, err := qb.Select("public_id", "user_public_id", "gameweek").
		From("prediction_challenges").
		Where(conds...).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select challenges query: %w", err)
	}

	var rows []challengeTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select challenges: %w", err)
	}
	if len(rows) == 0 {
		return []prediction.Challenge{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PublicID)
	}
	predSQL, predArgs, err := qb.Select("challenge_public_id", "fixture_public_id", "outcome").
		From("predictions").
		Where(qb.In("challenge_public_id", stringSliceToAny(ids))).
		OrderBy("challenge_public_id", "fixture_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select predictions query: %w", err)
	}

	var predRows []predictionTableModel
	if err := sqlx.SelectContext(ctx, q, &predRows, predSQL, predArgs...); err != nil {
		return nil, fmt.Errorf("select predictions: %w", err)
	}
	byChallenge := make(map[string][]prediction.Prediction, len(rows))
	for _, p := range predRows {
		outcome, err := match.ParseOutcome(p.Outcome)
		if err != nil {
			return nil, fmt.Errorf("decode prediction challenge=%s: %w", p.ChallengePublicID, err)
		}
		byChallenge[p.ChallengePublicID] = append(byChallenge[p.ChallengePublicID], prediction.Prediction{
			FixtureID: p.FixturePublicID,
			Outcome:   outcome,
		})
	}

	out := make([]prediction.Challenge, 0, len(rows))
	for _, row := range rows {
		out = append(out, prediction.Challenge{
			ID:          row.PublicID,
			UserID:      row.UserPublicID,
			Gameweek:    row.Gameweek,
			Predictions: byChallenge[row.PublicID],
		})
	}
	return out, nil
}
