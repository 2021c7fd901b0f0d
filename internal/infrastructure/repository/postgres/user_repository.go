package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fsl-league/internal/domain/fantasy"
	"github.com/riskibarqy/fsl-league/internal/domain/user"
	qb "github.com/riskibarqy/fsl-league/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	query, args, err := qb.Select("public_id", "username", "email", "password_hash", "favorite_team_public_id", "created_at").
		From("users").
		Where(qb.Eq("public_id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build select user by id query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by id: %w", err)
	}

	return user.User{
		ID:             row.PublicID,
		Username:       row.Username,
		Email:          row.Email,
		PasswordHash:   row.PasswordHash,
		FavoriteTeamID: row.FavoriteTeamPublicID.String,
		CreatedAt:      row.CreatedAt,
	}, true, nil
}

// Create stores the user and its roster together.
func (r *UserRepository) Create(ctx context.Context, u user.User, roster fantasy.Roster) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for user create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModel("users", userTableModel{
		PublicID:             u.ID,
		Username:             u.Username,
		Email:                u.Email,
		PasswordHash:         u.PasswordHash,
		FavoriteTeamPublicID: nullString(u.FavoriteTeamID),
		CreatedAt:            u.CreatedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", user.ErrDuplicateUser, u.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	roster.UserID = u.ID
	if err := writeRoster(ctx, tx, roster); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: roster exists for user %s", user.ErrDuplicateUser, u.ID)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit user create tx: %w", err)
	}
	return nil
}
