package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fsl-league/internal/domain/fantasy"
	"github.com/riskibarqy/fsl-league/internal/domain/team"
	"github.com/riskibarqy/fsl-league/internal/domain/user"
	idgen "github.com/riskibarqy/fsl-league/internal/platform/id"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

type RegisterUserInput struct {
	Username       string
	Email          string
	Password       string
	FavoriteTeamID string
}

type UserService struct {
	userRepo user.Repository
	teamRepo team.Repository
	idGen    idgen.Generator
	logger   *logging.Logger
	clock    clockwork.Clock
	hashCost int
}

func NewUserService(userRepo user.Repository, teamRepo team.Repository, idGen idgen.Generator, logger *logging.Logger) *UserService {
	if logger == nil {
		logger = logging.Default()
	}
	return &UserService{
		userRepo: userRepo,
		teamRepo: teamRepo,
		idGen:    idGen,
		logger:   logger,
		clock:    clockwork.NewRealClock(),
		hashCost: bcrypt.DefaultCost,
	}
}

// Register stores a new user together with an empty roster.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (user.User, fantasy.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Register")
	defer span.End()

	input.Username = strings.TrimSpace(input.Username)
	input.Email = user.NormalizeEmail(input.Email)
	input.FavoriteTeamID = strings.TrimSpace(input.FavoriteTeamID)
	if input.Username == "" {
		return user.User{}, fantasy.Roster{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength || len(input.Password) > maxPasswordLength {
		return user.User{}, fantasy.Roster{}, fmt.Errorf("%w: password must be %d to %d bytes", ErrInvalidInput, minPasswordLength, maxPasswordLength)
	}
	if input.FavoriteTeamID == "" {
		return user.User{}, fantasy.Roster{}, fmt.Errorf("%w: favorite team id is required", ErrInvalidInput)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, input.FavoriteTeamID)
	if err != nil {
		return user.User{}, fantasy.Roster{}, internalError(err, "get team by id")
	}
	if !exists {
		return user.User{}, fantasy.Roster{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.FavoriteTeamID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return user.User{}, fantasy.Roster{}, internalError(err, "hash password")
	}

	userID, err := s.idGen.NewID()
	if err != nil {
		return user.User{}, fantasy.Roster{}, internalError(err, "generate user id")
	}
	rosterID, err := s.idGen.NewID()
	if err != nil {
		return user.User{}, fantasy.Roster{}, internalError(err, "generate roster id")
	}

	now := s.clock.Now().UTC()
	u := user.User{
		ID:             userID,
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   string(hash),
		FavoriteTeamID: input.FavoriteTeamID,
		CreatedAt:      now,
	}
	if err := u.Validate(); err != nil {
		return user.User{}, fantasy.Roster{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	roster := fantasy.Roster{
		ID:        rosterID,
		UserID:    userID,
		Name:      defaultRosterName(u.Username),
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, u, roster); err != nil {
		if errors.Is(err, user.ErrDuplicateUser) {
			return user.User{}, fantasy.Roster{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return user.User{}, fantasy.Roster{}, internalError(err, "create user")
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", u.ID, "roster_id", roster.ID)
	return u, roster, nil
}

// VerifyPassword reports whether password matches the user's stored hash.
func VerifyPassword(u user.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
