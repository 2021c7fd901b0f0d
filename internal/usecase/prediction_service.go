package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/fsl-league/internal/domain/fixture"
	"github.com/riskibarqy/fsl-league/internal/domain/gameweek"
	"github.com/riskibarqy/fsl-league/internal/domain/prediction"
	"github.com/riskibarqy/fsl-league/internal/domain/user"
	idgen "github.com/riskibarqy/fsl-league/internal/platform/id"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
)

type PredictionService struct {
	challengeRepo prediction.Repository
	gameweekRepo  gameweek.Repository
	fixtureRepo   fixture.Repository
	userRepo      user.Repository
	idGen         idgen.Generator
	logger        *logging.Logger
}

func NewPredictionService(
	challengeRepo prediction.Repository,
	gameweekRepo gameweek.Repository,
	fixtureRepo fixture.Repository,
	userRepo user.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		challengeRepo: challengeRepo,
		gameweekRepo:  gameweekRepo,
		fixtureRepo:   fixtureRepo,
		userRepo:      userRepo,
		idGen:         idGen,
		logger:        logger,
	}
}

// EnterChallenge opens the user's challenge for the active gameweek.
func (s *PredictionService) EnterChallenge(ctx context.Context, userID string) (prediction.Challenge, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.EnterChallenge")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return prediction.Challenge{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	_, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return prediction.Challenge{}, internalError(err, "get user by id")
	}
	if !exists {
		return prediction.Challenge{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	state, err := s.gameweekRepo.Current(ctx)
	if err != nil {
		return prediction.Challenge{}, internalError(err, "get current gameweek")
	}

	challengeID, err := s.idGen.NewID()
	if err != nil {
		return prediction.Challenge{}, internalError(err, "generate challenge id")
	}
	challenge := prediction.Challenge{ID: challengeID, UserID: userID, Gameweek: state.Current}

	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		if errors.Is(err, prediction.ErrDuplicateChallenge) {
			return prediction.Challenge{}, fmt.Errorf("%w: user=%s gameweek=%d", ErrConflict, userID, state.Current)
		}
		return prediction.Challenge{}, internalError(err, "create challenge")
	}

	s.logger.InfoContext(ctx, "challenge entered",
		"user_id", userID,
		"challenge_id", challenge.ID,
		"gameweek", challenge.Gameweek,
	)
	return challenge, nil
}

// SubmitPredictions replaces the prediction set of the user's challenge for
// the active gameweek. Every fixture must be scheduled in that gameweek.
func (s *PredictionService) SubmitPredictions(ctx context.Context, userID string, outcomes map[string]string) (prediction.Challenge, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.SubmitPredictions")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return prediction.Challenge{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	trimmed := make(map[string]string, len(outcomes))
	for fixtureID, outcome := range outcomes {
		id := strings.TrimSpace(fixtureID)
		if _, dup := trimmed[id]; dup {
			return prediction.Challenge{}, fmt.Errorf("%w: duplicate fixture=%s in predictions", ErrInvalidInput, id)
		}
		trimmed[id] = outcome
	}
	predictions, err := prediction.FromMap(trimmed)
	if err != nil {
		return prediction.Challenge{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	state, err := s.gameweekRepo.Current(ctx)
	if err != nil {
		return prediction.Challenge{}, internalError(err, "get current gameweek")
	}

	challenge, exists, err := s.challengeRepo.GetByUserAndGameweek(ctx, userID, state.Current)
	if err != nil {
		return prediction.Challenge{}, internalError(err, "get challenge")
	}
	if !exists {
		return prediction.Challenge{}, fmt.Errorf("%w: no challenge entered for gameweek=%d", ErrNotFound, state.Current)
	}

	fixtures, err := s.fixtureRepo.ListByGameweek(ctx, state.Current)
	if err != nil {
		return prediction.Challenge{}, internalError(err, "list fixtures by gameweek")
	}
	scheduled := make(map[string]struct{}, len(fixtures))
	for _, f := range fixtures {
		scheduled[f.ID] = struct{}{}
	}
	for _, p := range predictions {
		if _, ok := scheduled[p.FixtureID]; ok {
			continue
		}
		_, known, err := s.fixtureRepo.GetByID(ctx, p.FixtureID)
		if err != nil {
			return prediction.Challenge{}, internalError(err, "get fixture by id")
		}
		if !known {
			return prediction.Challenge{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, p.FixtureID)
		}
		return prediction.Challenge{}, fmt.Errorf("%w: %v: fixture=%s gameweek=%d",
			ErrInvalidInput, prediction.ErrFixtureOutsideWeek, p.FixtureID, state.Current)
	}

	if err := s.challengeRepo.ReplacePredictions(ctx, challenge.ID, predictions); err != nil {
		return prediction.Challenge{}, internalError(err, "replace predictions")
	}
	challenge.Predictions = predictions

	s.logger.InfoContext(ctx, "predictions submitted",
		"user_id", userID,
		"challenge_id", challenge.ID,
		"gameweek", challenge.Gameweek,
		"prediction_count", len(predictions),
	)
	return challenge, nil
}
