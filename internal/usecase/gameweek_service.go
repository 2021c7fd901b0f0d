package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fsl-league/internal/domain/gameweek"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
	"github.com/riskibarqy/fsl-league/internal/platform/metrics"
)

type GameweekService struct {
	gameweekRepo gameweek.Repository
	logger       *logging.Logger
	metrics      *metrics.Recorder
	clock        clockwork.Clock

	// mu serializes closes inside this process. The postgres repository
	// also takes an advisory lock for other replicas.
	mu sync.Mutex
}

func NewGameweekService(gameweekRepo gameweek.Repository, logger *logging.Logger, recorder *metrics.Recorder) *GameweekService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameweekService{
		gameweekRepo: gameweekRepo,
		logger:       logger,
		metrics:      recorder,
		clock:        clockwork.NewRealClock(),
	}
}

func (s *GameweekService) Current(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Current")
	defer span.End()

	state, err := s.gameweekRepo.Current(ctx)
	if err != nil {
		return 0, internalError(err, "get current gameweek")
	}
	s.metrics.SetActiveGameweek(state.Current)
	return state.Current, nil
}

// CloseGameweek scores the active week's challenges, folds roster and player
// points into season totals, resets player points and opens the next week,
// all in one repository transaction.
func (s *GameweekService) CloseGameweek(ctx context.Context) (gameweek.Transition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.CloseGameweek")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	closedAt := s.clock.Now().UTC()
	transition, err := s.gameweekRepo.Advance(ctx, func(snap gameweek.Snapshot) (gameweek.Transition, error) {
		t := gameweek.Close(snap)
		t.ClosedAt = closedAt
		return t, nil
	})
	if err != nil {
		s.metrics.GameweekClosed(0, err)
		s.logger.ErrorContext(ctx, "close gameweek failed", "error", err)
		return gameweek.Transition{}, internalError(err, "close gameweek")
	}

	for _, fault := range transition.Faults {
		if !errors.Is(fault, gameweek.ErrOwnerWithoutRoster) {
			s.metrics.ScoringFallback()
		}
		s.logger.WarnContext(ctx, "gameweek close skipped points",
			"roster_id", fault.RosterID,
			"user_id", fault.UserID,
			"challenge_id", fault.ChallengeID,
			"error", fault.Err,
		)
	}

	s.metrics.GameweekClosed(transition.To.Current, nil)
	s.logger.InfoContext(ctx, "gameweek closed",
		"closed_gameweek", transition.From.Current,
		"active_gameweek", transition.To.Current,
		"bonuses", len(transition.Bonuses),
		"rosters", len(transition.Rosters),
		"players", len(transition.Players),
		"faults", len(transition.Faults),
	)
	return transition, nil
}
