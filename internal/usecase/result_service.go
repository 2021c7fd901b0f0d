package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/fsl-league/internal/domain/fixture"
	"github.com/riskibarqy/fsl-league/internal/domain/match"
	"github.com/riskibarqy/fsl-league/internal/domain/player"
	"github.com/riskibarqy/fsl-league/internal/domain/team"
	idgen "github.com/riskibarqy/fsl-league/internal/platform/id"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
	"github.com/riskibarqy/fsl-league/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

// RecordMatchResultInput is the full box score of a played fixture.
type RecordMatchResultInput struct {
	FixtureID   string
	HomeScore   int
	AwayScore   int
	Saves       map[string]int
	Goals       map[string]int
	Assists     map[string]int
	YellowCards []string
	RedCards    []string
}

type MatchDetails struct {
	Result   match.Result
	HomeTeam team.Team
	AwayTeam team.Team
}

type ResultService struct {
	fixtureRepo fixture.Repository
	matchRepo   match.Repository
	playerRepo  player.Repository
	teamRepo    team.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	metrics     *metrics.Recorder
}

func NewResultService(
	fixtureRepo fixture.Repository,
	matchRepo match.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultService{
		fixtureRepo: fixtureRepo,
		matchRepo:   matchRepo,
		playerRepo:  playerRepo,
		teamRepo:    teamRepo,
		idGen:       idGen,
		logger:      logger,
		metrics:     recorder,
	}
}

// RecordMatchResult upserts the fixture's match and replaces its five
// ledgers. Input is fully validated before anything is written, so
// resubmitting the same payload leaves the same state behind.
func (s *ResultService) RecordMatchResult(ctx context.Context, input RecordMatchResultInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.RecordMatchResult",
		attribute.String("fixture.id", input.FixtureID))
	defer span.End()

	input.FixtureID = strings.TrimSpace(input.FixtureID)
	if input.FixtureID == "" {
		return match.Match{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	fx, exists, err := s.fixtureRepo.GetByID(ctx, input.FixtureID)
	if err != nil {
		return match.Match{}, internalError(err, "get fixture by id")
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, input.FixtureID)
	}

	existing, exists, err := s.matchRepo.GetByFixtureID(ctx, fx.ID)
	if err != nil {
		return match.Match{}, internalError(err, "get match by fixture")
	}
	matchID := existing.ID
	if !exists {
		matchID, err = s.idGen.NewID()
		if err != nil {
			return match.Match{}, internalError(err, "generate match id")
		}
	}
	m := match.FromFixture(matchID, fx, input.HomeScore, input.AwayScore)

	tallies := match.Tallies{
		Saves:       input.Saves,
		Goals:       input.Goals,
		Assists:     input.Assists,
		YellowCards: input.YellowCards,
		RedCards:    input.RedCards,
	}
	referenced := tallies.PlayerIDs()
	players, err := s.playerRepo.GetByIDs(ctx, referenced)
	if err != nil {
		return match.Match{}, internalError(err, "get players by ids")
	}
	teamOf := make(map[string]string, len(players))
	for _, p := range players {
		teamOf[p.ID] = p.TeamID
	}

	ledger, err := match.NewLedger(m, tallies, teamOf)
	if err != nil {
		if errors.Is(err, match.ErrUnknownPlayer) {
			return match.Match{}, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.matchRepo.SaveResult(ctx, match.Result{Match: m, Ledger: ledger})
	if err != nil {
		return match.Match{}, internalError(err, "save match result")
	}

	s.metrics.MatchResultRecorded()
	s.logger.InfoContext(ctx, "match result recorded",
		"fixture_id", saved.FixtureID,
		"match_id", saved.ID,
		"home_score", saved.HomeScore,
		"away_score", saved.AwayScore,
		"ledger_entries", ledger.Len(),
		"replaced", exists,
	)
	return saved, nil
}

func (s *ResultService) GetMatchDetails(ctx context.Context, fixtureID string) (MatchDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.GetMatchDetails",
		attribute.String("fixture.id", fixtureID))
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return MatchDetails{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	result, exists, err := s.matchRepo.GetResult(ctx, fixtureID)
	if err != nil {
		return MatchDetails{}, internalError(err, "get match result")
	}
	if !exists {
		return MatchDetails{}, fmt.Errorf("%w: match for fixture=%s", ErrNotFound, fixtureID)
	}

	details := MatchDetails{Result: result}
	for _, side := range []struct {
		id   string
		dest *team.Team
	}{
		{result.Match.HomeTeamID, &details.HomeTeam},
		{result.Match.AwayTeamID, &details.AwayTeam},
	} {
		item, ok, err := s.teamRepo.GetByID(ctx, side.id)
		if err != nil {
			return MatchDetails{}, internalError(err, "get team by id")
		}
		if !ok {
			return MatchDetails{}, fmt.Errorf("%w: team=%s", ErrNotFound, side.id)
		}
		*side.dest = item
	}

	return details, nil
}
