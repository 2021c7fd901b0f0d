package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fsl-league/internal/domain/fixture"
	"github.com/riskibarqy/fsl-league/internal/domain/team"
	idgen "github.com/riskibarqy/fsl-league/internal/platform/id"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
)

type CreateFixtureInput struct {
	Gameweek    int
	HomeTeamID  string
	AwayTeamID  string
	KickoffDate time.Time
}

type FixtureService struct {
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
}

func NewFixtureService(teamRepo team.Repository, fixtureRepo fixture.Repository, idGen idgen.Generator, logger *logging.Logger) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureService{
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		idGen:       idGen,
		logger:      logger,
	}
}

// List returns every fixture, or only the given gameweek's when gameweek > 0.
func (s *FixtureService) List(ctx context.Context, gameweek int) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.List")
	defer span.End()

	if gameweek < 0 {
		return nil, fmt.Errorf("%w: gameweek must be >= 0", ErrInvalidInput)
	}

	var (
		items []fixture.Fixture
		err   error
	)
	if gameweek == 0 {
		items, err = s.fixtureRepo.List(ctx)
	} else {
		items, err = s.fixtureRepo.ListByGameweek(ctx, gameweek)
	}
	if err != nil {
		return nil, internalError(err, "list fixtures")
	}
	return items, nil
}

func (s *FixtureService) Create(ctx context.Context, input CreateFixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Create")
	defer span.End()

	input.HomeTeamID = strings.TrimSpace(input.HomeTeamID)
	input.AwayTeamID = strings.TrimSpace(input.AwayTeamID)
	if input.Gameweek < 1 {
		return fixture.Fixture{}, fmt.Errorf("%w: gameweek must be >= 1", ErrInvalidInput)
	}
	if input.HomeTeamID == "" || input.AwayTeamID == "" {
		return fixture.Fixture{}, fmt.Errorf("%w: home and away team ids are required", ErrInvalidInput)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return fixture.Fixture{}, fmt.Errorf("%w: home and away team must differ", ErrInvalidInput)
	}
	if input.KickoffDate.IsZero() {
		return fixture.Fixture{}, fmt.Errorf("%w: kickoff date is required", ErrInvalidInput)
	}

	for _, teamID := range []string{input.HomeTeamID, input.AwayTeamID} {
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return fixture.Fixture{}, internalError(err, "get team by id")
		}
		if !exists {
			return fixture.Fixture{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	fixtureID, err := s.idGen.NewID()
	if err != nil {
		return fixture.Fixture{}, internalError(err, "generate fixture id")
	}

	item := fixture.Fixture{
		ID:          fixtureID,
		Gameweek:    input.Gameweek,
		HomeTeamID:  input.HomeTeamID,
		AwayTeamID:  input.AwayTeamID,
		KickoffDate: fixture.Date(input.KickoffDate),
	}
	if err := item.Validate(); err != nil {
		return fixture.Fixture{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.fixtureRepo.Create(ctx, item); err != nil {
		if errors.Is(err, fixture.ErrDuplicateFixture) {
			return fixture.Fixture{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return fixture.Fixture{}, internalError(err, "create fixture")
	}

	s.logger.InfoContext(ctx, "fixture created",
		"fixture_id", item.ID,
		"gameweek", item.Gameweek,
		"home_team_id", item.HomeTeamID,
		"away_team_id", item.AwayTeamID,
	)
	return item, nil
}
