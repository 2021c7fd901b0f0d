package usecase

import (
	"context"

	"github.com/riskibarqy/fsl-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/fsl-league/internal/domain/match"
	"github.com/riskibarqy/fsl-league/internal/domain/team"
	"github.com/sourcegraph/conc/iter"
)

// StandingsService derives the league table from recorded matches on every
// call.
type StandingsService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
}

func NewStandingsService(teamRepo team.Repository, matchRepo match.Repository) *StandingsService {
	return &StandingsService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
	}
}

func (s *StandingsService) List(ctx context.Context) ([]leaguestanding.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.List")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, internalError(err, "list teams")
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, internalError(err, "list matches")
	}

	rows := iter.Map(teams, func(t *team.Team) leaguestanding.Standing {
		row := leaguestanding.Compute(t.ID, matches)
		row.TeamName = t.Name
		return row
	})

	return leaguestanding.Rank(rows), nil
}
