package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fsl-league/internal/domain/player"
	"github.com/riskibarqy/fsl-league/internal/domain/team"
	idgen "github.com/riskibarqy/fsl-league/internal/platform/id"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
	"github.com/riskibarqy/fsl-league/internal/platform/metrics"
)

const defaultImportWorkers = 4

type ImportResult struct {
	TeamsCreated   int
	TeamsUpdated   int
	PlayersCreated int
	PlayersUpdated int
}

// ReferenceService loads real teams and players from tabular rows. Rows are
// matched to existing entities by name, so re-running an import updates in
// place.
type ReferenceService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
	validator  *validator.Validate
	workers    int
	logger     *logging.Logger
	metrics    *metrics.Recorder
}

func NewReferenceService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
	workers int,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *ReferenceService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultImportWorkers
	}
	return &ReferenceService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		validator:  validator.New(),
		workers:    workers,
		logger:     logger,
		metrics:    recorder,
	}
}

func (s *ReferenceService) Import(ctx context.Context, teamRows []team.Row, playerRows []player.Row) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceService.Import")
	defer span.End()

	var result ImportResult

	teams, created, err := s.importTeams(ctx, teamRows)
	if err != nil {
		return ImportResult{}, err
	}
	result.TeamsCreated = created
	result.TeamsUpdated = len(teamRows) - created

	players, created, err := s.resolvePlayerRows(ctx, playerRows, team.NameIndex(teams))
	if err != nil {
		return ImportResult{}, err
	}
	if len(players) > 0 {
		if err := s.playerRepo.UpsertPlayers(ctx, players); err != nil {
			return ImportResult{}, internalError(err, "upsert players")
		}
	}
	result.PlayersCreated = created
	result.PlayersUpdated = len(players) - created

	s.metrics.ReferenceRowsImported("teams", len(teamRows))
	s.metrics.ReferenceRowsImported("players", len(players))
	s.logger.InfoContext(ctx, "reference data imported",
		"teams_created", result.TeamsCreated,
		"teams_updated", result.TeamsUpdated,
		"players_created", result.PlayersCreated,
		"players_updated", result.PlayersUpdated,
	)
	return result, nil
}

// importTeams upserts team rows and returns every stored team afterwards.
func (s *ReferenceService) importTeams(ctx context.Context, rows []team.Row) ([]team.Team, int, error) {
	existing, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, 0, internalError(err, "list teams")
	}
	if len(rows) == 0 {
		return existing, 0, nil
	}

	index := team.NameIndex(existing)
	items := make([]team.Team, 0, len(rows))
	seen := make(map[string]int, len(rows))
	created := 0
	for i, row := range rows {
		if err := s.validator.StructCtx(ctx, row); err != nil {
			return nil, 0, fmt.Errorf("%w: team row %d: %v", ErrInvalidInput, i+1, err)
		}
		key := team.NormalizeName(row.Name)
		if prev, dup := seen[key]; dup {
			return nil, 0, fmt.Errorf("%w: team row %d duplicates row %d", ErrInvalidInput, i+1, prev)
		}
		seen[key] = i + 1

		teamID, ok := index[key]
		if !ok {
			teamID, err = s.idGen.NewID()
			if err != nil {
				return nil, 0, internalError(err, "generate team id")
			}
			created++
		}
		item, err := team.NewFromRow(teamID, row)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: team row %d: %v", ErrInvalidInput, i+1, err)
		}
		items = append(items, item)
	}

	if err := s.teamRepo.UpsertTeams(ctx, items); err != nil {
		return nil, 0, internalError(err, "upsert teams")
	}

	all, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, 0, internalError(err, "list teams")
	}
	return all, created, nil
}

type rowError struct {
	row int
	err error
}

// resolvePlayerRows validates rows and resolves team names on a worker pool.
// Ids are assigned up front so results do not depend on scheduling.
func (s *ReferenceService) resolvePlayerRows(ctx context.Context, rows []player.Row, teamIDs map[string]string) ([]player.Player, int, error) {
	if len(rows) == 0 {
		return nil, 0, nil
	}

	existing, err := s.playerRepo.List(ctx, player.Filter{})
	if err != nil {
		return nil, 0, internalError(err, "list players")
	}
	known := make(map[string]string, len(existing))
	for _, p := range existing {
		known[playerKey(p.TeamID, p.Name)] = p.ID
	}

	ids := make([]string, len(rows))
	created := 0
	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		teamID := teamIDs[team.NormalizeName(row.TeamName)]
		key := playerKey(teamID, row.Name)
		if teamID != "" {
			if prev, dup := seen[key]; dup {
				return nil, 0, fmt.Errorf("%w: player row %d duplicates row %d", ErrInvalidInput, i+1, prev)
			}
			seen[key] = i + 1
		}
		if id, ok := known[key]; ok && teamID != "" {
			ids[i] = id
			continue
		}
		ids[i], err = s.idGen.NewID()
		if err != nil {
			return nil, 0, internalError(err, "generate player id")
		}
		created++
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, 0, internalError(err, "create worker pool")
	}
	defer pool.Release()

	players := make([]player.Player, len(rows))
	var (
		mu      sync.Mutex
		failed  []rowError
		workers sync.WaitGroup
	)
	for i := range rows {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			p, err := s.resolvePlayerRow(ctx, ids[i], rows[i], teamIDs)
			if err != nil {
				mu.Lock()
				failed = append(failed, rowError{row: i + 1, err: err})
				mu.Unlock()
				return
			}
			players[i] = p
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, 0, internalError(err, "submit row to worker pool")
		}
	}
	workers.Wait()

	if len(failed) > 0 {
		sort.Slice(failed, func(a, b int) bool { return failed[a].row < failed[b].row })
		msgs := make([]string, 0, len(failed))
		for _, f := range failed {
			msgs = append(msgs, fmt.Sprintf("row %d: %v", f.row, f.err))
		}
		return nil, 0, fmt.Errorf("%w: player rows rejected: %s", ErrInvalidInput, strings.Join(msgs, "; "))
	}

	return players, created, nil
}

func (s *ReferenceService) resolvePlayerRow(ctx context.Context, id string, row player.Row, teamIDs map[string]string) (player.Player, error) {
	if err := s.validator.StructCtx(ctx, row); err != nil {
		return player.Player{}, err
	}
	teamID, ok := teamIDs[team.NormalizeName(row.TeamName)]
	if !ok {
		return player.Player{}, fmt.Errorf("unknown team %q", row.TeamName)
	}
	return player.NewFromRow(id, teamID, row)
}

func playerKey(teamID, name string) string {
	return teamID + "|" + team.NormalizeName(name)
}
