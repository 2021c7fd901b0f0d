package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fsl-league/internal/config"
	"github.com/riskibarqy/fsl-league/internal/domain/fantasy"
	"github.com/riskibarqy/fsl-league/internal/domain/fixture"
	"github.com/riskibarqy/fsl-league/internal/domain/gameweek"
	"github.com/riskibarqy/fsl-league/internal/domain/match"
	"github.com/riskibarqy/fsl-league/internal/domain/player"
	"github.com/riskibarqy/fsl-league/internal/domain/prediction"
	"github.com/riskibarqy/fsl-league/internal/domain/team"
	"github.com/riskibarqy/fsl-league/internal/domain/user"
	"github.com/riskibarqy/fsl-league/internal/infrastructure/refdata"
	"github.com/riskibarqy/fsl-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fsl-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fsl-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fsl-league/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fsl-league/internal/platform/cache"
	idgen "github.com/riskibarqy/fsl-league/internal/platform/id"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
	"github.com/riskibarqy/fsl-league/internal/platform/metrics"
	"github.com/riskibarqy/fsl-league/internal/usecase"
)

// App owns the HTTP server and the resources behind it.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

type repositories struct {
	teams      team.Repository
	players    player.Repository
	fixtures   fixture.Repository
	matches    match.Repository
	rosters    fantasy.Repository
	users      user.Repository
	challenges prediction.Repository
	gameweeks  gameweek.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	recorder, metricsHandler := metrics.Setup(cfg.MetricsEnabled)

	repos, db, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	app := &App{db: db}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL, nil)
		repos.teams = cache.NewTeamRepository(repos.teams, store)
		repos.fixtures = cache.NewFixtureRepository(repos.fixtures, store)
	}

	ids := idgen.NewUUIDGenerator()

	if cfg.HasReferenceFiles() {
		reference := usecase.NewReferenceService(repos.teams, repos.players, ids, cfg.ReferenceImportWorkers, logger.Named("reference"), recorder)
		if err := importReferenceFiles(ctx, reference, cfg, logger); err != nil {
			_ = app.Close()
			return nil, err
		}
	}

	handler := httpapi.NewHandler(httpapi.Services{
		Teams:       usecase.NewTeamService(repos.teams),
		Players:     usecase.NewPlayerService(repos.players, logger),
		Fixtures:    usecase.NewFixtureService(repos.teams, repos.fixtures, ids, logger),
		Results:     usecase.NewResultService(repos.fixtures, repos.matches, repos.players, repos.teams, ids, logger, recorder),
		Standings:   usecase.NewStandingsService(repos.teams, repos.matches),
		Rosters:     usecase.NewRosterService(repos.rosters, repos.players, repos.users, cfg.Rules, ids, logger, recorder),
		Users:       usecase.NewUserService(repos.users, repos.teams, ids, logger),
		Predictions: usecase.NewPredictionService(repos.challenges, repos.gameweeks, repos.fixtures, repos.users, ids, logger),
		Gameweeks:   usecase.NewGameweekService(repos.gameweeks, logger, recorder),
	}, logger)

	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		Logger:             logger.Named("http"),
		Metrics:            recorder,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminToken:         cfg.AdminToken,
	})

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app initialized",
		"storage_driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"metrics_enabled", cfg.MetricsEnabled,
		"squad_size", cfg.Rules.SquadSize,
		"salary_cap", cfg.Rules.SalaryCap.String(),
	)

	return app, nil
}

// Close releases the database pool, if any. The HTTP server is shut down by
// the caller.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if !cfg.HasReferenceFiles() {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		logger.Info("postgres storage ready", "db_name", dbNameFromURL(cfg.DBURL))
		return repositories{
			teams:      postgres.NewTeamRepository(db),
			players:    postgres.NewPlayerRepository(db),
			fixtures:   postgres.NewFixtureRepository(db),
			matches:    postgres.NewMatchRepository(db),
			rosters:    postgres.NewRosterRepository(db),
			users:      postgres.NewUserRepository(db),
			challenges: postgres.NewChallengeRepository(db),
			gameweeks:  postgres.NewGameweekRepository(db),
		}, db, nil
	default:
		store := memory.NewStore()
		if !cfg.HasReferenceFiles() {
			store.Load(memory.Seed())
		}
		logger.Info("memory storage ready")
		return repositories{
			teams:      store.Teams(),
			players:    store.Players(),
			fixtures:   store.Fixtures(),
			matches:    store.Matches(),
			rosters:    store.Rosters(),
			users:      store.Users(),
			challenges: store.Challenges(),
			gameweeks:  store.Gameweeks(),
		}, nil, nil
	}
}

func importReferenceFiles(ctx context.Context, reference *usecase.ReferenceService, cfg config.Config, logger *logging.Logger) error {
	teamRows, playerRows, err := refdata.LoadFiles(cfg.ReferenceTeamsCSV, cfg.ReferencePlayersCSV)
	if err != nil {
		return fmt.Errorf("load reference files: %w", err)
	}

	result, err := reference.Import(ctx, teamRows, playerRows)
	if err != nil {
		return fmt.Errorf("import reference data: %w", err)
	}

	logger.Info("reference data imported",
		"teams_created", result.TeamsCreated,
		"teams_updated", result.TeamsUpdated,
		"players_created", result.PlayersCreated,
		"players_updated", result.PlayersUpdated,
	)
	return nil
}
