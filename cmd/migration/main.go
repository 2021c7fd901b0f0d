package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
)

var errUsage = errors.New("usage")

// migrator is the subset of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

type command struct {
	name    string
	example string
	run     func(m migrator, args []string, out io.Writer, logger *logging.Logger) error
}

var commands = []command{
	{name: "up", example: "up", run: runUp},
	{name: "down", example: "down 1", run: runDown},
	{name: "version", example: "version", run: runVersion},
	{name: "force", example: "force 1771776034", run: runForce},
	{name: "goto", example: "goto 1771776034", run: runGoto},
}

func main() {
	logger := logging.NewJSON(logging.LevelInfo).With("service", "fsl-league-migration")
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Error("load .env failed", "error", err)
		os.Exit(1)
	}

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := lookupCommand(args[0])
	if !ok {
		return errUsage
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}
	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		return crerr.Wrap(err, "resolve migrations dir")
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return crerr.Wrap(err, "create migrator")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	return cmd.run(m, args[1:], out, logger.With("command", cmd.name, "source", sourceURL))
}

func lookupCommand(name string) (command, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "migrate" {
		name = "goto"
	}
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func runUp(m migrator, _ []string, _ io.Writer, logger *logging.Logger) error {
	if err := ignoreNoChange(m.Up(), logger); err != nil {
		return crerr.Wrap(err, "apply migrations")
	}
	logger.Info("migrations applied")
	return nil
}

func runDown(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
		return crerr.Wrapf(err, "roll back %d migration(s)", steps)
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func runVersion(m migrator, _ []string, out io.Writer, _ *logging.Logger) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		_, err = fmt.Fprintln(out, "version: none\ndirty: false")
		return err
	}
	if err != nil {
		return crerr.Wrap(err, "read version")
	}
	_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
	return err
}

func runForce(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return errors.New("force requires a version argument")
	}
	version, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	if err := m.Force(version); err != nil {
		return crerr.Wrapf(err, "force version %d", version)
	}
	logger.Info("version forced", "version", version)
	return nil
}

func runGoto(m migrator, args []string, _ io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return errors.New("goto requires a target version argument")
	}
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Migrate(target), logger); err != nil {
		return crerr.Wrapf(err, "migrate to version %d", target)
	}
	logger.Info("migrated", "version", target)
	return nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func printUsage(w io.Writer) {
	bin := filepath.Base(os.Args[0])
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.name)
	}
	fmt.Fprintf(w, "usage: %s <%s> [args]\nexamples:\n", bin, strings.Join(names, "|"))
	for _, c := range commands {
		fmt.Fprintf(w, "  %s %s\n", bin, c.example)
	}
}
