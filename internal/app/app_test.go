package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/fsl-league/internal/config"
	"github.com/riskibarqy/fsl-league/internal/domain/fantasy"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                 config.EnvDev,
		ServiceName:            "fsl-league-api",
		HTTPAddr:               ":0",
		StorageDriver:          config.StorageMemory,
		CacheEnabled:           true,
		CacheTTL:               time.Minute,
		CORSAllowedOrigins:     []string{"*"},
		AdminToken:             "s3cret",
		MetricsEnabled:         true,
		ReferenceImportWorkers: 2,
		Rules:                  fantasy.DefaultRules(),
	}
}

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return rec.Code, string(body)
}

func TestNew_MemoryStorageServesSeed(t *testing.T) {
	a, err := New(t.Context(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	status, body := get(t, a.Server.Handler, "/v1/teams")
	if status != http.StatusOK || !strings.Contains(body, "Northbridge Athletic") {
		t.Fatalf("unexpected teams response %d %s", status, body)
	}

	status, body = get(t, a.Server.Handler, "/metrics")
	if status != http.StatusOK || !strings.Contains(body, `fsl_http_requests_total{method="GET",route="/v1/teams",status="200"} 1`) {
		t.Fatalf("expected route-labelled request counter, got %d", status)
	}
}

func TestNew_MetricsDisabledHidesEndpoint(t *testing.T) {
	cfg := memoryConfig()
	cfg.MetricsEnabled = false

	a, err := New(t.Context(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	if status, _ := get(t, a.Server.Handler, "/metrics"); status != http.StatusNotFound {
		t.Fatalf("expected 404 for /metrics when disabled, got %d", status)
	}
}

func TestNew_ImportsReferenceFiles(t *testing.T) {
	dir := t.TempDir()
	teams := filepath.Join(dir, "teams.csv")
	players := filepath.Join(dir, "players.csv")
	if err := os.WriteFile(teams, []byte("team_name\nNorth Rovers\nSouth United\n"), 0o600); err != nil {
		t.Fatalf("write teams: %v", err)
	}
	if err := os.WriteFile(players, []byte("name,position,team_name,price\nAda Keeper,Goalkeeper,North Rovers,4.5\n"), 0o600); err != nil {
		t.Fatalf("write players: %v", err)
	}

	cfg := memoryConfig()
	cfg.ReferenceTeamsCSV = teams
	cfg.ReferencePlayersCSV = players

	a, err := New(t.Context(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	_, body := get(t, a.Server.Handler, "/v1/teams")
	if !strings.Contains(body, "South United") || strings.Contains(body, "Northbridge Athletic") {
		t.Fatalf("expected only imported teams, got %s", body)
	}
	_, body = get(t, a.Server.Handler, "/v1/players")
	if !strings.Contains(body, "Ada Keeper") {
		t.Fatalf("expected imported player, got %s", body)
	}
}

func TestNew_RejectsBadReferenceFile(t *testing.T) {
	cfg := memoryConfig()
	cfg.ReferenceTeamsCSV = filepath.Join(t.TempDir(), "missing.csv")
	cfg.ReferencePlayersCSV = cfg.ReferenceTeamsCSV

	if _, err := New(t.Context(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for missing reference file")
	}
}

func TestNew_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(t.Context(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
