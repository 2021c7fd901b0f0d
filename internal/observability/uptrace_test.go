package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/fsl-league/internal/config"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "fsl-league-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	var buf bytes.Buffer
	shutdown, err := InitUptrace(cfg, logging.NewJSONWriter(&buf, logging.LevelInfo))
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
	if !strings.Contains(buf.String(), "uptrace disabled") {
		t.Fatalf("expected disabled log line, got %q", buf.String())
	}
}

func TestInitUptrace_EnabledWithoutDSNIsNoop(t *testing.T) {
	cfg := config.Config{UptraceEnabled: true, UptraceDSN: "  "}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestPprofServer_DisabledReturnsNil(t *testing.T) {
	srv := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	if srv != nil {
		t.Fatalf("expected no pprof server when disabled")
	}
	if err := StopPprofServer(t.Context(), srv, logging.NewNop()); err != nil {
		t.Fatalf("stop nil pprof server: %v", err)
	}
}

func TestPyroscopeConfig_Tags(t *testing.T) {
	cfg := config.Config{
		AppEnv:           config.EnvProd,
		ServiceName:      "fsl-league-api",
		ServiceVersion:   "1.4.0",
		StorageDriver:    config.StoragePostgres,
		PyroscopeAppName: "fsl-league-api",
	}

	got := pyroscopeConfig(cfg)
	if got.Tags["storage"] != config.StoragePostgres || got.Tags["version"] != "1.4.0" {
		t.Fatalf("unexpected tags: %+v", got.Tags)
	}

	cfg.ServiceVersion = ""
	if _, ok := pyroscopeConfig(cfg).Tags["version"]; ok {
		t.Fatalf("expected no version tag without a service version")
	}
}

func TestPprofMux_ServesProfiles(t *testing.T) {
	mux := pprofMux()

	for _, path := range []string{"/debug/pprof/", "/debug/pprof/cmdline", "/debug/pprof/goroutine?debug=1"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 outside /debug/pprof, got %d", rec.Code)
	}
}
