package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_NilIsSafe(t *testing.T) {
	t.Parallel()

	var r *Recorder
	r.ObserveHTTPRequest("GET", "/v1/standings", 200, time.Millisecond)
	r.GameweekClosed(2, nil)
	r.MatchResultRecorded()
	r.ScoringFallback()
	r.ReferenceRowsImported("players", 3)
}

func TestRecorder_GameweekClosed(t *testing.T) {
	t.Parallel()

	r := NewRecorder(prometheus.NewRegistry())
	r.GameweekClosed(5, nil)
	r.GameweekClosed(0, errors.New("rollback"))

	if got := testutil.ToFloat64(r.activeGameweek); got != 5 {
		t.Fatalf("active gameweek = %v, want 5", got)
	}
	if got := testutil.ToFloat64(r.gameweekCloses.WithLabelValues("failed")); got != 1 {
		t.Fatalf("failed closes = %v, want 1", got)
	}
}

func TestSetup_ServesRegistry(t *testing.T) {
	t.Parallel()

	r, handler := Setup(true)
	if r == nil || handler == nil {
		t.Fatalf("expected recorder and handler when enabled")
	}
	r.MatchResultRecorded()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "fsl_match_results_recorded_total 1") {
		t.Fatalf("expected results counter in scrape output")
	}
}

func TestSetup_Disabled(t *testing.T) {
	t.Parallel()

	r, handler := Setup(false)
	if r != nil || handler != nil {
		t.Fatalf("expected nil recorder and handler when disabled")
	}
}
