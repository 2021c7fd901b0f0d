package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fsl"

// Recorder is nil-safe: a nil *Recorder drops every observation.
type Recorder struct {
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
	gameweekCloses    *prometheus.CounterVec
	activeGameweek    prometheus.Gauge
	resultsRecorded   prometheus.Counter
	scoringFallbacks  prometheus.Counter
	referenceImported *prometheus.CounterVec
}

// Setup builds a Recorder on a private registry and returns the scrape
// handler for it. When disabled both return values are nil.
func Setup(enabled bool) (*Recorder, http.Handler) {
	if !enabled {
		return nil, nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return NewRecorder(reg), promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gameweekCloses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gameweek_close_total",
			Help:      "Gameweek close attempts by outcome.",
		}, []string{"outcome"}),
		activeGameweek: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_gameweek",
			Help:      "Currently active gameweek number.",
		}),
		resultsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_results_recorded_total",
			Help:      "Match results written by the result recorder.",
		}),
		scoringFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fantasy_scoring_fallbacks_total",
			Help:      "Roster scoring reads that fell back to zero.",
		}),
		referenceImported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reference_rows_imported_total",
			Help:      "Reference rows imported by kind.",
		}, []string{"kind"}),
	}

	if reg != nil {
		reg.MustRegister(
			r.httpRequests,
			r.httpLatency,
			r.gameweekCloses,
			r.activeGameweek,
			r.resultsRecorded,
			r.scoringFallbacks,
			r.referenceImported,
		)
	}

	return r
}

func (r *Recorder) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (r *Recorder) GameweekClosed(newWeek int, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.gameweekCloses.WithLabelValues("failed").Inc()
		return
	}
	r.gameweekCloses.WithLabelValues("closed").Inc()
	r.activeGameweek.Set(float64(newWeek))
}

func (r *Recorder) SetActiveGameweek(week int) {
	if r == nil {
		return
	}
	r.activeGameweek.Set(float64(week))
}

func (r *Recorder) MatchResultRecorded() {
	if r == nil {
		return
	}
	r.resultsRecorded.Inc()
}

func (r *Recorder) ScoringFallback() {
	if r == nil {
		return
	}
	r.scoringFallbacks.Inc()
}

func (r *Recorder) ReferenceRowsImported(kind string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.referenceImported.WithLabelValues(kind).Add(float64(n))
}
