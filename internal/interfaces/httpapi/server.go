package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fsl-league/internal/platform/logging"
	"github.com/riskibarqy/fsl-league/internal/platform/metrics"
)

// RouterConfig carries the non-service dependencies of the router.
type RouterConfig struct {
	Logger             *logging.Logger
	Metrics            *metrics.Recorder
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	AdminToken         string
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	routes := &routeRegistrar{mux: http.NewServeMux(), recorder: cfg.Metrics}
	registerSystemRoutes(routes, handler, cfg.MetricsHandler)
	registerPublicRoutes(routes, handler)
	registerUserRoutes(routes, handler)
	registerAdminRoutes(routes, handler, cfg.AdminToken)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, routes.mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
