package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fsl-league/internal/platform/metrics"
)

type routeRegistrar struct {
	mux      *http.ServeMux
	recorder *metrics.Recorder
}

func (r *routeRegistrar) handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, instrumentRoute(r.recorder, pattern, h))
}

func (r *routeRegistrar) handleFunc(pattern string, h http.HandlerFunc) {
	r.handle(pattern, h)
}

func registerSystemRoutes(routes *routeRegistrar, handler *Handler, metricsHandler http.Handler) {
	routes.mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		routes.mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerPublicRoutes(routes *routeRegistrar, handler *Handler) {
	routes.handleFunc("GET /v1/gameweek", handler.GetGameweek)
	routes.handleFunc("GET /v1/teams", handler.ListTeams)
	routes.handleFunc("GET /v1/players", handler.ListPlayers)
	routes.handleFunc("GET /v1/fixtures", handler.ListFixtures)
	routes.handleFunc("GET /v1/matches/{fixtureID}", handler.GetMatchDetails)
	routes.handleFunc("GET /v1/standings", handler.ListStandings)
	routes.handleFunc("GET /v1/fantasy/table", handler.FantasyTable)
	routes.handleFunc("POST /v1/users", handler.RegisterUser)
}

func registerUserRoutes(routes *routeRegistrar, handler *Handler) {
	routes.handle("GET /v1/roster/me", RequireUser(http.HandlerFunc(handler.GetMyRoster)))
	routes.handle("PUT /v1/roster/me", RequireUser(http.HandlerFunc(handler.SelectMyRoster)))
	routes.handle("POST /v1/roster/me/transfers", RequireUser(http.HandlerFunc(handler.TransferPlayers)))
	routes.handle("PUT /v1/roster/me/captain", RequireUser(http.HandlerFunc(handler.SetCaptain)))
	routes.handle("POST /v1/challenges/me", RequireUser(http.HandlerFunc(handler.EnterChallenge)))
	routes.handle("PUT /v1/challenges/me/predictions", RequireUser(http.HandlerFunc(handler.SubmitPredictions)))
}

func registerAdminRoutes(routes *routeRegistrar, handler *Handler, adminToken string) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAdminToken(adminToken, h)
	}

	routes.handle("POST /v1/admin/fixtures", admin(handler.CreateFixture))
	routes.handle("PUT /v1/admin/fixtures/{fixtureID}/result", admin(handler.RecordMatchResult))
	routes.handle("PUT /v1/admin/player-points", admin(handler.UploadPlayerPoints))
	routes.handle("POST /v1/admin/gameweek/close", admin(handler.CloseGameweek))
}
