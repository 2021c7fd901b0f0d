package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fsl-league/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

func (h *Handler) GetGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameweek")
	defer span.End()

	current, err := h.gameweekService.Current(ctx)
	if err != nil {
		h.fail(ctx, w, "get gameweek failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekDTO{Current: current})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.List(ctx)
	if err != nil {
		h.fail(ctx, w, "list teams failed", err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	players, err := h.playerService.List(ctx, usecase.ListPlayersInput{
		Position: query.Get("position"),
		TeamID:   query.Get("team_id"),
	})
	if err != nil {
		h.fail(ctx, w, "list players failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	gw, err := queryInt(r, "gameweek")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fixtures, err := h.fixtureService.List(ctx, gw)
	if err != nil {
		h.fail(ctx, w, "list fixtures failed", err, "gameweek", gw)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureToDTO(f))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatchDetails(w http.ResponseWriter, r *http.Request) {
	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchDetails", attribute.String("fixture.id", fixtureID))
	defer span.End()

	details, err := h.resultService.GetMatchDetails(ctx, fixtureID)
	if err != nil {
		h.fail(ctx, w, "get match details failed", err, "fixture_id", fixtureID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailsToDTO(details))
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	rows, err := h.standingsService.List(ctx)
	if err != nil {
		h.fail(ctx, w, "list standings failed", err)
		return
	}

	items := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) FantasyTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FantasyTable")
	defer span.End()

	rows, err := h.rosterService.FantasyTable(ctx)
	if err != nil {
		h.fail(ctx, w, "fantasy table failed", err)
		return
	}

	items := make([]fantasyTableRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, fantasyTableRowDTO{
			Rank:          row.Rank,
			RosterID:      row.RosterID,
			UserID:        row.UserID,
			Name:          row.Name,
			TotalPoints:   row.TotalPoints,
			CurrentPoints: row.CurrentPoints,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
