package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/fsl-league/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

func (h *Handler) CreateFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateFixture")
	defer span.End()

	var req createFixtureRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	kickoff, err := time.Parse(dateLayout, req.KickoffDate)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: kickoff_date: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.fixtureService.Create(ctx, usecase.CreateFixtureInput{
		Gameweek:    req.Gameweek,
		HomeTeamID:  req.HomeTeamID,
		AwayTeamID:  req.AwayTeamID,
		KickoffDate: kickoff,
	})
	if err != nil {
		h.fail(ctx, w, "create fixture failed", err,
			"home_team_id", req.HomeTeamID,
			"away_team_id", req.AwayTeamID,
		)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, fixtureToDTO(item))
}

func (h *Handler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchResult", attribute.String("fixture.id", fixtureID))
	defer span.End()

	var req recordResultRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.resultService.RecordMatchResult(ctx, usecase.RecordMatchResultInput{
		FixtureID:   fixtureID,
		HomeScore:   *req.HomeScore,
		AwayScore:   *req.AwayScore,
		Saves:       req.Saves,
		Goals:       req.Goals,
		Assists:     req.Assists,
		YellowCards: req.YellowCards,
		RedCards:    req.RedCards,
	})
	if err != nil {
		h.fail(ctx, w, "record match result failed", err, "fixture_id", fixtureID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) UploadPlayerPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadPlayerPoints")
	defer span.End()

	var req uploadPointsRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.playerService.UploadPoints(ctx, req.Points); err != nil {
		h.fail(ctx, w, "upload player points failed", err, "player_count", len(req.Points))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"updated": len(req.Points)})
}

func (h *Handler) CloseGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseGameweek")
	defer span.End()

	transition, err := h.gameweekService.CloseGameweek(ctx)
	if err != nil {
		h.fail(ctx, w, "close gameweek failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transitionToDTO(transition))
}
