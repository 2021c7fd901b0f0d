package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fsl-league/internal/usecase"
)

func (h *Handler) GetMyRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyRoster")
	defer span.End()

	userID, err := currentUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.rosterService.GetRosterSnapshot(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "get roster failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterSnapshotToDTO(snapshot))
}

func (h *Handler) SelectMyRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectMyRoster")
	defer span.End()

	userID, err := currentUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req selectRosterRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.rosterService.SelectRoster(ctx, usecase.SelectRosterInput{
		UserID:    userID,
		Name:      req.Name,
		PlayerIDs: req.PlayerIDs,
	})
	if err != nil {
		h.fail(ctx, w, "select roster failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterSnapshotToDTO(snapshot))
}

func (h *Handler) TransferPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TransferPlayers")
	defer span.End()

	userID, err := currentUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req transferRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.rosterService.TransferPlayers(ctx, usecase.TransferInput{
		UserID: userID,
		OutIDs: req.OutPlayerIDs,
		InIDs:  req.InPlayerIDs,
	})
	if err != nil {
		h.fail(ctx, w, "transfer players failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterSnapshotToDTO(snapshot))
}

func (h *Handler) SetCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCaptain")
	defer span.End()

	userID, err := currentUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setCaptainRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, changed, err := h.rosterService.SetCaptain(ctx, userID, req.PlayerID)
	if err != nil {
		h.fail(ctx, w, "set captain failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, captainDTO{
		RosterID:  roster.ID,
		CaptainID: roster.CaptainID,
		Changed:   changed,
	})
}
