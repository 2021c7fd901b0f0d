package httpapi

import "net/http"

func (h *Handler) EnterChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnterChallenge")
	defer span.End()

	userID, err := currentUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	challenge, err := h.predictionService.EnterChallenge(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "enter challenge failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, challengeToDTO(challenge))
}

func (h *Handler) SubmitPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPredictions")
	defer span.End()

	userID, err := currentUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitPredictionsRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	challenge, err := h.predictionService.SubmitPredictions(ctx, userID, req.Predictions)
	if err != nil {
		h.fail(ctx, w, "submit predictions failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, challengeToDTO(challenge))
}
