package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fsl-league/internal/usecase"
)

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterUser")
	defer span.End()

	var req registerUserRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	u, roster, err := h.userService.Register(ctx, usecase.RegisterUserInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		FavoriteTeamID: req.FavoriteTeamID,
	})
	if err != nil {
		h.fail(ctx, w, "register user failed", err, "username", req.Username)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, userToDTO(u, roster.ID))
}
