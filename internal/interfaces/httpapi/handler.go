package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
	"github.com/riskibarqy/fsl-league/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	teamService       *usecase.TeamService
	playerService     *usecase.PlayerService
	fixtureService    *usecase.FixtureService
	resultService     *usecase.ResultService
	standingsService  *usecase.StandingsService
	rosterService     *usecase.RosterService
	userService       *usecase.UserService
	predictionService *usecase.PredictionService
	gameweekService   *usecase.GameweekService
	logger            *logging.Logger
	validator         *validator.Validate
}

// Services groups the use cases served over HTTP.
type Services struct {
	Teams       *usecase.TeamService
	Players     *usecase.PlayerService
	Fixtures    *usecase.FixtureService
	Results     *usecase.ResultService
	Standings   *usecase.StandingsService
	Rosters     *usecase.RosterService
	Users       *usecase.UserService
	Predictions *usecase.PredictionService
	Gameweeks   *usecase.GameweekService
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:       services.Teams,
		playerService:     services.Players,
		fixtureService:    services.Fixtures,
		resultService:     services.Results,
		standingsService:  services.Standings,
		rosterService:     services.Rosters,
		userService:       services.Users,
		predictionService: services.Predictions,
		gameweekService:   services.Gameweeks,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON strictly decodes the request body into payload and validates it.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// fail logs err at a level matching its kind and writes the error envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if usecase.IsKind(err, usecase.ErrInternal) {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}

func currentUserID(ctx context.Context) (string, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("%w: user is missing from request context", usecase.ErrUnauthorized)
	}
	return userID, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}
