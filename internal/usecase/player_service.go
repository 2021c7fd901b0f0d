package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/fsl-league/internal/domain/player"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
)

type ListPlayersInput struct {
	Position string
	TeamID   string
}

type PlayerService struct {
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewPlayerService(playerRepo player.Repository, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{playerRepo: playerRepo, logger: logger}
}

func (s *PlayerService) List(ctx context.Context, input ListPlayersInput) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	filter := player.Filter{TeamID: strings.TrimSpace(input.TeamID)}
	if raw := strings.TrimSpace(input.Position); raw != "" {
		pos, err := player.ParsePosition(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Position = pos
	}

	items, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "list players")
	}
	return items, nil
}

// UploadPoints overwrites current points for the listed players. Every id is
// resolved before anything is written.
func (s *PlayerService) UploadPoints(ctx context.Context, points map[string]int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UploadPoints")
	defer span.End()

	if len(points) == 0 {
		return fmt.Errorf("%w: player points are required", ErrInvalidInput)
	}

	ids := make([]string, 0, len(points))
	cleaned := make(map[string]int, len(points))
	for rawID, value := range points {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if value < 0 {
			return fmt.Errorf("%w: points for player=%s must be >= 0", ErrInvalidInput, id)
		}
		if _, dup := cleaned[id]; dup {
			return fmt.Errorf("%w: duplicate player id %s", ErrInvalidInput, id)
		}
		cleaned[id] = value
		ids = append(ids, id)
	}
	sort.Strings(ids)

	found, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return internalError(err, "get players by ids")
	}
	if missing := missingIDs(ids, found); len(missing) > 0 {
		return fmt.Errorf("%w: players=%s", ErrNotFound, strings.Join(missing, ","))
	}

	if err := s.playerRepo.SetCurrentPoints(ctx, cleaned); err != nil {
		return internalError(err, "set player current points")
	}

	s.logger.InfoContext(ctx, "player points uploaded", "player_count", len(cleaned))
	return nil
}

func missingIDs(want []string, found []player.Player) []string {
	byID := player.ByID(found)
	var missing []string
	for _, id := range want {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
