package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fsl-league/internal/domain/fantasy"
	"github.com/riskibarqy/fsl-league/internal/domain/player"
	"github.com/riskibarqy/fsl-league/internal/domain/user"
	idgen "github.com/riskibarqy/fsl-league/internal/platform/id"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
	"github.com/riskibarqy/fsl-league/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

// SelectRosterInput replaces a user's full squad.
type SelectRosterInput struct {
	UserID    string
	Name      string
	PlayerIDs []string
}

type TransferInput struct {
	UserID string
	OutIDs []string
	InIDs  []string
}

// RosterSnapshot is the read model of a user's roster.
type RosterSnapshot struct {
	Roster          fantasy.Roster
	Players         []player.Player
	CurrentPoints   int
	RemainingBudget player.Price
}

type FantasyTableRow struct {
	Rank          int
	RosterID      string
	UserID        string
	Name          string
	TotalPoints   int
	CurrentPoints int
}

type RosterService struct {
	rosterRepo fantasy.Repository
	playerRepo player.Repository
	userRepo   user.Repository
	rules      fantasy.Rules
	idGen      idgen.Generator
	logger     *logging.Logger
	metrics    *metrics.Recorder
	clock      clockwork.Clock
}

func NewRosterService(
	rosterRepo fantasy.Repository,
	playerRepo player.Repository,
	userRepo user.Repository,
	rules fantasy.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		rosterRepo: rosterRepo,
		playerRepo: playerRepo,
		userRepo:   userRepo,
		rules:      rules,
		idGen:      idGen,
		logger:     logger,
		metrics:    recorder,
		clock:      clockwork.NewRealClock(),
	}
}

// SelectRoster validates and stores a full squad. The highest-priced player
// becomes captain.
func (s *RosterService) SelectRoster(ctx context.Context, input SelectRosterInput) (RosterSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SelectRoster",
		attribute.String("user.id", input.UserID), attribute.Int("roster.size", len(input.PlayerIDs)))
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	if input.UserID == "" {
		return RosterSnapshot{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if len(input.PlayerIDs) == 0 {
		return RosterSnapshot{}, fmt.Errorf("%w: player ids are required", ErrInvalidInput)
	}

	playerIDs, err := cleanPlayerIDs(input.PlayerIDs)
	if err != nil {
		return RosterSnapshot{}, err
	}

	players, err := s.resolvePlayers(ctx, playerIDs)
	if err != nil {
		return RosterSnapshot{}, err
	}
	if err := fantasy.ValidateSelection(players, s.rules); err != nil {
		return RosterSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	roster, err := s.rosterForUpdate(ctx, input.UserID)
	if err != nil {
		return RosterSnapshot{}, err
	}
	if input.Name != "" {
		roster.Name = input.Name
	}
	roster.PlayerIDs = playerIDs
	roster.CaptainID = fantasy.PickCaptain(players)
	roster.UpdatedAt = s.clock.Now().UTC()

	if err := roster.ValidateBasic(); err != nil {
		return RosterSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.rosterRepo.Save(ctx, roster); err != nil {
		return RosterSnapshot{}, internalError(err, "save roster")
	}

	s.logger.InfoContext(ctx, "roster selected",
		"user_id", roster.UserID,
		"roster_id", roster.ID,
		"player_count", len(roster.PlayerIDs),
		"captain_id", roster.CaptainID,
	)

	return s.snapshot(ctx, roster, players), nil
}

func (s *RosterService) GetRosterSnapshot(ctx context.Context, userID string) (RosterSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetRosterSnapshot")
	defer span.End()

	roster, err := s.getRoster(ctx, userID)
	if err != nil {
		return RosterSnapshot{}, err
	}

	players, err := s.playerRepo.GetByIDs(ctx, roster.PlayerIDs)
	if err != nil {
		return RosterSnapshot{}, internalError(err, "get roster players")
	}

	return s.snapshot(ctx, roster, orderLike(roster.PlayerIDs, players)), nil
}

// SetCaptain hands the armband to playerID. A player outside the roster
// leaves it unchanged and is reported as changed=false, not as an error.
func (s *RosterService) SetCaptain(ctx context.Context, userID, playerID string) (fantasy.Roster, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SetCaptain",
		attribute.String("user.id", userID))
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fantasy.Roster{}, false, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	roster, err := s.getRoster(ctx, userID)
	if err != nil {
		return fantasy.Roster{}, false, err
	}

	previous := roster.CaptainID
	if !roster.SetCaptain(playerID) {
		s.logger.DebugContext(ctx, "captain unchanged",
			"roster_id", roster.ID,
			"requested_player_id", playerID,
			"captain_id", previous,
		)
		return roster, false, nil
	}

	roster.UpdatedAt = s.clock.Now().UTC()
	if err := s.rosterRepo.Save(ctx, roster); err != nil {
		return fantasy.Roster{}, false, internalError(err, "save roster")
	}

	s.logger.InfoContext(ctx, "captain changed",
		"roster_id", roster.ID,
		"previous_captain_id", previous,
		"captain_id", roster.CaptainID,
	)
	return roster, true, nil
}

// TransferPlayers swaps members one for one and re-checks the full squad
// against the rules. The captain is kept when still a member.
func (s *RosterService) TransferPlayers(ctx context.Context, input TransferInput) (RosterSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.TransferPlayers")
	defer span.End()

	if len(input.OutIDs) == 0 {
		return RosterSnapshot{}, fmt.Errorf("%w: at least one transfer is required", ErrInvalidInput)
	}
	outIDs, err := cleanPlayerIDs(input.OutIDs)
	if err != nil {
		return RosterSnapshot{}, err
	}
	inIDs, err := cleanPlayerIDs(input.InIDs)
	if err != nil {
		return RosterSnapshot{}, err
	}

	roster, err := s.getRoster(ctx, input.UserID)
	if err != nil {
		return RosterSnapshot{}, err
	}
	if roster.IsEmpty() {
		return RosterSnapshot{}, fmt.Errorf("%w: roster has no players to transfer", ErrInvalidInput)
	}

	members, err := fantasy.ApplyTransfer(roster, outIDs, inIDs)
	if err != nil {
		return RosterSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	players, err := s.resolvePlayers(ctx, members)
	if err != nil {
		return RosterSnapshot{}, err
	}
	if err := fantasy.ValidateSelection(players, s.rules); err != nil {
		return RosterSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	roster.PlayerIDs = members
	if !roster.HasPlayer(roster.CaptainID) {
		roster.CaptainID = fantasy.PickCaptain(players)
	}
	roster.UpdatedAt = s.clock.Now().UTC()

	if err := s.rosterRepo.Save(ctx, roster); err != nil {
		return RosterSnapshot{}, internalError(err, "save roster")
	}

	s.logger.InfoContext(ctx, "players transferred",
		"roster_id", roster.ID,
		"out", strings.Join(outIDs, ","),
		"in", strings.Join(inIDs, ","),
		"captain_id", roster.CaptainID,
	)
	return s.snapshot(ctx, roster, players), nil
}

// FantasyTable ranks every roster by season total, highest first.
func (s *RosterService) FantasyTable(ctx context.Context) ([]FantasyTableRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.FantasyTable")
	defer span.End()

	rosters, err := s.rosterRepo.List(ctx)
	if err != nil {
		return nil, internalError(err, "list rosters")
	}
	players, err := s.playerRepo.List(ctx, player.Filter{})
	if err != nil {
		return nil, internalError(err, "list players")
	}
	byID := player.ByID(players)

	rows := make([]FantasyTableRow, 0, len(rosters))
	for _, r := range rosters {
		rows = append(rows, FantasyTableRow{
			RosterID:      r.ID,
			UserID:        r.UserID,
			Name:          r.Name,
			TotalPoints:   r.TotalPoints,
			CurrentPoints: scoreRoster(ctx, s.logger, s.metrics, r, byID),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalPoints > rows[j].TotalPoints
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

func (s *RosterService) snapshot(ctx context.Context, roster fantasy.Roster, players []player.Player) RosterSnapshot {
	byID := player.ByID(players)

	remaining, err := fantasy.RemainingBudget(roster, byID, s.rules.SalaryCap)
	if err != nil {
		s.logger.WarnContext(ctx, "remaining budget computed over resolved players only",
			"roster_id", roster.ID,
			"error", err,
		)
		remaining = s.rules.SalaryCap
		for _, p := range players {
			remaining -= p.Price
		}
	}

	return RosterSnapshot{
		Roster:          roster,
		Players:         players,
		CurrentPoints:   scoreRoster(ctx, s.logger, s.metrics, roster, byID),
		RemainingBudget: remaining,
	}
}

func (s *RosterService) getRoster(ctx context.Context, userID string) (fantasy.Roster, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fantasy.Roster{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	roster, exists, err := s.rosterRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fantasy.Roster{}, internalError(err, "get roster by user")
	}
	if !exists {
		return fantasy.Roster{}, fmt.Errorf("%w: roster for user=%s", ErrNotFound, userID)
	}
	return roster, nil
}

// rosterForUpdate returns the user's roster, creating an empty one for a
// registered user who has none yet.
func (s *RosterService) rosterForUpdate(ctx context.Context, userID string) (fantasy.Roster, error) {
	roster, err := s.getRoster(ctx, userID)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return roster, err
	}

	u, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fantasy.Roster{}, internalError(err, "get user by id")
	}
	if !exists {
		return fantasy.Roster{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	rosterID, err := s.idGen.NewID()
	if err != nil {
		return fantasy.Roster{}, internalError(err, "generate roster id")
	}
	return fantasy.Roster{ID: rosterID, UserID: u.ID, Name: defaultRosterName(u.Username)}, nil
}

func (s *RosterService) resolvePlayers(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	found, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, internalError(err, "get players by ids")
	}
	if missing := missingIDs(playerIDs, found); len(missing) > 0 {
		return nil, fmt.Errorf("%w: players=%s", ErrNotFound, strings.Join(missing, ","))
	}
	return orderLike(playerIDs, found), nil
}

// scoreRoster is the fail-soft read of a roster's current points: any
// inconsistency is logged, counted and scored as 0.
func scoreRoster(ctx context.Context, logger *logging.Logger, recorder *metrics.Recorder, r fantasy.Roster, players map[string]player.Player) int {
	points, err := fantasy.CurrentPoints(r, players)
	if err != nil {
		recorder.ScoringFallback()
		logger.WarnContext(ctx, "roster scoring fell back to zero",
			"roster_id", r.ID,
			"user_id", r.UserID,
			"error", err,
		)
		return 0
	}
	return points
}

func defaultRosterName(username string) string {
	return username + " XI"
}

func orderLike(ids []string, items []player.Player) []player.Player {
	byID := player.ByID(items)
	out := make([]player.Player, 0, len(items))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func cleanPlayerIDs(playerIDs []string) ([]string, error) {
	cleaned := make([]string, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}
	return cleaned, nil
}
