package fantasy

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fsl-league/internal/domain/player"
)

var (
	ErrInvalidSquadSize       = errors.New("invalid squad size")
	ErrExceededBudget         = errors.New("budget cap exceeded")
	ErrDuplicatePlayerInSquad = errors.New("duplicate player in squad")
	ErrPlayerNotInSquad       = errors.New("player is not in squad")
	ErrCaptainNotInRoster     = errors.New("captain is not a roster member")
)

const (
	DefaultSquadSize = 15
	DefaultSalaryCap = player.Price(100 * 100)
)

// Rules stores fantasy roster validation parameters.
type Rules struct {
	SquadSize int
	SalaryCap player.Price
}

func DefaultRules() Rules {
	return Rules{
		SquadSize: DefaultSquadSize,
		SalaryCap: DefaultSalaryCap,
	}
}

// ValidateSelection checks a full squad: exact size, distinct players and
// total price within the cap. Players must already be resolved.
func ValidateSelection(players []player.Player, rules Rules) error {
	if len(players) != rules.SquadSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidSquadSize, rules.SquadSize, len(players))
	}

	seen := make(map[string]struct{}, len(players))
	var total player.Price
	for _, p := range players {
		if p.ID == "" {
			return fmt.Errorf("player id is required")
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayerInSquad, p.ID)
		}
		seen[p.ID] = struct{}{}
		total += p.Price
	}

	if total > rules.SalaryCap {
		return fmt.Errorf("%w: cap=%s used=%s", ErrExceededBudget, rules.SalaryCap, total)
	}

	return nil
}

// PickCaptain returns the highest-priced player, preferring the earliest on
// ties.
func PickCaptain(players []player.Player) string {
	captain := ""
	var best player.Price = -1
	for _, p := range players {
		if p.Price > best {
			best = p.Price
			captain = p.ID
		}
	}
	return captain
}

// ApplyTransfer swaps outIDs for inIDs in order and returns the new member
// list. Every outgoing id must be a member and no incoming id may already be
// one.
func ApplyTransfer(r Roster, outIDs, inIDs []string) ([]string, error) {
	if len(outIDs) != len(inIDs) {
		return nil, fmt.Errorf("%w: %d out, %d in", ErrInvalidSquadSize, len(outIDs), len(inIDs))
	}

	members := append([]string(nil), r.PlayerIDs...)
	index := make(map[string]int, len(members))
	for i, id := range members {
		index[id] = i
	}

	seenOut := make(map[string]struct{}, len(outIDs))
	for i, outID := range outIDs {
		pos, ok := index[outID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotInSquad, outID)
		}
		if _, dup := seenOut[outID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayerInSquad, outID)
		}
		seenOut[outID] = struct{}{}
		members[pos] = inIDs[i]
	}

	seen := make(map[string]struct{}, len(members))
	for _, id := range members {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayerInSquad, id)
		}
		seen[id] = struct{}{}
	}

	return members, nil
}
