package fantasy

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fsl-league/internal/domain/player"
)

// CaptainMultiplier applies to the captain's current points.
const CaptainMultiplier = 3

var ErrUnresolvedPlayer = errors.New("roster player could not be resolved")

// CurrentPoints sums the members' current points with the captain counted
// CaptainMultiplier times. An empty roster scores 0. Any inconsistency
// returns 0 together with the reason, so read paths can fall back to zero
// while still reporting what went wrong.
func CurrentPoints(r Roster, players map[string]player.Player) (int, error) {
	if r.IsEmpty() {
		return 0, nil
	}
	if r.CaptainID != "" && !r.HasPlayer(r.CaptainID) {
		return 0, fmt.Errorf("%w: %s", ErrCaptainNotInRoster, r.CaptainID)
	}

	total := 0
	for _, id := range r.PlayerIDs {
		p, ok := players[id]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnresolvedPlayer, id)
		}
		if id == r.CaptainID {
			total += p.CurrentPoints * CaptainMultiplier
			continue
		}
		total += p.CurrentPoints
	}
	return total, nil
}

// SquadValue is the summed price of the roster's members.
func SquadValue(r Roster, players map[string]player.Player) (player.Price, error) {
	var total player.Price
	for _, id := range r.PlayerIDs {
		p, ok := players[id]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnresolvedPlayer, id)
		}
		total += p.Price
	}
	return total, nil
}

// RemainingBudget is cap minus squad value. It goes negative only when
// membership was changed around the selection rules.
func RemainingBudget(r Roster, players map[string]player.Player, salaryCap player.Price) (player.Price, error) {
	value, err := SquadValue(r, players)
	if err != nil {
		return 0, err
	}
	return salaryCap - value, nil
}
