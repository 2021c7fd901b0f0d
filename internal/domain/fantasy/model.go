package fantasy

import (
	"fmt"
	"slices"
	"time"
)

// Roster is a user's fantasy team: the selected real players, the captain
// and the season points accumulator.
type Roster struct {
	ID          string
	UserID      string
	Name        string
	PlayerIDs   []string
	CaptainID   string
	TotalPoints int
	UpdatedAt   time.Time
}

func (r Roster) ValidateBasic() error {
	if r.ID == "" {
		return fmt.Errorf("roster id is required")
	}
	if r.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("roster name is required")
	}
	if r.CaptainID != "" && !r.HasPlayer(r.CaptainID) {
		return fmt.Errorf("%w: %s", ErrCaptainNotInRoster, r.CaptainID)
	}
	return nil
}

func (r Roster) IsEmpty() bool {
	return len(r.PlayerIDs) == 0
}

func (r Roster) HasPlayer(playerID string) bool {
	return playerID != "" && slices.Contains(r.PlayerIDs, playerID)
}

// SetCaptain moves the armband to playerID when it is a roster member and
// reports whether the captain changed. Non-members leave the roster as is.
func (r *Roster) SetCaptain(playerID string) bool {
	if !r.HasPlayer(playerID) || r.CaptainID == playerID {
		return false
	}
	r.CaptainID = playerID
	return true
}

// Clone returns a copy that shares no slices with r.
func (r Roster) Clone() Roster {
	r.PlayerIDs = slices.Clone(r.PlayerIDs)
	return r
}
