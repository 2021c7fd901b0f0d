package player

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPosition = errors.New("invalid player position")

// Position represents football position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "Goalkeeper"
	PositionDefender   Position = "Defender"
	PositionMidfielder Position = "Midfielder"
	PositionAttacker   Position = "Attacker"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionAttacker:   {},
}

var positionAliases = map[string]Position{
	"goalkeeper": PositionGoalkeeper,
	"gk":         PositionGoalkeeper,
	"defender":   PositionDefender,
	"def":        PositionDefender,
	"midfielder": PositionMidfielder,
	"mid":        PositionMidfielder,
	"attacker":   PositionAttacker,
	"forward":    PositionAttacker,
	"fwd":        PositionAttacker,
}

// ParsePosition accepts full names and the common short codes, case-insensitive.
func ParsePosition(raw string) (Position, error) {
	pos, ok := positionAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPosition, raw)
	}
	return pos, nil
}

// Player is a real footballer that fantasy rosters select.
type Player struct {
	ID            string
	TeamID        string
	Name          string
	Position      Position
	Price         Price
	CurrentPoints int
	TotalPoints   int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, p.Position)
	}
	if p.Price <= 0 {
		return fmt.Errorf("player price must be greater than zero")
	}

	return nil
}

// Row is one line of the players reference sheet.
type Row struct {
	Name     string `validate:"required,max=120"`
	Position string `validate:"required"`
	TeamName string `validate:"required,max=100"`
	Price    string `validate:"required,numeric"`
}

// NewFromRow builds a player from a pre-validated reference row whose team
// has already been resolved to teamID.
func NewFromRow(id, teamID string, row Row) (Player, error) {
	pos, err := ParsePosition(row.Position)
	if err != nil {
		return Player{}, err
	}
	price, err := ParsePrice(row.Price)
	if err != nil {
		return Player{}, err
	}

	p := Player{
		ID:       id,
		TeamID:   teamID,
		Name:     strings.TrimSpace(row.Name),
		Position: pos,
		Price:    price,
	}
	if err := p.Validate(); err != nil {
		return Player{}, err
	}
	return p, nil
}

// ByID indexes players by id.
func ByID(items []Player) map[string]Player {
	out := make(map[string]Player, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out
}
