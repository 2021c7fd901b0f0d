package fantasy

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/riskibarqy/fsl-league/internal/domain/player"
)

func squadOf(n int, price player.Price) []player.Player {
	out := make([]player.Player, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, player.Player{
			ID:       fmt.Sprintf("p%d", i),
			TeamID:   "t1",
			Name:     fmt.Sprintf("Player %d", i),
			Position: player.PositionMidfielder,
			Price:    price,
		})
	}
	return out
}

func TestValidateSelection(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name      string
		mutate    func([]player.Player, *Rules) []player.Player
		targetErr error
	}{
		{
			name: "valid squad",
			mutate: func(p []player.Player, _ *Rules) []player.Player {
				return p
			},
		},
		{
			name: "exactly at cap",
			mutate: func(p []player.Player, _ *Rules) []player.Player {
				// 14 x 6.50 + 9.00 = 100.00
				p[14].Price = 900
				return p
			},
		},
		{
			name: "one hundredth over cap",
			mutate: func(p []player.Player, _ *Rules) []player.Player {
				p[14].Price = 901
				return p
			},
			targetErr: ErrExceededBudget,
		},
		{
			name: "invalid size",
			mutate: func(p []player.Player, _ *Rules) []player.Player {
				return p[:14]
			},
			targetErr: ErrInvalidSquadSize,
		},
		{
			name: "duplicate player",
			mutate: func(p []player.Player, _ *Rules) []player.Player {
				p[1].ID = "p1"
				return p
			},
			targetErr: ErrDuplicatePlayerInSquad,
		},
		{
			name: "custom squad size",
			mutate: func(p []player.Player, cfg *Rules) []player.Player {
				cfg.SquadSize = 3
				return p[:3]
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := squadOf(15, 650)
			cfg := rules
			players = tt.mutate(players, &cfg)

			err := ValidateSelection(players, cfg)
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestPickCaptain(t *testing.T) {
	players := squadOf(4, 500)
	players[2].Price = 1200
	players[3].Price = 1200

	if got := PickCaptain(players); got != "p3" {
		t.Fatalf("expected first highest-priced player p3, got %s", got)
	}
	if got := PickCaptain(nil); got != "" {
		t.Fatalf("expected empty captain for empty squad, got %q", got)
	}
}

func TestApplyTransfer(t *testing.T) {
	r := Roster{PlayerIDs: []string{"a", "b", "c"}}

	got, err := ApplyTransfer(r, []string{"b"}, []string{"d"})
	if err != nil {
		t.Fatalf("apply transfer: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"a", "d", "c"}) {
		t.Fatalf("unexpected members %v", got)
	}
	if !reflect.DeepEqual(r.PlayerIDs, []string{"a", "b", "c"}) {
		t.Fatalf("input roster must not change")
	}

	tests := []struct {
		name    string
		out, in []string
		want    error
	}{
		{name: "not a member", out: []string{"z"}, in: []string{"d"}, want: ErrPlayerNotInSquad},
		{name: "incoming already member", out: []string{"a"}, in: []string{"b"}, want: ErrDuplicatePlayerInSquad},
		{name: "uneven", out: []string{"a", "b"}, in: []string{"d"}, want: ErrInvalidSquadSize},
		{name: "same out twice", out: []string{"a", "a"}, in: []string{"d", "e"}, want: ErrDuplicatePlayerInSquad},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ApplyTransfer(r, tc.out, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
