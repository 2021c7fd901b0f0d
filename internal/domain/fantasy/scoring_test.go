package fantasy

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fsl-league/internal/domain/player"
)

func pointsPool() map[string]player.Player {
	return player.ByID([]player.Player{
		{ID: "a", Price: 450, CurrentPoints: 2},
		{ID: "b", Price: 500, CurrentPoints: 3},
		{ID: "c", Price: 1250, CurrentPoints: 5},
	})
}

func TestCurrentPoints_CaptainMultiplier(t *testing.T) {
	r := Roster{PlayerIDs: []string{"a", "b", "c"}, CaptainID: "c"}

	got, err := CurrentPoints(r, pointsPool())
	if err != nil {
		t.Fatalf("current points: %v", err)
	}
	if got != 20 {
		t.Fatalf("got %d, want 2+3+15=20", got)
	}
}

func TestCurrentPoints_NoCaptain(t *testing.T) {
	r := Roster{PlayerIDs: []string{"a", "b", "c"}}
	if got, _ := CurrentPoints(r, pointsPool()); got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
}

func TestCurrentPoints_EmptyRoster(t *testing.T) {
	got, err := CurrentPoints(Roster{}, pointsPool())
	if err != nil || got != 0 {
		t.Fatalf("got %d, %v; want 0, nil", got, err)
	}
}

func TestCurrentPoints_FailSoft(t *testing.T) {
	tests := []struct {
		name   string
		roster Roster
		want   error
	}{
		{name: "unresolved member", roster: Roster{PlayerIDs: []string{"a", "ghost"}, CaptainID: "a"}, want: ErrUnresolvedPlayer},
		{name: "captain outside roster", roster: Roster{PlayerIDs: []string{"a", "b"}, CaptainID: "c"}, want: ErrCaptainNotInRoster},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CurrentPoints(tc.roster, pointsPool())
			if got != 0 {
				t.Fatalf("expected 0 on inconsistency, got %d", got)
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRemainingBudget(t *testing.T) {
	r := Roster{PlayerIDs: []string{"a", "b", "c"}}
	got, err := RemainingBudget(r, pointsPool(), DefaultSalaryCap)
	if err != nil {
		t.Fatalf("remaining budget: %v", err)
	}
	if got != 10000-2200 {
		t.Fatalf("got %s", got)
	}

	over, _ := RemainingBudget(r, pointsPool(), player.Units(20))
	if over >= 0 {
		t.Fatalf("expected negative remaining budget, got %s", over)
	}
}

func TestSetCaptain(t *testing.T) {
	r := Roster{PlayerIDs: []string{"a", "b"}, CaptainID: "a"}

	if changed := r.SetCaptain("z"); changed || r.CaptainID != "a" {
		t.Fatalf("non-member must be a no-op, captain=%s changed=%v", r.CaptainID, changed)
	}
	if changed := r.SetCaptain("b"); !changed || r.CaptainID != "b" {
		t.Fatalf("expected captain b, got %s changed=%v", r.CaptainID, changed)
	}
	if changed := r.SetCaptain("b"); changed {
		t.Fatalf("re-setting the same captain must report no change")
	}
}

func TestRosterValidateBasic(t *testing.T) {
	r := Roster{ID: "r1", UserID: "u1", Name: "Galacticos", PlayerIDs: []string{"a"}, CaptainID: "b"}
	if err := r.ValidateBasic(); !errors.Is(err, ErrCaptainNotInRoster) {
		t.Fatalf("expected ErrCaptainNotInRoster, got %v", err)
	}
	r.CaptainID = "a"
	if err := r.ValidateBasic(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}
