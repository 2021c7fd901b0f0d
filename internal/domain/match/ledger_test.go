package match

import (
	"errors"
	"reflect"
	"testing"
)

var teamOf = map[string]string{
	"ars-gk":  "ars",
	"ars-fw":  "ars",
	"ars-mid": "ars",
	"che-gk":  "che",
	"che-fw":  "che",
	"liv-fw":  "liv",
}

func newMatch(home, away int) Match {
	return Match{ID: "m-1", FixtureID: "f-1", Gameweek: 1, HomeTeamID: "ars", AwayTeamID: "che", HomeScore: home, AwayScore: away}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		home, away int
		want       Outcome
	}{
		{2, 1, OutcomeHomeWin},
		{0, 3, OutcomeAwayWin},
		{1, 1, OutcomeDraw},
		{0, 0, OutcomeDraw},
	}
	for _, tc := range tests {
		if got := newMatch(tc.home, tc.away).Outcome(); got != tc.want {
			t.Fatalf("%d-%d: got %q, want %q", tc.home, tc.away, got, tc.want)
		}
	}
}

func TestParseOutcome(t *testing.T) {
	if got, err := ParseOutcome(" Home Win "); err != nil || got != OutcomeHomeWin {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := ParseOutcome("home"); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("expected ErrInvalidOutcome, got %v", err)
	}
}

func TestNewLedger_PartitionsByTeam(t *testing.T) {
	m := newMatch(2, 1)
	ledger, err := NewLedger(m, Tallies{
		Saves:       map[string]int{"ars-gk": 3, "che-gk": 0},
		Goals:       map[string]int{"ars-fw": 2, "che-fw": 1},
		Assists:     map[string]int{"ars-mid": 1},
		YellowCards: []string{"che-fw", "ars-mid"},
		RedCards:    []string{"che-gk"},
	}, teamOf)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	if len(ledger.Saves) != 1 {
		t.Fatalf("expected zero-count save to be omitted, got %+v", ledger.Saves)
	}

	r := Result{Match: m, Ledger: ledger}
	if got := r.StatsFor("ars", StatGoals); !reflect.DeepEqual(got, []Entry{{PlayerID: "ars-fw", TeamID: "ars", Count: 2}}) {
		t.Fatalf("unexpected ars goals: %+v", got)
	}
	if got := r.StatsCount("ars", StatGoals); got != 2 {
		t.Fatalf("ars goal count = %d, want 2", got)
	}
	if got := r.StatsCount("che", StatYellowCards); got != 1 {
		t.Fatalf("che yellow count = %d, want 1", got)
	}
	if got := r.StatsCount("che", StatRedCards); got != 1 {
		t.Fatalf("che red count = %d, want 1", got)
	}
	if got := r.StatsFor("liv", StatGoals); got != nil {
		t.Fatalf("expected nothing for a team outside the match, got %+v", got)
	}
}

func TestNewLedger_Deterministic(t *testing.T) {
	m := newMatch(3, 0)
	tallies := Tallies{
		Goals:       map[string]int{"ars-fw": 2, "ars-mid": 1},
		YellowCards: []string{"ars-mid", "ars-fw"},
	}
	first, err := NewLedger(m, tallies, teamOf)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := NewLedger(m, tallies, teamOf)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("ledger differs between identical inputs:\n%+v\n%+v", first, second)
	}
	if first.YellowCards[0].PlayerID != "ars-fw" {
		t.Fatalf("expected entries ordered by player id, got %+v", first.YellowCards)
	}
}

func TestNewLedger_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		match   Match
		tallies Tallies
		want    error
	}{
		{name: "foreign player", match: newMatch(1, 0), tallies: Tallies{Goals: map[string]int{"liv-fw": 1}}, want: ErrForeignPlayer},
		{name: "unknown player", match: newMatch(1, 0), tallies: Tallies{Assists: map[string]int{"ghost": 1}}, want: ErrUnknownPlayer},
		{name: "negative count", match: newMatch(1, 0), tallies: Tallies{Saves: map[string]int{"ars-gk": -1}}, want: ErrNegativeCount},
		{name: "duplicate card", match: newMatch(0, 0), tallies: Tallies{RedCards: []string{"che-fw", "che-fw"}}, want: ErrDuplicateCard},
		{name: "negative score", match: newMatch(-1, 0), tallies: Tallies{}, want: ErrNegativeScore},
		{name: "empty card id", match: newMatch(0, 0), tallies: Tallies{YellowCards: []string{""}}, want: ErrEmptyPlayerRef},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLedger(tc.match, tc.tallies, teamOf)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTalliesPlayerIDs(t *testing.T) {
	got := Tallies{
		Goals:       map[string]int{"b": 1},
		Assists:     map[string]int{"a": 1, "b": 1},
		YellowCards: []string{"c"},
	}.PlayerIDs()
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected ids %v", got)
	}
}
