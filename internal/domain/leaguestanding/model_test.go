package leaguestanding

import (
	"testing"

	"github.com/riskibarqy/fsl-league/internal/domain/match"
)

func fixtureMatches() []match.Match {
	return []match.Match{
		{FixtureID: "f1", HomeTeamID: "ars", AwayTeamID: "che", HomeScore: 2, AwayScore: 1},
		{FixtureID: "f2", HomeTeamID: "liv", AwayTeamID: "ars", HomeScore: 3, AwayScore: 3},
		{FixtureID: "f3", HomeTeamID: "che", AwayTeamID: "liv", HomeScore: 0, AwayScore: 1},
		{FixtureID: "f4", HomeTeamID: "che", AwayTeamID: "ars", HomeScore: 2, AwayScore: 0},
	}
}

func TestCompute(t *testing.T) {
	got := Compute("ars", fixtureMatches())
	want := Standing{
		TeamID:         "ars",
		Played:         3,
		Won:            1,
		Draw:           1,
		Lost:           1,
		GoalsFor:       5,
		GoalsAgainst:   6,
		GoalDifference: -1,
		Points:         4,
	}
	if got != want {
		t.Fatalf("unexpected row:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestCompute_AwayWinCountsAsWin(t *testing.T) {
	got := Compute("liv", fixtureMatches())
	if got.Won != 1 || got.Draw != 1 || got.Lost != 0 || got.Points != 4 {
		t.Fatalf("unexpected row %+v", got)
	}
}

func TestCompute_GoalsForMatchesOwnScores(t *testing.T) {
	matches := fixtureMatches()
	for _, teamID := range []string{"ars", "che", "liv"} {
		want := 0
		for _, m := range matches {
			switch teamID {
			case m.HomeTeamID:
				want += m.HomeScore
			case m.AwayTeamID:
				want += m.AwayScore
			}
		}
		if got := Compute(teamID, matches).GoalsFor; got != want {
			t.Fatalf("%s goals_for = %d, want %d", teamID, got, want)
		}
	}
}

func TestCompute_NoMatches(t *testing.T) {
	got := Compute("new", nil)
	if got.Played != 0 || got.Points != 0 {
		t.Fatalf("unexpected row %+v", got)
	}
}

func TestRank_StableOnTies(t *testing.T) {
	rows := []Standing{
		{TeamID: "a", Points: 3, GoalDifference: -5},
		{TeamID: "b", Points: 6},
		{TeamID: "c", Points: 3, GoalDifference: 9},
		{TeamID: "d", Points: 0},
	}

	got := Rank(rows)
	order := []string{"b", "a", "c", "d"}
	for i, id := range order {
		if got[i].TeamID != id {
			t.Fatalf("position %d: got %s, want %s (goal difference must not break ties)", i+1, got[i].TeamID, id)
		}
		if got[i].Position != i+1 {
			t.Fatalf("position field = %d, want %d", got[i].Position, i+1)
		}
	}
	if rows[0].TeamID != "a" {
		t.Fatalf("input slice must not be reordered")
	}
}
