package fixture

import (
	"errors"
	"testing"
	"time"
)

func TestFixtureValidate(t *testing.T) {
	valid := Fixture{
		ID:          "f-1",
		Gameweek:    1,
		HomeTeamID:  "t-1",
		AwayTeamID:  "t-2",
		KickoffDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		mutate  func(*Fixture)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Fixture) {}},
		{name: "gameweek zero", mutate: func(f *Fixture) { f.Gameweek = 0 }, wantErr: true},
		{name: "same teams", mutate: func(f *Fixture) { f.AwayTeamID = f.HomeTeamID }, wantErr: true},
		{name: "missing away", mutate: func(f *Fixture) { f.AwayTeamID = "" }, wantErr: true},
		{name: "missing kickoff", mutate: func(f *Fixture) { f.KickoffDate = time.Time{} }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := valid
			tc.mutate(&f)
			err := f.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidFixture) {
				t.Fatalf("expected ErrInvalidFixture, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDate(t *testing.T) {
	in := time.Date(2026, 8, 15, 23, 30, 0, 0, time.FixedZone("WIB", 7*3600))
	got := Date(in)
	if !got.Equal(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %s", got)
	}
}
