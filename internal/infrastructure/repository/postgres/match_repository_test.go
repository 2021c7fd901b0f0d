package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/riskibarqy/fsl-league/internal/domain/fixture"
	"github.com/riskibarqy/fsl-league/internal/domain/match"
)

func sampleResult() match.Result {
	return match.Result{
		Match: match.Match{
			ID:          "m-new",
			FixtureID:   "f1",
			Gameweek:    1,
			HomeTeamID:  "t1",
			AwayTeamID:  "t2",
			KickoffDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
			HomeScore:   2,
			AwayScore:   1,
		},
		Ledger: match.Ledger{
			Goals:       []match.Entry{{PlayerID: "p1", TeamID: "t1", Count: 2}},
			YellowCards: []match.Entry{{PlayerID: "p2", TeamID: "t2", Count: 1}},
		},
	}
}

func TestMatchRepository_SaveResultKeepsStoredID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO matches").
		WillReturnRows(sqlmock.NewRows([]string{"public_id"}).AddRow("m-old"))
	mock.ExpectExec("DELETE FROM match_player_stats").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO match_player_stats").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	got, err := repo.SaveResult(context.Background(), sampleResult())
	if err != nil {
		t.Fatalf("save result: %v", err)
	}
	if got.ID != "m-old" {
		t.Fatalf("expected stored match id to win, got %s", got.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMatchRepository_SaveResultRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO matches").
		WillReturnRows(sqlmock.NewRows([]string{"public_id"}).AddRow("m-old"))
	mock.ExpectExec("DELETE FROM match_player_stats").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO match_player_stats").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if _, err := repo.SaveResult(context.Background(), sampleResult()); err == nil {
		t.Fatalf("expected save to fail")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMatchRepository_GetResultGroupsStats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	kickoff := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM matches").
		WillReturnRows(sqlmock.NewRows(matchSelectColumns).
			AddRow("m1", "f1", 1, "t1", "t2", kickoff, 2, 1))
	mock.ExpectQuery("FROM match_player_stats").
		WillReturnRows(sqlmock.NewRows(matchStatSelectColumns).
			AddRow("m1", "goals", "p1", "t1", 2).
			AddRow("m1", "saves", "p3", "t2", 4).
			AddRow("m1", "yellow_cards", "p2", "t2", 1))

	got, ok, err := repo.GetResult(context.Background(), "f1")
	if err != nil || !ok {
		t.Fatalf("get result: ok=%v err=%v", ok, err)
	}
	if got.StatsCount("t1", match.StatGoals) != 2 {
		t.Fatalf("unexpected goals %+v", got.Ledger.Goals)
	}
	if got.StatsCount("t2", match.StatSaves) != 4 || got.StatsCount("t2", match.StatYellowCards) != 1 {
		t.Fatalf("unexpected ledger %+v", got.Ledger)
	}
}

func TestFixtureRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFixtureRepository(db)

	mock.ExpectExec("INSERT INTO fixtures").WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), fixture.Fixture{
		ID:          "f1",
		Gameweek:    1,
		HomeTeamID:  "t1",
		AwayTeamID:  "t2",
		KickoffDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, fixture.ErrDuplicateFixture) {
		t.Fatalf("expected ErrDuplicateFixture, got %v", err)
	}
}

func TestPlayerRepository_SetCurrentPointsAllOrNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPlayerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(setPointsSQL)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := repo.SetCurrentPoints(context.Background(), map[string]int{"p1": 3, "ghost": 2})
	if err == nil {
		t.Fatalf("expected missing player to abort the batch")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

const setPointsSQL = "UPDATE players AS p SET current_points = v.points, updated_at = NOW() " +
	"FROM UNNEST($1::text[], $2::bigint[]) AS v(public_id, points) WHERE p.public_id = v.public_id"

func TestPlayerRepository_SetCurrentPointsCommits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPlayerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(setPointsSQL)).
		WithArgs(pq.Array([]string{"p1", "p2"}), pq.Array([]int64{3, 0})).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := repo.SetCurrentPoints(context.Background(), map[string]int{"p2": 0, "p1": 3}); err != nil {
		t.Fatalf("set current points: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
