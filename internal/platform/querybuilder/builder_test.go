package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("players").
		Where(Eq("team_id", "t1"), Expr("current_points > ?", 0)).
		OrderBy("price DESC", "id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM players WHERE team_id = $1 AND current_points > $2 ORDER BY price DESC, id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "t1" || args[1] != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InAndForUpdate(t *testing.T) {
	query, args, err := Select("*").
		From("players").
		Where(In("id", []any{"p1", "p2"})).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM players WHERE id IN ($1, $2) FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("players").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM players WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("match_goals").
		Columns("match_id", "player_id").
		Values("m1", "p1").
		Values("m1", "p2").
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO match_goals (match_id, player_id) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != "p2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("teams").Columns("id", "name").Values("t1").ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("players AS p").
		SetExpr("current_points", "v.points").
		SetExpr("total_points", "p.total_points + ?", 7).
		SetExpr("updated_at", "NOW()").
		From("UNNEST(?::text[], ?::bigint[]) AS v(public_id, points)", "ids", "points").
		Where(Expr("p.public_id = v.public_id")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE players AS p SET current_points = v.points, total_points = p.total_points + $1, updated_at = NOW() " +
		"FROM UNNEST($2::text[], $3::bigint[]) AS v(public_id, points) WHERE p.public_id = v.public_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != 7 || args[2] != "points" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_RequiresSetsAndWhere(t *testing.T) {
	if _, _, err := Update("players").Where(Eq("public_id", "p1")).ToSQL(); err == nil {
		t.Fatalf("expected error without sets")
	}
	if _, _, err := Update("players").SetExpr("current_points", "0").ToSQL(); err == nil {
		t.Fatalf("expected error for unbounded update")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("match_saves").Where(Eq("match_id", "m1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM match_saves WHERE match_id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "m1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder_RequiresWhere(t *testing.T) {
	if _, _, err := DeleteFrom("match_saves").ToSQL(); err == nil {
		t.Fatalf("expected error for unbounded delete")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID      string `db:"id"`
		Name    string `db:"name"`
		Ignored string `db:"-"`
		hidden  string
	}

	query, args, err := InsertModel("teams", row{ID: "t1", Name: "Arsenal", hidden: "x"}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	if query != "INSERT INTO teams (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[1] != "Arsenal" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpsertModel(t *testing.T) {
	type row struct {
		PublicID string `db:"public_id"`
		Name     string `db:"name"`
	}

	query, args, err := UpsertModel("teams", &row{PublicID: "nbr", Name: "Northbridge"}, []string{"public_id"}, "updated_at")
	if err != nil {
		t.Fatalf("upsert model: %v", err)
	}
	want := "INSERT INTO teams (public_id, name) VALUES ($1, $2) ON CONFLICT (public_id) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()"
	if query != want {
		t.Fatalf("unexpected query:\n got %s\nwant %s", query, want)
	}
	if len(args) != 2 || args[0] != "nbr" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := UpsertModel("teams", row{}, nil); err == nil {
		t.Fatalf("expected error without conflict columns")
	}
	if _, _, err := InsertModel("teams", (*row)(nil), ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
