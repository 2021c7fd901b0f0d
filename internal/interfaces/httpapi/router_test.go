package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fsl-league/internal/domain/fantasy"
	"github.com/riskibarqy/fsl-league/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/fsl-league/internal/platform/id"
	"github.com/riskibarqy/fsl-league/internal/platform/logging"
	"github.com/riskibarqy/fsl-league/internal/usecase"
)

const testAdminToken = "admin-s3cret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	store.Load(memory.Seed())
	logger := logging.NewNop()
	ids := idgen.NewSequenceGenerator("id")

	handler := NewHandler(Services{
		Teams:       usecase.NewTeamService(store.Teams()),
		Players:     usecase.NewPlayerService(store.Players(), logger),
		Fixtures:    usecase.NewFixtureService(store.Teams(), store.Fixtures(), ids, logger),
		Results:     usecase.NewResultService(store.Fixtures(), store.Matches(), store.Players(), store.Teams(), ids, logger, nil),
		Standings:   usecase.NewStandingsService(store.Teams(), store.Matches()),
		Rosters:     usecase.NewRosterService(store.Rosters(), store.Players(), store.Users(), fantasy.DefaultRules(), ids, logger, nil),
		Users:       usecase.NewUserService(store.Users(), store.Teams(), ids, logger),
		Predictions: usecase.NewPredictionService(store.Challenges(), store.Gameweeks(), store.Fixtures(), store.Users(), ids, logger),
		Gameweeks:   usecase.NewGameweekService(store.Gameweeks(), logger, nil),
	}, logger)

	return NewRouter(handler, RouterConfig{Logger: logger, AdminToken: testAdminToken})
}

type testEnvelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func doJSON[T any](t *testing.T, router http.Handler, method, path string, body any, headers map[string]string) (int, testEnvelope[T]) {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		if payload, err = sonic.Marshal(body); err != nil {
			t.Fatalf("marshal request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env testEnvelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal %s %s response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

func threeTeamSquad() []string {
	var ids []string
	for _, p := range memory.SeedPlayers() {
		if p.TeamID != memory.TeamIDKingsway {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func TestRouter_SeasonFlow(t *testing.T) {
	router := newTestRouter(t)
	admin := map[string]string{adminTokenHeader: testAdminToken}

	status, registered := doJSON[userDTO](t, router, http.MethodPost, "/v1/users", registerUserRequest{
		Username:       "kai",
		Email:          "kai@example.com",
		Password:       "correct-horse",
		FavoriteTeamID: memory.TeamIDNorthbridge,
	}, nil)
	if status != http.StatusCreated || registered.Data.ID == "" || registered.Data.RosterID == "" {
		t.Fatalf("register: status=%d body=%+v", status, registered)
	}
	asUser := map[string]string{userIDHeader: registered.Data.ID}

	status, roster := doJSON[rosterDTO](t, router, http.MethodPut, "/v1/roster/me", selectRosterRequest{
		Name:      "Galacticos",
		PlayerIDs: threeTeamSquad(),
	}, asUser)
	if status != http.StatusOK {
		t.Fatalf("select roster: status=%d error=%+v", status, roster.Error)
	}
	if roster.Data.CaptainID != "nbr-fwd-01" || roster.Data.RemainingBudget != 7 || len(roster.Data.Players) != 15 {
		t.Fatalf("unexpected roster %+v", roster.Data)
	}

	status, _ = doJSON[matchDTO](t, router, http.MethodPut, "/v1/admin/fixtures/fx-001/result", map[string]any{"home_score": 2, "away_score": 1}, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without admin token, got %d", status)
	}

	status, recorded := doJSON[matchDTO](t, router, http.MethodPut, "/v1/admin/fixtures/fx-001/result", map[string]any{
		"home_score": 2,
		"away_score": 1,
		"goals":      map[string]int{"nbr-fwd-01": 2, "rsd-mid-01": 1},
	}, admin)
	if status != http.StatusOK || recorded.Data.FixtureID != "fx-001" {
		t.Fatalf("record result: status=%d body=%+v", status, recorded)
	}

	status, details := doJSON[matchDetailsDTO](t, router, http.MethodGet, "/v1/matches/fx-001", nil, nil)
	if status != http.StatusOK || details.Data.Home.Stats["goals"].Count != 2 || details.Data.Away.Stats["goals"].Count != 1 {
		t.Fatalf("match details: status=%d body=%+v", status, details.Data)
	}

	status, standings := doJSON[[]standingDTO](t, router, http.MethodGet, "/v1/standings", nil, nil)
	if status != http.StatusOK || len(standings.Data) != 4 || standings.Data[0].TeamID != memory.TeamIDNorthbridge || standings.Data[0].Points != 3 {
		t.Fatalf("standings: status=%d body=%+v", status, standings.Data)
	}

	status, _ = doJSON[map[string]int](t, router, http.MethodPut, "/v1/admin/player-points", uploadPointsRequest{
		Points: map[string]int{"nbr-fwd-01": 5, "nbr-gk-01": 2, "rsd-mid-01": 3},
	}, admin)
	if status != http.StatusOK {
		t.Fatalf("upload points: status=%d", status)
	}

	status, roster = doJSON[rosterDTO](t, router, http.MethodGet, "/v1/roster/me", nil, asUser)
	if status != http.StatusOK || roster.Data.CurrentPoints != 20 {
		t.Fatalf("expected 2+3+5x3=20 current points, status=%d body=%+v", status, roster.Data)
	}

	status, closed := doJSON[gameweekCloseDTO](t, router, http.MethodPost, "/v1/admin/gameweek/close", nil, admin)
	if status != http.StatusOK || closed.Data.ClosedGameweek != 1 || closed.Data.ActiveGameweek != 2 {
		t.Fatalf("close gameweek: status=%d body=%+v", status, closed.Data)
	}

	status, table := doJSON[[]fantasyTableRowDTO](t, router, http.MethodGet, "/v1/fantasy/table", nil, nil)
	if status != http.StatusOK || len(table.Data) != 1 || table.Data[0].TotalPoints != 20 || table.Data[0].CurrentPoints != 0 {
		t.Fatalf("fantasy table: status=%d body=%+v", status, table.Data)
	}

	status, gw := doJSON[gameweekDTO](t, router, http.MethodGet, "/v1/gameweek", nil, nil)
	if status != http.StatusOK || gw.Data.Current != 2 {
		t.Fatalf("gameweek: status=%d body=%+v", status, gw.Data)
	}
}

func TestRouter_ErrorEnvelopes(t *testing.T) {
	router := newTestRouter(t)
	register := registerUserRequest{
		Username:       "kai",
		Email:          "kai@example.com",
		Password:       "correct-horse",
		FavoriteTeamID: memory.TeamIDNorthbridge,
	}
	if status, _ := doJSON[userDTO](t, router, http.MethodPost, "/v1/users", register, nil); status != http.StatusCreated {
		t.Fatalf("register: status=%d", status)
	}

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		headers    map[string]string
		wantStatus int
		wantCode   string
	}{
		{name: "duplicate user", method: http.MethodPost, path: "/v1/users", body: register, wantStatus: http.StatusConflict, wantCode: "ALREADY_EXISTS"},
		{name: "unknown field", method: http.MethodPost, path: "/v1/users", body: map[string]string{"nickname": "k"}, wantStatus: http.StatusBadRequest, wantCode: "INVALID_ARGUMENT"},
		{name: "missing user header", method: http.MethodGet, path: "/v1/roster/me", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHENTICATED"},
		{name: "unknown roster", method: http.MethodGet, path: "/v1/roster/me", headers: map[string]string{userIDHeader: "ghost"}, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "bad gameweek query", method: http.MethodGet, path: "/v1/fixtures?gameweek=abc", wantStatus: http.StatusBadRequest, wantCode: "INVALID_ARGUMENT"},
		{name: "unplayed match", method: http.MethodGet, path: "/v1/matches/fx-002", wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{
			name:       "self fixture",
			method:     http.MethodPost,
			path:       "/v1/admin/fixtures",
			body:       createFixtureRequest{Gameweek: 3, HomeTeamID: "nbr", AwayTeamID: "nbr", KickoffDate: "2026-08-29"},
			headers:    map[string]string{adminTokenHeader: testAdminToken},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ARGUMENT",
		},
		{
			name:       "duplicate fixture",
			method:     http.MethodPost,
			path:       "/v1/admin/fixtures",
			body:       createFixtureRequest{Gameweek: 1, HomeTeamID: "nbr", AwayTeamID: "rsd", KickoffDate: "2026-08-15"},
			headers:    map[string]string{adminTokenHeader: testAdminToken},
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_EXISTS",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, env := doJSON[any](t, router, tc.method, tc.path, tc.body, tc.headers)
			if status != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, status)
			}
			if env.Error == nil || env.Error.Status != tc.wantCode {
				t.Fatalf("expected error status %s, got %+v", tc.wantCode, env.Error)
			}
		})
	}
}
