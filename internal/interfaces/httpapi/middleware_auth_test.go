package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireUser(t *testing.T) {
	var seen string
	handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = userIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/roster/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/roster/me", nil)
	req.Header.Set(userIDHeader, " u-1 ")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || seen != "u-1" {
		t.Fatalf("expected user u-1 in context, status=%d seen=%q", rec.Code, seen)
	}
}

func TestRequireAdminToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		configured string
		provided   string
		want       int
	}{
		{name: "not configured", configured: "", provided: "anything", want: http.StatusServiceUnavailable},
		{name: "missing", configured: "s3cret", provided: "", want: http.StatusUnauthorized},
		{name: "wrong", configured: "s3cret", provided: "guess", want: http.StatusUnauthorized},
		{name: "valid", configured: "s3cret", provided: "s3cret", want: http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/admin/gameweek/close", nil)
			if tc.provided != "" {
				req.Header.Set(adminTokenHeader, tc.provided)
			}
			rec := httptest.NewRecorder()

			RequireAdminToken(tc.configured, next).ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestStatusWriter_KeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec, status: http.StatusOK}

	sw.WriteHeader(http.StatusConflict)
	sw.WriteHeader(http.StatusOK)

	if sw.status != http.StatusConflict {
		t.Fatalf("expected first status to stick, got %d", sw.status)
	}
}
