package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouter_Healthcheck(t *testing.T) {
	router := Router()

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if rr.Body.String() != "OK" {
		t.Fatalf("expected OK body, got %q", rr.Body.String())
	}
}

func TestRouter_APIRequiresKey(t *testing.T) {
	router := Router()

	paths := []string{
		"/api/trades",
		"/api/analytics/summary",
		"/api/export/trades.csv",
		"/webhook/mt5",
	}

	for _, path := range paths {
		method := http.MethodGet
		if path == "/webhook/mt5" {
			method = http.MethodPost
		}

		req := httptest.NewRequest(method, path, nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401 for %s, got %d", path, rr.Code)
		}
	}
}
