package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"tradejournal/src/risk"
)

func TestPositionSizeHandler_Success(t *testing.T) {
	handler := PositionSizeHandler()

	req := httptest.NewRequest(http.MethodGet,
		"/api/risk/position-size?accountBalance=10000&riskPercent=1&stopLossPips=20&pipValue=10", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var result risk.PositionSize
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if !result.RiskAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected risk amount 100, got %s", result.RiskAmount)
	}
	if !result.Lots.Equal(decimal.RequireFromString("0.5")) {
		t.Fatalf("expected 0.5 lots, got %s", result.Lots)
	}
}

func TestPositionSizeHandler_MissingParam(t *testing.T) {
	handler := PositionSizeHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/risk/position-size?accountBalance=10000", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestPositionSizeHandler_InvalidParam(t *testing.T) {
	handler := PositionSizeHandler()

	req := httptest.NewRequest(http.MethodGet,
		"/api/risk/position-size?accountBalance=lots&riskPercent=1&stopLossPips=20&pipValue=10", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}
