package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tradejournal/src/model"

	"github.com/stretchr/testify/assert"
)

type mockBulkCreator struct {
	trades []model.Trade
	err    error
}

func (m *mockBulkCreator) BulkCreate(ctx context.Context, trades []model.Trade) error {
	m.trades = trades
	return m.err
}

const importCSV = `symbol,entry_date,exit_date,status,profit_loss,strategy
EURUSD,2024-01-05T10:00:00Z,2024-01-05T14:00:00Z,win,120.5,breakout
GBPUSD,2024-01-06T09:00:00Z,,open,,
,2024-01-07T09:00:00Z,,open,,
`

func TestImportCSVHandler_RawBody(t *testing.T) {
	mockRepo := &mockBulkCreator{}
	handler := ImportCSVHandler(mockRepo)

	req := authed(httptest.NewRequest(http.MethodPost, "/api/import/csv", strings.NewReader(importCSV)), 5)
	req.Header.Set("Content-Type", "text/csv")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var result importResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("expected 2 imported rows, got %d", result.Imported)
	}
	if result.Skipped != 1 {
		t.Fatalf("expected 1 skipped row, got %d", result.Skipped)
	}
	if len(result.Errors) != 1 || result.Errors[0].Line != 4 {
		t.Fatalf("expected an error for line 4, got %+v", result.Errors)
	}

	assert.Len(t, mockRepo.trades, 2)
	if mockRepo.trades[0].UserID != 5 {
		t.Fatalf("expected trades tagged with user 5, got %d", mockRepo.trades[0].UserID)
	}
}

func TestImportCSVHandler_Multipart(t *testing.T) {
	mockRepo := &mockBulkCreator{}
	handler := ImportCSVHandler(mockRepo)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "trades.csv")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(importCSV)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := authed(httptest.NewRequest(http.MethodPost, "/api/import/csv", &buf), 5)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	assert.Len(t, mockRepo.trades, 2)
}

func TestImportCSVHandler_MissingColumns(t *testing.T) {
	handler := ImportCSVHandler(&mockBulkCreator{})

	req := authed(httptest.NewRequest(http.MethodPost, "/api/import/csv",
		strings.NewReader("strategy,notes\nbreakout,hello\n")), 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestImportCSVHandler_StoreError(t *testing.T) {
	handler := ImportCSVHandler(&mockBulkCreator{err: assert.AnError})

	req := authed(httptest.NewRequest(http.MethodPost, "/api/import/csv", strings.NewReader(importCSV)), 1)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}
