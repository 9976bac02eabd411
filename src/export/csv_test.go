package export

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"
	"time"

	"tradejournal/src/analytics"
	"tradejournal/src/model"
)

func TestWriteTradesCSVRoundTripsThroughImporter(t *testing.T) {
	status := model.StatusWin
	reward := 120.0
	strategy := "Breakout"
	exit := time.Date(2024, 1, 5, 14, 45, 0, 0, time.UTC)

	trades := []model.Trade{{
		ClientTradeID: "mt5-1",
		Symbol:        "EURUSD",
		AssetClass:    model.AssetClassForex,
		Direction:     model.DirectionBuy,
		EntryDate:     time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC),
		ExitDate:      &exit,
		EntryPrice:    1.085,
		LotSize:       0.5,
		Status:        &status,
		RewardAmount:  &reward,
		Strategy:      &strategy,
		Emotions:      model.TagList{"FOMO", "Calm"},
	}}

	var buf bytes.Buffer
	if err := WriteTradesCSV(&buf, trades); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(records))
	}
	if records[0][0] != "client_trade_id" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	row := records[1]
	if row[0] != "mt5-1" || row[1] != "EURUSD" || row[9] != "win" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[18] != "FOMO, Calm" {
		t.Fatalf("unexpected emotions cell: %q", row[18])
	}
}

func TestWriteSummaryCSVInfiniteProfitFactor(t *testing.T) {
	s := analytics.Summary{ProfitFactor: analytics.Metric(math.Inf(1))}

	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, s); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !strings.Contains(buf.String(), "profit_factor,Infinity") {
		t.Fatalf("expected Infinity sentinel, got:\n%s", buf.String())
	}
}

func TestWriteMonthlyCSV(t *testing.T) {
	months := []analytics.MonthlyStats{
		{Month: "2024-01", Trades: 3, Wins: 2, WinRate: 66.66666666666666, ProfitLoss: 150},
	}

	var buf bytes.Buffer
	if err := WriteMonthlyCSV(&buf, months); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "2024-01,3,2,") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}
