package mapper

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"tradejournal/src/model"
)

// RowError reports a CSV line that could not be imported. Valid rows around
// it are still ingested.
type RowError struct {
	Line int    `json:"line"`
	Err  string `json:"error"`
}

var csvTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006.01.02 15:04:05",
}

// ParseTradesCSV reads a header-labelled CSV export and maps each row onto a
// trade record for the given user. Per-row failures are collected, not fatal;
// only an unreadable stream or a missing header aborts the import.
func ParseTradesCSV(r io.Reader, userID uint) ([]model.Trade, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["symbol"]; !ok {
		return nil, nil, fmt.Errorf("csv missing required column %q", "symbol")
	}
	if _, ok := col["entry_date"]; !ok {
		return nil, nil, fmt.Errorf("csv missing required column %q", "entry_date")
	}

	var (
		trades []model.Trade
		errs   []RowError
	)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs = append(errs, RowError{Line: line, Err: err.Error()})
			continue
		}

		trade, err := mapCSVRow(col, record, userID)
		if err != nil {
			errs = append(errs, RowError{Line: line, Err: err.Error()})
			continue
		}
		trades = append(trades, *trade)
	}

	return trades, errs, nil
}

func mapCSVRow(col map[string]int, record []string, userID uint) (*model.Trade, error) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	symbol := model.NormalizeSymbol(field("symbol"))
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}

	entryDate, err := parseCSVTime(field("entry_date"))
	if err != nil {
		return nil, fmt.Errorf("entry_date: %w", err)
	}
	if entryDate == nil {
		return nil, fmt.Errorf("empty entry_date")
	}

	trade := &model.Trade{
		UserID:        userID,
		ClientTradeID: field("client_trade_id"),
		Symbol:        symbol,
		AssetClass:    strings.ToLower(field("asset_class")),
		Direction:     strings.ToLower(field("direction")),
		EntryDate:     *entryDate,
		Notes:         field("notes"),
	}
	if trade.ClientTradeID == "" {
		trade.ClientTradeID = uuid.NewString()
	}
	if trade.AssetClass == "" {
		trade.AssetClass = ClassifySymbol(symbol)
	}
	if trade.Direction == "" {
		trade.Direction = model.DirectionBuy
	}

	if trade.ExitDate, err = parseCSVTime(field("exit_date")); err != nil {
		return nil, fmt.Errorf("exit_date: %w", err)
	}

	floats := []struct {
		name string
		dst  **float64
	}{
		{"exit_price", &trade.ExitPrice},
		{"profit_loss", &trade.ProfitLoss},
		{"reward_amount", &trade.RewardAmount},
		{"risk_amount", &trade.RiskAmount},
		{"risk_reward_ratio", &trade.RiskRewardRatio},
		{"pips", &trade.Pips},
	}
	for _, f := range floats {
		v, err := parseCSVFloat(field(f.name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}

	if v, err := parseCSVFloat(field("entry_price")); err != nil {
		return nil, fmt.Errorf("entry_price: %w", err)
	} else if v != nil {
		trade.EntryPrice = *v
	}
	if v, err := parseCSVFloat(field("lot_size")); err != nil {
		return nil, fmt.Errorf("lot_size: %w", err)
	} else if v != nil {
		trade.LotSize = *v
	}

	if status := strings.ToLower(field("status")); status != "" {
		switch status {
		case model.StatusOpen, model.StatusWin, model.StatusLoss, model.StatusBreakeven:
			trade.Status = &status
		default:
			return nil, fmt.Errorf("unknown status %q", status)
		}
	}

	strPtrs := []struct {
		name string
		dst  **string
	}{
		{"strategy", &trade.Strategy},
		{"exit_reason", &trade.ExitReason},
		{"setup_type", &trade.SetupType},
		{"rule_in_plan", &trade.RuleInPlan},
		{"rule_bos", &trade.RuleBOS},
		{"rule_liquidity", &trade.RuleLiquidity},
		{"rule_trend", &trade.RuleTrend},
		{"rule_news", &trade.RuleNews},
		{"rule_rr", &trade.RuleRR},
		{"rule_emotions", &trade.RuleEmotions},
		{"rule_lot_size", &trade.RuleLotSize},
	}
	for _, s := range strPtrs {
		if v := field(s.name); v != "" {
			value := v
			*s.dst = &value
		}
	}

	// Any of the legacy serialized shapes is accepted here.
	trade.Emotions = model.ParseTags(field("emotions"))

	return trade, nil
}

func parseCSVTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	var lastErr error
	for _, layout := range csvTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func parseCSVFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
