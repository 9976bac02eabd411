// Package export serializes aggregator outputs and raw trades for download.
package export

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"tradejournal/src/analytics"
	"tradejournal/src/model"
)

var tradeHeader = []string{
	"client_trade_id", "symbol", "asset_class", "direction",
	"entry_date", "exit_date", "entry_price", "exit_price", "lot_size",
	"status", "profit_loss", "reward_amount", "risk_amount",
	"risk_reward_ratio", "pips", "strategy", "exit_reason", "setup_type",
	"emotions", "notes",
}

// WriteTradesCSV streams the user's trades in the same column layout the
// importer accepts, so an export can be re-imported losslessly.
func WriteTradesCSV(w io.Writer, trades []model.Trade) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(tradeHeader); err != nil {
		return err
	}

	for i := range trades {
		t := &trades[i]
		record := []string{
			t.ClientTradeID,
			t.Symbol,
			t.AssetClass,
			t.Direction,
			t.EntryDate.Format(time.RFC3339),
			fmtTimePtr(t.ExitDate),
			f(t.EntryPrice),
			fmtFloatPtr(t.ExitPrice),
			f(t.LotSize),
			fmtStrPtr(t.Status),
			fmtFloatPtr(t.ProfitLoss),
			fmtFloatPtr(t.RewardAmount),
			fmtFloatPtr(t.RiskAmount),
			fmtFloatPtr(t.RiskRewardRatio),
			fmtFloatPtr(t.Pips),
			fmtStrPtr(t.Strategy),
			fmtStrPtr(t.ExitReason),
			fmtStrPtr(t.SetupType),
			joinTags(t.Emotions),
			t.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV emits the headline statistics as metric/value rows.
func WriteSummaryCSV(w io.Writer, s analytics.Summary) error {
	cw := csv.NewWriter(w)

	rows := [][2]string{
		{"total_trades", strconv.Itoa(s.TotalTrades)},
		{"completed_trades", strconv.Itoa(s.CompletedTrades)},
		{"winning_trades", strconv.Itoa(s.WinningTrades)},
		{"losing_trades", strconv.Itoa(s.LosingTrades)},
		{"breakeven_trades", strconv.Itoa(s.BreakevenTrades)},
		{"total_profit_loss", f(s.TotalProfitLoss)},
		{"average_win", f(s.AverageWin)},
		{"average_loss", f(s.AverageLoss)},
		{"largest_win", f(s.LargestWin)},
		{"largest_loss", f(s.LargestLoss)},
		{"profit_factor", fmtProfitFactor(float64(s.ProfitFactor))},
		{"win_rate", f(s.WinRate)},
		{"average_rr", f(s.AverageRR)},
		{"expectancy", f(s.Expectancy)},
		{"total_pips", f(s.TotalPips)},
	}

	if err := cw.Write([]string{"metric", "value"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row[:]); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMonthlyCSV emits the month-by-month performance buckets.
func WriteMonthlyCSV(w io.Writer, months []analytics.MonthlyStats) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"month", "trades", "wins", "win_rate", "profit_loss"}); err != nil {
		return err
	}
	for _, m := range months {
		record := []string{m.Month, strconv.Itoa(m.Trades), strconv.Itoa(m.Wins), f(m.WinRate), f(m.ProfitLoss)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtProfitFactor(v float64) string {
	if math.IsInf(v, 1) {
		return "Infinity"
	}
	return f(v)
}

func fmtFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return f(*v)
}

func fmtStrPtr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func fmtTimePtr(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(time.RFC3339)
}

func joinTags(tags model.TagList) string {
	return strings.Join(tags, ", ")
}
