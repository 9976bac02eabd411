package analytics

import (
	"sort"
	"time"

	"tradejournal/src/model"
	"tradejournal/src/utils"
)

// EquityPoint is one step of the cumulative realized-P&L curve.
type EquityPoint struct {
	Date   time.Time `json:"date"`
	Equity float64   `json:"equity"`
}

// EquityCurve produces the cumulative realized P&L ordered by exit time.
// Only trades with an exit date and a resolvable outcome contribute. Ties in
// exit date keep their input order (stable sort, no secondary key).
func EquityCurve(trades []model.Trade) []EquityPoint {
	closed := make([]*model.Trade, 0, len(trades))
	for i := range trades {
		t := &trades[i]
		if t.ExitDate == nil || !t.IsCompleted() || t.EffectivePL() == nil {
			continue
		}
		closed = append(closed, t)
	}

	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].ExitDate.Before(*closed[j].ExitDate)
	})

	curve := make([]EquityPoint, 0, len(closed))
	var equity float64
	for _, t := range closed {
		equity += *t.EffectivePL()
		curve = append(curve, EquityPoint{Date: *t.ExitDate, Equity: equity})
	}
	return curve
}

// MonthlyStats is one calendar-month performance bucket.
type MonthlyStats struct {
	Month      string  `json:"month"` // "2006-01"
	Trades     int     `json:"trades"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"winRate"`
	ProfitLoss float64 `json:"profitLoss"`
}

// MonthlyPerformance buckets completed trades by the year-month of their exit
// date, sorted ascending by month key.
func MonthlyPerformance(trades []model.Trade) []MonthlyStats {
	buckets := make(map[string]*MonthlyStats)
	for i := range trades {
		t := &trades[i]
		if !t.IsCompleted() || t.ExitDate == nil {
			continue
		}
		key := utils.MonthKey(*t.ExitDate)
		b, ok := buckets[key]
		if !ok {
			b = &MonthlyStats{Month: key}
			buckets[key] = b
		}
		b.Trades++
		if t.StatusIs(model.StatusWin) {
			b.Wins++
		}
		b.ProfitLoss += effectivePL(t)
	}

	out := make([]MonthlyStats, 0, len(buckets))
	for _, b := range buckets {
		if b.Trades > 0 {
			b.WinRate = float64(b.Wins) / float64(b.Trades) * 100
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// DayOfWeekStats is one weekday performance bucket.
type DayOfWeekStats struct {
	Day     string  `json:"day"`
	Trades  int     `json:"trades"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"winRate"`
	Profit  float64 `json:"profit"`
}

// DayOfWeekPerformance buckets ALL trades (open included) by the weekday of
// their entry date. The result always holds exactly seven entries in
// Sunday..Saturday order, zero-valued where a day has no trades.
func DayOfWeekPerformance(trades []model.Trade) []DayOfWeekStats {
	out := make([]DayOfWeekStats, 7)
	for day := range out {
		out[day].Day = utils.DayName(day)
	}

	for i := range trades {
		t := &trades[i]
		b := &out[utils.DayIndex(t.EntryDate)]
		b.Trades++
		if t.StatusIs(model.StatusWin) {
			b.Wins++
		}
		b.Profit += effectivePL(t)
	}

	for day := range out {
		if out[day].Trades > 0 {
			out[day].WinRate = float64(out[day].Wins) / float64(out[day].Trades) * 100
		}
	}
	return out
}
