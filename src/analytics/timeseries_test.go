package analytics

import (
	"testing"
	"time"

	"tradejournal/src/model"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestEquityCurve_OrdersByExitDate(t *testing.T) {
	// deliberately out of chronological order
	trades := []model.Trade{
		{Status: statusPtr(model.StatusWin), ProfitLoss: floatPtr(100), ExitDate: timePtr(day(2024, 1, 5))},
		{Status: statusPtr(model.StatusLoss), ProfitLoss: floatPtr(-50), ExitDate: timePtr(day(2024, 1, 1))},
	}

	curve := EquityCurve(trades)

	if len(curve) != 2 {
		t.Fatalf("expected 2 points, got %d", len(curve))
	}
	assert.Equal(t, day(2024, 1, 1), curve[0].Date)
	assert.InDelta(t, -50, curve[0].Equity, 1e-9)
	assert.Equal(t, day(2024, 1, 5), curve[1].Date)
	assert.InDelta(t, 50, curve[1].Equity, 1e-9)
}

func TestEquityCurve_SkipsUnresolvableTrades(t *testing.T) {
	trades := []model.Trade{
		{Status: statusPtr(model.StatusWin), ProfitLoss: floatPtr(100)},                       // no exit date
		{ProfitLoss: floatPtr(100), ExitDate: timePtr(day(2024, 1, 1))},                       // open
		{Status: statusPtr(model.StatusWin), ExitDate: timePtr(day(2024, 1, 2))},              // no amount
		{Status: statusPtr(model.StatusWin), RewardAmount: floatPtr(30), ExitDate: timePtr(day(2024, 1, 3))},
	}

	curve := EquityCurve(trades)

	if len(curve) != 1 {
		t.Fatalf("expected 1 point, got %d", len(curve))
	}
	assert.InDelta(t, 30, curve[0].Equity, 1e-9)
}

func TestEquityCurve_StableOnEqualExitDates(t *testing.T) {
	exit := day(2024, 3, 1)
	trades := []model.Trade{
		{ID: 1, Status: statusPtr(model.StatusWin), ProfitLoss: floatPtr(10), ExitDate: timePtr(exit)},
		{ID: 2, Status: statusPtr(model.StatusLoss), ProfitLoss: floatPtr(-4), ExitDate: timePtr(exit)},
	}

	curve := EquityCurve(trades)

	// input order must be preserved for ties
	assert.InDelta(t, 10, curve[0].Equity, 1e-9)
	assert.InDelta(t, 6, curve[1].Equity, 1e-9)
}

func TestMonthlyPerformance(t *testing.T) {
	trades := []model.Trade{
		{Status: statusPtr(model.StatusWin), ProfitLoss: floatPtr(100), ExitDate: timePtr(day(2024, 2, 10))},
		{Status: statusPtr(model.StatusLoss), ProfitLoss: floatPtr(-40), ExitDate: timePtr(day(2024, 2, 20))},
		{Status: statusPtr(model.StatusWin), ProfitLoss: floatPtr(70), ExitDate: timePtr(day(2024, 1, 15))},
		{Status: statusPtr(model.StatusOpen)}, // ignored
	}

	months := MonthlyPerformance(trades)

	if len(months) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(months))
	}
	// ascending month order
	assert.Equal(t, "2024-01", months[0].Month)
	assert.Equal(t, "2024-02", months[1].Month)

	assert.Equal(t, 2, months[1].Trades)
	assert.Equal(t, 1, months[1].Wins)
	assert.InDelta(t, 50, months[1].WinRate, 1e-9)
	assert.InDelta(t, 60, months[1].ProfitLoss, 1e-9)
}

func TestDayOfWeekPerformance_EmptySetStillSevenDays(t *testing.T) {
	days := DayOfWeekPerformance(nil)

	if len(days) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(days))
	}
	assert.Equal(t, "Sunday", days[0].Day)
	assert.Equal(t, "Saturday", days[6].Day)
	for _, d := range days {
		if d.Trades != 0 || d.WinRate != 0 || d.Profit != 0 {
			t.Fatalf("expected zero bucket, got %+v", d)
		}
	}
}

func TestDayOfWeekPerformance_BucketsByEntryDate(t *testing.T) {
	monday := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) // 2024-01-01 is a Monday
	trades := []model.Trade{
		{EntryDate: monday, Status: statusPtr(model.StatusWin), ProfitLoss: floatPtr(25)},
		{EntryDate: monday, Status: statusPtr(model.StatusLoss), ProfitLoss: floatPtr(-10)},
		{EntryDate: monday.AddDate(0, 0, 1)}, // open Tuesday trade still counts
	}

	days := DayOfWeekPerformance(trades)

	assert.Equal(t, 2, days[1].Trades)
	assert.InDelta(t, 50, days[1].WinRate, 1e-9)
	assert.InDelta(t, 15, days[1].Profit, 1e-9)
	assert.Equal(t, 1, days[2].Trades)
	assert.InDelta(t, 0, days[2].WinRate, 1e-9)
}
