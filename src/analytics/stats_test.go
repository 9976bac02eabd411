package analytics

import (
	"math"
	"testing"

	"tradejournal/src/model"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func statusPtr(s string) *string  { return &s }

func TestComputeSummary_EmptySet(t *testing.T) {
	s := ComputeSummary(nil)

	if s.TotalTrades != 0 || s.CompletedTrades != 0 {
		t.Fatalf("expected zero counts, got %+v", s)
	}
	if s.WinRate != 0 {
		t.Fatalf("expected winRate 0 for empty set, got %f", s.WinRate)
	}
	if s.ProfitFactor != 0 {
		t.Fatalf("expected profitFactor 0 for empty set, got %f", float64(s.ProfitFactor))
	}
	if s.Expectancy != 0 || s.AverageRR != 0 {
		t.Fatalf("expected zero derived metrics, got %+v", s)
	}
}

func TestComputeSummary_EndToEnd(t *testing.T) {
	trades := []model.Trade{
		{Status: statusPtr(model.StatusWin), RewardAmount: floatPtr(100)},
		{Status: statusPtr(model.StatusLoss), RewardAmount: floatPtr(50)},
		{Status: statusPtr(model.StatusBreakeven), ProfitLoss: floatPtr(0)},
	}

	s := ComputeSummary(trades)

	assert.Equal(t, 3, s.CompletedTrades)
	assert.Equal(t, 1, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
	assert.Equal(t, 1, s.BreakevenTrades)
	assert.InDelta(t, 50, s.TotalProfitLoss, 1e-9)
	assert.InDelta(t, 33.33, s.WinRate, 0.01)
	assert.InDelta(t, 2.0, float64(s.ProfitFactor), 1e-9)
}

func TestComputeSummary_RewardAmountSupersedesProfitLoss(t *testing.T) {
	// profit_loss must be ignored entirely once reward_amount is logged.
	trades := []model.Trade{
		{Status: statusPtr(model.StatusLoss), RewardAmount: floatPtr(75), ProfitLoss: floatPtr(9999)},
	}

	s := ComputeSummary(trades)

	assert.InDelta(t, -75, s.TotalProfitLoss, 1e-9)
	assert.InDelta(t, 75, s.TotalLossAmount, 1e-9)
	assert.InDelta(t, -75, s.LargestLoss, 1e-9)
}

func TestComputeSummary_ProfitFactorInfinite(t *testing.T) {
	trades := []model.Trade{
		{Status: statusPtr(model.StatusWin), RewardAmount: floatPtr(100)},
	}

	s := ComputeSummary(trades)

	if !math.IsInf(float64(s.ProfitFactor), 1) {
		t.Fatalf("expected +Inf profit factor, got %v", float64(s.ProfitFactor))
	}
	if math.IsNaN(float64(s.ProfitFactor)) {
		t.Fatal("profit factor must not be NaN")
	}
}

func TestComputeSummary_ExpectancyAllWins(t *testing.T) {
	// 100% win rate and no losses: expectancy collapses to averageWin.
	trades := []model.Trade{
		{Status: statusPtr(model.StatusWin), RewardAmount: floatPtr(120)},
		{Status: statusPtr(model.StatusWin), RewardAmount: floatPtr(80)},
	}

	s := ComputeSummary(trades)

	assert.InDelta(t, 100, s.WinRate, 1e-9)
	assert.InDelta(t, s.AverageWin, s.Expectancy, 1e-9)
	assert.InDelta(t, 100, s.Expectancy, 1e-9)
}

func TestComputeSummary_WinRateBounds(t *testing.T) {
	tests := []struct {
		name   string
		trades []model.Trade
	}{
		{"empty", nil},
		{"only open", []model.Trade{{}, {Status: statusPtr(model.StatusOpen)}}},
		{"mixed", []model.Trade{
			{Status: statusPtr(model.StatusWin), ProfitLoss: floatPtr(10)},
			{Status: statusPtr(model.StatusLoss), ProfitLoss: floatPtr(-5)},
			{Status: statusPtr(model.StatusOpen)},
		}},
		{"all wins", []model.Trade{
			{Status: statusPtr(model.StatusWin), ProfitLoss: floatPtr(1)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ComputeSummary(tt.trades)
			if s.WinRate < 0 || s.WinRate > 100 {
				t.Fatalf("winRate out of bounds: %f", s.WinRate)
			}
		})
	}
}

func TestComputeSummary_OpenTradesExcluded(t *testing.T) {
	trades := []model.Trade{
		{Status: statusPtr(model.StatusOpen), ProfitLoss: floatPtr(500)},
		{ProfitLoss: floatPtr(500)}, // nil status is open too
		{Status: statusPtr(model.StatusWin), ProfitLoss: floatPtr(10)},
	}

	s := ComputeSummary(trades)

	assert.Equal(t, 3, s.TotalTrades)
	assert.Equal(t, 1, s.CompletedTrades)
	assert.InDelta(t, 10, s.TotalProfitLoss, 1e-9)
}

func TestComputeSummary_AverageRRPrefersLoggedRatios(t *testing.T) {
	trades := []model.Trade{
		{Status: statusPtr(model.StatusWin), ProfitLoss: floatPtr(100), RiskRewardRatio: floatPtr(3)},
		{Status: statusPtr(model.StatusLoss), ProfitLoss: floatPtr(-50), RiskRewardRatio: floatPtr(1)},
	}

	s := ComputeSummary(trades)

	// mean of the logged ratios, not averageWin/averageLoss (which would be 2)
	assert.InDelta(t, 2.0, s.AverageRR, 1e-9)

	// remove the logged ratios and the fallback kicks in
	trades[0].RiskRewardRatio = nil
	trades[1].RiskRewardRatio = nil
	s = ComputeSummary(trades)
	assert.InDelta(t, 100.0/50.0, s.AverageRR, 1e-9)
}

func TestComputeSummary_RiskAndPipDivisors(t *testing.T) {
	trades := []model.Trade{
		{Status: statusPtr(model.StatusWin), ProfitLoss: floatPtr(10), RiskAmount: floatPtr(20), Pips: floatPtr(30)},
		{Status: statusPtr(model.StatusLoss), ProfitLoss: floatPtr(-10), RiskAmount: floatPtr(40)},
		{Status: statusPtr(model.StatusBreakeven), ProfitLoss: floatPtr(0)},
	}

	s := ComputeSummary(trades)

	// divisor is the count of trades carrying the field, not all completed
	assert.InDelta(t, 60, s.TotalRiskAmount, 1e-9)
	assert.InDelta(t, 30, s.AverageRiskAmount, 1e-9)
	assert.InDelta(t, 30, s.TotalPips, 1e-9)
	assert.InDelta(t, 30, s.AveragePips, 1e-9)
}

func TestMetric_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   Metric
		want string
	}{
		{"finite", Metric(2.5), "2.5"},
		{"infinite", Metric(math.Inf(1)), `"Infinity"`},
		{"negative infinite", Metric(math.Inf(-1)), `"-Infinity"`},
		{"nan", Metric(math.NaN()), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.in.MarshalJSON()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(b) != tt.want {
				t.Fatalf("got %s want %s", string(b), tt.want)
			}
		})
	}
}

func TestMetric_UnmarshalJSON(t *testing.T) {
	var m Metric

	if err := m.UnmarshalJSON([]byte(`"Infinity"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(float64(m), 1) {
		t.Fatalf("expected +Inf, got %v", float64(m))
	}

	if err := m.UnmarshalJSON([]byte("2.5")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.InDelta(t, 2.5, float64(m), 1e-9)

	if err := m.UnmarshalJSON([]byte(`"bogus"`)); err == nil {
		t.Fatalf("expected error for unknown string value")
	}
}
