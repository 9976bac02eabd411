// Package analytics computes derived trade-performance statistics from the
// journal. Every function here is pure: it takes the full trade set, returns
// a freshly computed result, and never fails — missing or malformed inputs
// degrade to zero-valued output so the dashboard always has something to
// render.
package analytics

import (
	"math"

	"tradejournal/src/model"
)

// Summary is the headline performance block shown on the dashboard.
type Summary struct {
	TotalTrades     int `json:"totalTrades"`
	CompletedTrades int `json:"completedTrades"`
	WinningTrades   int `json:"winningTrades"`
	LosingTrades    int `json:"losingTrades"`
	BreakevenTrades int `json:"breakevenTrades"`

	TotalProfitLoss float64 `json:"totalProfitLoss"`
	TotalWinAmount  float64 `json:"totalWinAmount"`
	TotalLossAmount float64 `json:"totalLossAmount"`
	AverageWin      float64 `json:"averageWin"`
	AverageLoss     float64 `json:"averageLoss"`
	LargestWin      float64 `json:"largestWin"`
	LargestLoss     float64 `json:"largestLoss"`

	ProfitFactor Metric  `json:"profitFactor"`
	WinRate      float64 `json:"winRate"`
	AverageRR    float64 `json:"averageRR"`
	Expectancy   float64 `json:"expectancy"`

	TotalRiskAmount   float64 `json:"totalRiskAmount"`
	AverageRiskAmount float64 `json:"averageRiskAmount"`
	TotalPips         float64 `json:"totalPips"`
	AveragePips       float64 `json:"averagePips"`
}

// effectivePL resolves a trade's realized P&L, treating missing values as 0.
func effectivePL(t *model.Trade) float64 {
	if pl := t.EffectivePL(); pl != nil {
		return *pl
	}
	return 0
}

// ComputeSummary aggregates the headline metrics over all completed trades.
// Every denominator is guarded: an empty journal yields an all-zero summary.
func ComputeSummary(trades []model.Trade) Summary {
	s := Summary{TotalTrades: len(trades)}

	var (
		rrSum, rrCount     float64
		riskSum, riskCount float64
		pipsSum, pipsCount float64
	)

	for i := range trades {
		t := &trades[i]
		if !t.IsCompleted() {
			continue
		}
		s.CompletedTrades++

		pl := effectivePL(t)
		s.TotalProfitLoss += pl

		switch *t.Status {
		case model.StatusWin:
			s.WinningTrades++
			s.TotalWinAmount += math.Abs(pl)
			if math.Abs(pl) > s.LargestWin {
				s.LargestWin = math.Abs(pl)
			}
		case model.StatusLoss:
			s.LosingTrades++
			s.TotalLossAmount += math.Abs(pl)
			if pl < s.LargestLoss {
				s.LargestLoss = pl
			}
		case model.StatusBreakeven:
			s.BreakevenTrades++
		}

		if t.RiskRewardRatio != nil {
			rrSum += *t.RiskRewardRatio
			rrCount++
		}
		if t.RiskAmount != nil {
			riskSum += *t.RiskAmount
			riskCount++
		}
		if t.Pips != nil {
			pipsSum += *t.Pips
			pipsCount++
		}
	}

	if s.WinningTrades > 0 {
		s.AverageWin = s.TotalWinAmount / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AverageLoss = s.TotalLossAmount / float64(s.LosingTrades)
	}

	switch {
	case s.TotalLossAmount > 0:
		s.ProfitFactor = Metric(s.TotalWinAmount / s.TotalLossAmount)
	case s.TotalWinAmount > 0:
		s.ProfitFactor = Metric(math.Inf(1))
	default:
		s.ProfitFactor = 0
	}

	if s.CompletedTrades > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(s.CompletedTrades) * 100

		lossRate := float64(s.LosingTrades) / float64(s.CompletedTrades)
		s.Expectancy = (s.WinRate/100)*s.AverageWin - lossRate*s.AverageLoss
	}

	// Prefer the user-logged R multiples; fall back to the realized
	// averageWin/averageLoss ratio when nothing was logged.
	switch {
	case rrCount > 0:
		s.AverageRR = rrSum / rrCount
	case s.AverageLoss > 0:
		s.AverageRR = s.AverageWin / s.AverageLoss
	}

	s.TotalRiskAmount = riskSum
	if riskCount > 0 {
		s.AverageRiskAmount = riskSum / riskCount
	}
	s.TotalPips = pipsSum
	if pipsCount > 0 {
		s.AveragePips = pipsSum / pipsCount
	}

	return s
}
