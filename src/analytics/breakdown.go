package analytics

import (
	"math"
	"sort"
	"strings"

	"tradejournal/src/model"
)

// groupTally is the shared accumulator behind the categorical breakdowns.
type groupTally struct {
	trades     int
	wins       int
	losses     int
	breakeven  int
	totalPL    float64
	winAmount  float64
	lossAmount float64
	rrSum      float64
	rrCount    int
}

func (g *groupTally) add(t *model.Trade) {
	g.trades++
	pl := effectivePL(t)
	switch {
	case t.StatusIs(model.StatusWin):
		g.wins++
		g.winAmount += math.Abs(pl)
	case t.StatusIs(model.StatusLoss):
		g.losses++
		g.lossAmount += math.Abs(pl)
	case t.StatusIs(model.StatusBreakeven):
		g.breakeven++
	}
	g.totalPL += pl
	if t.RiskRewardRatio != nil {
		g.rrSum += *t.RiskRewardRatio
		g.rrCount++
	}
}

func (g *groupTally) winRate() float64 {
	if g.trades == 0 {
		return 0
	}
	return float64(g.wins) / float64(g.trades) * 100
}

func (g *groupTally) averagePL() float64 {
	if g.trades == 0 {
		return 0
	}
	return g.totalPL / float64(g.trades)
}

// expectancy is the expected P&L per trade for the group:
// (winRate x avgWin) - ((1 - winRate) x avgLoss), winRate as a fraction of
// the group's trade count.
func (g *groupTally) expectancy() float64 {
	if g.trades == 0 {
		return 0
	}
	var avgWin, avgLoss float64
	if g.wins > 0 {
		avgWin = g.winAmount / float64(g.wins)
	}
	if g.losses > 0 {
		avgLoss = g.lossAmount / float64(g.losses)
	}
	winRate := float64(g.wins) / float64(g.trades)
	return winRate*avgWin - (1-winRate)*avgLoss
}

// AssetClassStats is the per-asset-class performance breakdown entry.
type AssetClassStats struct {
	AssetClass string  `json:"assetClass"`
	Trades     int     `json:"trades"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"winRate"`
	TotalPL    float64 `json:"totalPL"`
	AveragePL  float64 `json:"averagePL"`
}

// ByAssetClass groups all trades by asset class. Labels are capitalized for
// display ("forex" -> "Forex").
func ByAssetClass(trades []model.Trade) []AssetClassStats {
	tallies := make(map[string]*groupTally)
	order := make([]string, 0, 4)
	for i := range trades {
		t := &trades[i]
		key := t.AssetClass
		g, ok := tallies[key]
		if !ok {
			g = &groupTally{}
			tallies[key] = g
			order = append(order, key)
		}
		g.add(t)
	}

	sort.Strings(order)
	out := make([]AssetClassStats, 0, len(order))
	for _, key := range order {
		g := tallies[key]
		out = append(out, AssetClassStats{
			AssetClass: capitalize(key),
			Trades:     g.trades,
			Wins:       g.wins,
			Losses:     g.losses,
			WinRate:    g.winRate(),
			TotalPL:    g.totalPL,
			AveragePL:  g.averagePL(),
		})
	}
	return out
}

// PairStats is the per-symbol performance breakdown entry.
type PairStats struct {
	Symbol    string  `json:"symbol"`
	Trades    int     `json:"trades"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Breakeven int     `json:"breakeven"`
	WinRate   float64 `json:"winRate"`
	TotalPL   float64 `json:"totalPL"`
	AveragePL float64 `json:"averagePL"`
}

// ByPair groups all trades by symbol, sorted by trade count descending.
func ByPair(trades []model.Trade) []PairStats {
	tallies := make(map[string]*groupTally)
	for i := range trades {
		t := &trades[i]
		key := model.NormalizeSymbol(t.Symbol)
		g, ok := tallies[key]
		if !ok {
			g = &groupTally{}
			tallies[key] = g
		}
		g.add(t)
	}

	out := make([]PairStats, 0, len(tallies))
	for key, g := range tallies {
		out = append(out, PairStats{
			Symbol:    key,
			Trades:    g.trades,
			Wins:      g.wins,
			Losses:    g.losses,
			Breakeven: g.breakeven,
			WinRate:   g.winRate(),
			TotalPL:   g.totalPL,
			AveragePL: g.averagePL(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Trades != out[j].Trades {
			return out[i].Trades > out[j].Trades
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// NoStrategyLabel buckets trades logged without a strategy.
const NoStrategyLabel = "No Strategy"

// StrategyStats is the per-strategy performance breakdown entry.
type StrategyStats struct {
	Strategy  string  `json:"strategy"`
	Trades    int     `json:"trades"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	WinRate   float64 `json:"winRate"`
	TotalPL   float64 `json:"totalPL"`
	AveragePL float64 `json:"averagePL"`
	AverageRR float64 `json:"averageRR"`
}

// ByStrategy groups all trades by strategy label, sorted by total P&L
// descending. Trades without a strategy land under "No Strategy".
func ByStrategy(trades []model.Trade) []StrategyStats {
	tallies := make(map[string]*groupTally)
	for i := range trades {
		t := &trades[i]
		key := NoStrategyLabel
		if t.Strategy != nil && strings.TrimSpace(*t.Strategy) != "" {
			key = strings.TrimSpace(*t.Strategy)
		}
		g, ok := tallies[key]
		if !ok {
			g = &groupTally{}
			tallies[key] = g
		}
		g.add(t)
	}

	out := make([]StrategyStats, 0, len(tallies))
	for key, g := range tallies {
		s := StrategyStats{
			Strategy:  key,
			Trades:    g.trades,
			Wins:      g.wins,
			Losses:    g.losses,
			WinRate:   g.winRate(),
			TotalPL:   g.totalPL,
			AveragePL: g.averagePL(),
		}
		if g.rrCount > 0 {
			s.AverageRR = g.rrSum / float64(g.rrCount)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPL != out[j].TotalPL {
			return out[i].TotalPL > out[j].TotalPL
		}
		return out[i].Strategy < out[j].Strategy
	})
	return out
}

// exitReasonLabels maps the stored reason codes to display labels. Unknown
// codes pass through verbatim.
var exitReasonLabels = map[string]string{
	"tp_hit":       "Take Profit Hit",
	"sl_hit":       "Stop Loss Hit",
	"manual_close": "Manual Close",
	"breakeven":    "Breakeven Exit",
}

// ExitReasonLabel resolves the display label for an exit reason code.
func ExitReasonLabel(code string) string {
	if label, ok := exitReasonLabels[code]; ok {
		return label
	}
	return code
}

// ExitReasonStats is the per-exit-reason breakdown entry.
type ExitReasonStats struct {
	Reason     string  `json:"reason"`
	Label      string  `json:"label"`
	Trades     int     `json:"trades"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"winRate"`
	TotalPL    float64 `json:"totalPL"`
	Percentage float64 `json:"percentage"`
}

// ByExitReason groups trades that logged an exit reason, sorted by count
// descending. Percentage is each reason's share of the filtered total.
func ByExitReason(trades []model.Trade) []ExitReasonStats {
	tallies := make(map[string]*groupTally)
	var total int
	for i := range trades {
		t := &trades[i]
		if t.ExitReason == nil || strings.TrimSpace(*t.ExitReason) == "" {
			continue
		}
		key := strings.TrimSpace(*t.ExitReason)
		g, ok := tallies[key]
		if !ok {
			g = &groupTally{}
			tallies[key] = g
		}
		g.add(t)
		total++
	}

	out := make([]ExitReasonStats, 0, len(tallies))
	for key, g := range tallies {
		s := ExitReasonStats{
			Reason:  key,
			Label:   ExitReasonLabel(key),
			Trades:  g.trades,
			Wins:    g.wins,
			WinRate: g.winRate(),
			TotalPL: g.totalPL,
		}
		if total > 0 {
			s.Percentage = float64(g.trades) / float64(total) * 100
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Trades != out[j].Trades {
			return out[i].Trades > out[j].Trades
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}

// RuleStats reports how trades performed when a specific confluence-checklist
// rule was answered "yes".
type RuleStats struct {
	Rule    string  `json:"rule"`
	Label   string  `json:"label"`
	Trades  int     `json:"trades"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"winRate"`
	TotalPL float64 `json:"totalPL"`
}

// ruleField pairs a checklist rule with its accessor.
type ruleField struct {
	key   string
	label string
	get   func(*model.Trade) *string
}

var ruleFields = []ruleField{
	{"rule_in_plan", "Trade In Plan", func(t *model.Trade) *string { return t.RuleInPlan }},
	{"rule_bos", "Break Of Structure", func(t *model.Trade) *string { return t.RuleBOS }},
	{"rule_liquidity", "Liquidity", func(t *model.Trade) *string { return t.RuleLiquidity }},
	{"rule_trend", "Trend Aligned", func(t *model.Trade) *string { return t.RuleTrend }},
	{"rule_news", "News Checked", func(t *model.Trade) *string { return t.RuleNews }},
	{"rule_rr", "Risk:Reward", func(t *model.Trade) *string { return t.RuleRR }},
	{"rule_emotions", "Emotions In Check", func(t *model.Trade) *string { return t.RuleEmotions }},
	{"rule_lot_size", "Lot Size In Plan", func(t *model.Trade) *string { return t.RuleLotSize }},
}

// ByRule reports, per checklist rule, the subset of trades where the rule was
// answered "yes". Rules with no matching trades are omitted entirely.
func ByRule(trades []model.Trade) []RuleStats {
	out := make([]RuleStats, 0, len(ruleFields))
	for _, rule := range ruleFields {
		var g groupTally
		for i := range trades {
			t := &trades[i]
			answer := rule.get(t)
			if answer == nil || *answer != model.RuleYes {
				continue
			}
			g.add(t)
		}
		if g.trades == 0 {
			continue
		}
		out = append(out, RuleStats{
			Rule:    rule.key,
			Label:   rule.label,
			Trades:  g.trades,
			Wins:    g.wins,
			WinRate: g.winRate(),
			TotalPL: g.totalPL,
		})
	}
	return out
}

// capitalize uppercases the first byte of an ASCII label for display.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
