package model

import (
	"math"
	"strings"
	"time"
)

// Trade status values. A trade is "completed" only once it carries one of the
// three outcome statuses; a NULL status and the explicit "open" status both
// mean the trade is still running.
const (
	StatusOpen      = "open"
	StatusWin       = "win"
	StatusLoss      = "loss"
	StatusBreakeven = "breakeven"
)

const (
	DirectionBuy  = "buy"
	DirectionSell = "sell"
)

const (
	AssetClassForex       = "forex"
	AssetClassCrypto      = "crypto"
	AssetClassCommodities = "commodities"
	AssetClassStocks      = "stocks"
)

// Tri-state answers for the confluence checklist fields.
const (
	RuleYes = "yes"
	RuleNo  = "no"
	RuleNA  = "n/a"
)

// Trade is a single journaled trade. Two logging generations coexist in the
// wild: legacy rows carry a signed profit_loss only, newer rows log
// risk_amount/reward_amount plus the rule_* checklist. EffectivePL reconciles
// the two.
type Trade struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;uniqueIndex:idx_trades_user_client" json:"user_id"`

	// ClientTradeID is the caller-side identity of the trade (MT5 ticket for
	// webhook ingestion, generated UUID otherwise). Unique per user so webhook
	// retries upsert instead of duplicating.
	ClientTradeID string `gorm:"size:60;uniqueIndex:idx_trades_user_client" json:"client_trade_id"`

	Symbol     string `gorm:"size:30;index" json:"symbol"`
	AssetClass string `gorm:"size:20;index" json:"asset_class"`
	Direction  string `gorm:"size:10" json:"direction"`

	EntryDate  time.Time  `gorm:"index" json:"entry_date"`
	ExitDate   *time.Time `gorm:"index" json:"exit_date,omitempty"`
	EntryPrice float64    `json:"entry_price"`
	ExitPrice  *float64   `json:"exit_price,omitempty"`
	LotSize    float64    `json:"lot_size"`

	Status *string `gorm:"size:20;index" json:"status,omitempty"`

	ProfitLoss      *float64 `json:"profit_loss,omitempty"`
	RewardAmount    *float64 `json:"reward_amount,omitempty"`
	RiskAmount      *float64 `json:"risk_amount,omitempty"`
	RiskRewardRatio *float64 `json:"risk_reward_ratio,omitempty"`
	Pips            *float64 `json:"pips,omitempty"`

	Strategy   *string `gorm:"size:100" json:"strategy,omitempty"`
	ExitReason *string `gorm:"size:50" json:"exit_reason,omitempty"`
	SetupType  *string `gorm:"size:20" json:"setup_type,omitempty"`

	Emotions TagList `gorm:"type:text" json:"emotions,omitempty"`

	RuleInPlan    *string `gorm:"size:5" json:"rule_in_plan,omitempty"`
	RuleBOS       *string `gorm:"size:5" json:"rule_bos,omitempty"`
	RuleLiquidity *string `gorm:"size:5" json:"rule_liquidity,omitempty"`
	RuleTrend     *string `gorm:"size:5" json:"rule_trend,omitempty"`
	RuleNews      *string `gorm:"size:5" json:"rule_news,omitempty"`
	RuleRR        *string `gorm:"size:5" json:"rule_rr,omitempty"`
	RuleEmotions  *string `gorm:"size:5" json:"rule_emotions,omitempty"`
	RuleLotSize   *string `gorm:"size:5" json:"rule_lot_size,omitempty"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName allows you to control the exact table name for trades.
func (Trade) TableName() string {
	return "trades"
}

// IsCompleted reports whether the trade has a recorded outcome.
// NULL status and the explicit "open" status both count as not completed.
func (t *Trade) IsCompleted() bool {
	if t.Status == nil {
		return false
	}
	switch *t.Status {
	case StatusWin, StatusLoss, StatusBreakeven:
		return true
	default:
		return false
	}
}

// StatusIs reports whether the trade carries the given outcome status.
func (t *Trade) StatusIs(status string) bool {
	return t.Status != nil && *t.Status == status
}

// EffectivePL resolves the realized P&L across both logging generations.
// When reward_amount is present it supersedes profit_loss: losses take the
// negated magnitude, everything else takes the magnitude as logged.
// Returns nil when the trade has no resolvable outcome amount.
func (t *Trade) EffectivePL() *float64 {
	if t.RewardAmount != nil {
		v := *t.RewardAmount
		if t.StatusIs(StatusLoss) {
			v = -math.Abs(v)
		}
		return &v
	}
	return t.ProfitLoss
}

// NormalizeSymbol uppercases and trims the free-text ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
