package risk

import (
	"github.com/shopspring/decimal"
)

// PositionSizeInput carries everything needed to size a position from the
// account risk budget.
type PositionSizeInput struct {
	AccountBalance decimal.Decimal
	RiskPercent    decimal.Decimal // e.g. 1 means 1% of balance
	StopLossPips   decimal.Decimal
	PipValue       decimal.Decimal // account-currency value of one pip per lot
}

// PositionSize is the sizing recommendation for a planned trade.
type PositionSize struct {
	RiskAmount decimal.Decimal `json:"risk_amount"`
	Lots       decimal.Decimal `json:"lots"`
}

// lots are conventionally quoted to two decimal places (0.01 lot steps).
const lotPrecision = 2

// CalculatePositionSize converts a risk budget into a lot size:
// riskAmount = balance * riskPercent / 100, lots = riskAmount / (stopPips *
// pipValue). Non-positive inputs yield a zero recommendation rather than an
// error, matching the degrade-to-zero policy of the analytics core.
func CalculatePositionSize(in PositionSizeInput) PositionSize {
	if in.AccountBalance.LessThanOrEqual(decimal.Zero) ||
		in.RiskPercent.LessThanOrEqual(decimal.Zero) {
		return PositionSize{RiskAmount: decimal.Zero, Lots: decimal.Zero}
	}

	riskAmount := in.AccountBalance.
		Mul(in.RiskPercent).
		Div(decimal.NewFromInt(100))

	perLotRisk := in.StopLossPips.Mul(in.PipValue)
	if perLotRisk.LessThanOrEqual(decimal.Zero) {
		return PositionSize{RiskAmount: riskAmount, Lots: decimal.Zero}
	}

	lots := riskAmount.Div(perLotRisk).RoundDown(lotPrecision)

	return PositionSize{RiskAmount: riskAmount, Lots: lots}
}

// RMultiple is the realized reward expressed in units of the amount risked.
// Zero risk yields zero, never a division error.
func RMultiple(riskAmount, rewardAmount decimal.Decimal) decimal.Decimal {
	if riskAmount.IsZero() {
		return decimal.Zero
	}
	return rewardAmount.Div(riskAmount.Abs())
}
