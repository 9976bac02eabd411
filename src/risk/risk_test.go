package risk

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculatePositionSize(t *testing.T) {
	tests := []struct {
		name           string
		in             PositionSizeInput
		wantRiskAmount string
		wantLots       string
	}{
		{
			name: "one percent of 10k with 20 pip stop",
			in: PositionSizeInput{
				AccountBalance: decimal.RequireFromString("10000"),
				RiskPercent:    decimal.RequireFromString("1"),
				StopLossPips:   decimal.RequireFromString("20"),
				PipValue:       decimal.RequireFromString("10"),
			},
			wantRiskAmount: "100",
			wantLots:       "0.5",
		},
		{
			name: "lots round down to 0.01 steps",
			in: PositionSizeInput{
				AccountBalance: decimal.RequireFromString("3000"),
				RiskPercent:    decimal.RequireFromString("1"),
				StopLossPips:   decimal.RequireFromString("35"),
				PipValue:       decimal.RequireFromString("10"),
			},
			wantRiskAmount: "30",
			wantLots:       "0.08", // 0.0857... floored
		},
		{
			name: "zero balance yields zero",
			in: PositionSizeInput{
				AccountBalance: decimal.Zero,
				RiskPercent:    decimal.RequireFromString("1"),
				StopLossPips:   decimal.RequireFromString("20"),
				PipValue:       decimal.RequireFromString("10"),
			},
			wantRiskAmount: "0",
			wantLots:       "0",
		},
		{
			name: "zero stop distance yields zero lots but keeps budget",
			in: PositionSizeInput{
				AccountBalance: decimal.RequireFromString("10000"),
				RiskPercent:    decimal.RequireFromString("2"),
				StopLossPips:   decimal.Zero,
				PipValue:       decimal.RequireFromString("10"),
			},
			wantRiskAmount: "200",
			wantLots:       "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePositionSize(tt.in)

			if !got.RiskAmount.Equal(decimal.RequireFromString(tt.wantRiskAmount)) {
				t.Fatalf("risk amount mismatch. got=%s want=%s", got.RiskAmount, tt.wantRiskAmount)
			}
			if !got.Lots.Equal(decimal.RequireFromString(tt.wantLots)) {
				t.Fatalf("lots mismatch. got=%s want=%s", got.Lots, tt.wantLots)
			}
		})
	}
}

func TestRMultiple(t *testing.T) {
	got := RMultiple(decimal.RequireFromString("50"), decimal.RequireFromString("150"))
	if !got.Equal(decimal.RequireFromString("3")) {
		t.Fatalf("expected 3R, got %s", got)
	}

	if !RMultiple(decimal.Zero, decimal.RequireFromString("100")).IsZero() {
		t.Fatal("zero risk must yield zero, not a division error")
	}

	neg := RMultiple(decimal.RequireFromString("-50"), decimal.RequireFromString("100"))
	if !neg.Equal(decimal.RequireFromString("2")) {
		t.Fatalf("risk magnitude should be used, got %s", neg)
	}
}
