package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"tradejournal/src/risk"
)

// PositionSizeHandler sizes a planned trade from query parameters
// (accountBalance, riskPercent, stopLossPips, pipValue). It is a pure
// calculation and touches no storage.
func PositionSizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			in  risk.PositionSizeInput
			err error
		)

		params := []struct {
			name string
			dst  *decimal.Decimal
		}{
			{"accountBalance", &in.AccountBalance},
			{"riskPercent", &in.RiskPercent},
			{"stopLossPips", &in.StopLossPips},
			{"pipValue", &in.PipValue},
		}
		for _, p := range params {
			raw := r.URL.Query().Get(p.name)
			if raw == "" {
				http.Error(w, p.name+" is required", http.StatusBadRequest)
				return
			}
			*p.dst, err = decimal.NewFromString(raw)
			if err != nil {
				http.Error(w, "invalid "+p.name, http.StatusBadRequest)
				return
			}
		}

		writeJSON(w, risk.CalculatePositionSize(in))
	}
}
