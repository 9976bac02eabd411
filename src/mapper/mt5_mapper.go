package mapper

import (
	"fmt"
	"math"
	"strings"

	"tradejournal/src/externalmodel"
	"tradejournal/src/model"
)

// MapMT5Alert converts a webhook payload into the canonical trade record for
// the given user. Close events classify the outcome from the reported profit;
// open events produce an explicit open trade.
func MapMT5Alert(userID uint, alert *externalmodel.MT5Alert) (*model.Trade, error) {
	if alert.Ticket <= 0 {
		return nil, fmt.Errorf("mt5 alert: missing ticket")
	}
	if alert.Symbol == "" {
		return nil, fmt.Errorf("mt5 alert: missing symbol")
	}
	if alert.OpenTime.IsZero() {
		return nil, fmt.Errorf("mt5 alert: missing open time")
	}

	symbol := model.NormalizeSymbol(alert.Symbol)
	trade := &model.Trade{
		UserID:        userID,
		ClientTradeID: fmt.Sprintf("mt5-%d", alert.Ticket),
		Symbol:        symbol,
		AssetClass:    ClassifySymbol(symbol),
		Direction:     mt5Direction(alert.Type),
		EntryDate:     alert.OpenTime.Time,
		EntryPrice:    alert.OpenPrice,
		LotSize:       alert.Lots,
		Pips:          alert.Pips,
		Notes:         alert.Comment,
	}

	if alert.Event != externalmodel.MT5EventClose {
		status := model.StatusOpen
		trade.Status = &status
		return trade, nil
	}

	if alert.CloseTime != nil && !alert.CloseTime.IsZero() {
		t := alert.CloseTime.Time
		trade.ExitDate = &t
	}
	trade.ExitPrice = alert.ClosePrice
	trade.ProfitLoss = alert.Profit

	status := model.StatusBreakeven
	if alert.Profit != nil {
		switch {
		case *alert.Profit > 0:
			status = model.StatusWin
		case *alert.Profit < 0:
			status = model.StatusLoss
		}
	}
	trade.Status = &status

	// The EA reports stop loss as a price level; the risked amount is only
	// derivable when both the level and the lot size are present.
	if alert.StopLoss != nil && *alert.StopLoss > 0 && alert.Lots > 0 {
		risk := math.Abs(alert.OpenPrice-*alert.StopLoss) * alert.Lots
		trade.RiskAmount = &risk
	}

	return trade, nil
}

func mt5Direction(orderType string) string {
	if strings.Contains(strings.ToLower(orderType), "sell") {
		return model.DirectionSell
	}
	return model.DirectionBuy
}

// ClassifySymbol guesses an asset class from the ticker. The EA has no
// concept of asset classes, so imported trades get a best-effort bucket the
// user can correct afterwards.
func ClassifySymbol(symbol string) string {
	symbol = model.NormalizeSymbol(symbol)

	cryptoPrefixes := []string{"BTC", "ETH", "XRP", "SOL", "ADA", "DOGE", "LTC"}
	for _, p := range cryptoPrefixes {
		if strings.HasPrefix(symbol, p) {
			return model.AssetClassCrypto
		}
	}

	commodityPrefixes := []string{"XAU", "XAG", "XPT", "WTI", "BRENT", "NGAS", "UKOIL", "USOIL"}
	for _, p := range commodityPrefixes {
		if strings.HasPrefix(symbol, p) {
			return model.AssetClassCommodities
		}
	}

	if len(symbol) == 6 && isCurrencyCode(symbol[:3]) && isCurrencyCode(symbol[3:]) {
		return model.AssetClassForex
	}

	return model.AssetClassStocks
}

var currencyCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true, "CHF": true,
	"AUD": true, "NZD": true, "CAD": true, "SGD": true, "HKD": true,
	"SEK": true, "NOK": true, "DKK": true, "ZAR": true, "MXN": true,
}

func isCurrencyCode(code string) bool {
	return currencyCodes[code]
}
