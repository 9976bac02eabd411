package externalmodel

import (
	"fmt"
	"strconv"
	"time"
)

// Webhook event kinds sent by the Expert Advisor.
const (
	MT5EventOpen  = "open"
	MT5EventClose = "close"
)

// MT5Alert is the JSON payload posted by the MetaTrader 5 Expert Advisor on
// every position open and close.
type MT5Alert struct {
	Token       string   `json:"token"`
	Event       string   `json:"event"` // "open" or "close"
	Ticket      int64    `json:"ticket"`
	Symbol      string   `json:"symbol"`
	Type        string   `json:"type"` // "buy"/"sell" or the raw ORDER_TYPE_* constant
	Lots        float64  `json:"lots"`
	OpenPrice   float64  `json:"open_price"`
	ClosePrice  *float64 `json:"close_price,omitempty"`
	OpenTime    MT5Time  `json:"open_time"`
	CloseTime   *MT5Time `json:"close_time,omitempty"`
	StopLoss    *float64 `json:"stop_loss,omitempty"`
	TakeProfit  *float64 `json:"take_profit,omitempty"`
	Profit      *float64 `json:"profit,omitempty"`
	Pips        *float64 `json:"pips,omitempty"`
	Comment     string   `json:"comment,omitempty"`
	MagicNumber int64    `json:"magic_number,omitempty"`
}

// MT5Time handles the timestamp shapes the terminal emits:
// - "2024.01.05 14:30:00" (MT5 native)
// - "2024-01-05T14:30:00Z" (RFC3339 from newer EA builds)
// - "2024-01-05 14:30:00"
type MT5Time struct {
	time.Time
}

func (t *MT5Time) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}

	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("MT5Time: invalid json string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	layouts := []string{
		"2006.01.02 15:04:05",
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	var lastErr error
	for _, layout := range layouts {
		tt, e := time.Parse(layout, s)
		if e == nil {
			t.Time = tt
			return nil
		}
		lastErr = e
	}
	return fmt.Errorf("MT5Time: parse %q: %w", s, lastErr)
}
