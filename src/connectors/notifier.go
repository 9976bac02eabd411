package connectors

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
)

// Notifier pushes trade-logged events to a user-configured webhook
// (Discord-style JSON endpoint). Delivery is best effort: failures are
// logged, never surfaced to the ingestion path.
type Notifier struct {
	http *resty.Client
	url  string
}

// NewNotifier builds a notifier from the environment. A nil notifier is
// returned when no webhook URL is configured; all methods are nil-safe.
func NewNotifier() *Notifier {
	config := GetConfig()
	if config.NotifyWebhookURL == "" {
		return nil
	}
	return NewNotifierWithURL(config.NotifyWebhookURL, config)
}

// NewNotifierWithURL builds a notifier for an explicit endpoint. Used by
// tests to point at an httptest server.
func NewNotifierWithURL(url string, config Config) *Notifier {
	client := resty.New().
		SetTimeout(config.NotifyTimeout).
		SetRetryCount(2).
		SetHeader("Content-Type", "application/json")

	return &Notifier{http: client, url: url}
}

// tradeLoggedEvent is the outbound payload shape.
type tradeLoggedEvent struct {
	Event      string   `json:"event"`
	Symbol     string   `json:"symbol"`
	Direction  string   `json:"direction"`
	Status     *string  `json:"status,omitempty"`
	ProfitLoss *float64 `json:"profit_loss,omitempty"`
	Content    string   `json:"content"`
}

// TradeLogged posts a short summary of a freshly ingested trade.
func (n *Notifier) TradeLogged(ctx context.Context, trade *model.Trade) {
	if n == nil {
		return
	}

	event := tradeLoggedEvent{
		Event:      "trade_logged",
		Symbol:     trade.Symbol,
		Direction:  trade.Direction,
		Status:     trade.Status,
		ProfitLoss: trade.EffectivePL(),
		Content:    formatTradeSummary(trade),
	}

	resp, err := n.http.R().
		SetContext(ctx).
		SetBody(event).
		Post(n.url)
	if err != nil {
		logger.WithError(err).WithField("symbol", trade.Symbol).
			Warn("trade notification failed")
		return
	}
	if resp.IsError() {
		logger.WithFields(map[string]interface{}{
			"status": resp.StatusCode(),
			"symbol": trade.Symbol,
		}).Warn("trade notification rejected")
	}
}

func formatTradeSummary(trade *model.Trade) string {
	status := model.StatusOpen
	if trade.Status != nil {
		status = *trade.Status
	}
	if pl := trade.EffectivePL(); pl != nil && trade.IsCompleted() {
		return fmt.Sprintf("%s %s %s: %.2f", trade.Symbol, trade.Direction, status, *pl)
	}
	return fmt.Sprintf("%s %s %s", trade.Symbol, trade.Direction, status)
}
