package handler

import (
	"context"
	"encoding/json"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/auth"
	"tradejournal/src/connectors"
	"tradejournal/src/externalmodel"
	"tradejournal/src/mapper"
	"tradejournal/src/model"
	"tradejournal/src/repository"
	"tradejournal/src/security"
)

type tradeUpserter interface {
	UpsertByClientTradeID(ctx context.Context, trade *model.Trade) error
}

type tradeNotifier interface {
	TradeLogged(ctx context.Context, trade *model.Trade)
}

// MT5WebhookHandler ingests alerts posted by the MetaTrader 5 Expert
// Advisor. The route sits behind the API-key middleware, so the user is
// already resolved; the payload token is an extra shared secret checked
// against MT5_WEBHOOK_TOKEN when one is configured. Re-delivered alerts for
// the same ticket update the existing trade instead of duplicating it.
func MT5WebhookHandler(repo tradeUpserter, notifier tradeNotifier, webhookToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var alert externalmodel.MT5Alert
		if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
			logger.WithError(err).Warn("invalid mt5 alert payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		if webhookToken != "" && alert.Token != webhookToken {
			logger.WithFields(logger.Fields{"user_id": user.ID, "ticket": alert.Ticket}).
				Warn("mt5 alert rejected: bad token")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		trade, err := mapper.MapMT5Alert(user.ID, &alert)
		if err != nil {
			logger.WithError(err).WithFields(logger.Fields{"ticket": alert.Ticket}).
				Warn("mt5 alert rejected")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := repo.UpsertByClientTradeID(r.Context(), trade); err != nil {
			logger.WithError(err).WithFields(logger.Fields{
				"user_id":         user.ID,
				"client_trade_id": trade.ClientTradeID,
			}).Error("failed to store mt5 trade")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		logger.WithFields(logger.Fields{
			"user_id":         user.ID,
			"client_trade_id": trade.ClientTradeID,
			"event":           alert.Event,
			"symbol":          trade.Symbol,
		}).Info("mt5 trade stored")

		if notifier != nil {
			go notifier.TradeLogged(context.WithoutCancel(r.Context()), trade)
		}

		writeJSON(w, trade)
	}
}

func DefaultMT5WebhookHandler() http.HandlerFunc {
	config := security.GetConfig()
	notifier := connectors.NewNotifier()
	if notifier == nil {
		// avoid a typed-nil interface value
		return MT5WebhookHandler(repository.NewTradeRepository(), nil, config.WebhookToken)
	}
	return MT5WebhookHandler(repository.NewTradeRepository(), notifier, config.WebhookToken)
}
