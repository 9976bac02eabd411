package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/auth"
	"tradejournal/src/model"
	"tradejournal/src/repository"
)

type tradeSearcher interface {
	Search(ctx context.Context, options repository.TradeSearchOptions) ([]model.Trade, error)
}

type tradeStore interface {
	Create(ctx context.Context, trade *model.Trade) error
	FindByID(ctx context.Context, userID, id uint) (*model.Trade, error)
	Update(ctx context.Context, trade *model.Trade) error
	Delete(ctx context.Context, userID, id uint) error
}

// SearchTradesHandler returns a handler that lists trades for the
// authenticated user. Supports pagination and filters (symbol, assetClass,
// strategy, status, entryFrom, entryTo).
func SearchTradesHandler(repo tradeSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		options := repository.TradeSearchOptions{UserID: user.ID}

		if v := r.URL.Query().Get("symbol"); v != "" {
			options.Symbol = &v
		}
		if v := r.URL.Query().Get("assetClass"); v != "" {
			options.AssetClass = &v
		}
		if v := r.URL.Query().Get("strategy"); v != "" {
			options.Strategy = &v
		}
		if v := r.URL.Query().Get("status"); v != "" {
			options.Status = &v
		}

		if v := r.URL.Query().Get("entryFrom"); v != "" {
			parsed, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "invalid entryFrom", http.StatusBadRequest)
				return
			}
			options.EntryAfter = &parsed
		}
		if v := r.URL.Query().Get("entryTo"); v != "" {
			parsed, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "invalid entryTo", http.StatusBadRequest)
				return
			}
			options.EntryBefore = &parsed
		}

		page := 1
		if v := r.URL.Query().Get("page"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				http.Error(w, "invalid page", http.StatusBadRequest)
				return
			}
			page = parsed
		}

		pageSize := 50
		if v := r.URL.Query().Get("pageSize"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				http.Error(w, "invalid pageSize", http.StatusBadRequest)
				return
			}
			pageSize = parsed
		}

		options.Limit = pageSize
		options.Offset = (page - 1) * pageSize

		trades, err := repo.Search(r.Context(), options)
		if err != nil {
			logger.WithError(err).Error("failed to search trades")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, trades)
	}
}

// CreateTradeHandler inserts a manually entered trade for the authenticated
// user.
func CreateTradeHandler(repo tradeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var trade model.Trade
		if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
			logger.WithError(err).Warn("invalid trade payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		trade.ID = 0
		trade.UserID = user.ID
		trade.Symbol = model.NormalizeSymbol(trade.Symbol)

		if trade.Symbol == "" {
			http.Error(w, "symbol is required", http.StatusBadRequest)
			return
		}
		if trade.EntryDate.IsZero() {
			http.Error(w, "entry_date is required", http.StatusBadRequest)
			return
		}
		if trade.ClientTradeID == "" {
			trade.ClientTradeID = uuid.NewString()
		}

		if err := repo.Create(r.Context(), &trade); err != nil {
			logger.WithError(err).Error("failed to create trade")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		writeJSON(w, trade)
	}
}

// GetTradeHandler fetches one trade owned by the authenticated user.
func GetTradeHandler(repo tradeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := tradeID(r)
		if err != nil {
			http.Error(w, "invalid trade id", http.StatusBadRequest)
			return
		}

		trade, err := repo.FindByID(r.Context(), user.ID, id)
		if err != nil {
			logger.WithError(err).Error("failed to fetch trade")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if trade == nil {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}

		writeJSON(w, trade)
	}
}

// UpdateTradeHandler applies a full-document update to an owned trade.
func UpdateTradeHandler(repo tradeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := tradeID(r)
		if err != nil {
			http.Error(w, "invalid trade id", http.StatusBadRequest)
			return
		}

		existing, err := repo.FindByID(r.Context(), user.ID, id)
		if err != nil {
			logger.WithError(err).Error("failed to fetch trade for update")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if existing == nil {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}

		var updated model.Trade
		if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
			logger.WithError(err).Warn("invalid trade update payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		// identity fields are never client-writable
		updated.ID = existing.ID
		updated.UserID = existing.UserID
		updated.CreatedAt = existing.CreatedAt
		if updated.ClientTradeID == "" {
			updated.ClientTradeID = existing.ClientTradeID
		}
		updated.Symbol = model.NormalizeSymbol(updated.Symbol)

		if err := repo.Update(r.Context(), &updated); err != nil {
			logger.WithError(err).Error("failed to update trade")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, updated)
	}
}

// DeleteTradeHandler removes an owned trade.
func DeleteTradeHandler(repo tradeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := tradeID(r)
		if err != nil {
			http.Error(w, "invalid trade id", http.StatusBadRequest)
			return
		}

		if err := repo.Delete(r.Context(), user.ID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "Not Found", http.StatusNotFound)
				return
			}
			logger.WithError(err).Error("failed to delete trade")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func tradeID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}

// Default constructors wire the handlers to the production repository.
func DefaultSearchTradesHandler() http.HandlerFunc {
	return SearchTradesHandler(repository.NewTradeRepository())
}

func DefaultCreateTradeHandler() http.HandlerFunc {
	return CreateTradeHandler(repository.NewTradeRepository())
}

func DefaultGetTradeHandler() http.HandlerFunc {
	return GetTradeHandler(repository.NewTradeRepository())
}

func DefaultUpdateTradeHandler() http.HandlerFunc {
	return UpdateTradeHandler(repository.NewTradeRepository())
}

func DefaultDeleteTradeHandler() http.HandlerFunc {
	return DeleteTradeHandler(repository.NewTradeRepository())
}
