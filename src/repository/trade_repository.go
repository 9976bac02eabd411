package repository

import (
	"context"
	"errors"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// TradeRepository handles read/write operations for journaled trades.
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new repository instance using the main
// read/write database.
func NewTradeRepository() *TradeRepository {
	return &TradeRepository{db: database.MainDB}
}

// NewTradeReadRepository creates a repository bound to the read replica,
// used by the analytics endpoints.
func NewTradeReadRepository() *TradeRepository {
	return &TradeRepository{db: database.ReadOnlyDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *TradeRepository) WithDB(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// TradeSearchOptions filters and paginates the per-user trade listing.
type TradeSearchOptions struct {
	UserID     uint
	Symbol     *string
	AssetClass *string
	Strategy   *string
	Status     *string
	EntryAfter *time.Time
	EntryBefore *time.Time
	Limit      int
	Offset     int
}

// Create inserts a new trade. The given trade is updated with the generated
// ID and timestamps.
func (r *TradeRepository) Create(ctx context.Context, trade *model.Trade) error {
	logger.WithFields(map[string]interface{}{
		"repo":   "TradeRepository",
		"op":     "Create",
		"symbol": trade.Symbol,
		"user":   trade.UserID,
	}).Debug("Creating new trade")

	if err := r.db.WithContext(ctx).Create(trade).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to create trade")
		return err
	}
	return nil
}

// BulkCreate inserts a batch of trades (CSV import path) in one transaction.
func (r *TradeRepository) BulkCreate(ctx context.Context, trades []model.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	logger.WithFields(map[string]interface{}{
		"repo":  "TradeRepository",
		"op":    "BulkCreate",
		"count": len(trades),
	}).Debug("Bulk inserting trades")

	return r.db.WithContext(ctx).CreateInBatches(trades, 100).Error
}

// UpsertByClientTradeID inserts the trade or, when the (user, client trade id)
// pair already exists, updates the mutable outcome fields. This is what keeps
// webhook retries idempotent.
func (r *TradeRepository) UpsertByClientTradeID(ctx context.Context, trade *model.Trade) error {
	logger.WithFields(map[string]interface{}{
		"repo":      "TradeRepository",
		"op":        "UpsertByClientTradeID",
		"client_id": trade.ClientTradeID,
		"user":      trade.UserID,
	}).Debug("Upserting trade")

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "client_trade_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"exit_date", "exit_price", "status", "profit_loss",
			"reward_amount", "risk_amount", "pips", "exit_reason", "updated_at",
		}),
	}).Create(trade).Error
}

// FindByID fetches a single trade scoped to its owner.
// Returns (nil, nil) if the trade is not found.
func (r *TradeRepository) FindByID(ctx context.Context, userID, id uint) (*model.Trade, error) {
	var trade model.Trade
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&trade, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch trade")
		return nil, err
	}
	return &trade, nil
}

// Search lists trades for a user with optional filters, newest entries first.
func (r *TradeRepository) Search(ctx context.Context, options TradeSearchOptions) ([]model.Trade, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", options.UserID)

	if options.Symbol != nil {
		query = query.Where("symbol = ?", model.NormalizeSymbol(*options.Symbol))
	}
	if options.AssetClass != nil {
		query = query.Where("asset_class = ?", *options.AssetClass)
	}
	if options.Strategy != nil {
		query = query.Where("strategy = ?", *options.Strategy)
	}
	if options.Status != nil {
		query = query.Where("status = ?", *options.Status)
	}
	if options.EntryAfter != nil {
		query = query.Where("entry_date >= ?", *options.EntryAfter)
	}
	if options.EntryBefore != nil {
		query = query.Where("entry_date <= ?", *options.EntryBefore)
	}

	if options.Limit > 0 {
		query = query.Limit(options.Limit)
	}
	if options.Offset > 0 {
		query = query.Offset(options.Offset)
	}

	var trades []model.Trade
	err := query.Order("entry_date DESC, id DESC").Find(&trades).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Search",
			"user": options.UserID,
		}).WithError(err).Error("Failed to search trades")
		return nil, err
	}
	return trades, nil
}

// ListAll returns every trade for a user in entry order. The analytics
// aggregators consume the full set.
func (r *TradeRepository) ListAll(ctx context.Context, userID uint) ([]model.Trade, error) {
	var trades []model.Trade
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date ASC, id ASC").
		Find(&trades).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "ListAll",
			"user": userID,
		}).WithError(err).Error("Failed to list trades")
		return nil, err
	}
	return trades, nil
}

// Update persists changes to an existing trade.
func (r *TradeRepository) Update(ctx context.Context, trade *model.Trade) error {
	return r.db.WithContext(ctx).Save(trade).Error
}

// Delete removes a trade scoped to its owner. Returns gorm.ErrRecordNotFound
// when nothing matched.
func (r *TradeRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Trade{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
