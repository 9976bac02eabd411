package repository

import (
	"context"
	"errors"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// UserRepository handles users and their API keys.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository() *UserRepository {
	return &UserRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *UserRepository) WithDB(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":  "UserRepository",
			"op":    "Create",
			"email": user.Email,
		}).WithError(err).Error("Failed to create user")
		return err
	}
	return nil
}

// FindByID fetches a user. Returns (nil, nil) when not found.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail fetches a user by email. Returns (nil, nil) when not found.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateAPIKey stores a new API key record (secret already hashed).
func (r *UserRepository) CreateAPIKey(ctx context.Context, key *model.APIKey) error {
	if err := r.db.WithContext(ctx).Create(key).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":   "UserRepository",
			"op":     "CreateAPIKey",
			"key_id": key.KeyID,
		}).WithError(err).Error("Failed to create API key")
		return err
	}
	return nil
}

// FindAPIKey fetches an API key by its public key id.
// Returns (nil, nil) when not found.
func (r *UserRepository) FindAPIKey(ctx context.Context, keyID string) (*model.APIKey, error) {
	var key model.APIKey
	err := r.db.WithContext(ctx).Where("key_id = ?", keyID).First(&key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &key, nil
}

// TouchAPIKey records when a key was last used. Failures are logged, not
// surfaced — key bookkeeping must never fail a request.
func (r *UserRepository) TouchAPIKey(ctx context.Context, keyID string) {
	now := time.Now().UTC()
	if err := r.db.WithContext(ctx).
		Model(&model.APIKey{}).
		Where("key_id = ?", keyID).
		Update("last_used_at", now).Error; err != nil {
		logger.WithError(err).WithField("key_id", keyID).Warn("failed to touch API key")
	}
}
