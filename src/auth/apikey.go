package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"tradejournal/src/model"
)

// HeaderAPIKey carries the presented credential, formatted "<key_id>.<secret>".
const HeaderAPIKey = "X-API-Key"

type keyStore interface {
	FindAPIKey(ctx context.Context, keyID string) (*model.APIKey, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	TouchAPIKey(ctx context.Context, keyID string)
}

// Middleware authenticates requests by API key and injects the owning user
// into the request context.
func Middleware(store keyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			keyID, secret, ok := splitKey(r.Header.Get(HeaderAPIKey))
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			key, err := store.FindAPIKey(r.Context(), keyID)
			if err != nil {
				logger.WithError(err).Error("api key lookup failed")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if key == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if bcrypt.CompareHashAndPassword([]byte(key.SecretHash), []byte(secret)) != nil {
				logger.WithField("key_id", keyID).Warn("api key secret mismatch")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := store.FindByID(r.Context(), key.UserID)
			if err != nil {
				logger.WithError(err).Error("api key user lookup failed")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			store.TouchAPIKey(r.Context(), keyID)

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func splitKey(raw string) (keyID, secret string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", false
	}
	parts := strings.SplitN(raw, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// GenerateAPIKey mints a new key for a user. The plaintext credential is
// returned exactly once; only the bcrypt hash is stored.
func GenerateAPIKey(userID uint, label string) (plaintext string, key *model.APIKey, err error) {
	keyID := uuid.NewString()
	secret := strings.ReplaceAll(uuid.NewString(), "-", "")

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	key = &model.APIKey{
		KeyID:      keyID,
		SecretHash: string(hash),
		UserID:     userID,
		Label:      label,
	}
	return keyID + "." + secret, key, nil
}
