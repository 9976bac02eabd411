package model

import "time"

// User owns a set of trades and API keys. Every query in the system is scoped
// to a user id, mirroring the per-row access control of the hosted schema.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"size:100" json:"first_name"`
	LastName     string    `gorm:"size:100" json:"last_name"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse is the safe projection returned by the API.
type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// APIKey authenticates programmatic clients (the web UI proxy, the CSV import
// CLI, the MT5 bridge). The secret is stored bcrypt-hashed; the presented key
// has the form "<key_id>.<secret>".
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	KeyID      string     `gorm:"size:36;uniqueIndex;not null" json:"key_id"`
	SecretHash string     `gorm:"size:100;not null" json:"-"`
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	Label      string     `gorm:"size:100" json:"label"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (APIKey) TableName() string {
	return "api_keys"
}
