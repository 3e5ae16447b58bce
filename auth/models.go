// Package auth handles registration, login, and bearer-token authentication.
package auth

import "time"

// User represents a registered account. The password hash is never exposed
// in API responses.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Token is a personal access token row. Only a SHA-256 digest of the secret
// is stored; the plaintext is handed to the client exactly once at mint time.
// A user may hold many tokens, one per logged-in device. Tokens carry no
// expiry and stay valid until explicitly deleted.
type Token struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Hash      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
