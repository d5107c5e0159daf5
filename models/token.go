package models

import "time"

// AccessToken is the stored half of a bearer token. Only a SHA-256 hash of
// the plaintext ever reaches the database.
type AccessToken struct {
	ID         int        `json:"id"`
	UserID     int        `json:"user_id"`
	TokenHash  string     `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}
