package model

import (
	"database/sql"
	"time"
)

// User mirrors the `users` table. PasswordHash is never serialized to
// clients; handlers define their own response types.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username (unique)
	Email        string    // users.email (unique)
	PasswordHash string    // users.password_hash (bcrypt)
	Role         Role      // users.role (admin | officer)
	ProfileImage string    // users.profile_image (path, may be empty)
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// PasswordReset mirrors the `password_resets` table. Code is a short numeric
// one-time code delivered out of band; ConsumedAt stays NULL until the code
// is spent by a successful password reset.
type PasswordReset struct {
	ID         uint64       // password_resets.id
	UserID     uint64       // password_resets.user_id
	Code       string       // password_resets.code (6 digits)
	ExpiresAt  time.Time    // password_resets.expires_at
	ConsumedAt sql.NullTime // password_resets.consumed_at
	CreatedAt  time.Time    // password_resets.created_at
}

// RefreshToken mirrors the `refresh_tokens` table. Only the SHA-256 hash of
// the raw token is stored.
type RefreshToken struct {
	ID        uint64       // refresh_tokens.id
	UserID    uint64       // refresh_tokens.user_id
	TokenHash string       // refresh_tokens.token_hash
	ExpiresAt time.Time    // refresh_tokens.expires_at
	RevokedAt sql.NullTime // refresh_tokens.revoked_at
	CreatedAt time.Time    // refresh_tokens.created_at
}
