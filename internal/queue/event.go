// Package queue defines the message payloads exchanged over the broker and
// the background consumer that delivers password-reset notifications.
package queue

// PasswordResetRequestedEvent is published when a user asks for a
// password-reset code. It carries everything the mailer needs to compose
// the notification without querying the primary database.
type PasswordResetRequestedEvent struct {
	UserID      uint64 `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Code        string `json:"code"`
	ExpiresAt   string `json:"expires_at"`
	RequestedAt string `json:"requested_at"`
}
