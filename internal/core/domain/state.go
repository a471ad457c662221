package domain

import "time"

// AuthState is a pending authorization handshake state used for CSRF
// protection. States are single-use: verification consumes the record.
type AuthState struct {
	// Value is the cryptographically random state string.
	Value string

	// CreatedAt is when the state was issued.
	CreatedAt time.Time

	// ExpiresAt is when the state stops being accepted (typically 10
	// minutes after issue).
	ExpiresAt time.Time
}
