package domain

import "time"

// Session represents one operator's console session. The credential store
// is scoped to the session: created with it, destroyed with it.
type Session struct {
	ID          string           `json:"id"`
	Credentials *CredentialStore `json:"-"`
	ExpiresAt   time.Time        `json:"expires_at"`
	CreatedAt   time.Time        `json:"created_at"`
	LastSeenAt  time.Time        `json:"last_seen_at"`
}

// IsExpired checks if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// LoginRequest represents a login attempt from the operator.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
