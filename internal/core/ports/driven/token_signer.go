package driven

import "time"

// TokenSigner issues and verifies the signed tokens carried in the
// console's session cookie. The token payload is only the session ID; all
// credential state stays server-side.
type TokenSigner interface {
	// Sign produces a signed token binding the session ID until expiry.
	Sign(sessionID string, expiresAt time.Time) (string, error)

	// Verify validates a token and returns the embedded session ID.
	Verify(token string) (string, error)
}
