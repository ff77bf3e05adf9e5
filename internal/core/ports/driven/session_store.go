package driven

import (
	"context"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
)

// SessionStore handles console session persistence. Credential state lives
// only as long as the session: every backend applies the session TTL and
// removes the record on Delete.
type SessionStore interface {
	// Create stores a new session.
	Create(ctx context.Context, session *domain.Session) error

	// Get retrieves a session by ID. Returns domain.ErrSessionNotFound for
	// unknown or expired sessions.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Save persists the session's current credential state. Called after
	// any mutation of the session's credential store.
	Save(ctx context.Context, session *domain.Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error
}
