package driving

import (
	"context"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
)

// AuthGateway performs the credential-validation round trip against the
// remote API and owns login/logout side effects on its session's
// credential store. One gateway serves one session.
type AuthGateway interface {
	// Authenticate validates the pair against the backend and returns a
	// four-way outcome. Blank input short-circuits without a network call.
	Authenticate(ctx context.Context, username, password string) domain.AuthOutcome

	// Logout unconditionally clears the credential store.
	Logout()

	// IsAuthenticated is a pass-through read from the credential store.
	IsAuthenticated() bool

	// BasicAuthHeader is a pass-through read from the credential store.
	BasicAuthHeader() string

	// Username is a pass-through read from the credential store.
	Username() string
}
