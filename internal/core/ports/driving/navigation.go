package driving

import (
	"context"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
)

// NavigationGuard resolves exactly one decision per navigation event:
// proceed, redirect to the login view, or redirect to the backend-error
// view.
type NavigationGuard interface {
	Decide(ctx context.Context, target domain.View, creds *domain.CredentialStore) domain.NavigationDecision
}
