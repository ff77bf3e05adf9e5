package services

import (
	"context"
	"time"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driving"
)

// defaultHealthWait bounds the health probe on every navigation event.
const defaultHealthWait = 3 * time.Second

// Ensure navigationGuard implements NavigationGuard
var _ driving.NavigationGuard = (*navigationGuard)(nil)

// navigationGuard orchestrates the health probe and the session's
// credential store on every view transition. The transition logic itself
// is the pure evaluate function below; Decide only gathers its inputs.
type navigationGuard struct {
	probe      driving.HealthProbe
	healthWait time.Duration
}

// NewNavigationGuard creates a guard with the standard 3 second health
// wait.
func NewNavigationGuard(probe driving.HealthProbe) driving.NavigationGuard {
	return NewNavigationGuardWithWait(probe, defaultHealthWait)
}

// NewNavigationGuardWithWait creates a guard with a custom health wait.
func NewNavigationGuardWithWait(probe driving.HealthProbe, wait time.Duration) driving.NavigationGuard {
	return &navigationGuard{probe: probe, healthWait: wait}
}

// Decide resolves exactly one terminal route for the navigation event.
// The backend-error view skips every check; the login view skips only the
// authentication check. Neither skipped check is evaluated at all.
func (g *navigationGuard) Decide(ctx context.Context, target domain.View, creds *domain.CredentialStore) domain.NavigationDecision {
	if target == domain.ViewBackendError {
		return evaluate(target, false, false)
	}

	healthy := g.probeBounded(ctx)
	if target == domain.ViewLogin {
		return evaluate(target, healthy, false)
	}

	return evaluate(target, healthy, creds.IsAuthenticated())
}

// probeBounded runs the health probe on its own goroutine and races it
// against the configured wait. A timed-out probe is abandoned; its context
// is cancelled so the in-flight request can unwind. A panicking probe
// counts as unavailable.
func (g *navigationGuard) probeBounded(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, g.healthWait)
	defer cancel()

	result := make(chan bool, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				result <- false
			}
		}()
		result <- g.probe.IsBackendAvailable(ctx)
	}()

	select {
	case ok := <-result:
		return ok
	case <-ctx.Done():
		return false
	}
}

// guardState enumerates the navigation state machine's intermediate
// states. Terminal outcomes are the three routes.
type guardState int

const (
	stateEntry guardState = iota
	stateHealthChecked
	stateAuthChecked
)

// evaluate is the pure navigation transition function over precomputed
// check results. It always terminates in exactly one decision.
func evaluate(target domain.View, healthy, authenticated bool) domain.NavigationDecision {
	state := stateEntry
	for {
		switch state {
		case stateEntry:
			if target == domain.ViewBackendError {
				return domain.NavigationDecision{Route: domain.RouteProceed}
			}
			if !healthy {
				return domain.NavigationDecision{Route: domain.RouteRedirectToBackendError}
			}
			state = stateHealthChecked

		case stateHealthChecked:
			if target == domain.ViewLogin {
				return domain.NavigationDecision{Route: domain.RouteProceed}
			}
			if !authenticated {
				return domain.NavigationDecision{Route: domain.RouteRedirectToLogin}
			}
			state = stateAuthChecked

		case stateAuthChecked:
			return domain.NavigationDecision{Route: domain.RouteProceed, ShowLogout: true}
		}
	}
}
