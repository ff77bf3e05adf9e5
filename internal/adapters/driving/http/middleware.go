package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driven"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driving"
)

// Context keys
type contextKey string

const (
	sessionContextKey  contextKey = "console_session"
	decisionContextKey contextKey = "navigation_decision"
)

// sessionCookie is the name of the console's session cookie.
const sessionCookie = "midas_session"

// SessionMiddleware resolves the session cookie into a *domain.Session.
type SessionMiddleware struct {
	sessions driven.SessionStore
	signer   driven.TokenSigner
}

// NewSessionMiddleware creates a SessionMiddleware.
func NewSessionMiddleware(sessions driven.SessionStore, signer driven.TokenSigner) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, signer: signer}
}

// Resolve attaches the request's session to the context when the cookie
// is present and valid. Requests without a usable session continue
// unauthenticated; handlers that need one use RequireSession.
func (m *SessionMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		sessionID, err := m.signer.Verify(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.sessions.Get(r.Context(), sessionID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession rejects requests that carry no resolved session.
func (m *SessionMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetSession(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "no session")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSession retrieves the session from the request context.
func GetSession(ctx context.Context) *domain.Session {
	if ctx == nil {
		return nil
	}
	session, ok := ctx.Value(sessionContextKey).(*domain.Session)
	if !ok {
		return nil
	}
	return session
}

// GuardMiddleware runs the navigation guard on every view transition and
// turns its decision into either a pass-through or a redirect.
type GuardMiddleware struct {
	guard driving.NavigationGuard
}

// NewGuardMiddleware creates a GuardMiddleware.
func NewGuardMiddleware(guard driving.NavigationGuard) *GuardMiddleware {
	return &GuardMiddleware{guard: guard}
}

// Guard evaluates the navigation decision for the target view. Redirect
// routes answer 303; a proceed route forwards with the decision attached
// so the view handler can honor the affordance flag.
func (m *GuardMiddleware) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		view, ok := viewFromSlug(mux.Vars(r)["view"])
		if !ok {
			writeError(w, http.StatusNotFound, "unknown view")
			return
		}

		creds := domain.NewCredentialStore()
		if session := GetSession(r.Context()); session != nil {
			creds = session.Credentials
		}

		decision := m.guard.Decide(r.Context(), view, creds)
		switch decision.Route {
		case domain.RouteRedirectToLogin:
			http.Redirect(w, r, "/views/login", http.StatusSeeOther)
		case domain.RouteRedirectToBackendError:
			http.Redirect(w, r, "/views/backend-error", http.StatusSeeOther)
		default:
			ctx := context.WithValue(r.Context(), decisionContextKey, decision)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	})
}

// GetDecision retrieves the navigation decision from the request context.
func GetDecision(ctx context.Context) domain.NavigationDecision {
	decision, ok := ctx.Value(decisionContextKey).(domain.NavigationDecision)
	if !ok {
		return domain.NavigationDecision{Route: domain.RouteProceed}
	}
	return decision
}

// viewFromSlug maps a URL segment to a console view.
func viewFromSlug(slug string) (domain.View, bool) {
	switch slug {
	case "", "dashboard":
		return domain.ViewDashboard, true
	case "login":
		return domain.ViewLogin, true
	case "backend-error":
		return domain.ViewBackendError, true
	default:
		resource := domain.Resource(slug)
		if resource.IsValid() {
			return resource.View(), true
		}
		return "", false
	}
}
