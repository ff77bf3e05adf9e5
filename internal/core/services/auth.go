package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driven"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driving"
)

// Ensure authGateway implements AuthGateway
var _ driving.AuthGateway = (*authGateway)(nil)

// authGateway validates operator credentials against the remote API and
// owns all writes to its session's credential store.
type authGateway struct {
	client  driven.APIClient
	creds   *domain.CredentialStore
	timeout time.Duration
}

// NewAuthGateway creates an AuthGateway bound to one session's credential
// store.
func NewAuthGateway(client driven.APIClient, creds *domain.CredentialStore) driving.AuthGateway {
	return &authGateway{
		client:  client,
		creds:   creds,
		timeout: 10 * time.Second,
	}
}

// Authenticate performs a single bounded credential-validation round trip.
func (g *authGateway) Authenticate(ctx context.Context, username, password string) domain.AuthOutcome {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return domain.InvalidInputOutcome()
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	err := g.client.CheckCredentials(ctx, domain.BasicAuthHeader(username, password))
	if err == nil {
		g.creds.Store(username, password)
		return domain.SuccessOutcome()
	}

	var statusErr *domain.StatusError
	if errors.As(err, &statusErr) {
		// On 401 the store is left untouched; the operator may retry.
		if statusErr.Code == http.StatusUnauthorized {
			return domain.InvalidCredentialsOutcome()
		}
		return domain.BackendUnavailableOutcome(fmt.Sprintf("status %d", statusErr.Code))
	}

	var transportErr *domain.TransportError
	if errors.As(err, &transportErr) {
		if transportErr.Refused {
			return domain.BackendUnavailableOutcome("Connection refused")
		}
		return domain.BackendUnavailableOutcome(transportErr.Err.Error())
	}

	return domain.BackendUnavailableOutcome(fmt.Sprintf("unexpected error: %v", err))
}

// Logout unconditionally clears the credential store.
func (g *authGateway) Logout() {
	g.creds.Clear()
}

func (g *authGateway) IsAuthenticated() bool {
	return g.creds.IsAuthenticated()
}

func (g *authGateway) BasicAuthHeader() string {
	return g.creds.BasicAuthHeader()
}

func (g *authGateway) Username() string {
	return g.creds.Username()
}
