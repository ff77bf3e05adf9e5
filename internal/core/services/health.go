package services

import (
	"context"
	"errors"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driven"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driving"
)

// Ensure healthProbe implements HealthProbe
var _ driving.HealthProbe = (*healthProbe)(nil)

// healthProbe performs the bounded liveness check against the remote API.
type healthProbe struct {
	client driven.APIClient
}

// NewHealthProbe creates a HealthProbe over the given API client.
func NewHealthProbe(client driven.APIClient) driving.HealthProbe {
	return &healthProbe{client: client}
}

// IsBackendAvailable issues a single liveness request. The backend counts
// as available when it answered at all with a status below 500, even a
// client error. Only a transport failure counts as unavailable; any other
// anomaly that implies a response was obtained fails open.
func (p *healthProbe) IsBackendAvailable(ctx context.Context) bool {
	err := p.client.CheckHealth(ctx)
	if err == nil {
		return true
	}

	var statusErr *domain.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code < 500
	}

	var transportErr *domain.TransportError
	if errors.As(err, &transportErr) {
		return false
	}

	return true
}
