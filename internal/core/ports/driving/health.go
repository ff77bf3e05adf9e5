package driving

import "context"

// HealthProbe answers whether the remote API is reachable and responding.
type HealthProbe interface {
	// IsBackendAvailable performs a single liveness request. Any status
	// below 500 counts as available; only a transport failure counts as
	// unavailable.
	IsBackendAvailable(ctx context.Context) bool
}
