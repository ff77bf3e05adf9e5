package driven

import (
	"context"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
)

// APIClient is the outbound port to the remote Midas API. Implementations
// return nil on a 2xx response, *domain.StatusError when the backend
// answered with any other status, and *domain.TransportError when no
// response could be obtained.
type APIClient interface {
	// CheckCredentials performs a single HEAD round trip to the auth check
	// endpoint carrying the given Authorization header value.
	CheckCredentials(ctx context.Context, authHeader string) error

	// CheckHealth performs a single HEAD round trip to the health endpoint.
	CheckHealth(ctx context.Context) error

	// List fetches all records of a collection.
	List(ctx context.Context, authHeader string, resource domain.Resource) ([]domain.Document, error)

	// Get fetches one record by ID.
	Get(ctx context.Context, authHeader string, resource domain.Resource, id string) (domain.Document, error)

	// Create stores a new record and returns the created document.
	Create(ctx context.Context, authHeader string, resource domain.Resource, doc domain.Document) (domain.Document, error)

	// Update replaces an existing record.
	Update(ctx context.Context, authHeader string, resource domain.Resource, id string, doc domain.Document) (domain.Document, error)

	// Delete removes a record by ID.
	Delete(ctx context.Context, authHeader string, resource domain.Resource, id string) error
}
