package driving

import (
	"context"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
)

// ResourceService is the CRUD surface over one session's view of the
// backend's record collections. Failures are *domain.ClassifiedError
// values produced by the shared classification policy.
type ResourceService interface {
	List(ctx context.Context, resource domain.Resource) ([]domain.Document, error)
	Get(ctx context.Context, resource domain.Resource, id string) (domain.Document, error)
	Create(ctx context.Context, resource domain.Resource, doc domain.Document) (domain.Document, error)
	Update(ctx context.Context, resource domain.Resource, id string, doc domain.Document) (domain.Document, error)
	Delete(ctx context.Context, resource domain.Resource, id string) error
}
