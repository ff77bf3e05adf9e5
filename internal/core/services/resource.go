package services

import (
	"context"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driven"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driving"
)

// Ensure resourceService implements ResourceService
var _ driving.ResourceService = (*resourceService)(nil)

// resourceService proxies CRUD calls for one session. The gateway supplies
// the Authorization header; every failure goes through the shared
// classification policy, which may invalidate the session on a 401.
type resourceService struct {
	client  driven.APIClient
	gateway driving.AuthGateway
}

// NewResourceService creates a ResourceService bound to one session's
// gateway.
func NewResourceService(client driven.APIClient, gateway driving.AuthGateway) driving.ResourceService {
	return &resourceService{client: client, gateway: gateway}
}

func (s *resourceService) List(ctx context.Context, resource domain.Resource) ([]domain.Document, error) {
	if !resource.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	docs, err := s.client.List(ctx, s.gateway.BasicAuthHeader(), resource)
	if err != nil {
		return nil, Classify(err, s.gateway)
	}
	return docs, nil
}

func (s *resourceService) Get(ctx context.Context, resource domain.Resource, id string) (domain.Document, error) {
	if !resource.IsValid() || id == "" {
		return nil, domain.ErrInvalidInput
	}
	doc, err := s.client.Get(ctx, s.gateway.BasicAuthHeader(), resource, id)
	if err != nil {
		return nil, Classify(err, s.gateway)
	}
	return doc, nil
}

func (s *resourceService) Create(ctx context.Context, resource domain.Resource, doc domain.Document) (domain.Document, error) {
	if !resource.IsValid() || len(doc) == 0 {
		return nil, domain.ErrInvalidInput
	}
	created, err := s.client.Create(ctx, s.gateway.BasicAuthHeader(), resource, doc)
	if err != nil {
		return nil, Classify(err, s.gateway)
	}
	return created, nil
}

func (s *resourceService) Update(ctx context.Context, resource domain.Resource, id string, doc domain.Document) (domain.Document, error) {
	if !resource.IsValid() || id == "" || len(doc) == 0 {
		return nil, domain.ErrInvalidInput
	}
	updated, err := s.client.Update(ctx, s.gateway.BasicAuthHeader(), resource, id, doc)
	if err != nil {
		return nil, Classify(err, s.gateway)
	}
	return updated, nil
}

func (s *resourceService) Delete(ctx context.Context, resource domain.Resource, id string) error {
	if !resource.IsValid() || id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.client.Delete(ctx, s.gateway.BasicAuthHeader(), resource, id); err != nil {
		return Classify(err, s.gateway)
	}
	return nil
}
