package mocks

import (
	"context"
	"sync"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.APIClient = (*MockAPIClient)(nil)

// MockAPIClient is a mock implementation of APIClient for testing.
// Configure the error fields to simulate backend outcomes; call counters
// record how many network round trips each operation performed.
type MockAPIClient struct {
	mu sync.Mutex

	CheckCredentialsErr error
	CheckHealthErr      error
	ListErr             error
	GetErr              error
	CreateErr           error
	UpdateErr           error
	DeleteErr           error

	Documents map[domain.Resource][]domain.Document

	CheckCredentialsCalls int
	CheckHealthCalls      int
	ListCalls             int

	// LastAuthHeader records the Authorization header of the most recent call
	LastAuthHeader string

	// CheckHealthDelay blocks CheckHealth until the context expires when
	// set, simulating a hung backend.
	CheckHealthHangs bool
}

// NewMockAPIClient creates a new MockAPIClient.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{
		Documents: make(map[domain.Resource][]domain.Document),
	}
}

func (m *MockAPIClient) CheckCredentials(ctx context.Context, authHeader string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckCredentialsCalls++
	m.LastAuthHeader = authHeader
	return m.CheckCredentialsErr
}

func (m *MockAPIClient) CheckHealth(ctx context.Context) error {
	m.mu.Lock()
	m.CheckHealthCalls++
	hangs := m.CheckHealthHangs
	err := m.CheckHealthErr
	m.mu.Unlock()

	if hangs {
		<-ctx.Done()
		return &domain.TransportError{Err: ctx.Err()}
	}
	return err
}

func (m *MockAPIClient) List(ctx context.Context, authHeader string, resource domain.Resource) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	m.LastAuthHeader = authHeader
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Documents[resource], nil
}

func (m *MockAPIClient) Get(ctx context.Context, authHeader string, resource domain.Resource, id string) (domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastAuthHeader = authHeader
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	docs := m.Documents[resource]
	if len(docs) == 0 {
		return nil, &domain.StatusError{Code: 404}
	}
	return docs[0], nil
}

func (m *MockAPIClient) Create(ctx context.Context, authHeader string, resource domain.Resource, doc domain.Document) (domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastAuthHeader = authHeader
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.Documents[resource] = append(m.Documents[resource], doc)
	return doc, nil
}

func (m *MockAPIClient) Update(ctx context.Context, authHeader string, resource domain.Resource, id string, doc domain.Document) (domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastAuthHeader = authHeader
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	return doc, nil
}

func (m *MockAPIClient) Delete(ctx context.Context, authHeader string, resource domain.Resource, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastAuthHeader = authHeader
	return m.DeleteErr
}
