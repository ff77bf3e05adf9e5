// Package session provides the console session store backends: in-memory
// for single-instance deployments, Redis and PostgreSQL for deployments
// that must survive restarts or share sessions across instances.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SessionStore = (*MemoryStore)(nil)

// MemoryStore keeps sessions in process memory. Credential state never
// leaves the process; a janitor removes expired sessions.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates a MemoryStore and starts its expiry janitor.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*domain.Session),
		stopCh:   make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *MemoryStore) Create(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if session.IsExpired() {
		_ = s.Delete(ctx, id)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Save is cheap here: the session object in the map is the live one, so
// credential mutations are already visible. LastSeenAt is still refreshed.
func (s *MemoryStore) Save(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.LastSeenAt = time.Now()
	s.sessions[session.ID] = session
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Close stops the expiry janitor.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.purgeExpired()
		}
	}
}

func (s *MemoryStore) purgeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if session.IsExpired() {
			delete(s.sessions, id)
		}
	}
}
