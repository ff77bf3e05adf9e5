package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SessionStore = (*RedisStore)(nil)

const sessionPrefix = "console:session:"

// sessionRecord is the persisted shape of a session. The credential pair
// rides along so the session survives a console restart; the record's TTL
// guarantees it never outlives the session.
type sessionRecord struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Password      string    `json:"password"`
	Authenticated bool      `json:"authenticated"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
	LastSeenAt    time.Time `json:"last_seen_at"`
}

func recordFromSession(session *domain.Session) sessionRecord {
	cred, authenticated := session.Credentials.Snapshot()
	return sessionRecord{
		ID:            session.ID,
		Username:      cred.Username,
		Password:      cred.Password,
		Authenticated: authenticated,
		ExpiresAt:     session.ExpiresAt,
		CreatedAt:     session.CreatedAt,
		LastSeenAt:    session.LastSeenAt,
	}
}

func (r sessionRecord) toSession() *domain.Session {
	creds := domain.NewCredentialStore()
	creds.Restore(domain.Credential{Username: r.Username, Password: r.Password}, r.Authenticated)
	return &domain.Session{
		ID:          r.ID,
		Credentials: creds,
		ExpiresAt:   r.ExpiresAt,
		CreatedAt:   r.CreatedAt,
		LastSeenAt:  r.LastSeenAt,
	}
}

// RedisStore implements SessionStore using Redis.
// Sessions use Redis TTL for automatic expiration.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed SessionStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, session *domain.Session) error {
	return s.write(ctx, session)
}

func (s *RedisStore) Save(ctx context.Context, session *domain.Session) error {
	session.LastSeenAt = time.Now()
	return s.write(ctx, session)
}

func (s *RedisStore) write(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		// Session already expired, don't save
		return nil
	}

	data, err := json.Marshal(recordFromSession(session))
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionPrefix+session.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return record.toSession(), nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
