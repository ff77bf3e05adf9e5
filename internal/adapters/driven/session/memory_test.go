package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
)

func newTestSession(id string, ttl time.Duration) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:          id,
		Credentials: domain.NewCredentialStore(),
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
		LastSeenAt:  now,
	}
}

func TestMemoryStore_CreateGet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	sess := newTestSession("s-1", time.Hour)
	sess.Credentials.Store("admin", "secret")

	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.Credentials.IsAuthenticated() {
		t.Error("credential state must survive the round trip")
	}
	if got.Credentials.Username() != "admin" {
		t.Errorf("username = %q, want %q", got.Credentials.Username(), "admin")
	}
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStore_GetExpired(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	sess := newTestSession("s-old", -time.Minute)
	_ = store.Create(ctx, sess)

	if _, err := store.Get(ctx, "s-old"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	sess := newTestSession("s-2", time.Hour)
	_ = store.Create(ctx, sess)
	_ = store.Delete(ctx, "s-2")

	if _, err := store.Get(ctx, "s-2"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStore_SaveSharesLiveStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	sess := newTestSession("s-3", time.Hour)
	_ = store.Create(ctx, sess)

	// The in-memory store hands back the live object: a logout through one
	// reference is visible through the next Get without an explicit Save.
	got, _ := store.Get(ctx, "s-3")
	got.Credentials.Store("admin", "secret")

	again, _ := store.Get(ctx, "s-3")
	if !again.Credentials.IsAuthenticated() {
		t.Error("credential mutation must be visible on the next Get")
	}

	if err := store.Save(ctx, got); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}
