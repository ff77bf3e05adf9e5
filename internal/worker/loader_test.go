package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
)

func TestLoader_DeliversSuccess(t *testing.T) {
	loader := NewLoader(LoaderConfig{})

	want := []domain.Document{json.RawMessage(`{"id":1}`)}
	result := <-loader.Load(context.Background(), domain.ResourcePages, func(ctx context.Context) ([]domain.Document, error) {
		return want, nil
	})

	if result.Err != nil {
		t.Fatalf("Err = %v", result.Err)
	}
	if len(result.Docs) != 1 {
		t.Errorf("len = %d, want 1", len(result.Docs))
	}
}

func TestLoader_DeliversFailure(t *testing.T) {
	loader := NewLoader(LoaderConfig{})

	classified := &domain.ClassifiedError{Kind: domain.ErrorKindService, Message: "backend error: status 500", Status: 500}
	result := <-loader.Load(context.Background(), domain.ResourcePosts, func(ctx context.Context) ([]domain.Document, error) {
		return nil, classified
	})

	var got *domain.ClassifiedError
	if !errors.As(result.Err, &got) || got.Kind != domain.ErrorKindService {
		t.Fatalf("Err = %v, want service ClassifiedError", result.Err)
	}
}

func TestLoader_TimeoutBecomesConnectionError(t *testing.T) {
	loader := NewLoader(LoaderConfig{Timeout: 50 * time.Millisecond})

	started := time.Now()
	result := <-loader.Load(context.Background(), domain.ResourceUsers, func(ctx context.Context) ([]domain.Document, error) {
		<-ctx.Done() // hung backend
		return nil, ctx.Err()
	})
	elapsed := time.Since(started)

	if !domain.IsKind(result.Err, domain.ErrorKindConnection) {
		t.Fatalf("Err = %v, want connection kind", result.Err)
	}
	if elapsed > time.Second {
		t.Errorf("load blocked for %v, bound not applied", elapsed)
	}
}

func TestLoader_ExactlyOneResult(t *testing.T) {
	loader := NewLoader(LoaderConfig{Timeout: 50 * time.Millisecond})

	// Finishes after the bound elapses: the late result must not block the
	// producing goroutine or deliver a second message.
	ch := loader.Load(context.Background(), domain.ResourceRanks, func(ctx context.Context) ([]domain.Document, error) {
		time.Sleep(150 * time.Millisecond)
		return []domain.Document{json.RawMessage(`{}`)}, nil
	})

	first := <-ch
	if !domain.IsKind(first.Err, domain.ErrorKindConnection) {
		t.Fatalf("first result = %+v, want timeout connection error", first)
	}

	select {
	case extra := <-ch:
		t.Errorf("unexpected second result: %+v", extra)
	case <-time.After(300 * time.Millisecond):
	}
}
