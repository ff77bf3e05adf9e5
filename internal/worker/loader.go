// Package worker runs bulk resource loads off the request path under a
// fixed time bound.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
)

// defaultLoadTimeout bounds one bulk resource load.
const defaultLoadTimeout = 30 * time.Second

// LoadResult is the single message a background load produces. Err is a
// *domain.ClassifiedError on failure.
type LoadResult struct {
	Docs []domain.Document
	Err  error
}

// Loader dispatches bulk loads onto worker goroutines. Each load delivers
// exactly one LoadResult on a buffered channel, so the producer never
// blocks and the consumer applies all state transitions itself; a load
// that exceeds the bound is abandoned and surfaces as a connection error.
type Loader struct {
	logger  *slog.Logger
	timeout time.Duration
}

// LoaderConfig holds configuration for the loader.
type LoaderConfig struct {
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewLoader creates a Loader. Zero-value config fields get defaults.
func NewLoader(cfg LoaderConfig) *Loader {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultLoadTimeout
	}
	return &Loader{logger: logger, timeout: timeout}
}

// Load runs fn on its own goroutine and returns the channel carrying its
// single result. The load's context is cancelled when the bound elapses,
// letting the in-flight request unwind.
func (l *Loader) Load(ctx context.Context, resource domain.Resource, fn func(context.Context) ([]domain.Document, error)) <-chan LoadResult {
	out := make(chan LoadResult, 1)

	loadCtx, cancel := context.WithTimeout(ctx, l.timeout)
	go func() {
		defer cancel()

		inner := make(chan LoadResult, 1)
		go func() {
			docs, err := fn(loadCtx)
			inner <- LoadResult{Docs: docs, Err: err}
		}()

		select {
		case result := <-inner:
			out <- result
		case <-loadCtx.Done():
			l.logger.Warn("resource load abandoned",
				"resource", string(resource),
				"timeout", l.timeout,
			)
			out <- LoadResult{Err: &domain.ClassifiedError{
				Kind:    domain.ErrorKindConnection,
				Message: "backend connection failed",
				Err:     loadCtx.Err(),
			}}
		}
	}()

	return out
}
