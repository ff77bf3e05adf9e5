package services

import (
	"context"
	"errors"
	"testing"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driven/mocks"
)

func TestHealthProbe_IsBackendAvailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "status 200", err: nil, want: true},
		{name: "status 404", err: &domain.StatusError{Code: 404}, want: true},
		{name: "status 499", err: &domain.StatusError{Code: 499}, want: true},
		{name: "status 500", err: &domain.StatusError{Code: 500}, want: false},
		{name: "status 503", err: &domain.StatusError{Code: 503}, want: false},
		{
			name: "connection failure",
			err:  &domain.TransportError{Refused: true, Err: errors.New("connection refused")},
			want: false,
		},
		{
			name: "timeout before response",
			err:  &domain.TransportError{Err: errors.New("context deadline exceeded")},
			want: false,
		},
		{
			// Fail-open: a response was obtained but could not be
			// interpreted. Kept for compatibility with the reference
			// behavior; see DESIGN.md.
			name: "non-transport anomaly",
			err:  errors.New("unexpected content type"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockAPIClient()
			client.CheckHealthErr = tt.err
			probe := NewHealthProbe(client)

			if got := probe.IsBackendAvailable(context.Background()); got != tt.want {
				t.Errorf("IsBackendAvailable() = %v, want %v", got, tt.want)
			}
			if client.CheckHealthCalls != 1 {
				t.Errorf("expected exactly one liveness request, got %d", client.CheckHealthCalls)
			}
		})
	}
}
