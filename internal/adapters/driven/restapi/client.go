// Package restapi implements the outbound APIClient port against the
// remote Midas REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.APIClient = (*Client)(nil)

// Client talks to the remote Midas API. No retries: a single failed
// attempt is surfaced immediately for classification.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// NewClientWithHTTPClient creates a Client with a caller-supplied
// http.Client, used by tests to control timeouts.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// CheckCredentials performs a HEAD round trip to the auth check endpoint.
func (c *Client) CheckCredentials(ctx context.Context, authHeader string) error {
	resp, err := c.do(ctx, http.MethodHead, "/auth", authHeader, nil)
	if err != nil {
		return err
	}
	defer drain(resp)
	return statusError(resp)
}

// CheckHealth performs a HEAD round trip to the health endpoint. No
// Authorization header: liveness is answered to anyone.
func (c *Client) CheckHealth(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodHead, "/health", "", nil)
	if err != nil {
		return err
	}
	defer drain(resp)
	return statusError(resp)
}

// List fetches all records of a collection.
func (c *Client) List(ctx context.Context, authHeader string, resource domain.Resource) ([]domain.Document, error) {
	resp, err := c.do(ctx, http.MethodGet, "/"+string(resource), authHeader, nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := statusError(resp); err != nil {
		return nil, err
	}

	var docs []domain.Document
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", resource, err)
	}
	return docs, nil
}

// Get fetches one record by ID.
func (c *Client) Get(ctx context.Context, authHeader string, resource domain.Resource, id string) (domain.Document, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/%s/%s", resource, id), authHeader, nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := statusError(resp); err != nil {
		return nil, err
	}
	return decodeDocument(resp.Body, resource)
}

// Create stores a new record.
func (c *Client) Create(ctx context.Context, authHeader string, resource domain.Resource, doc domain.Document) (domain.Document, error) {
	resp, err := c.do(ctx, http.MethodPost, "/"+string(resource), authHeader, bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := statusError(resp); err != nil {
		return nil, err
	}
	return decodeDocument(resp.Body, resource)
}

// Update replaces an existing record.
func (c *Client) Update(ctx context.Context, authHeader string, resource domain.Resource, id string, doc domain.Document) (domain.Document, error) {
	resp, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/%s/%s", resource, id), authHeader, bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if err := statusError(resp); err != nil {
		return nil, err
	}
	return decodeDocument(resp.Body, resource)
}

// Delete removes a record by ID.
func (c *Client) Delete(ctx context.Context, authHeader string, resource domain.Resource, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/%s/%s", resource, id), authHeader, nil)
	if err != nil {
		return err
	}
	defer drain(resp)
	return statusError(resp)
}

// do builds and sends one request. Transport failures come back as
// *domain.TransportError; the caller interprets the response status.
func (c *Client) do(ctx context.Context, method, path, authHeader string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Refused: isRefused(err), Err: err}
	}
	return resp, nil
}

// statusError maps a non-2xx response to a *domain.StatusError.
func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &domain.StatusError{Code: resp.StatusCode}
}

func decodeDocument(body io.Reader, resource domain.Resource) (domain.Document, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read %s body: %w", resource, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("invalid %s document", resource)
	}
	return domain.Document(data), nil
}

// drain discards any remaining body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// isRefused reports whether the transport failure means the backend host
// actively refused or could not be reached, as opposed to e.g. a timeout.
func isRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}
	return strings.Contains(err.Error(), "connection refused")
}
