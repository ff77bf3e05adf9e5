package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/adapters/driven/token"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driven/mocks"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/services"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/worker"
)

func newTestServer(t *testing.T, client *mocks.MockAPIClient) (*Server, *mocks.MockSessionStore) {
	t.Helper()

	sessions := mocks.NewMockSessionStore()
	guard := services.NewNavigationGuard(services.NewHealthProbe(client))
	loader := worker.NewLoader(worker.LoaderConfig{Timeout: 2 * time.Second})

	server := NewServer(
		Config{Version: "test", SessionTTL: time.Hour},
		guard,
		loader,
		client,
		sessions,
		token.NewSigner("test-secret"),
		nil,
	)
	return server, sessions
}

// login performs a successful login through the router and returns the
// session cookie.
func login(t *testing.T, server *Server) *http.Cookie {
	t.Helper()

	body := bytes.NewBufferString(`{"username":"admin","password":"secret"}`)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", body)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rr.Code, rr.Body.String())
	}
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == sessionCookie {
			return cookie
		}
	}
	t.Fatal("login response carried no session cookie")
	return nil
}

func TestHealthHandler(t *testing.T) {
	server, _ := newTestServer(t, mocks.NewMockAPIClient())

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["status"] != "ok" {
		t.Errorf("expected status 'ok', got %s", response["status"])
	}
}

func TestVersionHandler(t *testing.T) {
	server := &Server{version: "1.2.3"}

	req := httptest.NewRequest("GET", "/version", nil)
	rr := httptest.NewRecorder()
	server.handleVersion(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["version"] != "1.2.3" {
		t.Errorf("expected version '1.2.3', got %s", response["version"])
	}
}

func TestHandleLogin_Success(t *testing.T) {
	client := mocks.NewMockAPIClient()
	server, _ := newTestServer(t, client)

	cookie := login(t, server)
	if cookie.Value == "" {
		t.Fatal("expected a signed session token in the cookie")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if client.CheckCredentialsCalls != 1 {
		t.Errorf("expected 1 credential check, got %d", client.CheckCredentialsCalls)
	}

	// The session the cookie names is live and authenticated.
	req := httptest.NewRequest("GET", "/api/v1/auth/session", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	var state SessionResponse
	if err := json.NewDecoder(rr.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !state.Authenticated {
		t.Error("expected an authenticated session")
	}
	if state.Username != "admin" {
		t.Errorf("expected username 'admin', got %q", state.Username)
	}
}

func TestHandleLogin_InvalidJSON(t *testing.T) {
	server, _ := newTestServer(t, mocks.NewMockAPIClient())

	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString("invalid json"))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleLogin_BlankUsername(t *testing.T) {
	client := mocks.NewMockAPIClient()
	server, _ := newTestServer(t, client)

	req := httptest.NewRequest("POST", "/api/v1/auth/login",
		bytes.NewBufferString(`{"username":"   ","password":"secret"}`))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
	if client.CheckCredentialsCalls != 0 {
		t.Errorf("blank input must not reach the backend, got %d calls", client.CheckCredentialsCalls)
	}

	var outcome domain.AuthOutcome
	if err := json.NewDecoder(rr.Body).Decode(&outcome); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if outcome.Status != domain.AuthInvalidInput {
		t.Errorf("expected invalid_input, got %s", outcome.Status)
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	client := mocks.NewMockAPIClient()
	client.CheckCredentialsErr = &domain.StatusError{Code: 401}
	server, sessions := newTestServer(t, client)

	req := httptest.NewRequest("POST", "/api/v1/auth/login",
		bytes.NewBufferString(`{"username":"admin","password":"wrong"}`))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}

	var outcome domain.AuthOutcome
	if err := json.NewDecoder(rr.Body).Decode(&outcome); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if outcome.Status != domain.AuthInvalidCredentials {
		t.Errorf("expected invalid_credentials, got %s", outcome.Status)
	}
	if outcome.Message != "Invalid username or password" {
		t.Errorf("unexpected message: %q", outcome.Message)
	}
	// No cookie and no stored session for a rejected login.
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == sessionCookie && cookie.Value != "" {
			t.Error("rejected login must not set a session cookie")
		}
	}
	if sessions.SaveCalls != 0 {
		t.Errorf("rejected login must not persist a session, got %d saves", sessions.SaveCalls)
	}
}

func TestHandleLogin_BackendRefused(t *testing.T) {
	client := mocks.NewMockAPIClient()
	client.CheckCredentialsErr = &domain.TransportError{Refused: true}
	server, _ := newTestServer(t, client)

	req := httptest.NewRequest("POST", "/api/v1/auth/login",
		bytes.NewBufferString(`{"username":"admin","password":"secret"}`))
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", rr.Code)
	}

	var outcome domain.AuthOutcome
	if err := json.NewDecoder(rr.Body).Decode(&outcome); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if outcome.Status != domain.AuthBackendUnavailable {
		t.Errorf("expected backend_unavailable, got %s", outcome.Status)
	}
	if !strings.Contains(outcome.Message, "Connection refused") {
		t.Errorf("expected connection refused detail, got %q", outcome.Message)
	}
}

func TestHandleLogout(t *testing.T) {
	client := mocks.NewMockAPIClient()
	server, sessions := newTestServer(t, client)
	cookie := login(t, server)

	req := httptest.NewRequest("POST", "/api/v1/auth/logout", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if sessions.DeleteCalls != 1 {
		t.Errorf("expected 1 session delete, got %d", sessions.DeleteCalls)
	}

	cleared := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("logout must clear the session cookie")
	}
}

func TestHandleLogout_NoSession(t *testing.T) {
	server, _ := newTestServer(t, mocks.NewMockAPIClient())

	req := httptest.NewRequest("POST", "/api/v1/auth/logout", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestHandleSession_Unauthenticated(t *testing.T) {
	server, _ := newTestServer(t, mocks.NewMockAPIClient())

	req := httptest.NewRequest("GET", "/api/v1/auth/session", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}

	var state SessionResponse
	if err := json.NewDecoder(rr.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if state.Authenticated {
		t.Error("expected an unauthenticated session state")
	}
}

func TestHandleListResource(t *testing.T) {
	client := mocks.NewMockAPIClient()
	client.Documents[domain.ResourcePages] = []domain.Document{
		domain.Document(`{"id":"1","title":"Home"}`),
		domain.Document(`{"id":"2","title":"About"}`),
	}
	server, _ := newTestServer(t, client)
	cookie := login(t, server)

	req := httptest.NewRequest("GET", "/api/v1/pages", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var docs []json.RawMessage
	if err := json.NewDecoder(rr.Body).Decode(&docs); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("expected 2 documents, got %d", len(docs))
	}
}

func TestHandleListResource_NoSession(t *testing.T) {
	server, _ := newTestServer(t, mocks.NewMockAPIClient())

	req := httptest.NewRequest("GET", "/api/v1/pages", nil)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestHandleListResource_UnknownResource(t *testing.T) {
	server, _ := newTestServer(t, mocks.NewMockAPIClient())
	cookie := login(t, server)

	req := httptest.NewRequest("GET", "/api/v1/widgets", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleListResource_SessionExpiredOnBackend(t *testing.T) {
	client := mocks.NewMockAPIClient()
	server, sessions := newTestServer(t, client)
	cookie := login(t, server)

	// Credentials went stale server-side after login.
	client.ListErr = &domain.StatusError{Code: 401}

	req := httptest.NewRequest("GET", "/api/v1/posts", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["redirect"] != "/views/login" {
		t.Errorf("expected login redirect, got %q", response["redirect"])
	}

	// The classifier logged the session out and the cleared state was
	// written back.
	if sessions.SaveCalls == 0 {
		t.Error("invalidated session must be persisted")
	}
	state, err := sessions.Get(req.Context(), getCookieSessionID(t, server, cookie))
	if err != nil {
		t.Fatalf("session should still exist: %v", err)
	}
	if state.Credentials.IsAuthenticated() {
		t.Error("session credentials must be cleared after a backend 401")
	}
}

func TestHandleListResource_BackendRefused(t *testing.T) {
	client := mocks.NewMockAPIClient()
	server, _ := newTestServer(t, client)
	cookie := login(t, server)

	client.ListErr = &domain.TransportError{Refused: true}

	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["redirect"] != "/views/backend-error" {
		t.Errorf("expected backend-error redirect, got %q", response["redirect"])
	}
}

func TestHandleListResource_ServerError(t *testing.T) {
	client := mocks.NewMockAPIClient()
	server, _ := newTestServer(t, client)
	cookie := login(t, server)

	client.ListErr = &domain.StatusError{Code: 500}

	req := httptest.NewRequest("GET", "/api/v1/accounts", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", rr.Code)
	}
}

func TestHandleCreateResource(t *testing.T) {
	client := mocks.NewMockAPIClient()
	server, _ := newTestServer(t, client)
	cookie := login(t, server)

	body := bytes.NewBufferString(`{"title":"New page"}`)
	req := httptest.NewRequest("POST", "/api/v1/pages", body)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(client.Documents[domain.ResourcePages]) != 1 {
		t.Errorf("expected the document to reach the backend")
	}
}

func TestHandleCreateResource_InvalidBody(t *testing.T) {
	client := mocks.NewMockAPIClient()
	server, _ := newTestServer(t, client)
	cookie := login(t, server)

	req := httptest.NewRequest("POST", "/api/v1/pages", bytes.NewBufferString("{broken"))
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleUpdateAndDeleteResource(t *testing.T) {
	client := mocks.NewMockAPIClient()
	client.Documents[domain.ResourcePosts] = []domain.Document{
		domain.Document(`{"id":"7","title":"Old"}`),
	}
	server, _ := newTestServer(t, client)
	cookie := login(t, server)

	body := bytes.NewBufferString(`{"id":"7","title":"New"}`)
	req := httptest.NewRequest("PUT", "/api/v1/posts/7", body)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("update: expected status 200, got %d", rr.Code)
	}

	req = httptest.NewRequest("DELETE", "/api/v1/posts/7", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("delete: expected status 204, got %d", rr.Code)
	}
}

func TestHandleGetResource(t *testing.T) {
	client := mocks.NewMockAPIClient()
	client.Documents[domain.ResourceUsers] = []domain.Document{
		domain.Document(`{"id":"1","name":"admin"}`),
	}
	server, _ := newTestServer(t, client)
	cookie := login(t, server)

	req := httptest.NewRequest("GET", "/api/v1/users/1", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected JSON content type, got %s", rr.Header().Get("Content-Type"))
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "invalid input")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["error"] != "invalid input" {
		t.Errorf("expected error 'invalid input', got %s", response["error"])
	}
}

func getCookieSessionID(t *testing.T, server *Server, cookie *http.Cookie) string {
	t.Helper()
	id, err := server.signer.Verify(cookie.Value)
	if err != nil {
		t.Fatalf("cookie token did not verify: %v", err)
	}
	return id
}
