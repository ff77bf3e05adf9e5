package domain

import (
	"encoding/base64"
	"sync"
)

// Credential is the operator's username/password pair. It lives only in
// session memory and is overwritten on each successful authentication.
type Credential struct {
	Username string `json:"-"` // Never serialize
	Password string `json:"-"` // Never serialize
}

// BasicAuthHeader computes an Authorization header value of the form
// "Basic " + base64(username:password).
func BasicAuthHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// CredentialStore holds the current credential pair and authenticated flag
// for one operator session. It is injected into every component that needs
// it, never reached through a global. Console requests for one session may
// arrive on concurrent goroutines, hence the mutex.
type CredentialStore struct {
	mu            sync.RWMutex
	credential    Credential
	authenticated bool
}

// NewCredentialStore creates an empty, unauthenticated store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

// Store sets the credential pair and marks the session authenticated.
// Validation is the auth gateway's job, not the store's.
func (s *CredentialStore) Store(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = Credential{Username: username, Password: password}
	s.authenticated = true
}

// Clear resets the store. Idempotent.
func (s *CredentialStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = Credential{}
	s.authenticated = false
}

// IsAuthenticated returns the current flag; false if never set.
func (s *CredentialStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Username returns the stored username, empty if unauthenticated.
func (s *CredentialStore) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential.Username
}

// BasicAuthHeader returns the Authorization header value for the stored
// credential, or the empty string when unauthenticated or when either
// component is missing.
func (s *CredentialStore) BasicAuthHeader() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.authenticated || s.credential.Username == "" || s.credential.Password == "" {
		return ""
	}
	return BasicAuthHeader(s.credential.Username, s.credential.Password)
}

// Snapshot returns the current credential and flag for persistence
// adapters. The password leaves the process only through stores that
// encrypt it at rest.
func (s *CredentialStore) Snapshot() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential, s.authenticated
}

// Restore replaces the store contents from a persisted snapshot.
func (s *CredentialStore) Restore(cred Credential, authenticated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = cred
	s.authenticated = authenticated
}
