package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionNotFound indicates the console session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired indicates the console session has expired
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidCredentials indicates a wrong username/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrBackendUnavailable indicates the remote API could not be reached
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// ErrorKind tags the classification of a failed remote call.
type ErrorKind string

const (
	// ErrorKindAuthentication means the backend rejected the session's
	// credentials (HTTP 401).
	ErrorKindAuthentication ErrorKind = "authentication"

	// ErrorKindService means the backend answered with a non-401 failure,
	// or the failure was unexpected but not a transport fault.
	ErrorKindService ErrorKind = "service"

	// ErrorKindConnection means no response could be obtained from the backend.
	ErrorKindConnection ErrorKind = "connection"
)

// ClassifiedError is the single error type produced by the shared
// remote-call classification policy. Callers match on Kind rather than
// re-deriving transport details themselves.
type ClassifiedError struct {
	Kind    ErrorKind
	Message string
	Status  int // HTTP status for authentication/service kinds, 0 otherwise
	Err     error
}

func (e *ClassifiedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a ClassifiedError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *ClassifiedError
	return errors.As(err, &ce) && ce.Kind == kind
}
