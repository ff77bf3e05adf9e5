package domain

import "fmt"

// StatusError is returned by the API client when the backend produced a
// response with a non-2xx status code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.Code)
}

// TransportError is returned by the API client when no response could be
// obtained at all (connection refused, DNS failure, timeout before any
// response).
type TransportError struct {
	Refused bool // connection refused / host unreachable
	Err     error
}

func (e *TransportError) Error() string {
	if e.Refused {
		return fmt.Sprintf("connection refused: %v", e.Err)
	}
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
