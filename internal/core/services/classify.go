package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driving"
)

// Classify maps a failed remote call to exactly one ClassifiedError. Every
// resource caller goes through this function; the policy is never
// re-derived per call site.
//
// A 401 invalidates the session as a side effect of classification: the
// gateway's Logout is invoked exactly once before the error is returned.
func Classify(err error, gateway driving.AuthGateway) *domain.ClassifiedError {
	var transportErr *domain.TransportError
	if errors.As(err, &transportErr) {
		return &domain.ClassifiedError{
			Kind:    domain.ErrorKindConnection,
			Message: "backend connection failed",
			Err:     err,
		}
	}

	var statusErr *domain.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Code == http.StatusUnauthorized {
			gateway.Logout()
			return &domain.ClassifiedError{
				Kind:    domain.ErrorKindAuthentication,
				Message: "session expired",
				Status:  statusErr.Code,
				Err:     err,
			}
		}
		return &domain.ClassifiedError{
			Kind:    domain.ErrorKindService,
			Message: fmt.Sprintf("backend error: status %d", statusErr.Code),
			Status:  statusErr.Code,
			Err:     err,
		}
	}

	return &domain.ClassifiedError{
		Kind:    domain.ErrorKindService,
		Message: "unexpected error",
		Err:     err,
	}
}
