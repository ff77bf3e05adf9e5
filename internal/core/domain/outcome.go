package domain

import "fmt"

// AuthStatus is the four-way result of an authentication attempt.
type AuthStatus string

const (
	AuthSuccess            AuthStatus = "success"
	AuthInvalidCredentials AuthStatus = "invalid_credentials"
	AuthBackendUnavailable AuthStatus = "backend_unavailable"
	AuthInvalidInput       AuthStatus = "invalid_input"
)

// AuthOutcome is the immutable result of one authenticate call. Construct
// only through the factory functions below.
type AuthOutcome struct {
	Status  AuthStatus `json:"status"`
	Message string     `json:"message"`
}

// SuccessOutcome reports a completed authentication.
func SuccessOutcome() AuthOutcome {
	return AuthOutcome{Status: AuthSuccess, Message: "Login successful"}
}

// InvalidCredentialsOutcome reports a 401 from the credential check.
func InvalidCredentialsOutcome() AuthOutcome {
	return AuthOutcome{Status: AuthInvalidCredentials, Message: "Invalid username or password"}
}

// InvalidInputOutcome reports missing or blank credentials; no network
// call was made.
func InvalidInputOutcome() AuthOutcome {
	return AuthOutcome{Status: AuthInvalidInput, Message: "Username and password are required"}
}

// BackendUnavailableOutcome reports a failed round trip with the given
// detail text.
func BackendUnavailableOutcome(detail string) AuthOutcome {
	return AuthOutcome{
		Status:  AuthBackendUnavailable,
		Message: fmt.Sprintf("Backend unavailable: %s", detail),
	}
}
