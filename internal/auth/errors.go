package auth

import "fmt"

// AuthError reports an authentication failure: a missing, malformed, invalid
// or expired credential. It always maps to HTTP 401 and is never retried.
type AuthError struct {
	// Reason is a caller-safe description of the failure.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unauthenticated: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unauthenticated: %s", e.Reason)
}

// Unwrap implements the errors.Unwrap interface.
func (e *AuthError) Unwrap() error {
	return e.Err
}
