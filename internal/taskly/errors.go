package taskly

import "fmt"

// UpstreamError reports a failed backend call. A StatusCode of zero means the
// request never produced a response (network failure or timeout); any other
// value is the non-2xx status the backend answered with. Upstream failures
// are never retried.
type UpstreamError struct {
	// Op is the operation that failed (e.g. "get_tasks", "create_note").
	Op string

	// StatusCode is the HTTP status of the backend response, or 0 when no
	// response was received.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("taskly %s: backend returned status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("taskly %s: backend unreachable: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Network reports whether the failure happened before any response arrived.
func (e *UpstreamError) Network() bool {
	return e.StatusCode == 0
}
