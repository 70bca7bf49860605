package rdw

import "fmt"

// UpstreamError indicates a failed RDW call: a non-success status, a
// network failure, or a malformed payload. Failed fetches are never
// written to the cache.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("RDW API error (status %d): %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("RDW API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}
