package provider

import "fmt"

// APIError is returned when the provider answers with a non-success
// HTTP status. StatusCode and Body are the provider's own; they are
// surfaced (escaped) in gateway error responses for debugging
// misconfiguration.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider request failed: status=%d body=%s", e.StatusCode, e.Body)
}
