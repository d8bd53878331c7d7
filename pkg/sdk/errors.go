package epproxy

import "fmt"

// StatusError is returned when the proxy answers with a non-2xx status.
// The raw response body is kept for inspection.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("epproxy: unexpected status %d", e.StatusCode)
}
