package hr

import "fmt"

// APIError is a non-2xx reply from the HR platform. Code carries the
// platform's error code when the body includes one; user-facing text is
// resolved through the message catalogue, never from this error.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("hr api: status %d code %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("hr api: status %d", e.StatusCode)
}
