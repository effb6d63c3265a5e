package api

import "errors"

// NetworkErrorMessage is surfaced when no response could be obtained at all.
const NetworkErrorMessage = "Network error. Please check your connection."

// APIError represents a failed request against the reminders API. Status is
// the HTTP status code, or 0 for network-level and other non-HTTP failures.
// Body holds the server-supplied error payload when one could be parsed.
type APIError struct {
	Status  int
	Message string
	Body    map[string]interface{}
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNetworkError reports whether err is a connectivity failure (no response
// received), as opposed to a server-side rejection.
func IsNetworkError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 0 && apiErr.Message == NetworkErrorMessage
}

// StatusOf returns the HTTP status carried by err, or 0 if err is not an
// APIError or no response was received.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
