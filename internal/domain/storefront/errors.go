package storefront

import "fmt"

// APIError is returned when the upstream store answers with a non-2xx
// status. Message carries the upstream-provided error text when the
// body could be parsed, otherwise the HTTP status line.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("store API error (%d): %s", e.StatusCode, e.Message)
}

// FormatError is returned when a 2xx upstream response body cannot be
// parsed as JSON. Raw keeps the offending text for diagnostics.
type FormatError struct {
	Raw string
}

func (e *FormatError) Error() string {
	return "store API returned an unparsable response"
}
