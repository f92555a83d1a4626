package shared

import "fmt"

// DomainError carries a stable machine-readable code alongside a
// human-readable message. Handlers map codes to HTTP statuses.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewDomainError creates a domain error with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Common domain errors.
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "resource already exists")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "invalid input")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrStoreNotLinked     = NewDomainError("STORE_NOT_LINKED", "No store has been connected to this account")
	ErrUpstream           = NewDomainError("UPSTREAM_ERROR", "upstream store request failed")
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error")
)
