package dto

import (
	"errors"
	"net/http"

	"github.com/storeboard/backend/internal/domain/shared"
	"github.com/storeboard/backend/internal/domain/storefront"
)

// Domain error codes recognized by the HTTP layer.
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeStoreNotLinked      = "STORE_NOT_LINKED"
	ErrCodeUpstreamError       = "UPSTREAM_ERROR"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeInvalidEmail        = "INVALID_EMAIL"
	ErrCodeInvalidPassword     = "INVALID_PASSWORD"
	ErrCodeInvalidStoreURL     = "INVALID_STORE_URL"
	ErrCodeInvalidStoreCreds   = "INVALID_STORE_CREDENTIALS"
	ErrCodeInvalidDisplayName  = "INVALID_DISPLAY_NAME"
	ErrCodePasswordHashFailure = "PASSWORD_HASH_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP statuses. Codes
// absent from the map fall back to 500, which keeps unexpected internal
// failures from leaking as client errors.
//
// STORE_NOT_LINKED and upstream failures both surface as 500: from the
// caller's perspective the dashboard backend failed to produce data,
// regardless of whether the store API or the missing link is to blame.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeInvalidCredentials:  http.StatusUnauthorized,
	ErrCodeStoreNotLinked:      http.StatusInternalServerError,
	ErrCodeUpstreamError:       http.StatusInternalServerError,
	ErrCodeInternalError:       http.StatusInternalServerError,
	ErrCodeInvalidEmail:        http.StatusBadRequest,
	ErrCodeInvalidPassword:     http.StatusBadRequest,
	ErrCodeInvalidStoreURL:     http.StatusBadRequest,
	ErrCodeInvalidStoreCreds:   http.StatusBadRequest,
	ErrCodeInvalidDisplayName:  http.StatusBadRequest,
	ErrCodePasswordHashFailure: http.StatusInternalServerError,
}

// HTTPStatusForCode returns the HTTP status for a domain error code.
func HTTPStatusForCode(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// MapError resolves any error returned by the application layer to an
// HTTP status and a client-facing message. Store API errors keep the
// upstream message; everything unrecognized collapses to a generic 500.
func MapError(err error) (int, string) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return HTTPStatusForCode(domainErr.Code), domainErr.Message
	}

	var apiErr *storefront.APIError
	if errors.As(err, &apiErr) {
		return http.StatusInternalServerError, apiErr.Message
	}

	var formatErr *storefront.FormatError
	if errors.As(err, &formatErr) {
		return http.StatusInternalServerError, "Store API returned an unexpected response"
	}

	return http.StatusInternalServerError, "Internal server error"
}
