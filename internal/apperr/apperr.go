// Package apperr defines the normalized error envelope the dashboard
// returns to the UI. Upstream failures of any shape are mapped onto one
// consistent form with retry guidance, so every view renders errors the
// same way.
package apperr

import (
	"net/http"
	"strconv"
)

// Error codes
const (
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	CodeAuthRequired        = "AUTH_REQUIRED"
	CodeAccessDenied        = "ACCESS_DENIED"
	CodeInternalError       = "INTERNAL_ERROR"
	CodeGatewayTimeout      = "GATEWAY_TIMEOUT"
	CodeBadRequest          = "BAD_REQUEST"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeNotFound            = "NOT_FOUND"
	CodeNetworkError        = "NETWORK_ERROR"
	CodeUnknownError        = "UNKNOWN_ERROR"
)

// Error is a normalized error envelope. It carries the HTTP status the
// dashboard should answer with alongside the UI-facing fields.
type Error struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	IsRetryable bool   `json:"is_retryable"`
	RetryAfter  int    `json:"retry_after,omitempty"` // seconds
	RequestID   string `json:"request_id,omitempty"`
	Status      int    `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// statusMapping defines how upstream HTTP status codes map to normalized errors.
var statusMapping = map[int]struct {
	code        string
	message     string
	isRetryable bool
	retryAfter  int
}{
	http.StatusBadGateway: {
		code:        CodeUpstreamUnavailable,
		message:     "Review service is temporarily unavailable",
		isRetryable: true,
		retryAfter:  5,
	},
	http.StatusServiceUnavailable: {
		code:        CodeServiceUnavailable,
		message:     "Service is temporarily unavailable",
		isRetryable: true,
		retryAfter:  10,
	},
	http.StatusTooManyRequests: {
		code:        CodeRateLimitExceeded,
		message:     "Rate limit exceeded, please slow down",
		isRetryable: true,
		retryAfter:  60,
	},
	http.StatusUnauthorized: {
		code:        CodeAuthRequired,
		message:     "Authentication token is invalid or expired",
		isRetryable: false,
	},
	http.StatusForbidden: {
		code:        CodeAccessDenied,
		message:     "Access to this resource is denied",
		isRetryable: false,
	},
	http.StatusInternalServerError: {
		code:        CodeInternalError,
		message:     "An internal error occurred",
		isRetryable: true,
		retryAfter:  5,
	},
	http.StatusGatewayTimeout: {
		code:        CodeGatewayTimeout,
		message:     "Review service timed out",
		isRetryable: true,
		retryAfter:  10,
	},
	http.StatusBadRequest: {
		code:        CodeBadRequest,
		message:     "The request was malformed or invalid",
		isRetryable: false,
	},
	http.StatusNotFound: {
		code:        CodeNotFound,
		message:     "The requested resource was not found",
		isRetryable: false,
	},
}

// FromStatus converts an upstream HTTP status code (plus an optional
// Retry-After header value) to a normalized error.
func FromStatus(statusCode int, retryAfterHeader string) *Error {
	mapping, ok := statusMapping[statusCode]
	if !ok {
		return &Error{
			Code:    CodeUnknownError,
			Message: "An unexpected error occurred",
			Status:  http.StatusBadGateway,
		}
	}

	retryAfter := mapping.retryAfter
	if retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil && seconds > 0 {
			retryAfter = seconds
		}
	}

	return &Error{
		Code:        mapping.code,
		Message:     mapping.message,
		IsRetryable: mapping.isRetryable,
		RetryAfter:  retryAfter,
		Status:      statusCode,
	}
}

// Network creates a normalized error for failures where the upstream could
// not be reached at all.
func Network() *Error {
	return &Error{
		Code:        CodeNetworkError,
		Message:     "Unable to connect to review service",
		IsRetryable: true,
		RetryAfter:  5,
		Status:      http.StatusBadGateway,
	}
}

// Unavailable creates a normalized error for requests rejected locally
// because the circuit to upstream is open.
func Unavailable(retryAfter int) *Error {
	return &Error{
		Code:        CodeUpstreamUnavailable,
		Message:     "Review service is temporarily unavailable",
		IsRetryable: true,
		RetryAfter:  retryAfter,
		Status:      http.StatusServiceUnavailable,
	}
}

// AuthRequired creates the envelope behind the login gate modal.
func AuthRequired() *Error {
	return &Error{
		Code:    CodeAuthRequired,
		Message: "Please log in to continue",
		Status:  http.StatusUnauthorized,
	}
}

// Validation creates a normalized error for client-side validation
// failures, blocked before any upstream request is issued.
func Validation(message string) *Error {
	return &Error{
		Code:    CodeValidationFailed,
		Message: message,
		Status:  http.StatusUnprocessableEntity,
	}
}

// From coerces any error into a normalized one. Errors that are already
// normalized pass through unchanged; everything else becomes an internal
// error.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*Error); ok {
		return appErr
	}
	return &Error{
		Code:        CodeInternalError,
		Message:     "An internal error occurred",
		IsRetryable: true,
		RetryAfter:  5,
		Status:      http.StatusInternalServerError,
	}
}
