// Package apierrors provides structured API error codes and responses.
// All codes are namespaced (e.g., "core:forbidden", "tickets:invalid_transition").
package apierrors

import "net/http"

// Core error codes - registered automatically at init
const (
	// Authentication & Authorization
	CodeUnauthorized = "core:unauthorized"
	CodeForbidden    = "core:forbidden"

	// Request errors
	CodeInvalidRequest   = "core:invalid_request"
	CodeValidationFailed = "core:validation_failed"

	// Resource errors
	CodeNotFound = "core:not_found"
	CodeConflict = "core:conflict"

	// Rate limiting
	CodeRateLimited = "core:rate_limited"

	// Server errors
	CodeInternalError = "core:internal_error"
)

// Ticket lifecycle error codes
const (
	CodeInvalidTransition = "tickets:invalid_transition"
)

// knownErrors defines all error codes with their default messages and HTTP status
var knownErrors = []ErrorCode{
	// Authentication & Authorization
	{Code: CodeUnauthorized, Message: "Authentication required", HTTPStatus: http.StatusUnauthorized},
	{Code: CodeForbidden, Message: "Permission denied", HTTPStatus: http.StatusForbidden},

	// Request errors
	{Code: CodeInvalidRequest, Message: "Invalid request body", HTTPStatus: http.StatusBadRequest},
	{Code: CodeValidationFailed, Message: "Request validation failed", HTTPStatus: http.StatusBadRequest},

	// Resource errors
	{Code: CodeNotFound, Message: "Resource not found", HTTPStatus: http.StatusNotFound},
	{Code: CodeConflict, Message: "Resource conflict", HTTPStatus: http.StatusConflict},

	// Rate limiting
	{Code: CodeRateLimited, Message: "Too many requests", HTTPStatus: http.StatusTooManyRequests},

	// Server errors
	{Code: CodeInternalError, Message: "Internal server error", HTTPStatus: http.StatusInternalServerError},

	// Ticket lifecycle
	{Code: CodeInvalidTransition, Message: "Transition not allowed", HTTPStatus: http.StatusUnprocessableEntity},
}

func init() {
	for _, e := range knownErrors {
		Registry.Register(e)
	}
}
