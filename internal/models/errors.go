package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind represents the category of error
type ErrorKind string

const (
	// ErrorKindUnauthorized means identity was not established (401)
	ErrorKindUnauthorized ErrorKind = "unauthorized"
	// ErrorKindForbidden means identity was established but privilege is insufficient (403)
	ErrorKindForbidden ErrorKind = "forbidden"
	// ErrorKindBadRequest means malformed input or a scoping mismatch (400)
	ErrorKindBadRequest ErrorKind = "bad_request"
	// ErrorKindNotFound means a referenced entity is absent (404)
	ErrorKindNotFound ErrorKind = "not_found"
	// ErrorKindConflict means a uniqueness violation (409)
	ErrorKindConflict ErrorKind = "conflict"
	// ErrorKindInternal represents internal server errors (500)
	ErrorKindInternal ErrorKind = "internal"
)

// Client-safe default messages. Internal error text never reaches a response.
const (
	UnauthorizedMessage = "Unauthorized, no access"
	ForbiddenMessage    = "Forbidden, no access"
	BadRequestMessage   = "Bad request, please check your input"
	NotFoundMessage     = "Item not found"
	ConflictMessage     = "Item already exists"
)

// AppError represents a structured application error
type AppError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Code    string    `json:"code,omitzero"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap allows error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status code for the error kind
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case ErrorKindUnauthorized:
		return http.StatusUnauthorized
	case ErrorKindForbidden:
		return http.StatusForbidden
	case ErrorKindBadRequest:
		return http.StatusBadRequest
	case ErrorKindNotFound:
		return http.StatusNotFound
	case ErrorKindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorItem is a single entry of the uniform error body.
type ErrorItem struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorBody is the uniform error response shape: {errors: [{message, code}]}.
type ErrorBody struct {
	Errors []ErrorItem `json:"errors"`
}

// Body renders the error as the uniform client-facing body.
func (e *AppError) Body() ErrorBody {
	code := e.Code
	if code == "" {
		code = "1"
	}
	return ErrorBody{Errors: []ErrorItem{{Message: e.Message, Code: code}}}
}

func NewUnauthorizedError(cause error) *AppError {
	return &AppError{Kind: ErrorKindUnauthorized, Message: UnauthorizedMessage, Cause: cause}
}

func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = ForbiddenMessage
	}
	return &AppError{Kind: ErrorKindForbidden, Message: message}
}

func NewBadRequestError(message string, cause error) *AppError {
	if message == "" {
		message = BadRequestMessage
	}
	return &AppError{Kind: ErrorKindBadRequest, Message: message, Cause: cause}
}

func NewNotFoundError(cause error) *AppError {
	return &AppError{Kind: ErrorKindNotFound, Message: NotFoundMessage, Cause: cause}
}

func NewConflictError(cause error) *AppError {
	return &AppError{Kind: ErrorKindConflict, Message: ConflictMessage, Cause: cause}
}

func NewInternalError(cause error) *AppError {
	return &AppError{Kind: ErrorKindInternal, Message: "internal server error", Cause: cause}
}

// SanitizeError converts any error into a client-safe AppError. AppErrors keep
// their kind and message but shed the internal cause; unknown errors become a
// generic internal error.
func SanitizeError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Kind:    appErr.Kind,
			Message: appErr.Message,
			Code:    appErr.Code,
		}
	}
	return &AppError{Kind: ErrorKindInternal, Message: "internal server error"}
}
