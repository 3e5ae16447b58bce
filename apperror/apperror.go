// Package apperror defines the application's error taxonomy and its mapping
// to HTTP status codes. Services return *AppError values; the HTTP layer
// translates them into JSON responses through a single funnel, so no store or
// service ever writes a status code itself.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database.
	DatabaseError
	// ConfigError represents an error related to application configuration.
	ConfigError
	// AuthError represents an authentication failure (missing or bad credential).
	AuthError
	// ForbiddenError represents an authorization failure (authenticated but not allowed).
	ForbiddenError
	// NotFoundError represents a resource that does not exist.
	NotFoundError
	// ValidationError represents malformed or missing input, with optional
	// field-level messages.
	ValidationError
	// BadRequestError represents a request the server cannot parse.
	BadRequestError
	// InternalError represents a generic internal server error.
	InternalError
	// ConflictError represents a duplicate resource, e.g. an already-taken email.
	ConflictError
	// MigrationError represents an error during database migrations.
	MigrationError
)

// AppError is the application's error type. It wraps an optional underlying
// error and, for validation failures, carries per-field messages.
type AppError struct {
	Type    ErrorType
	Message string
	Fields  map[string][]string
	Err     error
}

// Error satisfies the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error, supporting errors.Is / errors.As chains.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for the error type.
// Conflicts surface as 422 rather than 409: a duplicate email is reported
// the same way as any other validation failure on the register endpoint.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, ConflictError:
		return http.StatusUnprocessableEntity
	case BadRequestError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError with an explicit type.
func NewAppError(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlying,
	}
}

// NewDatabaseError creates a DatabaseError.
func NewDatabaseError(message string, underlying error) *AppError {
	return NewAppError(DatabaseError, message, underlying)
}

// NewConfigError creates a ConfigError.
func NewConfigError(message string, underlying error) *AppError {
	return NewAppError(ConfigError, message, underlying)
}

// NewAuthError creates an AuthError.
func NewAuthError(message string, underlying error) *AppError {
	return NewAppError(AuthError, message, underlying)
}

// NewForbiddenError creates a ForbiddenError.
func NewForbiddenError(message string, underlying error) *AppError {
	return NewAppError(ForbiddenError, message, underlying)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(message string, underlying error) *AppError {
	return NewAppError(NotFoundError, message, underlying)
}

// NewValidationError creates a ValidationError without field detail.
func NewValidationError(message string, underlying error) *AppError {
	return NewAppError(ValidationError, message, underlying)
}

// NewFieldValidationError creates a ValidationError carrying per-field messages.
func NewFieldValidationError(message string, fields map[string][]string) *AppError {
	return &AppError{
		Type:    ValidationError,
		Message: message,
		Fields:  fields,
	}
}

// NewBadRequestError creates a BadRequestError.
func NewBadRequestError(message string, underlying error) *AppError {
	return NewAppError(BadRequestError, message, underlying)
}

// NewInternalError creates an InternalError.
func NewInternalError(message string, underlying error) *AppError {
	return NewAppError(InternalError, message, underlying)
}

// NewConflictError creates a ConflictError keyed to a single field.
func NewConflictError(message string, field string, fieldMessage string) *AppError {
	return &AppError{
		Type:    ConflictError,
		Message: message,
		Fields:  map[string][]string{field: {fieldMessage}},
	}
}

// NewMigrationError creates a MigrationError.
func NewMigrationError(message string, underlying error) *AppError {
	return NewAppError(MigrationError, message, underlying)
}

// ErrorResponse is the JSON error payload sent to API clients.
type ErrorResponse struct {
	Error  string              `json:"error" example:"Post not found"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// ToResponse converts an AppError into the client-facing payload. Only the
// message and field detail are exposed, never the underlying error.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Errors: e.Fields}
}

// FromError attempts to convert a generic error into an *AppError.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError reports whether err is an AuthError.
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsForbidden reports whether err is a ForbiddenError.
func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ForbiddenError
}

// IsValidation reports whether err is a ValidationError or ConflictError.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) &&
		(appErr.Type == ValidationError || appErr.Type == ConflictError)
}
