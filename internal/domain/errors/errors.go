package errors

import (
	"net/http"

	"tiktok/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Error codes shared by the predefined errors.
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeBadRequest            = "BAD_REQUEST"
	CodeNotFound              = "NOT_FOUND"
	CodeInvalidOrExpiredToken = "INVALID_OR_EXPIRED_TOKEN"
	CodeInvalidTokenPurpose   = "INVALID_TOKEN_PURPOSE"
	CodeNotAuthenticated      = "NOT_AUTHENTICATED"
	CodeTokenNotValid         = "TOKEN_NOT_VALID"
)

// Predefined error types. Every account failure that is the caller's fault is a 400,
// including a missing user; only session-token failures are a 401.
var (
	ErrInvalidCredentials = NewBaseError(
		http.StatusBadRequest,
		CodeValidation,
		"Invalid Credentials",
		"",
	)

	ErrMalformedRequest = NewBaseError(
		http.StatusBadRequest,
		CodeBadRequest,
		"Malformed request body",
		"",
	)

	ErrTokenRequired = NewBaseError(
		http.StatusBadRequest,
		CodeBadRequest,
		"Token is required",
		"",
	)

	ErrInvalidUserID = NewBaseError(
		http.StatusBadRequest,
		CodeBadRequest,
		"Invalid user id",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusBadRequest,
		CodeNotFound,
		"No User matches the given query.",
		"",
	)

	// Verification token decoding
	ErrInvalidOrExpiredToken = NewBaseError(
		http.StatusBadRequest,
		CodeInvalidOrExpiredToken,
		"Invalid or expired token",
		"",
	)

	ErrInvalidTokenPurpose = NewBaseError(
		http.StatusBadRequest,
		CodeInvalidTokenPurpose,
		"Invalid token purpose",
		"",
	)

	// Session tokens
	ErrNotAuthenticated = NewBaseError(
		http.StatusUnauthorized,
		CodeNotAuthenticated,
		"Authentication credentials were not provided.",
		"",
	)

	ErrTokenNotValid = NewBaseError(
		http.StatusUnauthorized,
		CodeTokenNotValid,
		"Token is invalid or expired",
		"",
	)

	ErrTokenUserNotFound = NewBaseError(
		http.StatusUnauthorized,
		CodeTokenNotValid,
		"User not found",
		"",
	)

	ErrUserInactive = NewBaseError(
		http.StatusUnauthorized,
		CodeTokenNotValid,
		"User is inactive",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-facing error message
func (e *DatabaseExecuteError) Message() string {
	return "Internal server error"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
