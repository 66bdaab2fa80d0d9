package errors

import (
	"maps"
	"net/http"
	"slices"
	"strings"
)

// Messages shared by the validators and the repositories.
const (
	MsgFieldRequired = "This field is required."
	MsgInvalidEmail  = "Enter a valid email address."
	MsgEmailTaken    = "user with this email already exists."
)

// FieldErrors is a validation failure addressed to individual input fields.
// It renders as the field to message map itself.
type FieldErrors map[string]string

// NewFieldError builds a FieldErrors holding one field.
func NewFieldError(field, message string) FieldErrors {
	return FieldErrors{field: message}
}

// Error implements the error interface with a stable, sorted rendering.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, field := range slices.Sorted(maps.Keys(fe)) {
		parts = append(parts, field+": "+fe[field])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// HTTPCode returns the HTTP status code
func (fe FieldErrors) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (fe FieldErrors) ErrorCode() string {
	return CodeValidation
}

// Message returns the user-facing error message
func (fe FieldErrors) Message() string {
	return "Validation failed"
}

// Details returns detailed error information
func (fe FieldErrors) Details() string {
	return fe.Error()
}
