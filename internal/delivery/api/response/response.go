// Package response renders the account API envelope.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope wraps every response body.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorBody is the data of a failed response that is not field-addressable.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	if data == nil {
		data = struct{}{}
	}

	return c.JSON(statusCode, Envelope{Success: true, Data: data})
}

// Error returns an error response carrying a single message
func Error(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Envelope{Success: false, Data: ErrorBody{Error: message}})
}

// Fields returns a 400 response whose data is the field to message map
func Fields(c echo.Context, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Data: fields})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, "Internal server error")
}
