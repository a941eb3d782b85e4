// Package response renders the JSON envelope shared by every endpoint.
//
//	success: {"status": 200, "data": ...}
//	failure: {"status": 404, "message": "...", "errors": [...]}
package response

import "github.com/labstack/echo/v4"

// Envelope wraps a successful payload.
type Envelope struct {
	Status int `json:"status"`
	Data   any `json:"data"`
}

// ErrorEnvelope wraps a failure. Errors is only present for validation failures.
type ErrorEnvelope struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Message is the data payload of responses that only carry a message.
type Message struct {
	Message string `json:"message"`
}

func Success(c echo.Context, code int, data any) error {
	return c.JSON(code, Envelope{Status: code, Data: data})
}

func Error(c echo.Context, code int, message string, errs ...string) error {
	return c.JSON(code, ErrorEnvelope{Status: code, Message: message, Errors: errs})
}
