package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pmboard/taskmanager-api/internal/api/response"
	"github.com/pmboard/taskmanager-api/internal/core/domain"
)

const msgValidation = "Validation error"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes and renders them in the error envelope.
// Unexpected errors are logged and returned as 500 with their message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, details := resolveError(err, log, c)

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = response.Error(c, code, msg, details...)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, []string) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, msgValidation, ve.Errors
	}

	var ide *domain.InvalidIDError
	if errors.As(err, &ide) {
		return http.StatusBadRequest, ide.Error(), nil
	}

	switch {
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusBadRequest, "Email already in use", nil
	case errors.Is(err, domain.ErrTitleExists):
		return http.StatusBadRequest, "Task title already exists in this project", nil
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized", nil
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token", nil
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password", nil
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Forbidden", nil
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "Project not found", nil
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "Task not found", nil
	}

	// Echo's own errors: unknown routes, wrong methods, body limit.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			return http.StatusNotFound, "Route not found", nil
		case http.StatusMethodNotAllowed:
			return http.StatusMethodNotAllowed, "Method not allowed", nil
		}
		if he.Code >= http.StatusInternalServerError {
			logUnhandled(log, c, err)
		}
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	logUnhandled(log, c, err)
	return http.StatusInternalServerError, err.Error(), nil
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
