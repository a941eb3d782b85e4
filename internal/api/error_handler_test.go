package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pmboard/taskmanager-api/internal/api/response"
	"github.com/pmboard/taskmanager-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		code     int
		message  string
		nDetails int
	}{
		{"validation", domain.NewValidationError("a", "b"), 400, "Validation error", 2},
		{"invalid id", &domain.InvalidIDError{Param: "id"}, 400, "Invalid id parameter: id", 0},
		{"email exists", domain.ErrEmailExists, 400, "Email already in use", 0},
		{"title exists", domain.ErrTitleExists, 400, "Task title already exists in this project", 0},
		{"unauthorized", domain.ErrUnauthorized, 401, "Unauthorized", 0},
		{"invalid token", errors.Join(domain.ErrInvalidToken, errors.New("token is expired")), 401, "Invalid token", 0},
		{"credentials", domain.ErrInvalidCredentials, 401, "Invalid email or password", 0},
		{"forbidden", domain.ErrForbidden, 403, "Forbidden", 0},
		{"project", fmt.Errorf("find: %w", domain.ErrProjectNotFound), 404, "Project not found", 0},
		{"task", domain.ErrTaskNotFound, 404, "Task not found", 0},
		{"route", echo.ErrNotFound, 404, "Route not found", 0},
		{"method", echo.ErrMethodNotAllowed, 405, "Method not allowed", 0},
		{"body limit", echo.ErrStatusRequestEntityTooLarge, 413, "Request Entity Too Large", 0},
		{"unexpected", errors.New("connection refused"), 500, "connection refused", 0},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body response.ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Status != tc.code || body.Message != tc.message {
				t.Fatalf("unexpected envelope %+v", body)
			}
			if len(body.Errors) != tc.nDetails {
				t.Fatalf("expected %d details, got %v", tc.nDetails, body.Errors)
			}
		})
	}
}

func TestHTTPErrorHandler_Committed(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrForbidden, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response must not be rewritten")
	}
}
