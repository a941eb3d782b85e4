package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pmboard/taskmanager-api/internal/api/middleware"
	"github.com/pmboard/taskmanager-api/internal/core/domain"
)

var (
	alice = domain.Identity{ID: "aaaaaaaaaaaaaaaaaaaaaaaa", Email: "alice@example.com"}
	bob   = domain.Identity{ID: "bbbbbbbbbbbbbbbbbbbbbbbb", Email: "bob@example.com"}
)

const (
	projectID = "507f1f77bcf86cd799439011"
	taskID    = "507f1f77bcf86cd799439022"
)

// newContext builds an echo context with the real validator installed.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asCaller marks the context as authenticated, like the Auth middleware does.
func asCaller(c echo.Context, id domain.Identity) echo.Context {
	c.Set(middleware.IdentityKey, id)
	return c
}

func withParam(c echo.Context, name, value string) echo.Context {
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c
}

// decodeData unmarshals the data member of a success envelope into v.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) int {
	t.Helper()
	var env struct {
		Status int             `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
	if v != nil {
		if err := json.Unmarshal(env.Data, v); err != nil {
			t.Fatalf("invalid data: %v (%s)", err, env.Data)
		}
	}
	return env.Status
}

func validationErrors(t *testing.T, err error) []string {
	t.Helper()
	ve, ok := err.(*domain.ValidationError)
	if !ok {
		t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
	}
	return ve.Errors
}
