package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/pmboard/taskmanager-api/internal/api/middleware"
	"github.com/pmboard/taskmanager-api/internal/core/domain"
)

var idValidator = validator.New()

// caller returns the identity injected by the Auth middleware. A missing
// identity means the route was mounted without the middleware.
func caller(c echo.Context) (domain.Identity, error) {
	id, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok || id.ID == "" {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return id, nil
}

// pathID reads a path parameter that must be a MongoDB ObjectID.
func pathID(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if err := idValidator.Var(v, "required,mongodb"); err != nil {
		return "", &domain.InvalidIDError{Param: name}
	}
	return v, nil
}

// bindAndValidate binds the request into req and runs the registered validator.
// Malformed bodies are reported like any other validation failure.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("Invalid request payload")
	}
	return c.Validate(req)
}
