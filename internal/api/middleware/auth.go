package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
	"github.com/pmboard/taskmanager-api/internal/core/ports"
)

// IdentityKey is the echo context key the caller's domain.Identity is stored under.
const IdentityKey = "identity"

// Auth validates the bearer token and injects the caller's identity into the
// context. The user store is never consulted.
func Auth(tokens ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return domain.ErrUnauthorized
			}

			id, err := tokens.Verify(strings.TrimSpace(raw))
			if err != nil {
				if errors.Is(err, domain.ErrInvalidToken) {
					return err
				}
				return errors.Join(domain.ErrInvalidToken, err)
			}

			c.Set(IdentityKey, id)
			return next(c)
		}
	}
}
