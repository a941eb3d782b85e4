package ports

import (
	"context"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
)

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Gender   string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs bearer tokens for an authenticated subject.
type TokenIssuer interface {
	Issue(subjectID, subjectEmail string) (string, error)
}

// TokenVerifier validates a bearer token and returns the identity it carries.
// Any failure is reported as domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}
