package ports

import (
	"context"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns domain.ErrEmailExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
