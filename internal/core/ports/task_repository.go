package ports

import (
	"context"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	// Create returns domain.ErrTitleExists when (project, title) is taken.
	Create(ctx context.Context, t *domain.Task) error
	// FindByID returns domain.ErrTaskNotFound when missing.
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// FindByTitle returns domain.ErrTaskNotFound when no sibling has title.
	FindByTitle(ctx context.Context, projectID, title string) (*domain.Task, error)
	// ListByProject returns the project's tasks; a non-empty search matches
	// title or description case-insensitively.
	ListByProject(ctx context.Context, projectID, search string) ([]*domain.Task, error)
	// Update persists the mutable fields of t. The parent project is never written.
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	// DeleteByProject removes every task of a project and reports how many.
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}
