package ports

import (
	"context"
	"time"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
)

// CreateTaskInput is the validated create payload for a task.
type CreateTaskInput struct {
	ProjectID   string
	Title       string
	Description string
	DueDate     *time.Time
	Status      string
}

// UpdateTaskInput is a partial update. It has no project field: a task's
// parent cannot change.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *string
}

// TaskService defines task use cases. Ownership derives from the parent project.
type TaskService interface {
	Create(ctx context.Context, caller domain.Identity, input CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, caller domain.Identity, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, caller domain.Identity, projectID, search string) ([]*domain.Task, error)
	Update(ctx context.Context, caller domain.Identity, id string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
}
