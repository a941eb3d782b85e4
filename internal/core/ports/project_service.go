package ports

import (
	"context"
	"time"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
)

// ProjectInput is the validated create/update payload for a project.
// Nil optional fields are left untouched on update.
type ProjectInput struct {
	Name        string
	Description *string
	StartDate   time.Time
	EndDate     *time.Time
	Status      string
}

// ListProjectsInput carries the list endpoint's query parameters.
type ListProjectsInput struct {
	Search string
	Status string
	Sort   string // "asc" (default) or "desc"
	Page   int
	Limit  int
}

// ProjectPage is one page of the caller's projects.
type ProjectPage struct {
	Items []*domain.Project `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ProjectDetail is a project together with its tasks.
type ProjectDetail struct {
	Project *domain.Project `json:"project"`
	Tasks   []*domain.Task  `json:"tasks"`
}

// ProjectService defines the owner-scoped project use cases.
type ProjectService interface {
	Create(ctx context.Context, caller domain.Identity, input ProjectInput) (*domain.Project, error)
	List(ctx context.Context, caller domain.Identity, input ListProjectsInput) (*ProjectPage, error)
	Get(ctx context.Context, caller domain.Identity, id string) (*ProjectDetail, error)
	Update(ctx context.Context, caller domain.Identity, id string, input ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
}
