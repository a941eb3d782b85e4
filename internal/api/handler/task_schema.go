package handler

import (
	"github.com/pmboard/taskmanager-api/internal/core/domain"
	"github.com/pmboard/taskmanager-api/internal/core/ports"
)

type createTaskRequest struct {
	Project     string `json:"project"     validate:"required,mongodb"`
	Title       string `json:"title"       validate:"required,min=3"`
	Description string `json:"description" validate:"omitempty,max=500"`
	DueDate     string `json:"dueDate"     validate:"omitempty,isodate,notpast"`
	Status      string `json:"status"      validate:"omitempty,status"`
}

func (r createTaskRequest) toInput() (ports.CreateTaskInput, error) {
	due, err := parseOptionalDate(&r.DueDate)
	if err != nil {
		return ports.CreateTaskInput{}, domain.NewValidationError("dueDate must be a valid date")
	}
	return ports.CreateTaskInput{
		ProjectID:   r.Project,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     due,
		Status:      r.Status,
	}, nil
}

// updateTaskRequest has no project field, so a project sent by the client is
// dropped during binding.
type updateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=3"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	DueDate     *string `json:"dueDate"     validate:"omitempty,isodate,notpast"`
	Status      *string `json:"status"      validate:"omitempty,status"`
}

func (r updateTaskRequest) toInput() (ports.UpdateTaskInput, error) {
	due, err := parseOptionalDate(r.DueDate)
	if err != nil {
		return ports.UpdateTaskInput{}, domain.NewValidationError("dueDate must be a valid date")
	}
	in := ports.UpdateTaskInput{
		Description: r.Description,
		DueDate:     due,
	}
	if r.Title != nil && *r.Title != "" {
		in.Title = r.Title
	}
	if r.Status != nil && *r.Status != "" {
		in.Status = r.Status
	}
	return in, nil
}

type taskResponse struct {
	Task    *domain.Task `json:"task"`
	Message string       `json:"message,omitempty"`
}

type taskListResponse struct {
	Items []*domain.Task `json:"items"`
}
