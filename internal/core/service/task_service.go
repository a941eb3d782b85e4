package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
	"github.com/pmboard/taskmanager-api/internal/core/ports"
)

// TaskService implements task use cases. Tasks carry no owner; access is
// decided by the owner of the parent project.
type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	logger   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, caller domain.Identity, in ports.CreateTaskInput) (*domain.Task, error) {
	if _, err := s.ownedProject(ctx, caller, in.ProjectID); err != nil {
		return nil, err
	}

	if err := s.ensureTitleFree(ctx, in.ProjectID, in.Title); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &domain.Task{
		Project:     in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      domain.StatusOrDefault(in.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", t.ID).Str("project_id", t.Project).Msg("task created")
	return t, nil
}

func (s *TaskService) Get(ctx context.Context, caller domain.Identity, id string) (*domain.Task, error) {
	return s.authorize(ctx, caller, id)
}

func (s *TaskService) ListByProject(ctx context.Context, caller domain.Identity, projectID, search string) ([]*domain.Task, error) {
	if _, err := s.ownedProject(ctx, caller, projectID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID, search)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// Update applies a partial update. The parent project is never changed.
func (s *TaskService) Update(ctx context.Context, caller domain.Identity, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	t, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && *in.Title != t.Title {
		if err := s.ensureTitleFree(ctx, t.Project, *in.Title); err != nil {
			return nil, err
		}
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.Status != nil {
		t.Status = domain.StatusOrDefault(*in.Status)
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	t, err := s.authorize(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, t.ID); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", t.ID).Str("project_id", t.Project).Msg("task deleted")
	return nil
}

// ensureTitleFree reports domain.ErrTitleExists when a task of the project
// already uses title. The unique index backs this check up under races.
func (s *TaskService) ensureTitleFree(ctx context.Context, projectID, title string) error {
	_, err := s.tasks.FindByTitle(ctx, projectID, title)
	switch {
	case err == nil:
		return domain.ErrTitleExists
	case errors.Is(err, domain.ErrTaskNotFound):
		return nil
	default:
		return err
	}
}

// ownedProject returns domain.ErrProjectNotFound for both missing and
// foreign projects.
func (s *TaskService) ownedProject(ctx context.Context, caller domain.Identity, projectID string) (*domain.Project, error) {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccess(caller, p.CreatedBy) {
		return nil, domain.ErrProjectNotFound
	}
	return p, nil
}

// authorize loads a task and checks its parent project's owner. Unlike
// projects, a task owned by someone else yields domain.ErrForbidden rather
// than a not-found error.
func (s *TaskService) authorize(ctx context.Context, caller domain.Identity, id string) (*domain.Task, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.projects.FindByID(ctx, t.Project)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			// orphaned by an interrupted cascade delete
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	if !domain.CanAccess(caller, p.CreatedBy) {
		return nil, domain.ErrForbidden
	}
	return t, nil
}
