package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
	"github.com/pmboard/taskmanager-api/internal/core/ports"
	"github.com/pmboard/taskmanager-api/internal/pkg/metrics"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	MaxPage          = math.MaxInt32
)

// ProjectService implements the owner-scoped project use cases.
type ProjectService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	cache    ports.ProjectListCache
	logger   zerolog.Logger
}

// NewProjectService wires the service. cache may be nil to disable list caching.
func NewProjectService(projects ports.ProjectRepository, tasks ports.TaskRepository, cache ports.ProjectListCache, logger zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, cache: cache, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, caller domain.Identity, in ports.ProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()
	p := &domain.Project{
		Name:      in.Name,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    domain.StatusOrDefault(in.Status),
		CreatedBy: caller.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if err := p.CheckDates(); err != nil {
		return nil, err
	}

	if err := s.projects.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("owner", caller.ID).Msg("failed to create project")
		return nil, err
	}
	s.invalidate(ctx, caller.ID)

	s.logger.Info().Str("project_id", p.ID).Str("owner", caller.ID).Msg("project created")
	return p, nil
}

// List returns one page of the caller's projects.
func (s *ProjectService) List(ctx context.Context, caller domain.Identity, in ports.ListProjectsInput) (*ports.ProjectPage, error) {
	filter := ports.ProjectFilter{
		OwnerID: caller.ID,
		Search:  in.Search,
		Status:  in.Status,
		Desc:    in.Sort == "desc",
		Page:    in.Page,
		Limit:   in.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Page > MaxPage {
		filter.Page = MaxPage
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultPageLimit
	}
	if filter.Limit > MaxPageLimit {
		filter.Limit = MaxPageLimit
	}

	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		cached, ver, hit, err := s.cache.Get(ctx, filter)
		switch {
		case err != nil:
			metrics.ProjectListCacheTotal.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Str("owner", caller.ID).Msg("project list cache read failed")
		case hit:
			metrics.ProjectListCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.ProjectListCacheTotal.WithLabelValues("miss").Inc()
			version, cacheable = ver, true
		}
	}

	items, total, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Project{}
	}
	page := &ports.ProjectPage{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}

	if cacheable {
		if err := s.cache.Set(ctx, filter, version, page); err != nil {
			s.logger.Warn().Err(err).Str("owner", caller.ID).Msg("project list cache write failed")
		}
	}
	return page, nil
}

// Get returns the project and its tasks.
func (s *ProjectService) Get(ctx context.Context, caller domain.Identity, id string) (*ports.ProjectDetail, error) {
	p, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, p.ID, "")
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return &ports.ProjectDetail{Project: p, Tasks: tasks}, nil
}

// Update applies in onto the stored project and re-checks the date invariant
// on the merged result.
func (s *ProjectService) Update(ctx context.Context, caller domain.Identity, id string, in ports.ProjectInput) (*domain.Project, error) {
	p, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	p.Name = in.Name
	p.StartDate = in.StartDate
	p.Status = domain.StatusOrDefault(in.Status)
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.EndDate != nil {
		p.EndDate = in.EndDate
	}
	if err := p.CheckDates(); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, caller.ID)
	return p, nil
}

// Delete removes the project and then its tasks. The two steps are not
// atomic; a failure between them leaves orphaned tasks.
func (s *ProjectService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	p, err := s.authorize(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, p.ID, caller.ID); err != nil {
		return err
	}
	s.invalidate(ctx, caller.ID)

	n, err := s.tasks.DeleteByProject(ctx, p.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("project_id", p.ID).Msg("cascade delete of tasks failed")
		return err
	}
	metrics.CascadeDeletedTasksTotal.Add(float64(n))

	s.logger.Info().Str("project_id", p.ID).Int64("tasks_deleted", n).Msg("project deleted")
	return nil
}

// authorize loads a project and applies the ownership predicate. Missing and
// foreign projects are indistinguishable to the caller.
func (s *ProjectService) authorize(ctx context.Context, caller domain.Identity, id string) (*domain.Project, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccess(caller, p.CreatedBy) {
		return nil, domain.ErrProjectNotFound
	}
	return p, nil
}

func (s *ProjectService) invalidate(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn().Err(err).Str("owner", ownerID).Msg("project list cache invalidation failed")
	}
}
