package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
	"github.com/pmboard/taskmanager-api/internal/core/ports"
)

// ids hands out deterministic 24-hex identifiers.
type ids struct{ n int }

func (g *ids) next() string {
	g.n++
	return fmt.Sprintf("%024x", g.n)
}

type stubProjectRepo struct {
	mu       sync.Mutex
	ids      ids
	projects map[string]*domain.Project
	lastList ports.ProjectFilter
	listErr  error
	// afterList runs once List has read the store.
	afterList func()
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func cloneProject(p *domain.Project) *domain.Project {
	c := *p
	return &c
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.ids.next()
	r.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) List(_ context.Context, f ports.ProjectFilter) ([]*domain.Project, int64, error) {
	items, total, err := r.list(f)
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return items, total, err
}

func (r *stubProjectRepo) list(f ports.ProjectFilter) ([]*domain.Project, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastList = f
	if r.listErr != nil {
		return nil, 0, r.listErr
	}

	var matched []*domain.Project
	for _, p := range r.projects {
		if p.CreatedBy != f.OwnerID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		matched = append(matched, cloneProject(p))
	}
	sort.Slice(matched, func(i, j int) bool {
		if f.Desc {
			return matched[i].StartDate.After(matched[j].StartDate)
		}
		return matched[i].StartDate.Before(matched[j].StartDate)
	})

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.projects[p.ID]
	if !ok || stored.CreatedBy != p.CreatedBy {
		return domain.ErrProjectNotFound
	}
	r.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || p.CreatedBy != ownerID {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type stubTaskRepo struct {
	mu          sync.Mutex
	ids         ids
	tasks       map[string]*domain.Task
	deleteByErr error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	return &c
}

func (r *stubTaskRepo) titleTaken(projectID, title, exceptID string) bool {
	for _, t := range r.tasks {
		if t.Project == projectID && t.Title == title && t.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.titleTaken(t.Project, t.Title, "") {
		return domain.ErrTitleExists
	}
	t.ID = r.ids.next()
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) FindByTitle(_ context.Context, projectID, title string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tasks {
		if t.Project == projectID && t.Title == title {
			return cloneTask(t), nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) ListByProject(_ context.Context, projectID, search string) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(search)
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.Project != projectID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Title), q) && !strings.Contains(strings.ToLower(t.Description), q) {
			continue
		}
		out = append(out, cloneTask(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tasks[t.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if r.titleTaken(stored.Project, t.Title, t.ID) {
		return domain.ErrTitleExists
	}
	c := cloneTask(t)
	c.Project = stored.Project
	r.tasks[t.ID] = c
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) DeleteByProject(_ context.Context, projectID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteByErr != nil {
		return 0, r.deleteByErr
	}
	var n int64
	for id, t := range r.tasks {
		if t.Project == projectID {
			delete(r.tasks, id)
			n++
		}
	}
	return n, nil
}

type cacheKey struct {
	filter  ports.ProjectFilter
	version int64
}

// stubCache mirrors the versioned layout of the Redis cache.
type stubCache struct {
	versions    map[string]int64
	pages       map[cacheKey]*ports.ProjectPage
	invalidated []string
	getErr      error
	sets        int
}

func newStubCache() *stubCache {
	return &stubCache{
		versions: make(map[string]int64),
		pages:    make(map[cacheKey]*ports.ProjectPage),
	}
}

func (c *stubCache) Get(_ context.Context, f ports.ProjectFilter) (*ports.ProjectPage, int64, bool, error) {
	if c.getErr != nil {
		return nil, 0, false, c.getErr
	}
	ver := c.versions[f.OwnerID]
	p, ok := c.pages[cacheKey{f, ver}]
	return p, ver, ok, nil
}

func (c *stubCache) Set(_ context.Context, f ports.ProjectFilter, version int64, p *ports.ProjectPage) error {
	c.sets++
	c.pages[cacheKey{f, version}] = p
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, ownerID string) error {
	c.invalidated = append(c.invalidated, ownerID)
	c.versions[ownerID]++
	return nil
}
