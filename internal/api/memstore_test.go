package api

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
	"github.com/pmboard/taskmanager-api/internal/core/ports"
)

// memStore is an in-memory stand-in for the MongoDB repositories.
type memStore struct {
	mu       sync.Mutex
	seq      int
	users    map[string]domain.User
	projects map[string]domain.Project
	tasks    map[string]domain.Task
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]domain.User{},
		projects: map[string]domain.Project{},
		tasks:    map[string]domain.Task{},
	}
}

func (s *memStore) nextID() string {
	s.seq++
	return fmt.Sprintf("%024x", s.seq)
}

type memUsers struct{ *memStore }

func (r memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return nil, domain.ErrEmailExists
	}
	c := *u
	c.ID = r.nextID()
	r.users[c.Email] = c
	return &c, nil
}

type memProjects struct{ *memStore }

func (r memProjects) Create(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID()
	r.projects[p.ID] = *p
	return nil
}

func (r memProjects) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &p, nil
}

func (r memProjects) List(_ context.Context, f ports.ProjectFilter) ([]*domain.Project, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Project
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
		c := p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Desc {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].StartDate.Before(out[j].StartDate)
	})
	total := int64(len(out))
	start := min((f.Page-1)*f.Limit, len(out))
	end := min(start+f.Limit, len(out))
	return out[start:end], total, nil
}

func (r memProjects) Update(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.projects[p.ID]; !ok || old.CreatedBy != p.CreatedBy {
		return domain.ErrProjectNotFound
	}
	r.projects[p.ID] = *p
	return nil
}

func (r memProjects) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.projects[id]; !ok || p.CreatedBy != ownerID {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type memTasks struct{ *memStore }

func (r memTasks) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.tasks {
		if o.Project == t.Project && o.Title == t.Title {
			return domain.ErrTitleExists
		}
	}
	t.ID = r.nextID()
	r.tasks[t.ID] = *t
	return nil
}

func (r memTasks) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &t, nil
}

func (r memTasks) FindByTitle(_ context.Context, projectID, title string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tasks {
		if t.Project == projectID && t.Title == title {
			return &t, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r memTasks) ListByProject(_ context.Context, projectID, search string) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.Project == projectID && (search == "" || strings.Contains(strings.ToLower(t.Title), strings.ToLower(search))) {
			c := t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memTasks) Update(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[t.ID] = *t
	return nil
}

func (r memTasks) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r memTasks) DeleteByProject(_ context.Context, projectID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, t := range r.tasks {
		if t.Project == projectID {
			delete(r.tasks, id)
			n++
		}
	}
	return n, nil
}
