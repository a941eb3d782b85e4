package ports

import (
	"context"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
)

// ProjectFilter carries the query parameters for listing a user's projects.
type ProjectFilter struct {
	OwnerID string // always set by the service
	Search  string // optional: case-insensitive substring of name
	Status  string // optional: exact status
	Desc    bool   // sort by startDate descending when true
	Page    int    // 1-based
	Limit   int
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	// Create inserts p and sets its ID and timestamps.
	Create(ctx context.Context, p *domain.Project) error
	// FindByID returns domain.ErrProjectNotFound when missing. It does not
	// apply ownership; callers check domain.CanAccess.
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns one page of matching projects and the total match count.
	List(ctx context.Context, filter ProjectFilter) ([]*domain.Project, int64, error)
	// Update persists the mutable fields of p, scoped to p.CreatedBy.
	Update(ctx context.Context, p *domain.Project) error
	// Delete removes the project, scoped to ownerID.
	Delete(ctx context.Context, id, ownerID string) error
}

// ProjectListCache memoises List results per owner. Implementations must treat
// any write by an owner as invalidating all of that owner's cached pages.
//
// Get returns the owner's cache version it looked up, hit or miss. Set must be
// given that version, so a page read before a concurrent Invalidate is stored
// where no later Get looks.
type ProjectListCache interface {
	Get(ctx context.Context, filter ProjectFilter) (page *ProjectPage, version int64, hit bool, err error)
	Set(ctx context.Context, filter ProjectFilter, version int64, page *ProjectPage) error
	Invalidate(ctx context.Context, ownerID string) error
}
