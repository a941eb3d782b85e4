//go:build integration

package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
	"github.com/pmboard/taskmanager-api/internal/core/ports"
	"github.com/pmboard/taskmanager-api/internal/infrastructure/db/mongo"
)

// RepositorySuite runs the MongoDB repositories against a throwaway mongod.
type RepositorySuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	client    *mongodriver.Client
	db        *mongodriver.Database

	users    *mongo.UserRepository
	projects *mongo.ProjectRepository
	tasks    *mongo.TaskRepository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "27017")
	s.Require().NoError(err)

	s.client, s.db, err = mongo.Connect(s.ctx, mongo.Config{
		URI:      fmt.Sprintf("mongodb://%s:%s", host, port.Port()),
		Database: "taskmanager_test",
	})
	s.Require().NoError(err)
	s.Require().NoError(mongo.EnsureIndexes(s.ctx, s.db))

	s.users = mongo.NewUserRepository(s.db)
	s.projects = mongo.NewProjectRepository(s.db)
	s.tasks = mongo.NewTaskRepository(s.db)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Disconnect(s.ctx)
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *RepositorySuite) SetupTest() {
	for _, coll := range []string{"users", "projects", "tasks"} {
		_, err := s.db.Collection(coll).DeleteMany(s.ctx, map[string]any{})
		s.Require().NoError(err)
	}
}

func (s *RepositorySuite) newUser(email string) string {
	u, err := s.users.Create(s.ctx, &domain.User{Name: "User", Email: email, PasswordHash: "x"})
	s.Require().NoError(err)
	return u.ID
}

func (s *RepositorySuite) newProject(owner, name string, start time.Time) *domain.Project {
	p := &domain.Project{
		Name:      name,
		StartDate: start,
		Status:    domain.StatusPending,
		CreatedBy: owner,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.projects.Create(s.ctx, p))
	s.Require().NotEmpty(p.ID)
	return p
}

func (s *RepositorySuite) newTask(projectID, title string) *domain.Task {
	t := &domain.Task{
		Project:   projectID,
		Title:     title,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.tasks.Create(s.ctx, t))
	return t
}

func (s *RepositorySuite) TestPing() {
	s.NoError(mongo.Ping(s.ctx, s.db))
}

func (s *RepositorySuite) TestUser_EmailIsUnique() {
	s.newUser("alice@example.com")

	_, err := s.users.Create(s.ctx, &domain.User{Name: "Again", Email: "alice@example.com", PasswordHash: "x"})
	s.ErrorIs(err, domain.ErrEmailExists)

	found, err := s.users.FindByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal("User", found.Name)

	_, err = s.users.FindByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, domain.ErrUserNotFound)
}

func (s *RepositorySuite) TestProject_ListPaginates() {
	owner := s.newUser("alice@example.com")
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		s.newProject(owner, fmt.Sprintf("Project %d", i), base.AddDate(0, 0, i))
	}

	items, total, err := s.projects.List(s.ctx, ports.ProjectFilter{OwnerID: owner, Page: 2, Limit: 2})
	s.Require().NoError(err)
	s.EqualValues(5, total)
	s.Require().Len(items, 2)
	s.Equal("Project 3", items[0].Name)
	s.Equal("Project 4", items[1].Name)

	items, _, err = s.projects.List(s.ctx, ports.ProjectFilter{OwnerID: owner, Page: 1, Limit: 1, Desc: true})
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal("Project 5", items[0].Name)
}

func (s *RepositorySuite) TestProject_ListFiltersAndEscapesSearch() {
	owner := s.newUser("alice@example.com")
	other := s.newUser("bob@example.com")
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.newProject(owner, "Website (v2)", start)
	s.newProject(owner, "Mobile app", start)
	s.newProject(other, "Website (v2) clone", start)

	items, total, err := s.projects.List(s.ctx, ports.ProjectFilter{OwnerID: owner, Search: "(V2", Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Require().Len(items, 1)
	s.Equal("Website (v2)", items[0].Name)

	_, total, err = s.projects.List(s.ctx, ports.ProjectFilter{OwnerID: owner, Status: string(domain.StatusCompleted), Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *RepositorySuite) TestProject_WritesAreOwnerScoped() {
	owner := s.newUser("alice@example.com")
	other := s.newUser("bob@example.com")
	p := s.newProject(owner, "Owned", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	hijack := *p
	hijack.CreatedBy = other
	hijack.Name = "Hijacked"
	s.ErrorIs(s.projects.Update(s.ctx, &hijack), domain.ErrProjectNotFound)
	s.ErrorIs(s.projects.Delete(s.ctx, p.ID, other), domain.ErrProjectNotFound)

	p.Name = "Renamed"
	s.Require().NoError(s.projects.Update(s.ctx, p))
	got, err := s.projects.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Renamed", got.Name)
	s.Equal(owner, got.CreatedBy)

	_, err = s.projects.FindByID(s.ctx, "not-an-id")
	s.ErrorIs(err, domain.ErrProjectNotFound)
}

func (s *RepositorySuite) TestTask_TitleUniquePerProject() {
	owner := s.newUser("alice@example.com")
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p1 := s.newProject(owner, "One", start)
	p2 := s.newProject(owner, "Two", start)

	first := s.newTask(p1.ID, "Design")
	s.newTask(p2.ID, "Design")

	err := s.tasks.Create(s.ctx, &domain.Task{Project: p1.ID, Title: "Design", Status: domain.StatusPending})
	s.ErrorIs(err, domain.ErrTitleExists)

	second := s.newTask(p1.ID, "Build")
	second.Title = first.Title
	s.ErrorIs(s.tasks.Update(s.ctx, second), domain.ErrTitleExists)
}

func (s *RepositorySuite) TestTask_UpdateClearsDueDate() {
	owner := s.newUser("alice@example.com")
	p := s.newProject(owner, "One", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	due := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	t := &domain.Task{Project: p.ID, Title: "Ship", Status: domain.StatusPending, DueDate: &due}
	s.Require().NoError(s.tasks.Create(s.ctx, t))

	t.DueDate = nil
	t.Status = domain.StatusInProgress
	s.Require().NoError(s.tasks.Update(s.ctx, t))

	got, err := s.tasks.FindByID(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Nil(got.DueDate)
	s.Equal(domain.StatusInProgress, got.Status)
	s.Equal(p.ID, got.Project)
}

func (s *RepositorySuite) TestTask_ListByProjectSearch() {
	owner := s.newUser("alice@example.com")
	p := s.newProject(owner, "One", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	s.newTask(p.ID, "Write docs")
	s.Require().NoError(s.tasks.Create(s.ctx, &domain.Task{
		Project: p.ID, Title: "Review", Description: "check the DOCS", Status: domain.StatusPending,
	}))
	s.newTask(p.ID, "Deploy")

	all, err := s.tasks.ListByProject(s.ctx, p.ID, "")
	s.Require().NoError(err)
	s.Len(all, 3)

	matched, err := s.tasks.ListByProject(s.ctx, p.ID, "docs")
	s.Require().NoError(err)
	s.Len(matched, 2)
}

func (s *RepositorySuite) TestTask_DeleteByProjectCascades() {
	owner := s.newUser("alice@example.com")
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	doomed := s.newProject(owner, "Doomed", start)
	kept := s.newProject(owner, "Kept", start)
	s.newTask(doomed.ID, "A")
	s.newTask(doomed.ID, "B")
	survivor := s.newTask(kept.ID, "C")

	n, err := s.tasks.DeleteByProject(s.ctx, doomed.ID)
	s.Require().NoError(err)
	s.EqualValues(2, n)

	left, err := s.tasks.ListByProject(s.ctx, doomed.ID, "")
	s.Require().NoError(err)
	s.Empty(left)

	_, err = s.tasks.FindByID(s.ctx, survivor.ID)
	s.NoError(err)
}
