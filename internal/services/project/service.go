package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenoetrevino/lista/internal/api"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/query"
	"github.com/thenoetrevino/lista/internal/types"
)

const maxNameLength = 255

// Service defines all project operations
type Service interface {
	List(ctx context.Context) ([]*models.Project, error)
	Get(ctx context.Context, id types.ProjectID) (*models.Project, error)
	Tasks(ctx context.Context, id types.ProjectID) ([]*models.Task, error)

	Create(ctx context.Context, req ProjectRequest) (*models.Project, error)
	Update(ctx context.Context, id types.ProjectID, req ProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, id types.ProjectID) error
	// SetTaskProject links a task to a project; an empty project id unlinks it
	SetTaskProject(ctx context.Context, taskID types.TaskID, projectID types.ProjectID) (*models.Task, error)
}

// ProjectRequest is the project form. Updates replace both fields.
type ProjectRequest struct {
	Name        string
	Description string
}

type backend interface {
	ListProjects(ctx context.Context) ([]*models.Project, error)
	GetProject(ctx context.Context, id types.ProjectID) (*models.Project, error)
	CreateProject(ctx context.Context, in api.ProjectInput) (*models.Project, error)
	UpdateProject(ctx context.Context, id types.ProjectID, in api.ProjectInput) (*models.Project, error)
	DeleteProject(ctx context.Context, id types.ProjectID) error
	ListProjectTasks(ctx context.Context, id types.ProjectID) ([]*models.Task, error)
	UpdateTask(ctx context.Context, id types.TaskID, patch api.TaskPatch) (*models.Task, error)
}

type service struct {
	api   backend
	cache *query.Client
}

// NewService creates a project service over the REST client and the shared cache
func NewService(client backend, cache *query.Client) Service {
	return &service{api: client, cache: cache}
}

func (s *service) List(ctx context.Context) ([]*models.Project, error) {
	return query.Fetch(ctx, s.cache, query.ProjectsKey(), s.api.ListProjects, query.Options{})
}

func (s *service) Get(ctx context.Context, id types.ProjectID) (*models.Project, error) {
	return query.Fetch(ctx, s.cache, query.ProjectKey(id), func(ctx context.Context) (*models.Project, error) {
		return s.api.GetProject(ctx, id)
	}, query.EnabledWhen(id.String()))
}

// Tasks returns the tasks linked to a project
func (s *service) Tasks(ctx context.Context, id types.ProjectID) ([]*models.Task, error) {
	return query.Fetch(ctx, s.cache, query.TasksByProjectKey(id), func(ctx context.Context) ([]*models.Task, error) {
		return s.api.ListProjectTasks(ctx, id)
	}, query.EnabledWhen(id.String()))
}

// Create prepends the new project to a cached list instead of refetching it
func (s *service) Create(ctx context.Context, req ProjectRequest) (*models.Project, error) {
	in, err := req.input()
	if err != nil {
		return nil, err
	}
	p, err := s.api.CreateProject(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	query.UpdateData(s.cache, query.ProjectsKey(), func(old []*models.Project, ok bool) ([]*models.Project, bool) {
		if !ok {
			return nil, false
		}
		return query.Prepend(old, p), true
	})
	return p, nil
}

func (s *service) Update(ctx context.Context, id types.ProjectID, req ProjectRequest) (*models.Project, error) {
	if id.Empty() {
		return nil, ErrInvalidProjectID
	}
	in, err := req.input()
	if err != nil {
		return nil, err
	}
	p, err := s.api.UpdateProject(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	query.PatchItem(s.cache, query.ProjectsKey(), p)
	s.cache.SetData(query.ProjectKey(p.ID), p)
	return p, nil
}

// Delete filters the project out of a cached list. Its tasks stay in their
// lists, so cached task collections are only marked stale.
func (s *service) Delete(ctx context.Context, id types.ProjectID) error {
	if id.Empty() {
		return ErrInvalidProjectID
	}
	if err := s.api.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	query.UpdateData(s.cache, query.ProjectsKey(), func(old []*models.Project, ok bool) ([]*models.Project, bool) {
		if !ok {
			return nil, false
		}
		return query.RemoveByID(old, id.String()), true
	})
	s.cache.Remove(query.ProjectKey(id))
	s.cache.Remove(query.TasksByProjectKey(id))
	s.cache.Invalidate(query.AllTasksKey())
	return nil
}

func (s *service) SetTaskProject(ctx context.Context, taskID types.TaskID, projectID types.ProjectID) (*models.Task, error) {
	if taskID.Empty() {
		return nil, ErrInvalidTaskID
	}
	var previous types.ProjectID
	if cached, ok := query.GetData[*models.Task](s.cache, query.TaskKey(taskID)); ok && cached != nil {
		previous = types.Deref(cached.ProjectID)
	}

	t, err := s.api.UpdateTask(ctx, taskID, api.TaskPatch{ProjectID: &projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to set task project: %w", err)
	}

	s.cache.SetData(query.TaskKey(t.ID), t)
	query.PatchItem(s.cache, query.AllTasksKey(), t)
	query.PatchItem(s.cache, query.TasksByListKey(t.ListID), t)
	if !projectID.Empty() {
		s.cache.Invalidate(query.TasksByProjectKey(projectID))
	}
	if !previous.Empty() && previous != projectID {
		s.cache.Invalidate(query.TasksByProjectKey(previous))
	}
	return t, nil
}

func (r ProjectRequest) input() (api.ProjectInput, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return api.ProjectInput{}, ErrEmptyName
	}
	if len(name) > maxNameLength {
		return api.ProjectInput{}, ErrNameTooLong
	}
	in := api.ProjectInput{Name: name}
	if d := strings.TrimSpace(r.Description); d != "" {
		in.Description = &d
	}
	return in, nil
}
