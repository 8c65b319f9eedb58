package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/lista/internal/api"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/query"
	"github.com/thenoetrevino/lista/internal/types"
)

const maxNameLength = 255

// Service defines all workspace operations
type Service interface {
	// Read operations
	List(ctx context.Context) ([]*models.Workspace, error)
	Get(ctx context.Context, id types.WorkspaceID) (*models.Workspace, error)

	// Write operations
	Create(ctx context.Context, req CreateWorkspaceRequest) (*models.Workspace, error)
	Update(ctx context.Context, req UpdateWorkspaceRequest) (*models.Workspace, error)
	Delete(ctx context.Context, id types.WorkspaceID) error
	UpdateLastVisited(ctx context.Context, id types.WorkspaceID, path string) error
}

// CreateWorkspaceRequest encapsulates data for creating a workspace
type CreateWorkspaceRequest struct {
	Name        string
	Description string
}

// UpdateWorkspaceRequest encapsulates data for updating a workspace
type UpdateWorkspaceRequest struct {
	ID          types.WorkspaceID
	Name        *string
	Description *string
	Settings    map[string]any
}

// backend is the slice of the REST client this service needs
type backend interface {
	ListWorkspaces(ctx context.Context) ([]*models.Workspace, error)
	GetWorkspace(ctx context.Context, id types.WorkspaceID) (*models.Workspace, error)
	CreateWorkspace(ctx context.Context, in api.WorkspaceInput) (*models.Workspace, error)
	UpdateWorkspace(ctx context.Context, id types.WorkspaceID, patch api.WorkspacePatch) (*models.Workspace, error)
	DeleteWorkspace(ctx context.Context, id types.WorkspaceID) error
	UpdateLastVisited(ctx context.Context, id types.WorkspaceID, path string) error
}

type service struct {
	api   backend
	cache *query.Client
}

// NewService creates a workspace service over the REST client and the shared cache
func NewService(client backend, cache *query.Client) Service {
	return &service{api: client, cache: cache}
}

// List returns the workspaces of the current user
func (s *service) List(ctx context.Context) ([]*models.Workspace, error) {
	return query.Fetch(ctx, s.cache, query.WorkspacesKey(), s.api.ListWorkspaces, query.Options{})
}

// Get returns one workspace
func (s *service) Get(ctx context.Context, id types.WorkspaceID) (*models.Workspace, error) {
	return query.Fetch(ctx, s.cache, query.WorkspaceKey(id), func(ctx context.Context) (*models.Workspace, error) {
		return s.api.GetWorkspace(ctx, id)
	}, query.EnabledWhen(id.String()))
}

func (s *service) Create(ctx context.Context, req CreateWorkspaceRequest) (*models.Workspace, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	ws, err := s.api.CreateWorkspace(ctx, api.WorkspaceInput{Name: name, Description: strings.TrimSpace(req.Description)})
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	s.cache.Invalidate(query.WorkspacesKey())
	return ws, nil
}

func (s *service) Update(ctx context.Context, req UpdateWorkspaceRequest) (*models.Workspace, error) {
	if req.ID.Empty() {
		return nil, ErrInvalidWorkspaceID
	}
	patch := api.WorkspacePatch{Description: req.Description, Settings: req.Settings}
	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}

	ws, err := s.api.UpdateWorkspace(ctx, req.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	s.cache.SetData(query.WorkspaceKey(ws.ID), ws)
	query.PatchItem(s.cache, query.WorkspacesKey(), ws)
	s.cache.Invalidate(query.WorkspaceKey(ws.ID))
	s.cache.Invalidate(query.WorkspacesKey())
	return ws, nil
}

// Delete removes a workspace. The backend refuses while spaces remain.
func (s *service) Delete(ctx context.Context, id types.WorkspaceID) error {
	if id.Empty() {
		return ErrInvalidWorkspaceID
	}
	if err := s.api.DeleteWorkspace(ctx, id); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	s.cache.Remove(query.WorkspaceKey(id))
	s.cache.Invalidate(query.WorkspacesKey())
	// best effort: a GET already in flight can land after this and resurrect the item
	s.cache.RefetchAfter(query.WorkspacesKey(), query.RefetchDelay)
	return nil
}

// UpdateLastVisited stores the path to restore when the user next lands in the workspace
func (s *service) UpdateLastVisited(ctx context.Context, id types.WorkspaceID, path string) error {
	if id.Empty() {
		return ErrInvalidWorkspaceID
	}
	if !strings.HasPrefix(path, "/workspaces/") {
		return ErrInvalidPath
	}
	if err := s.api.UpdateLastVisited(ctx, id, path); err != nil {
		return fmt.Errorf("failed to record last visited path: %w", err)
	}

	query.UpdateData(s.cache, query.WorkspaceKey(id), func(ws *models.Workspace, ok bool) (*models.Workspace, bool) {
		if !ok || ws == nil {
			return nil, false
		}
		patched := *ws
		patched.LastVisitedPath = path
		return &patched, true
	})
	query.UpdateData(s.cache, query.WorkspacesKey(), func(all []*models.Workspace, ok bool) ([]*models.Workspace, bool) {
		if !ok {
			return nil, false
		}
		out := make([]*models.Workspace, len(all))
		for i, ws := range all {
			out[i] = ws
			if ws.ID == id {
				patched := *ws
				patched.LastVisitedPath = path
				out[i] = &patched
			}
		}
		return out, true
	})
	slog.Debug("recorded last visited path", "workspace", id, "path", path)
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if len(name) > maxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
