package space

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/thenoetrevino/lista/internal/api"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/query"
	"github.com/thenoetrevino/lista/internal/types"
)

const maxNameLength = 255

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Service defines all space operations
type Service interface {
	// Read operations
	List(ctx context.Context, workspaceID types.WorkspaceID) ([]*models.Space, error)
	Get(ctx context.Context, id types.SpaceID) (*models.Space, error)

	// Write operations
	Create(ctx context.Context, req CreateSpaceRequest) (*models.Space, error)
	Update(ctx context.Context, req UpdateSpaceRequest) (*models.Space, error)
	Delete(ctx context.Context, workspaceID types.WorkspaceID, id types.SpaceID) error
}

// CreateSpaceRequest encapsulates data for creating a space.
// IsPublic is sent to the backend as visibility public or private.
type CreateSpaceRequest struct {
	WorkspaceID types.WorkspaceID
	Name        string
	IsPublic    bool
	Color       string
}

// UpdateSpaceRequest encapsulates data for updating a space
type UpdateSpaceRequest struct {
	ID         types.SpaceID
	Name       *string
	IsPublic   *bool
	Color      *string
	IsArchived *bool
}

type backend interface {
	ListSpaces(ctx context.Context, workspaceID types.WorkspaceID) ([]*models.Space, error)
	GetSpace(ctx context.Context, id types.SpaceID) (*models.Space, error)
	CreateSpace(ctx context.Context, workspaceID types.WorkspaceID, in api.SpaceInput) (*models.Space, error)
	UpdateSpace(ctx context.Context, id types.SpaceID, patch api.SpacePatch) (*models.Space, error)
	DeleteSpace(ctx context.Context, id types.SpaceID) error
}

type service struct {
	api   backend
	cache *query.Client
}

func NewService(client backend, cache *query.Client) Service {
	return &service{api: client, cache: cache}
}

// List returns the spaces of a workspace; disabled without a workspace id
func (s *service) List(ctx context.Context, workspaceID types.WorkspaceID) ([]*models.Space, error) {
	return query.Fetch(ctx, s.cache, query.SpacesKey(workspaceID), func(ctx context.Context) ([]*models.Space, error) {
		return s.api.ListSpaces(ctx, workspaceID)
	}, query.EnabledWhen(workspaceID.String()))
}

func (s *service) Get(ctx context.Context, id types.SpaceID) (*models.Space, error) {
	return query.Fetch(ctx, s.cache, query.SpaceKey(id), func(ctx context.Context) (*models.Space, error) {
		return s.api.GetSpace(ctx, id)
	}, query.EnabledWhen(id.String()))
}

func (s *service) Create(ctx context.Context, req CreateSpaceRequest) (*models.Space, error) {
	if req.WorkspaceID.Empty() {
		return nil, ErrInvalidWorkspaceID
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	if err := validateColor(req.Color); err != nil {
		return nil, err
	}

	sp, err := s.api.CreateSpace(ctx, req.WorkspaceID, api.SpaceInput{
		Name:       name,
		Visibility: models.VisibilityFromPublic(req.IsPublic),
		Color:      req.Color,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create space: %w", err)
	}

	s.cache.Invalidate(query.SpacesKey(req.WorkspaceID))
	return sp, nil
}

func (s *service) Update(ctx context.Context, req UpdateSpaceRequest) (*models.Space, error) {
	if req.ID.Empty() {
		return nil, ErrInvalidSpaceID
	}
	patch := api.SpacePatch{IsArchived: req.IsArchived}
	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if req.Color != nil {
		if err := validateColor(*req.Color); err != nil {
			return nil, err
		}
		patch.Color = req.Color
	}
	if req.IsPublic != nil {
		v := models.VisibilityFromPublic(*req.IsPublic)
		patch.Visibility = &v
	}

	sp, err := s.api.UpdateSpace(ctx, req.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update space: %w", err)
	}

	s.cache.SetData(query.SpaceKey(sp.ID), sp)
	query.PatchItem(s.cache, query.SpacesKey(sp.WorkspaceID), sp)
	s.cache.Invalidate(query.SpaceKey(sp.ID))
	s.cache.Invalidate(query.SpacesKey(sp.WorkspaceID))
	return sp, nil
}

// Delete removes a space. The backend answers 422 while groups or lists remain
// and the cache is left untouched in that case.
func (s *service) Delete(ctx context.Context, workspaceID types.WorkspaceID, id types.SpaceID) error {
	if id.Empty() {
		return ErrInvalidSpaceID
	}
	if err := s.api.DeleteSpace(ctx, id); err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
	}

	s.cache.Remove(query.SpaceKey(id))
	if !workspaceID.Empty() {
		s.cache.Invalidate(query.SpacesKey(workspaceID))
		// best effort: a GET already in flight can land after this and resurrect the item
		s.cache.RefetchAfter(query.SpacesKey(workspaceID), query.RefetchDelay)
	}
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

func validateColor(color string) error {
	if color != "" && !hexColor.MatchString(color) {
		return ErrInvalidColor
	}
	return nil
}
