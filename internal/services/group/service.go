package group

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

// Service defines all group (folder) operations
type Service interface {
	List(ctx context.Context, spaceID types.SpaceID) ([]*models.Group, error)
	Get(ctx context.Context, id types.GroupID) (*models.Group, error)

	Create(ctx context.Context, req CreateGroupRequest) (*models.Group, error)
	Update(ctx context.Context, req UpdateGroupRequest) (*models.Group, error)
	Delete(ctx context.Context, spaceID types.SpaceID, id types.GroupID) error
}

type CreateGroupRequest struct {
	SpaceID types.SpaceID
	Name    string
	Color   string
}

type UpdateGroupRequest struct {
	ID    types.GroupID
	Name  *string
	Color *string
}

type backend interface {
	ListGroups(ctx context.Context, spaceID types.SpaceID) ([]*models.Group, error)
	GetGroup(ctx context.Context, id types.GroupID) (*models.Group, error)
	CreateGroup(ctx context.Context, spaceID types.SpaceID, in api.GroupInput) (*models.Group, error)
	UpdateGroup(ctx context.Context, id types.GroupID, patch api.GroupPatch) (*models.Group, error)
	DeleteGroup(ctx context.Context, id types.GroupID) error
}

type service struct {
	api   backend
	cache *query.Client
}

func NewService(client backend, cache *query.Client) Service {
	return &service{api: client, cache: cache}
}

func (s *service) List(ctx context.Context, spaceID types.SpaceID) ([]*models.Group, error) {
	return query.Fetch(ctx, s.cache, query.GroupsKey(spaceID), func(ctx context.Context) ([]*models.Group, error) {
		return s.api.ListGroups(ctx, spaceID)
	}, query.EnabledWhen(spaceID.String()))
}

func (s *service) Get(ctx context.Context, id types.GroupID) (*models.Group, error) {
	return query.Fetch(ctx, s.cache, query.GroupKey(id), func(ctx context.Context) (*models.Group, error) {
		return s.api.GetGroup(ctx, id)
	}, query.EnabledWhen(id.String()))
}

func (s *service) Create(ctx context.Context, req CreateGroupRequest) (*models.Group, error) {
	if req.SpaceID.Empty() {
		return nil, ErrInvalidSpaceID
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	if req.Color != "" && !hexColor.MatchString(req.Color) {
		return nil, ErrInvalidColor
	}

	g, err := s.api.CreateGroup(ctx, req.SpaceID, api.GroupInput{Name: name, Color: req.Color})
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.cache.Invalidate(query.GroupsKey(req.SpaceID))
	return g, nil
}

func (s *service) Update(ctx context.Context, req UpdateGroupRequest) (*models.Group, error) {
	if req.ID.Empty() {
		return nil, ErrInvalidGroupID
	}
	var patch api.GroupPatch
	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if req.Color != nil {
		if *req.Color != "" && !hexColor.MatchString(*req.Color) {
			return nil, ErrInvalidColor
		}
		patch.Color = req.Color
	}

	g, err := s.api.UpdateGroup(ctx, req.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	s.cache.SetData(query.GroupKey(g.ID), g)
	query.PatchItem(s.cache, query.GroupsKey(g.SpaceID), g)
	s.cache.Invalidate(query.GroupKey(g.ID))
	s.cache.Invalidate(query.GroupsKey(g.SpaceID))
	return g, nil
}

// Delete removes a group. Lists inside it must be moved or deleted first.
func (s *service) Delete(ctx context.Context, spaceID types.SpaceID, id types.GroupID) error {
	if id.Empty() {
		return ErrInvalidGroupID
	}
	if err := s.api.DeleteGroup(ctx, id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	s.cache.Remove(query.GroupKey(id))
	if !spaceID.Empty() {
		s.cache.Invalidate(query.GroupsKey(spaceID))
		// best effort: a GET already in flight can land after this and resurrect the item
		s.cache.RefetchAfter(query.GroupsKey(spaceID), query.RefetchDelay)
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
