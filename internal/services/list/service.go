package list

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

// Service defines all task-list operations
type Service interface {
	List(ctx context.Context, spaceID types.SpaceID) ([]*models.TaskList, error)
	Get(ctx context.Context, id types.ListID) (*models.TaskList, error)

	Create(ctx context.Context, req CreateListRequest) (*models.TaskList, error)
	Update(ctx context.Context, req UpdateListRequest) (*models.TaskList, error)
	// Move reassigns the list to groupID; nil moves it to the ungrouped bucket
	Move(ctx context.Context, id types.ListID, groupID *types.GroupID) (*models.TaskList, error)
	Delete(ctx context.Context, spaceID types.SpaceID, id types.ListID) error
}

// CreateListRequest encapsulates data for creating a list. A nil GroupID
// creates the list directly under the space.
type CreateListRequest struct {
	SpaceID      types.SpaceID
	GroupID      *types.GroupID
	Name         string
	StatusSchema models.StatusSchema
}

// UpdateListRequest encapsulates data for updating a list.
// The group is only changed when ChangeGroup is set.
type UpdateListRequest struct {
	ID           types.ListID
	Name         *string
	StatusSchema models.StatusSchema
	IsArchived   *bool
	ChangeGroup  bool
	GroupID      *types.GroupID
}

type backend interface {
	ListLists(ctx context.Context, spaceID types.SpaceID) ([]*models.TaskList, error)
	GetList(ctx context.Context, id types.ListID) (*models.TaskList, error)
	CreateList(ctx context.Context, spaceID types.SpaceID, in api.ListInput) (*models.TaskList, error)
	UpdateList(ctx context.Context, id types.ListID, patch api.ListPatch) (*models.TaskList, error)
	DeleteList(ctx context.Context, id types.ListID) error
}

type service struct {
	api   backend
	cache *query.Client
}

func NewService(client backend, cache *query.Client) Service {
	return &service{api: client, cache: cache}
}

func (s *service) List(ctx context.Context, spaceID types.SpaceID) ([]*models.TaskList, error) {
	return query.Fetch(ctx, s.cache, query.ListsKey(spaceID), func(ctx context.Context) ([]*models.TaskList, error) {
		return s.api.ListLists(ctx, spaceID)
	}, query.EnabledWhen(spaceID.String()))
}

func (s *service) Get(ctx context.Context, id types.ListID) (*models.TaskList, error) {
	return query.Fetch(ctx, s.cache, query.ListKey(id), func(ctx context.Context) (*models.TaskList, error) {
		return s.api.GetList(ctx, id)
	}, query.EnabledWhen(id.String()))
}

func (s *service) Create(ctx context.Context, req CreateListRequest) (*models.TaskList, error) {
	if req.SpaceID.Empty() {
		return nil, ErrInvalidSpaceID
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	if req.StatusSchema != nil {
		if err := validateSchema(req.StatusSchema); err != nil {
			return nil, err
		}
	}

	l, err := s.api.CreateList(ctx, req.SpaceID, api.ListInput{
		Name:         name,
		GroupID:      normalizeGroup(req.GroupID),
		StatusSchema: req.StatusSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	s.cache.Invalidate(query.ListsKey(req.SpaceID))
	return l, nil
}

func (s *service) Update(ctx context.Context, req UpdateListRequest) (*models.TaskList, error) {
	if req.ID.Empty() {
		return nil, ErrInvalidListID
	}
	patch := api.ListPatch{
		IsArchived: req.IsArchived,
		SetGroup:   req.ChangeGroup,
		GroupID:    normalizeGroup(req.GroupID),
	}
	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if req.StatusSchema != nil {
		if err := validateSchema(req.StatusSchema); err != nil {
			return nil, err
		}
		patch.StatusSchema = req.StatusSchema
	}

	l, err := s.api.UpdateList(ctx, req.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update list: %w", err)
	}

	s.cache.SetData(query.ListKey(l.ID), l)
	query.PatchItem(s.cache, query.ListsKey(l.SpaceID), l)
	s.cache.Invalidate(query.ListKey(l.ID))
	s.cache.Invalidate(query.ListsKey(l.SpaceID))
	return l, nil
}

func (s *service) Move(ctx context.Context, id types.ListID, groupID *types.GroupID) (*models.TaskList, error) {
	return s.Update(ctx, UpdateListRequest{ID: id, ChangeGroup: true, GroupID: groupID})
}

// Delete removes a list. The backend refuses while tasks remain.
func (s *service) Delete(ctx context.Context, spaceID types.SpaceID, id types.ListID) error {
	if id.Empty() {
		return ErrInvalidListID
	}
	if err := s.api.DeleteList(ctx, id); err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	s.cache.Remove(query.ListKey(id))
	s.cache.Remove(query.TasksByListKey(id))
	if !spaceID.Empty() {
		s.cache.Invalidate(query.ListsKey(spaceID))
		// best effort: a GET already in flight can land after this and resurrect the item
		s.cache.RefetchAfter(query.ListsKey(spaceID), query.RefetchDelay)
	}
	return nil
}

// normalizeGroup maps an empty id to nil so it is sent as null
func normalizeGroup(id *types.GroupID) *types.GroupID {
	if id == nil {
		return nil
	}
	return id.Ptr()
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

func validateSchema(schema models.StatusSchema) error {
	if len(schema) == 0 {
		return ErrEmptySchema
	}
	for key := range schema {
		if strings.TrimSpace(key) == "" {
			return ErrEmptyStatusKey
		}
	}
	return nil
}
