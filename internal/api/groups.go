package api

import (
	"context"
	"net/http"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

type GroupInput struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type GroupPatch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (c *Client) ListGroups(ctx context.Context, spaceID types.SpaceID) ([]*models.Group, error) {
	return getData[[]*models.Group](ctx, c, "/spaces/"+seg(spaceID)+"/groups")
}

func (c *Client) GetGroup(ctx context.Context, id types.GroupID) (*models.Group, error) {
	return getData[*models.Group](ctx, c, "/groups/"+seg(id))
}

func (c *Client) CreateGroup(ctx context.Context, spaceID types.SpaceID, in GroupInput) (*models.Group, error) {
	return sendData[*models.Group](ctx, c, http.MethodPost, "/spaces/"+seg(spaceID)+"/groups", in)
}

func (c *Client) UpdateGroup(ctx context.Context, id types.GroupID, patch GroupPatch) (*models.Group, error) {
	return sendData[*models.Group](ctx, c, http.MethodPut, "/groups/"+seg(id), patch)
}

func (c *Client) DeleteGroup(ctx context.Context, id types.GroupID) error {
	return c.delete(ctx, "/groups/"+seg(id))
}
