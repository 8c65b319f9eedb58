package api

import (
	"context"
	"net/http"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

type SpaceInput struct {
	Name       string            `json:"name"`
	Visibility models.Visibility `json:"visibility"`
	Color      string            `json:"color,omitempty"`
}

type SpacePatch struct {
	Name       *string            `json:"name,omitempty"`
	Visibility *models.Visibility `json:"visibility,omitempty"`
	Color      *string            `json:"color,omitempty"`
	IsArchived *bool              `json:"is_archived,omitempty"`
}

func (c *Client) ListSpaces(ctx context.Context, workspaceID types.WorkspaceID) ([]*models.Space, error) {
	return getData[[]*models.Space](ctx, c, "/workspaces/"+seg(workspaceID)+"/spaces")
}

func (c *Client) GetSpace(ctx context.Context, id types.SpaceID) (*models.Space, error) {
	return getData[*models.Space](ctx, c, "/spaces/"+seg(id))
}

func (c *Client) CreateSpace(ctx context.Context, workspaceID types.WorkspaceID, in SpaceInput) (*models.Space, error) {
	return sendData[*models.Space](ctx, c, http.MethodPost, "/workspaces/"+seg(workspaceID)+"/spaces", in)
}

func (c *Client) UpdateSpace(ctx context.Context, id types.SpaceID, patch SpacePatch) (*models.Space, error) {
	return sendData[*models.Space](ctx, c, http.MethodPut, "/spaces/"+seg(id), patch)
}

func (c *Client) DeleteSpace(ctx context.Context, id types.SpaceID) error {
	return c.delete(ctx, "/spaces/"+seg(id))
}
