package api

import (
	"context"
	"net/http"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// WorkspaceInput is the create payload
type WorkspaceInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// WorkspacePatch is the update payload; nil fields are left unchanged
type WorkspacePatch struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Settings    map[string]any `json:"settings,omitempty"`
}

func (c *Client) ListWorkspaces(ctx context.Context) ([]*models.Workspace, error) {
	return getData[[]*models.Workspace](ctx, c, "/workspaces")
}

func (c *Client) GetWorkspace(ctx context.Context, id types.WorkspaceID) (*models.Workspace, error) {
	return getData[*models.Workspace](ctx, c, "/workspaces/"+seg(id))
}

func (c *Client) CreateWorkspace(ctx context.Context, in WorkspaceInput) (*models.Workspace, error) {
	return sendData[*models.Workspace](ctx, c, http.MethodPost, "/workspaces", in)
}

func (c *Client) UpdateWorkspace(ctx context.Context, id types.WorkspaceID, patch WorkspacePatch) (*models.Workspace, error) {
	return sendData[*models.Workspace](ctx, c, http.MethodPut, "/workspaces/"+seg(id), patch)
}

func (c *Client) DeleteWorkspace(ctx context.Context, id types.WorkspaceID) error {
	return c.delete(ctx, "/workspaces/"+seg(id))
}

// UpdateLastVisited records the path the user last viewed inside the workspace
func (c *Client) UpdateLastVisited(ctx context.Context, id types.WorkspaceID, path string) error {
	body := map[string]string{"path": path}
	return c.call(ctx, http.MethodPost, "/workspaces/"+seg(id)+"/last-visited", body, nil, nil)
}
