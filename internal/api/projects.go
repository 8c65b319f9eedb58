package api

import (
	"context"
	"net/http"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// ProjectInput is the create and update payload. Updates send the whole form.
type ProjectInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (c *Client) ListProjects(ctx context.Context) ([]*models.Project, error) {
	return getData[[]*models.Project](ctx, c, "/projects")
}

func (c *Client) GetProject(ctx context.Context, id types.ProjectID) (*models.Project, error) {
	return getData[*models.Project](ctx, c, "/projects/"+seg(id))
}

func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (*models.Project, error) {
	return sendData[*models.Project](ctx, c, http.MethodPost, "/projects", in)
}

func (c *Client) UpdateProject(ctx context.Context, id types.ProjectID, in ProjectInput) (*models.Project, error) {
	return sendData[*models.Project](ctx, c, http.MethodPut, "/projects/"+seg(id), in)
}

func (c *Client) DeleteProject(ctx context.Context, id types.ProjectID) error {
	return c.delete(ctx, "/projects/"+seg(id))
}

// ListProjectTasks returns the tasks linked to a project
func (c *Client) ListProjectTasks(ctx context.Context, id types.ProjectID) ([]*models.Task, error) {
	return getData[[]*models.Task](ctx, c, "/projects/"+seg(id)+"/tasks")
}
