package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// ListInput is the create payload. A nil GroupID is sent as null (ungrouped).
type ListInput struct {
	Name         string              `json:"name"`
	GroupID      *types.ID           `json:"group_id"`
	StatusSchema models.StatusSchema `json:"status_schema,omitempty"`
}

// ListPatch is the update payload. The group is only sent when SetGroup is
// true, so a nil GroupID can express "move to ungrouped".
type ListPatch struct {
	Name         *string
	StatusSchema models.StatusSchema
	IsArchived   *bool
	SetGroup     bool
	GroupID      *types.ID
}

func (p ListPatch) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if p.Name != nil {
		body["name"] = *p.Name
	}
	if p.StatusSchema != nil {
		body["status_schema"] = p.StatusSchema
	}
	if p.IsArchived != nil {
		body["is_archived"] = *p.IsArchived
	}
	if p.SetGroup {
		body["group_id"] = p.GroupID
	}
	return json.Marshal(body)
}

func (c *Client) ListLists(ctx context.Context, spaceID types.SpaceID) ([]*models.TaskList, error) {
	return getData[[]*models.TaskList](ctx, c, "/spaces/"+seg(spaceID)+"/lists")
}

func (c *Client) GetList(ctx context.Context, id types.ListID) (*models.TaskList, error) {
	return getData[*models.TaskList](ctx, c, "/lists/"+seg(id))
}

func (c *Client) CreateList(ctx context.Context, spaceID types.SpaceID, in ListInput) (*models.TaskList, error) {
	return sendData[*models.TaskList](ctx, c, http.MethodPost, "/spaces/"+seg(spaceID)+"/lists", in)
}

func (c *Client) UpdateList(ctx context.Context, id types.ListID, patch ListPatch) (*models.TaskList, error) {
	return sendData[*models.TaskList](ctx, c, http.MethodPut, "/lists/"+seg(id), patch)
}

func (c *Client) DeleteList(ctx context.Context, id types.ListID) error {
	return c.delete(ctx, "/lists/"+seg(id))
}
