package api

import (
	"context"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

type TaskInput struct {
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Status      string          `json:"status,omitempty"`
	Priority    models.Priority `json:"priority,omitempty"`
	DueDate     *models.Date    `json:"due_date,omitempty"`
	AssignedTo  *types.ID       `json:"assigned_to,omitempty"`
}

type TaskPatch struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      *string          `json:"status,omitempty"`
	Priority    *models.Priority `json:"priority,omitempty"`
	DueDate     *models.Date     `json:"due_date,omitempty"`
	AssignedTo  *types.ID        `json:"assigned_to,omitempty"`
	ProjectID   *types.ID        `json:"project_id,omitempty"`
}

type CommentInput struct {
	Comment string             `json:"comment"`
	Type    models.CommentType `json:"type,omitempty"`
}

// ListAllTasks returns every task visible to the user
func (c *Client) ListAllTasks(ctx context.Context) ([]*models.Task, error) {
	return getData[[]*models.Task](ctx, c, "/tasks")
}

func (c *Client) ListTasks(ctx context.Context, listID types.ListID) ([]*models.Task, error) {
	return getData[[]*models.Task](ctx, c, "/lists/"+seg(listID)+"/tasks")
}

func (c *Client) GetTask(ctx context.Context, id types.TaskID) (*models.Task, error) {
	return getData[*models.Task](ctx, c, "/tasks/"+seg(id))
}

func (c *Client) CreateTask(ctx context.Context, listID types.ListID, in TaskInput) (*models.Task, error) {
	return sendData[*models.Task](ctx, c, http.MethodPost, "/lists/"+seg(listID)+"/tasks", in)
}

func (c *Client) UpdateTask(ctx context.Context, id types.TaskID, patch TaskPatch) (*models.Task, error) {
	return sendData[*models.Task](ctx, c, http.MethodPut, "/tasks/"+seg(id), patch)
}

func (c *Client) DeleteTask(ctx context.Context, id types.TaskID) error {
	return c.delete(ctx, "/tasks/"+seg(id))
}

func (c *Client) ListComments(ctx context.Context, taskID types.TaskID) ([]*models.TaskComment, error) {
	return getData[[]*models.TaskComment](ctx, c, "/tasks/"+seg(taskID)+"/comments")
}

func (c *Client) AddComment(ctx context.Context, taskID types.TaskID, in CommentInput) (*models.TaskComment, error) {
	return sendData[*models.TaskComment](ctx, c, http.MethodPost, "/tasks/"+seg(taskID)+"/comments", in)
}

func (c *Client) DeleteComment(ctx context.Context, id types.CommentID) error {
	return c.delete(ctx, "/comments/"+seg(id))
}

func (c *Client) ListAttachments(ctx context.Context, taskID types.TaskID) ([]*models.TaskAttachment, error) {
	return getData[[]*models.TaskAttachment](ctx, c, "/tasks/"+seg(taskID)+"/attachments")
}

// UploadAttachment sends the file as multipart form field "file"
func (c *Client) UploadAttachment(ctx context.Context, taskID types.TaskID, fileName string, r io.Reader) (*models.TaskAttachment, error) {
	var env envelope[*models.TaskAttachment]
	err := c.call(ctx, http.MethodPost, "/tasks/"+seg(taskID)+"/attachments", nil, &env, func(req *resty.Request) {
		req.SetFileReader("file", fileName, r)
	})
	return env.Data, err
}

func (c *Client) DeleteAttachment(ctx context.Context, id types.ID) error {
	return c.delete(ctx, "/attachments/"+seg(id))
}
