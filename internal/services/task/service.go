package task

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/thenoetrevino/lista/internal/api"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/query"
	"github.com/thenoetrevino/lista/internal/types"
)

const (
	maxTitleLength   = 255
	maxCommentLength = 1000
)

// Service defines all task operations
type Service interface {
	// Read operations
	All(ctx context.Context) ([]*models.Task, error)
	ListByList(ctx context.Context, listID types.ListID) ([]*models.Task, error)
	Get(ctx context.Context, id types.TaskID) (*models.Task, error)

	// Write operations
	Create(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	Update(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, id types.TaskID) error

	// Comment operations
	ListComments(ctx context.Context, taskID types.TaskID) ([]*models.TaskComment, error)
	AddComment(ctx context.Context, req CreateCommentRequest) (*models.TaskComment, error)
	DeleteComment(ctx context.Context, taskID types.TaskID, id types.CommentID) error

	// Attachment operations
	ListAttachments(ctx context.Context, taskID types.TaskID) ([]*models.TaskAttachment, error)
	UploadAttachment(ctx context.Context, taskID types.TaskID, fileName string, r io.Reader) (*models.TaskAttachment, error)
	DeleteAttachment(ctx context.Context, taskID types.TaskID, id types.ID) error
}

// CreateTaskRequest encapsulates data for creating a task.
// Empty Status and Priority let the backend pick its defaults.
type CreateTaskRequest struct {
	ListID      types.ListID
	Title       string
	Description *string
	Status      string
	Priority    string
	DueDate     *models.Date
	AssignedTo  *types.UserID
}

// UpdateTaskRequest encapsulates data for updating a task
type UpdateTaskRequest struct {
	ID          types.TaskID
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *models.Date
	AssignedTo  *types.UserID
}

// CreateCommentRequest encapsulates data for adding a comment
type CreateCommentRequest struct {
	TaskID  types.TaskID
	Message string
	Type    models.CommentType
}

type backend interface {
	ListAllTasks(ctx context.Context) ([]*models.Task, error)
	ListTasks(ctx context.Context, listID types.ListID) ([]*models.Task, error)
	GetTask(ctx context.Context, id types.TaskID) (*models.Task, error)
	CreateTask(ctx context.Context, listID types.ListID, in api.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, id types.TaskID, patch api.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id types.TaskID) error

	ListComments(ctx context.Context, taskID types.TaskID) ([]*models.TaskComment, error)
	AddComment(ctx context.Context, taskID types.TaskID, in api.CommentInput) (*models.TaskComment, error)
	DeleteComment(ctx context.Context, id types.CommentID) error

	ListAttachments(ctx context.Context, taskID types.TaskID) ([]*models.TaskAttachment, error)
	UploadAttachment(ctx context.Context, taskID types.TaskID, fileName string, r io.Reader) (*models.TaskAttachment, error)
	DeleteAttachment(ctx context.Context, id types.ID) error
}

type service struct {
	api   backend
	cache *query.Client
}

func NewService(client backend, cache *query.Client) Service {
	return &service{api: client, cache: cache}
}

// ============================================================================
// Reads
// ============================================================================

// All returns every task the user can see, used by workspace and dashboard views
func (s *service) All(ctx context.Context) ([]*models.Task, error) {
	return query.Fetch(ctx, s.cache, query.AllTasksKey(), s.api.ListAllTasks, query.Options{})
}

func (s *service) ListByList(ctx context.Context, listID types.ListID) ([]*models.Task, error) {
	return query.Fetch(ctx, s.cache, query.TasksByListKey(listID), func(ctx context.Context) ([]*models.Task, error) {
		return s.api.ListTasks(ctx, listID)
	}, query.EnabledWhen(listID.String()))
}

func (s *service) Get(ctx context.Context, id types.TaskID) (*models.Task, error) {
	return query.Fetch(ctx, s.cache, query.TaskKey(id), func(ctx context.Context) (*models.Task, error) {
		return s.api.GetTask(ctx, id)
	}, query.EnabledWhen(id.String()))
}

// ============================================================================
// Writes
// ============================================================================

func (s *service) Create(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if req.ListID.Empty() {
		return nil, ErrInvalidListID
	}
	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}
	in := api.TaskInput{
		Title:       title,
		Description: req.Description,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
	}
	if req.Priority != "" {
		p, err := parsePriority(req.Priority)
		if err != nil {
			return nil, err
		}
		in.Priority = p
	}
	if req.Status != "" {
		if err := s.validateStatus(req.ListID, req.Status); err != nil {
			return nil, err
		}
		in.Status = req.Status
	}

	t, err := s.api.CreateTask(ctx, req.ListID, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	prepend := func(old []*models.Task, ok bool) ([]*models.Task, bool) {
		if !ok {
			return nil, false
		}
		return query.Prepend(old, t), true
	}
	query.UpdateData(s.cache, query.AllTasksKey(), prepend)
	query.UpdateData(s.cache, query.TasksByListKey(t.ListID), prepend)
	return t, nil
}

func (s *service) Update(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if req.ID.Empty() {
		return nil, ErrInvalidTaskID
	}
	patch := api.TaskPatch{
		Description: req.Description,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
	}
	if req.Title != nil {
		title, err := validateTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if req.Priority != nil {
		p, err := parsePriority(*req.Priority)
		if err != nil {
			return nil, err
		}
		patch.Priority = &p
	}
	if req.Status != nil {
		if cached, ok := query.GetData[*models.Task](s.cache, query.TaskKey(req.ID)); ok && cached != nil {
			if err := s.validateStatus(cached.ListID, *req.Status); err != nil {
				return nil, err
			}
		}
		patch.Status = req.Status
	}

	t, err := s.api.UpdateTask(ctx, req.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.cache.SetData(query.TaskKey(t.ID), t)
	query.PatchItem(s.cache, query.AllTasksKey(), t)
	query.PatchItem(s.cache, query.TasksByListKey(t.ListID), t)
	s.cache.Invalidate(query.TaskKey(t.ID))
	s.cache.Invalidate(query.AllTasksKey())
	if req.Status != nil {
		// the backend logs status changes as comments
		s.cache.Invalidate(query.CommentsKey(t.ID))
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, id types.TaskID) error {
	if id.Empty() {
		return ErrInvalidTaskID
	}
	if err := s.api.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.cache.Remove(query.TaskKey(id))
	s.cache.Remove(query.CommentsKey(id))
	s.cache.Remove(query.AttachmentsKey(id))
	s.cache.Invalidate(query.AllTasksKey())
	// best effort: a GET already in flight can land after this and resurrect the item
	s.cache.RefetchAfter(query.AllTasksKey(), query.RefetchDelay)
	return nil
}

// validateStatus checks status against the list's schema when the list is cached.
// Unknown lists are left to the backend.
func (s *service) validateStatus(listID types.ListID, status string) error {
	l, ok := query.GetData[*models.TaskList](s.cache, query.ListKey(listID))
	if !ok || l == nil {
		return nil
	}
	if !l.Schema().Has(status) {
		return fmt.Errorf("%w: %q (allowed: %s)", ErrInvalidStatus, status, strings.Join(l.Schema().Keys(), ", "))
	}
	return nil
}

// ============================================================================
// Comments
// ============================================================================

func (s *service) ListComments(ctx context.Context, taskID types.TaskID) ([]*models.TaskComment, error) {
	return query.Fetch(ctx, s.cache, query.CommentsKey(taskID), func(ctx context.Context) ([]*models.TaskComment, error) {
		return s.api.ListComments(ctx, taskID)
	}, query.EnabledWhen(taskID.String()))
}

func (s *service) AddComment(ctx context.Context, req CreateCommentRequest) (*models.TaskComment, error) {
	if req.TaskID.Empty() {
		return nil, ErrInvalidTaskID
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, ErrEmptyCommentMessage
	}
	if len(msg) > maxCommentLength {
		return nil, ErrCommentMessageTooLong
	}

	c, err := s.api.AddComment(ctx, req.TaskID, api.CommentInput{Comment: msg, Type: req.Type})
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.cache.Invalidate(query.CommentsKey(req.TaskID))
	return c, nil
}

func (s *service) DeleteComment(ctx context.Context, taskID types.TaskID, id types.CommentID) error {
	if id.Empty() {
		return ErrInvalidCommentID
	}
	if err := s.api.DeleteComment(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.cache.Invalidate(query.CommentsKey(taskID))
	// best effort: a GET already in flight can land after this and resurrect the item
	s.cache.RefetchAfter(query.CommentsKey(taskID), query.RefetchDelay)
	return nil
}

// ============================================================================
// Attachments
// ============================================================================

func (s *service) ListAttachments(ctx context.Context, taskID types.TaskID) ([]*models.TaskAttachment, error) {
	return query.Fetch(ctx, s.cache, query.AttachmentsKey(taskID), func(ctx context.Context) ([]*models.TaskAttachment, error) {
		return s.api.ListAttachments(ctx, taskID)
	}, query.EnabledWhen(taskID.String()))
}

func (s *service) UploadAttachment(ctx context.Context, taskID types.TaskID, fileName string, r io.Reader) (*models.TaskAttachment, error) {
	if taskID.Empty() {
		return nil, ErrInvalidTaskID
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, ErrEmptyFileName
	}

	a, err := s.api.UploadAttachment(ctx, taskID, fileName, r)
	if err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	s.cache.Invalidate(query.AttachmentsKey(taskID))
	return a, nil
}

func (s *service) DeleteAttachment(ctx context.Context, taskID types.TaskID, id types.ID) error {
	if id.Empty() {
		return ErrInvalidAttachmentID
	}
	if err := s.api.DeleteAttachment(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	s.cache.Invalidate(query.AttachmentsKey(taskID))
	// best effort: a GET already in flight can land after this and resurrect the item
	s.cache.RefetchAfter(query.AttachmentsKey(taskID), query.RefetchDelay)
	return nil
}

// ============================================================================
// Validation
// ============================================================================

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

func parsePriority(s string) (models.Priority, error) {
	p, err := models.ParsePriority(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPriority, err)
	}
	return p, nil
}
