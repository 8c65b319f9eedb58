// Package auth logs users in and out and settles the session on startup.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/lista/internal/api"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/navigation"
	"github.com/thenoetrevino/lista/internal/query"
	"github.com/thenoetrevino/lista/internal/session"
)

// Service defines all auth operations
type Service interface {
	// Read operations
	CurrentUser(ctx context.Context) (*models.User, error)

	// Write operations
	Login(ctx context.Context, req models.LoginRequest) (*Result, error)
	Register(ctx context.Context, req models.RegisterRequest) (*Result, error)
	Logout(ctx context.Context) error
	Initialize(ctx context.Context) session.State
}

// Result is the logged-in user and the path the client should land on
type Result struct {
	User    *models.User `json:"user"`
	Landing string       `json:"landing"`
}

// GetID returns the user id, for quiet CLI output
func (r *Result) GetID() string {
	if r.User == nil {
		return ""
	}
	return r.User.ID.String()
}

// backend is the slice of the REST client this service needs
type backend interface {
	EnsureCSRF(ctx context.Context) error
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	ClearCookies(ctx context.Context) error
}

type workspaceLister interface {
	List(ctx context.Context) ([]*models.Workspace, error)
}

type navigator interface {
	Push(ctx context.Context, path string)
	Redirect(path string)
}

type service struct {
	api        backend
	cache      *query.Client
	session    *session.Session
	workspaces workspaceLister
	nav        navigator
}

// NewService creates an auth service. nav may be nil when nothing tracks the path.
func NewService(client backend, cache *query.Client, sess *session.Session, workspaces workspaceLister, nav navigator) Service {
	return &service{api: client, cache: cache, session: sess, workspaces: workspaces, nav: nav}
}

// CurrentUser returns the logged-in user. Never runs before the session settles.
func (s *service) CurrentUser(ctx context.Context) (*models.User, error) {
	opts := query.Options{}
	if !s.session.Initialized() {
		opts = query.Disabled()
	}
	return query.Fetch(ctx, s.cache, query.CurrentUserKey(), s.api.CurrentUser, opts)
}

// Initialize asks the backend who is logged in, once per session
func (s *service) Initialize(ctx context.Context) session.State {
	state := s.session.Initialize(ctx, s.api.CurrentUser)
	if user := s.session.User(); user != nil {
		s.cache.SetData(query.CurrentUserKey(), user)
	}
	return state
}

func (s *service) Login(ctx context.Context, req models.LoginRequest) (*Result, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return nil, ErrEmptyEmail
	}
	if req.Password == "" {
		return nil, ErrEmptyPassword
	}

	if err := s.api.EnsureCSRF(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch csrf cookie: %w", err)
	}
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	return s.authenticated(ctx, resp), nil
}

func (s *service) Register(ctx context.Context, req models.RegisterRequest) (*Result, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Name == "":
		return nil, ErrEmptyName
	case req.Email == "":
		return nil, ErrEmptyEmail
	case req.Password == "":
		return nil, ErrEmptyPassword
	case req.Password != req.PasswordConfirmation:
		return nil, ErrPasswordMismatch
	}

	if err := s.api.EnsureCSRF(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch csrf cookie: %w", err)
	}
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	return s.authenticated(ctx, resp), nil
}

// authenticated settles the session after login or register and picks the landing path
func (s *service) authenticated(ctx context.Context, resp *models.AuthResponse) *Result {
	s.session.SetAuth(resp.User)
	s.session.MarkInitialized()
	s.cache.SetData(query.CurrentUserKey(), resp.User)

	// a list cached for a previous account must not pick this one's landing
	s.cache.Invalidate(query.WorkspacesKey())
	landing := navigation.Home
	if workspaces, err := s.workspaces.List(ctx); err != nil {
		slog.Warn("failed to list workspaces after login", "error", err)
	} else {
		landing = navigation.RestorePath(workspaces)
	}
	if s.nav != nil {
		s.nav.Push(ctx, landing)
	}
	return &Result{User: resp.User, Landing: landing}
}

// Logout ends the backend session and forgets the local one. An already
// expired backend session counts as logged out.
func (s *service) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil && !api.IsUnauthorized(err) {
		return fmt.Errorf("failed to log out: %w", err)
	}

	s.session.ClearAuth()
	// everything cached belonged to the account that just left
	s.cache.Clear()
	if err := s.api.ClearCookies(ctx); err != nil {
		slog.Warn("failed to clear stored cookies", "error", err)
	}
	if s.nav != nil {
		s.nav.Redirect("/login")
	}
	return nil
}
