package api

import (
	"context"
	"net/http"

	"github.com/thenoetrevino/lista/internal/models"
)

// Login opens a cookie session. Call EnsureCSRF first.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.call(ctx, http.MethodPost, "/auth/session/login", req, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and opens a session. Call EnsureCSRF first.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.call(ctx, http.MethodPost, "/auth/session/register", req, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/auth/session/logout", nil, nil, nil)
}

// CurrentUser returns the session owner; 401 when anonymous
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	return getData[*models.User](ctx, c, "/auth/session/me")
}
