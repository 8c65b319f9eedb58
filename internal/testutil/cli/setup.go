package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lista/internal/app"
	"github.com/thenoetrevino/lista/internal/config"
	"github.com/thenoetrevino/lista/internal/favorites"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/testutil/apitest"
)

// SetupCLITest starts a mock backend and returns it with an App logged in as
// the seeded user. This package is only for CLI tests and is isolated to
// avoid import cycles when service tests import testutil.
func SetupCLITest(t *testing.T) (*apitest.Env, *app.App) {
	t.Helper()
	env := apitest.New(t)
	a := NewTestApp(t, env)

	_, err := a.AuthService.Login(context.Background(), models.LoginRequest{
		Email:    apitest.Email,
		Password: apitest.Password,
	})
	require.NoError(t, err)
	return env, a
}

// NewTestApp returns an anonymous App pointed at env with in-memory storage
func NewTestApp(t *testing.T, env *apitest.Env) *app.App {
	t.Helper()

	cfg := config.Default()
	opts := env.Options()
	cfg.API.BaseURL = opts.BaseURL
	cfg.API.Domain = opts.Domain
	cfg.API.Version = opts.Version
	cfg.API.Timeout = opts.Timeout
	cfg.DataDir = t.TempDir()

	a, err := app.New(context.Background(), cfg, app.WithStorage(favorites.NewMemoryStorage()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}
