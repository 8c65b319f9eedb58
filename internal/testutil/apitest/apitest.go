// Package apitest starts the mock backend for tests and seeds it through the API client.
package apitest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lista/internal/api"
	"github.com/thenoetrevino/lista/internal/mockapi"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

const (
	Email    = "ada@example.com"
	Password = "password123"
)

// Env is a running mock backend plus a logged-in client
type Env struct {
	Server *mockapi.Server
	HTTP   *httptest.Server
	Client *api.Client
	User   *models.User
}

// New starts a backend with one registered user and logs the returned client in
func New(t *testing.T) *Env {
	t.Helper()

	backend := mockapi.New()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	env := &Env{Server: backend, HTTP: srv}
	user, err := backend.AddUser("Ada Lovelace", Email, Password)
	require.NoError(t, err)
	env.User = user
	env.Client = env.NewClient(t, api.Options{})

	ctx := context.Background()
	require.NoError(t, env.Client.EnsureCSRF(ctx))
	_, err = env.Client.Login(ctx, models.LoginRequest{Email: Email, Password: Password})
	require.NoError(t, err)
	return env
}

// Options returns client options pointing at the backend
func (e *Env) Options() api.Options {
	return api.Options{
		BaseURL: e.HTTP.URL + "/api",
		Domain:  e.HTTP.URL,
		Version: "v1",
		Timeout: 5 * time.Second,
	}
}

// NewClient returns an anonymous client. Non-zero fields of extra override the defaults.
func (e *Env) NewClient(t *testing.T, extra api.Options) *api.Client {
	t.Helper()
	opts := e.Options()
	opts.Navigator = extra.Navigator
	opts.Cookies = extra.Cookies
	opts.Transport = extra.Transport
	c, err := api.New(context.Background(), opts)
	require.NoError(t, err)
	return c
}

func (e *Env) Workspace(t *testing.T, name string) *models.Workspace {
	t.Helper()
	ws, err := e.Client.CreateWorkspace(context.Background(), api.WorkspaceInput{Name: name})
	require.NoError(t, err)
	return ws
}

func (e *Env) Space(t *testing.T, workspaceID types.WorkspaceID, name string) *models.Space {
	t.Helper()
	sp, err := e.Client.CreateSpace(context.Background(), workspaceID, api.SpaceInput{
		Name:       name,
		Visibility: models.VisibilityPrivate,
	})
	require.NoError(t, err)
	return sp
}

func (e *Env) Group(t *testing.T, spaceID types.SpaceID, name string) *models.Group {
	t.Helper()
	g, err := e.Client.CreateGroup(context.Background(), spaceID, api.GroupInput{Name: name})
	require.NoError(t, err)
	return g
}

// List creates a list; groupID may be empty for an ungrouped list
func (e *Env) List(t *testing.T, spaceID types.SpaceID, groupID types.GroupID, name string) *models.TaskList {
	t.Helper()
	l, err := e.Client.CreateList(context.Background(), spaceID, api.ListInput{Name: name, GroupID: groupID.Ptr()})
	require.NoError(t, err)
	return l
}

// Task creates a task; status may be empty for the list's first status
func (e *Env) Task(t *testing.T, listID types.ListID, title, status string) *models.Task {
	t.Helper()
	task, err := e.Client.CreateTask(context.Background(), listID, api.TaskInput{Title: title, Status: status})
	require.NoError(t, err)
	return task
}

// Hierarchy is a small seeded tree
type Hierarchy struct {
	Workspace *models.Workspace
	Space     *models.Space
	Group     *models.Group
	Grouped   *models.TaskList
	Ungrouped *models.TaskList
}

// Seed creates workspace > space > {group > list, ungrouped list}
func (e *Env) Seed(t *testing.T) Hierarchy {
	t.Helper()
	ws := e.Workspace(t, "Acme")
	sp := e.Space(t, ws.ID, "Engineering")
	g := e.Group(t, sp.ID, "Backend")
	return Hierarchy{
		Workspace: ws,
		Space:     sp,
		Group:     g,
		Grouped:   e.List(t, sp.ID, g.ID, "API"),
		Ungrouped: e.List(t, sp.ID, "", "Inbox"),
	}
}
