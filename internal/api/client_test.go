package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lista/internal/mockapi"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// ============================================================================
// Test helpers
// ============================================================================

type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type fakeNavigator struct {
	mu        sync.Mutex
	path      string
	redirects []string
}

func (n *fakeNavigator) Path() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func (n *fakeNavigator) Redirect(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.redirects = append(n.redirects, path)
	n.path = path
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func setup(t *testing.T, mutate func(*Options)) (*Client, *mockapi.Server, *httptest.Server) {
	t.Helper()
	backend := mockapi.New()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	opts := Options{
		BaseURL: srv.URL + "/api",
		Domain:  srv.URL,
		Version: "v1",
		Timeout: 5 * time.Second,
	}
	if mutate != nil {
		mutate(&opts)
	}
	client, err := New(context.Background(), opts)
	require.NoError(t, err)
	return client, backend, srv
}

func login(t *testing.T, c *Client, backend *mockapi.Server) *models.User {
	t.Helper()
	user, err := backend.AddUser("Ada", "ada@example.com", "password123")
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, c.EnsureCSRF(ctx))
	_, err = c.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)
	return user
}

// ============================================================================
// Path prefixing
// ============================================================================

func TestVersionedPath(t *testing.T) {
	tests := []struct {
		name    string
		version string
		path    string
		want    string
	}{
		{"resource path is prefixed", "v1", "/workspaces", "/v1/workspaces"},
		{"nested resource path is prefixed", "v1", "/spaces/abc/lists", "/v1/spaces/abc/lists"},
		{"auth path is left alone", "v1", "/auth/session/login", "/auth/session/login"},
		{"authors is not auth", "v1", "/authors", "/v1/authors"},
		{"absolute url is left alone", "v1", "http://localhost:8000/sanctum/csrf-cookie", "http://localhost:8000/sanctum/csrf-cookie"},
		{"empty version", "", "/workspaces", "/workspaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VersionedPath(tt.version, tt.path))
		})
	}
}

// ============================================================================
// Session flow
// ============================================================================

func TestLogin_CurrentUserMatches(t *testing.T) {
	c, backend, _ := setup(t, nil)
	ctx := context.Background()
	backend.AddUser("Ada", "ada@example.com", "password123")

	require.NoError(t, c.EnsureCSRF(ctx))
	resp, err := c.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)

	me, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, me.ID)
	assert.Equal(t, "Ada", me.Name)
}

func TestLogin_WithoutCSRFIsRejected(t *testing.T) {
	c, backend, _ := setup(t, nil)
	backend.AddUser("Ada", "ada@example.com", "password123")

	_, err := c.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "password123"})
	require.Error(t, err)
	assert.Equal(t, 419, StatusOf(err))
}

func TestLogin_BadCredentialsIsValidationError(t *testing.T) {
	c, backend, _ := setup(t, nil)
	ctx := context.Background()
	backend.AddUser("Ada", "ada@example.com", "password123")

	require.NoError(t, c.EnsureCSRF(ctx))
	_, err := c.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, UserMessage(err), "email: These credentials do not match our records.")
}

func TestCurrentUser_AnonymousIsUnauthorized(t *testing.T) {
	c, _, _ := setup(t, nil)

	_, err := c.CurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Please log in", UserMessage(err))
}

func TestLogout_EndsSession(t *testing.T) {
	c, backend, _ := setup(t, nil)
	ctx := context.Background()
	login(t, c, backend)

	require.NoError(t, c.Logout(ctx))
	_, err := c.CurrentUser(ctx)
	assert.True(t, IsUnauthorized(err))
}

// ============================================================================
// 401 redirect
// ============================================================================

func TestUnauthorized_RedirectsOncePerEpisode(t *testing.T) {
	nav := &fakeNavigator{path: "/workspaces/1"}
	c, backend, _ := setup(t, func(o *Options) { o.Navigator = nav })
	ctx := context.Background()
	login(t, c, backend)

	backend.ExpireSessions()
	_, err := c.ListWorkspaces(ctx)
	require.True(t, IsUnauthorized(err))
	nav.path = "/workspaces/1"
	_, err = c.ListWorkspaces(ctx)
	require.True(t, IsUnauthorized(err))

	assert.Equal(t, []string{"/login"}, nav.redirects)
}

func TestUnauthorized_NoRedirectWhenAlreadyAtLogin(t *testing.T) {
	nav := &fakeNavigator{path: "/login"}
	c, _, _ := setup(t, func(o *Options) { o.Navigator = nav })

	_, err := c.CurrentUser(context.Background())
	require.True(t, IsUnauthorized(err))
	assert.Empty(t, nav.redirects)
}

// ============================================================================
// Retry policy
// ============================================================================

func TestGet_RetriedOnceOnTransportError(t *testing.T) {
	var calls atomic.Int32
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("connection reset")
		}
		return http.DefaultTransport.RoundTrip(r)
	})
	c, _, _ := setup(t, func(o *Options) { o.Transport = transport })

	// anonymous: the second attempt reaches the server and returns 401
	_, err := c.CurrentUser(context.Background())
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(2), calls.Load())
}

func TestPost_NotRetried(t *testing.T) {
	var calls atomic.Int32
	transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("connection reset")
	})
	c, _, _ := setup(t, func(o *Options) { o.Transport = transport })

	_, err := c.CreateWorkspace(context.Background(), WorkspaceInput{Name: "Acme"})
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestServerErrors_NotRetried(t *testing.T) {
	c, backend, _ := setup(t, nil)
	login(t, c, backend)
	backend.FailNext(http.MethodGet, "/api/v1/workspaces", http.StatusInternalServerError)

	_, err := c.ListWorkspaces(context.Background())
	require.Error(t, err)
	assert.True(t, IsServer(err))
	assert.Equal(t, "Server error. Please try again later", UserMessage(err))
	assert.Equal(t, 1, backend.Hits(http.MethodGet, "/api/v1/workspaces"))
}

// ============================================================================
// Cookie persistence
// ============================================================================

func TestCookies_PersistAcrossClients(t *testing.T) {
	kv := newMemKV()
	c, backend, srv := setup(t, func(o *Options) { o.Cookies = kv })
	login(t, c, backend)

	_, ok, err := kv.Get(context.Background(), CookiesKey)
	require.NoError(t, err)
	require.True(t, ok)

	next, err := New(context.Background(), Options{
		BaseURL: srv.URL + "/api",
		Domain:  srv.URL,
		Version: "v1",
		Timeout: 5 * time.Second,
		Cookies: kv,
	})
	require.NoError(t, err)

	me, err := next.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", me.Email)
}

func TestClearCookies_ForgetsSession(t *testing.T) {
	kv := newMemKV()
	c, backend, _ := setup(t, func(o *Options) { o.Cookies = kv })
	login(t, c, backend)

	require.NoError(t, c.ClearCookies(context.Background()))

	_, ok, _ := kv.Get(context.Background(), CookiesKey)
	assert.False(t, ok)
	_, err := c.CurrentUser(context.Background())
	assert.True(t, IsUnauthorized(err))
}

// ============================================================================
// Resources
// ============================================================================

func TestResources_HierarchyRoundTrip(t *testing.T) {
	c, backend, _ := setup(t, nil)
	ctx := context.Background()
	login(t, c, backend)

	ws, err := c.CreateWorkspace(ctx, WorkspaceInput{Name: "Acme Corp"})
	require.NoError(t, err)
	assert.Equal(t, "acme-corp", ws.Slug)

	space, err := c.CreateSpace(ctx, ws.ID, SpaceInput{Name: "Sales", Visibility: models.VisibilityPublic})
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPublic, space.Visibility)

	group, err := c.CreateGroup(ctx, space.ID, GroupInput{Name: "Q1"})
	require.NoError(t, err)

	list, err := c.CreateList(ctx, space.ID, ListInput{Name: "Leads"})
	require.NoError(t, err)
	assert.Nil(t, list.GroupID)
	assert.Equal(t, models.DefaultStatusSchema(), list.StatusSchema)

	moved, err := c.UpdateList(ctx, list.ID, ListPatch{SetGroup: true, GroupID: group.ID.Ptr()})
	require.NoError(t, err)
	assert.Equal(t, group.ID, types.Deref(moved.GroupID))

	back, err := c.UpdateList(ctx, list.ID, ListPatch{SetGroup: true})
	require.NoError(t, err)
	assert.Nil(t, back.GroupID)

	renamed, err := c.UpdateList(ctx, list.ID, ListPatch{Name: strPtr("Hot leads")})
	require.NoError(t, err)
	assert.Equal(t, "Hot leads", renamed.Name)
	assert.Nil(t, renamed.GroupID, "group is untouched when not sent")

	task, err := c.CreateTask(ctx, list.ID, TaskInput{Title: "Call Bob", Priority: models.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.NotEmpty(t, task.ID)

	all, err := c.ListAllTasks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, task.ID, all[0].ID)
}

func TestDeleteWithChildren_IsValidationError(t *testing.T) {
	c, backend, _ := setup(t, nil)
	ctx := context.Background()
	login(t, c, backend)

	ws, err := c.CreateWorkspace(ctx, WorkspaceInput{Name: "Acme"})
	require.NoError(t, err)
	space, err := c.CreateSpace(ctx, ws.ID, SpaceInput{Name: "Ops", Visibility: models.VisibilityPrivate})
	require.NoError(t, err)
	_, err = c.CreateList(ctx, space.ID, ListInput{Name: "Backlog"})
	require.NoError(t, err)

	err = c.DeleteSpace(ctx, space.ID)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	got, err := c.GetSpace(ctx, space.ID)
	require.NoError(t, err)
	assert.Equal(t, space.ID, got.ID)
}

func TestTaskStatus_MustBelongToSchema(t *testing.T) {
	c, backend, _ := setup(t, nil)
	ctx := context.Background()
	login(t, c, backend)

	ws, _ := c.CreateWorkspace(ctx, WorkspaceInput{Name: "Acme"})
	space, _ := c.CreateSpace(ctx, ws.ID, SpaceInput{Name: "Ops", Visibility: models.VisibilityPrivate})
	list, err := c.CreateList(ctx, space.ID, ListInput{Name: "Backlog"})
	require.NoError(t, err)

	_, err = c.CreateTask(ctx, list.ID, TaskInput{Title: "x", Status: "archived"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "status: The selected status is invalid.", UserMessage(err))
}

func TestAttachments_UploadAndList(t *testing.T) {
	c, backend, _ := setup(t, nil)
	ctx := context.Background()
	login(t, c, backend)

	ws, _ := c.CreateWorkspace(ctx, WorkspaceInput{Name: "Acme"})
	space, _ := c.CreateSpace(ctx, ws.ID, SpaceInput{Name: "Ops", Visibility: models.VisibilityPrivate})
	list, _ := c.CreateList(ctx, space.ID, ListInput{Name: "Backlog"})
	task, err := c.CreateTask(ctx, list.ID, TaskInput{Title: "Report"})
	require.NoError(t, err)

	att, err := c.UploadAttachment(ctx, task.ID, "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", att.FileName)
	assert.Equal(t, int64(5), att.FileSize)

	atts, err := c.ListAttachments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, atts, 1)

	require.NoError(t, c.DeleteAttachment(ctx, att.ID))
	atts, err = c.ListAttachments(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, atts)
}

func TestForbidden_OtherUsersWorkspace(t *testing.T) {
	c, backend, srv := setup(t, nil)
	ctx := context.Background()
	login(t, c, backend)
	ws, err := c.CreateWorkspace(ctx, WorkspaceInput{Name: "Private"})
	require.NoError(t, err)

	other, err := New(ctx, Options{BaseURL: srv.URL + "/api", Domain: srv.URL, Version: "v1", Timeout: 5 * time.Second})
	require.NoError(t, err)
	backend.AddUser("Eve", "eve@example.com", "password123")
	require.NoError(t, other.EnsureCSRF(ctx))
	_, err = other.Login(ctx, models.LoginRequest{Email: "eve@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = other.GetWorkspace(ctx, ws.ID)
	require.Error(t, err)
	assert.True(t, IsForbidden(err))
}

func strPtr(s string) *string { return &s }
