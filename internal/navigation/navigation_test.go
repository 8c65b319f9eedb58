package navigation

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// ============================================================================
// Routes
// ============================================================================

func TestParseRoute(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Route
	}{
		{"root", "/", Route{Path: "/", Page: PageDashboard}},
		{"dashboard", "/dashboard", Route{Path: "/dashboard", Page: PageDashboard}},
		{"login", "/login", Route{Path: "/login", Page: PageLogin}},
		{"workspace", "/workspaces/w1", Route{Path: "/workspaces/w1", Page: PageWorkspace, WorkspaceID: "w1"}},
		{"workspace settings", "/workspaces/w1/settings", Route{Path: "/workspaces/w1/settings", Page: PageWorkspace, Settings: true, WorkspaceID: "w1"}},
		{"space", "/workspaces/w1/spaces/s1", Route{Path: "/workspaces/w1/spaces/s1", Page: PageSpace, WorkspaceID: "w1", SpaceID: "s1"}},
		{
			"grouped list", "/workspaces/w1/spaces/s1/groups/g1/lists/l1",
			Route{Path: "/workspaces/w1/spaces/s1/groups/g1/lists/l1", Page: PageList, WorkspaceID: "w1", SpaceID: "s1", GroupID: "g1", ListID: "l1"},
		},
		{"tasks view", "/workspaces/w1/tasks", Route{Path: "/workspaces/w1/tasks", Page: PageTasks, WorkspaceID: "w1"}},
		{"single task", "/workspaces/w1/tasks/7", Route{Path: "/workspaces/w1/tasks/7", Page: PageTask, WorkspaceID: "w1", TaskID: "7"}},
		{"space without workspace", "/spaces/s1/lists/l1", Route{Path: "/spaces/s1/lists/l1", Page: PageList, SpaceID: "s1", ListID: "l1"}},
		{"unknown", "/nowhere", Route{Path: "/nowhere", Page: PageUnknown}},
		{"dangling collection", "/workspaces", Route{Path: "/workspaces", Page: PageUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRoute(tt.path)
			got.Query = nil
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRoute_Query(t *testing.T) {
	r := ParseRoute("/workspaces/w1/tasks?status=todo,done&view=kanban")
	assert.Equal(t, PageTasks, r.Page)
	assert.Equal(t, "/workspaces/w1/tasks", r.Path)
	assert.Equal(t, "todo,done", r.Query.Get("status"))
	assert.Equal(t, "kanban", r.Query.Get("view"))
}

func TestPathBuilders(t *testing.T) {
	assert.Equal(t, "/workspaces/w1", WorkspacePath("w1"))
	assert.Equal(t, "/workspaces/w1/spaces/s1", SpacePath("w1", "s1"))
	assert.Equal(t, "/workspaces/w1/spaces/s1/groups/g1", GroupPath("w1", "s1", "g1"))
	assert.Equal(t, "/workspaces/w1/spaces/s1/lists/l1", ListPath("w1", Ungrouped{SpaceID: "s1"}, "l1"))
	assert.Equal(t, "/workspaces/w1/spaces/s1/groups/g1/lists/l1", ListPath("w1", Grouped{SpaceID: "s1", GroupID: "g1"}, "l1"))
	assert.Equal(t, "/workspaces/w1/tasks", TasksPath("w1", nil))
	assert.Equal(t, "/workspaces/w1/tasks?view=calendar", TasksPath("w1", url.Values{"view": {"calendar"}}))
	assert.Equal(t, "/workspaces/w1/settings", SettingsPath("/workspaces/w1/"))
}

func TestListPath_RoundTripsThroughParseRoute(t *testing.T) {
	for _, loc := range []ListLocation{Ungrouped{SpaceID: "s1"}, Grouped{SpaceID: "s1", GroupID: "g1"}} {
		r := ParseRoute(ListPath("w1", loc, "l1"))
		assert.Equal(t, PageList, r.Page)
		assert.Equal(t, types.ID("l1"), r.ListID)
		assert.Equal(t, loc.Space(), r.SpaceID)
		if g, ok := loc.(Grouped); ok {
			assert.Equal(t, g.GroupID, r.GroupID)
		} else {
			assert.True(t, r.GroupID.Empty())
		}
	}
}

// ============================================================================
// List location
// ============================================================================

func TestLocateList(t *testing.T) {
	g := types.ID("g1")
	empty := types.ID("")
	assert.Equal(t, Grouped{SpaceID: "s1", GroupID: "g1"}, LocateList(&models.TaskList{SpaceID: "s1", GroupID: &g}))
	assert.Equal(t, Ungrouped{SpaceID: "s1"}, LocateList(&models.TaskList{SpaceID: "s1"}))
	assert.Equal(t, Ungrouped{SpaceID: "s1"}, LocateList(&models.TaskList{SpaceID: "s1", GroupID: &empty}))
}

func TestBucketLists(t *testing.T) {
	g1, g2 := types.ID("g1"), types.ID("g2")
	lists := []*models.TaskList{
		{ID: "a", SpaceID: "s1"},
		{ID: "b", SpaceID: "s1", GroupID: &g1},
		{ID: "c", SpaceID: "s1", GroupID: &g2},
		{ID: "d", SpaceID: "s1", GroupID: &g1},
	}
	b := BucketLists(lists)
	require.Len(t, b.Ungrouped, 1)
	assert.Equal(t, types.ID("a"), b.Ungrouped[0].ID)
	require.Len(t, b.Grouped["g1"], 2)
	assert.Equal(t, types.ID("b"), b.Grouped["g1"][0].ID)
	assert.Equal(t, types.ID("d"), b.Grouped["g1"][1].ID)
	assert.Len(t, b.Grouped["g2"], 1)
}

// ============================================================================
// Tree expansion
// ============================================================================

func TestDeriveTreeExpansion(t *testing.T) {
	g := types.ID("g9")
	known := KnownFromLists([]*models.TaskList{{ID: "l9", SpaceID: "s1", GroupID: &g}, {ID: "l2", SpaceID: "s1"}})

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"dashboard", "/dashboard", nil},
		{"space", "/workspaces/w1/spaces/s1", []string{"space:s1"}},
		{"group", "/workspaces/w1/spaces/s1/groups/g1", []string{"space:s1", "group:g1"}},
		{"grouped list via known", "/workspaces/w1/spaces/s1/lists/l9", []string{"space:s1", "group:g9"}},
		{"ungrouped list", "/workspaces/w1/spaces/s1/lists/l2", []string{"space:s1"}},
		{"unknown list", "/workspaces/w1/spaces/s1/lists/zz", []string{"space:s1"}},
		{"query ignored", "/workspaces/w1/spaces/s1?view=list", []string{"space:s1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveTreeExpansion(tt.path, known)
			assert.ElementsMatch(t, tt.want, got.ToSlice())
		})
	}
}

func TestExpansion_SyncNeverCollapses(t *testing.T) {
	e := NewExpansion()
	e.Sync("/workspaces/w1/spaces/s1/groups/g1", Known{})
	e.Sync("/workspaces/w1/spaces/s2", Known{})

	assert.True(t, e.IsExpanded(SpaceNode("s1")))
	assert.True(t, e.IsExpanded(GroupNode("g1")))
	assert.True(t, e.IsExpanded(SpaceNode("s2")))
	assert.Equal(t, []string{"group:g1", "space:s1", "space:s2"}, e.Keys())
}

func TestExpansion_Toggle(t *testing.T) {
	e := NewExpansion(SpaceNode("s1"))
	assert.False(t, e.Toggle(SpaceNode("s1")))
	assert.False(t, e.IsExpanded(SpaceNode("s1")))
	assert.True(t, e.Toggle(SpaceNode("s1")))

	// a manual collapse is undone by the next sync onto that path
	e.Toggle(SpaceNode("s1"))
	e.Sync("/workspaces/w1/spaces/s1", Known{})
	assert.True(t, e.IsExpanded(SpaceNode("s1")))
}

// ============================================================================
// Breadcrumbs
// ============================================================================

func TestBreadcrumbs_Dashboard(t *testing.T) {
	want := []Crumb{{Label: "Dashboard", Path: "/dashboard", Current: true}}
	assert.Equal(t, want, Breadcrumbs("/", nil))
	assert.Equal(t, want, Breadcrumbs("/dashboard", nil))
}

func TestBreadcrumbs_ResolvesNames(t *testing.T) {
	names := map[string]string{"workspaces/w1": "Acme", "spaces/s1": "Engineering"}
	lookup := func(collection string, id types.ID) (string, bool) {
		n, ok := names[collection+"/"+id.String()]
		return n, ok
	}

	got := Breadcrumbs("/workspaces/w1/spaces/s1/lists/l1/settings", lookup)
	want := []Crumb{
		{Label: "Workspaces", Path: "/workspaces"},
		{Label: "Acme", Path: "/workspaces/w1"},
		{Label: "Spaces", Path: "/workspaces/w1/spaces"},
		{Label: "Engineering", Path: "/workspaces/w1/spaces/s1"},
		{Label: "Lists", Path: "/workspaces/w1/spaces/s1/lists"},
		{Label: "#l1", Path: "/workspaces/w1/spaces/s1/lists/l1"},
		{Label: "Settings", Path: "/workspaces/w1/spaces/s1/lists/l1/settings", Current: true},
	}
	assert.Equal(t, want, got)
}

func TestBreadcrumbs_Projects(t *testing.T) {
	lookup := func(collection string, id types.ID) (string, bool) {
		return "Launch", collection == "projects" && id == "7"
	}

	got := Breadcrumbs("/projects/7/settings", lookup)
	want := []Crumb{
		{Label: "Projects", Path: "/projects"},
		{Label: "Launch", Path: "/projects/7"},
		{Label: "Settings", Path: "/projects/7/settings", Current: true},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, "#8", Breadcrumbs("/projects/8", lookup)[1].Label)
}

func TestBreadcrumbs_UnknownWordKept(t *testing.T) {
	got := Breadcrumbs("/profile/extra", nil)
	require.Len(t, got, 2)
	assert.Equal(t, "Profile", got[0].Label)
	assert.Equal(t, "extra", got[1].Label)
	assert.True(t, got[1].Current)
}

// ============================================================================
// Landing path
// ============================================================================

func TestRestorePath(t *testing.T) {
	tests := []struct {
		name       string
		workspaces []*models.Workspace
		want       string
	}{
		{"no workspaces", nil, "/dashboard"},
		{"last visited", []*models.Workspace{{ID: "w1", LastVisitedPath: "/workspaces/w1/spaces/s1"}, {ID: "w2"}}, "/workspaces/w1/spaces/s1"},
		{"workspace root", []*models.Workspace{{ID: "w1"}}, "/workspaces/w1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RestorePath(tt.workspaces))
		})
	}
}

// ============================================================================
// Navigator
// ============================================================================

type recorderCall struct {
	id   types.ID
	path string
}

type fakeRecorder struct {
	calls []recorderCall
	err   error
}

func (f *fakeRecorder) UpdateLastVisited(_ context.Context, id types.WorkspaceID, path string) error {
	f.calls = append(f.calls, recorderCall{id, path})
	return f.err
}

func TestNavigator_PushRecordsWorkspacePaths(t *testing.T) {
	rec := &fakeRecorder{}
	n := NewNavigator("", rec)
	ctx := context.Background()

	assert.Equal(t, "/dashboard", n.Path())
	n.Push(ctx, "/workspaces/w1/spaces/s1")
	n.Push(ctx, "/settings")

	assert.Equal(t, "/settings", n.Path())
	assert.Equal(t, []recorderCall{{"w1", "/workspaces/w1/spaces/s1"}}, rec.calls)
}

func TestNavigator_RecorderFailureDoesNotBlock(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("offline")}
	n := NewNavigator("/dashboard", rec)
	n.Push(context.Background(), "/workspaces/w1")
	assert.Equal(t, "/workspaces/w1", n.Path())
}

func TestNavigator_RedirectAndBack(t *testing.T) {
	n := NewNavigator("/dashboard", nil)
	var seen []string
	n.OnChange(func(p string) { seen = append(seen, p) })

	n.Push(context.Background(), "/workspaces/w1")
	n.Redirect("/login")

	back, ok := n.Back()
	require.True(t, ok)
	assert.Equal(t, "/dashboard", back)
	_, ok = n.Back()
	assert.False(t, ok)
	assert.Equal(t, []string{"/workspaces/w1", "/login", "/dashboard"}, seen)
}

// ============================================================================
// Sidebar
// ============================================================================

func sidebarInput(path string, open ...string) SidebarInput {
	g := types.ID("g1")
	return SidebarInput{
		WorkspaceID: "w1",
		Path:        path,
		Spaces: []*models.Space{
			{ID: "s10", Name: "Sprint 10"},
			{ID: "s2", Name: "Sprint 2"},
		},
		Content: map[types.SpaceID]SpaceContent{
			"s2": {
				Groups: []*models.Group{{ID: "g1", SpaceID: "s2", Name: "Backend"}},
				Lists: []*models.TaskList{
					{ID: "l3", SpaceID: "s2", Name: "Inbox"},
					{ID: "l1", SpaceID: "s2", GroupID: &g, Name: "API"},
					{ID: "l4", SpaceID: "s2", Name: "Old", IsArchived: true},
				},
			},
		},
		Favorites:  []models.Favorite{{ID: "list-l3", Name: "Inbox", Type: models.FavoriteList, URL: "/x"}},
		IsExpanded: func(key string) bool { return containsKey(open, key) },
	}
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func TestBuildSidebar_Layout(t *testing.T) {
	sb := BuildSidebar(sidebarInput("/workspaces/w1/spaces/s2/groups/g1/lists/l1", "space:s2", "group:g1"))

	assert.Equal(t, []string{"space:s2", "group:g1", "list:l1", "list:l3", "space:s10"}, sb.IDs())

	rows := sb.Rows()
	assert.Equal(t, []int{0, 1, 2, 1, 0}, []int{rows[0].Depth, rows[1].Depth, rows[2].Depth, rows[3].Depth, rows[4].Depth})
	assert.Equal(t, "/workspaces/w1/spaces/s2/groups/g1/lists/l1", rows[2].Path)
	assert.True(t, rows[3].Favorite)

	cur, ok := sb.Current()
	require.True(t, ok)
	assert.Equal(t, types.ID("l1"), cur.ID)
}

func TestBuildSidebar_CollapsedGroupHidesLists(t *testing.T) {
	sb := BuildSidebar(sidebarInput("/workspaces/w1/spaces/s2", "space:s2"))

	assert.Equal(t, []string{"space:s2", "group:g1", "list:l3", "space:s10"}, sb.IDs())
	cur, ok := sb.Current()
	require.True(t, ok)
	assert.Equal(t, NodeSpace, cur.Kind)
}

func TestBuildSidebar_NothingOpen(t *testing.T) {
	sb := BuildSidebar(sidebarInput("/workspaces/w1"))
	assert.Equal(t, []string{"space:s2", "space:s10"}, sb.IDs())
	_, ok := sb.Current()
	assert.False(t, ok)
}
