// Package tui implements the interactive browser: a navigation tree on the
// left and the tasks of the selected scope on the right.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/lista/internal/app"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/navigation"
	"github.com/thenoetrevino/lista/internal/query"
	"github.com/thenoetrevino/lista/internal/taskview"
	"github.com/thenoetrevino/lista/internal/tui/state"
	"github.com/thenoetrevino/lista/internal/types"
)

type pane int

const (
	paneTree pane = iota
	paneTasks
)

const (
	treeWidth       = 32
	notificationTTL = 4 * time.Second
)

// Model represents the application state for the TUI
type Model struct {
	ctx context.Context
	app *app.App
	ws  types.WorkspaceID

	// path is the app path the task pane shows
	path   string
	params taskview.Params
	month  time.Time

	sidebar    *navigation.Sidebar
	treeSeq    int
	rows       []navigation.Row
	crumbs     []navigation.Crumb
	treeCursor int
	// cursorPath is the path the tree cursor was last moved to
	cursorPath string

	projection *taskview.Projection
	taskCursor int
	seq        int
	loading    bool

	detail   *taskDetail
	viewport viewport.Model

	focus         pane
	keys          keyMap
	help          help.Model
	notifications *state.NotificationState

	width  int
	height int
}

// New creates the browser for workspace ws, opened at path. An empty path
// opens the workspace itself.
func New(ctx context.Context, a *app.App, ws types.WorkspaceID, path string) Model {
	if path == "" {
		path = navigation.WorkspacePath(ws)
	}
	route := navigation.ParseRoute(path)
	return Model{
		ctx:           ctx,
		app:           a,
		ws:            ws,
		path:          route.Path,
		params:        taskview.ParseParams(route.Query),
		month:         time.Now(),
		keys:          newKeyMap(a.Config.KeyMappings),
		help:          help.New(),
		notifications: state.NewNotificationState(notificationTTL),
		viewport:      viewport.New(80, 20),
		seq:           1,
		treeSeq:       1,
		loading:       true,
		width:         120,
		height:        40,
	}
}

// Init loads the tree and the tasks of the start path
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		navigate(m.ctx, m.app, m.treeSeq, m.ws, m.path),
		loadTasks(m.ctx, m.app, m.seq, m.path, m.params, m.month),
	)
}

// Path is the app path the browser is showing
func (m Model) Path() string {
	return m.path
}

// selectedRow returns the tree row under the cursor
func (m Model) selectedRow() (navigation.Row, bool) {
	if m.treeCursor < 0 || m.treeCursor >= len(m.rows) {
		return navigation.Row{}, false
	}
	return m.rows[m.treeCursor], true
}

// selectedTask returns the task under the cursor
func (m Model) selectedTask() (*models.Task, bool) {
	if m.projection == nil {
		return nil, false
	}
	tasks := m.projection.Tasks()
	if m.taskCursor < 0 || m.taskCursor >= len(tasks) {
		return nil, false
	}
	return tasks[m.taskCursor], true
}

// reloadTasks starts a new task request; answers to older ones are ignored
func (m *Model) reloadTasks() tea.Cmd {
	m.seq++
	m.loading = true
	return loadTasks(m.ctx, m.app, m.seq, m.path, m.params, m.month)
}

// reloadSidebar starts a new tree request; answers to older ones are ignored
func (m *Model) reloadSidebar(sync bool) tea.Cmd {
	m.treeSeq++
	if sync {
		return navigate(m.ctx, m.app, m.treeSeq, m.ws, m.path)
	}
	return loadSidebar(m.ctx, m.app, m.treeSeq, m.ws, m.path, false)
}

// onCacheRefetched reloads the pane that shows key. Only background
// refetches arrive here, so the reload's own fetch does not trigger another.
func (m *Model) onCacheRefetched(key query.Key) tea.Cmd {
	if len(key) == 0 {
		return nil
	}
	switch key[0] {
	case "tasks", "task":
		return m.reloadTasks()
	case "workspaces", "workspace", "spaces", "space", "groups", "group", "lists", "list":
		return m.reloadSidebar(false)
	}
	return nil
}

func (m *Model) notify(level state.NotificationLevel, msg string) tea.Cmd {
	m.notifications.Add(level, msg, time.Now())
	return expireAfter(m.notifications.TTL())
}
