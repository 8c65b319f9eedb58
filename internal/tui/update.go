package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/lista/internal/api"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/navigation"
	"github.com/thenoetrevino/lista/internal/taskview"
	"github.com/thenoetrevino/lista/internal/tui/state"
)

// Update handles all messages and updates the model accordingly
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = max(msg.Width-treeWidth-4, 20)
		m.viewport.Height = max(msg.Height-6, 5)
		return m, nil

	case sidebarLoadedMsg:
		if msg.seq != m.treeSeq {
			slog.Debug("dropping stale tree response", "seq", msg.seq, "current", m.treeSeq)
			return m, nil
		}
		if msg.err != nil {
			slog.Error("failed to load tree", "path", msg.path, "error", msg.err)
			return m, m.notify(state.LevelError, api.UserMessage(msg.err))
		}
		m.sidebar = msg.sidebar
		m.rows = msg.sidebar.Rows()
		if msg.crumbs != nil {
			m.crumbs = msg.crumbs
		}
		if msg.path == m.path && m.cursorPath != m.path {
			for i, r := range m.rows {
				if r.Current {
					m.treeCursor = i
					m.cursorPath = m.path
					break
				}
			}
		}
		m.treeCursor = clamp(m.treeCursor, len(m.rows))
		return m, nil

	case tasksLoadedMsg:
		if msg.seq != m.seq {
			slog.Debug("dropping stale task response", "seq", msg.seq, "current", m.seq)
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, m.notify(state.LevelError, api.UserMessage(msg.err))
		}
		m.projection = msg.projection
		m.taskCursor = clamp(m.taskCursor, len(msg.projection.Tasks()))
		return m, nil

	case detailLoadedMsg:
		if msg.err != nil {
			return m, m.notify(state.LevelError, api.UserMessage(msg.err))
		}
		m.detail = msg.detail
		m.viewport.SetContent(renderDetail(msg.detail, m.viewport.Width))
		m.viewport.GotoTop()
		return m, nil

	case taskUpdatedMsg:
		if msg.err != nil {
			return m, m.notify(state.LevelError, api.UserMessage(msg.err))
		}
		note := m.notify(state.LevelInfo, fmt.Sprintf("%s → %s", msg.task.Title, models.StatusLabel(msg.task.Status)))
		cmd := tea.Batch(note, m.reloadTasks())
		return m, cmd

	case favoriteToggledMsg:
		if msg.err != nil {
			return m, m.notify(state.LevelError, api.UserMessage(msg.err))
		}
		text := fmt.Sprintf("%s removed from favorites", msg.name)
		if msg.on {
			text = fmt.Sprintf("%s added to favorites", msg.name)
		}
		cmd := tea.Batch(m.notify(state.LevelInfo, text), m.reloadSidebar(false))
		return m, cmd

	case cacheRefetchedMsg:
		cmd := m.onCacheRefetched(msg.key)
		return m, cmd

	case expireNotificationsMsg:
		m.notifications.Expire(time.Now())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.detail != nil {
		if key.Matches(msg, m.keys.Back) {
			m.detail = nil
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Focus):
		if m.focus == paneTree {
			m.focus = paneTasks
		} else {
			m.focus = paneTree
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.app.Cache.Invalidate(nil)
		cmd := tea.Batch(m.reloadSidebar(false), m.reloadTasks())
		return m, cmd
	case key.Matches(msg, m.keys.View):
		m.params.View = nextView(m.params.View)
		m.taskCursor = 0
		cmd := m.reloadTasks()
		return m, cmd
	case key.Matches(msg, m.keys.GroupBy) && m.params.View == taskview.ViewList:
		m.params.GroupBy = nextGroupBy(m.params.GroupBy)
		cmd := m.reloadTasks()
		return m, cmd
	case key.Matches(msg, m.keys.ByList) && m.params.View == taskview.ViewList:
		m.params.AlsoGroupByList = !m.params.AlsoGroupByList
		cmd := m.reloadTasks()
		return m, cmd
	case key.Matches(msg, m.keys.PrevMonth) && m.params.View == taskview.ViewCalendar:
		m.month = m.month.AddDate(0, -1, 0)
		cmd := m.reloadTasks()
		return m, cmd
	case key.Matches(msg, m.keys.NextMonth) && m.params.View == taskview.ViewCalendar:
		m.month = m.month.AddDate(0, 1, 0)
		cmd := m.reloadTasks()
		return m, cmd
	}

	if m.focus == paneTree {
		return m.handleTreeKey(msg)
	}
	return m.handleTaskKey(msg)
}

func (m Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.treeCursor = clamp(m.treeCursor-1, len(m.rows))
	case key.Matches(msg, m.keys.Down):
		m.treeCursor = clamp(m.treeCursor+1, len(m.rows))
	case key.Matches(msg, m.keys.Open):
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		cmd := m.open(row.Path)
		return m, cmd
	case key.Matches(msg, m.keys.Back):
		parent := parentPath(m.path)
		if parent == m.path {
			return m, nil
		}
		cmd := m.open(parent)
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		row, ok := m.selectedRow()
		if !ok || row.Kind == navigation.NodeList {
			return m, nil
		}
		m.app.Expansion.Toggle(row.Key)
		cmd := m.reloadSidebar(false)
		return m, cmd
	case key.Matches(msg, m.keys.Favorite):
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		return m, toggleFavorite(m.ctx, m.app, m.ws, row)
	}
	return m, nil
}

func (m Model) handleTaskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := 0
	if m.projection != nil {
		count = len(m.projection.Tasks())
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.taskCursor = clamp(m.taskCursor-1, count)
	case key.Matches(msg, m.keys.Down):
		m.taskCursor = clamp(m.taskCursor+1, count)
	case key.Matches(msg, m.keys.Open):
		if t, ok := m.selectedTask(); ok {
			return m, loadDetail(m.ctx, m.app, t)
		}
	case key.Matches(msg, m.keys.Status):
		if t, ok := m.selectedTask(); ok {
			return m, advanceStatus(m.ctx, m.app, t)
		}
	case key.Matches(msg, m.keys.Back):
		m.focus = paneTree
	}
	return m, nil
}

// open moves the task pane to path, keeping the view parameters
func (m *Model) open(path string) tea.Cmd {
	m.path = navigation.ParseRoute(path).Path
	m.taskCursor = 0
	return tea.Batch(m.reloadSidebar(true), m.reloadTasks())
}

// parentPath drops the last entity of path, stopping at the workspace
func parentPath(path string) string {
	segs := navigation.Segments(path)
	drop := 2
	if len(segs)%2 == 1 {
		drop = 1
	}
	if len(segs)-drop < 2 {
		return path
	}
	return "/" + strings.Join(segs[:len(segs)-drop], "/")
}

func nextView(v taskview.View) taskview.View {
	switch v {
	case taskview.ViewList:
		return taskview.ViewKanban
	case taskview.ViewKanban:
		return taskview.ViewCalendar
	default:
		return taskview.ViewList
	}
}

func nextGroupBy(g taskview.GroupBy) taskview.GroupBy {
	switch g {
	case taskview.GroupByStatus:
		return taskview.GroupByPriority
	case taskview.GroupByPriority:
		return taskview.GroupByAssignee
	case taskview.GroupByAssignee:
		return taskview.GroupByNone
	default:
		return taskview.GroupByStatus
	}
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
