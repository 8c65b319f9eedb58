package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/lista/internal/app"
	"github.com/thenoetrevino/lista/internal/favorites"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/navigation"
	taskservice "github.com/thenoetrevino/lista/internal/services/task"
	"github.com/thenoetrevino/lista/internal/taskview"
	"github.com/thenoetrevino/lista/internal/types"
)

// loadSidebar rebuilds the tree. With sync the nodes leading to path are
// opened first, as happens after navigating.
func loadSidebar(ctx context.Context, a *app.App, seq int, ws types.WorkspaceID, path string, sync bool) tea.Cmd {
	return func() tea.Msg {
		if sync {
			a.SyncTree(ctx, path)
		}
		sb, err := a.Sidebar(ctx, ws, path, false)
		if err != nil {
			return sidebarLoadedMsg{seq: seq, path: path, err: err}
		}
		return sidebarLoadedMsg{
			seq:     seq,
			path:    path,
			sidebar: sb,
			crumbs:  navigation.Breadcrumbs(path, a.NameLookup(ctx)),
		}
	}
}

// navigate records path as the current location and reloads the tree around it
func navigate(ctx context.Context, a *app.App, seq int, ws types.WorkspaceID, path string) tea.Cmd {
	load := loadSidebar(ctx, a, seq, ws, path, true)
	return func() tea.Msg {
		a.Navigator.Push(ctx, path)
		return load()
	}
}

func loadTasks(ctx context.Context, a *app.App, seq int, path string, params taskview.Params, month time.Time) tea.Cmd {
	return func() tea.Msg {
		scope := taskview.ScopeFromRoute(navigation.ParseRoute(path))
		tasks, lists, err := a.ScopeTasks(ctx, scope, params.AlsoGroupByList)
		if err != nil {
			return tasksLoadedMsg{seq: seq, err: err}
		}
		return tasksLoadedMsg{seq: seq, projection: taskview.Project(scope, tasks, lists, params, month, time.Now())}
	}
}

func loadDetail(ctx context.Context, a *app.App, t *models.Task) tea.Cmd {
	return func() tea.Msg {
		d := &taskDetail{task: t}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			l, err := a.ListService.Get(gctx, t.ListID)
			if err != nil {
				return err
			}
			d.listName = l.Name
			return nil
		})
		g.Go(func() (err error) {
			d.comments, err = a.TaskService.ListComments(gctx, t.ID)
			return err
		})
		if err := g.Wait(); err != nil {
			return detailLoadedMsg{err: err}
		}
		return detailLoadedMsg{detail: d}
	}
}

// advanceStatus moves t to the status after its current one in its list's schema
func advanceStatus(ctx context.Context, a *app.App, t *models.Task) tea.Cmd {
	return func() tea.Msg {
		l, err := a.ListService.Get(ctx, t.ListID)
		if err != nil {
			return taskUpdatedMsg{err: err}
		}
		keys := l.Schema().Keys()
		if len(keys) == 0 {
			return taskUpdatedMsg{err: fmt.Errorf("list %s has no statuses", l.Name)}
		}
		next := keys[0]
		for i, k := range keys {
			if k == t.Status {
				next = keys[(i+1)%len(keys)]
				break
			}
		}
		updated, err := a.TaskService.Update(ctx, taskservice.UpdateTaskRequest{ID: t.ID, Status: &next})
		return taskUpdatedMsg{task: updated, err: err}
	}
}

func toggleFavorite(ctx context.Context, a *app.App, ws types.WorkspaceID, row navigation.Row) tea.Cmd {
	return func() tea.Msg {
		var fav models.Favorite
		switch row.Kind {
		case navigation.NodeSpace:
			sp, err := a.SpaceService.Get(ctx, row.ID)
			if err != nil {
				return favoriteToggledMsg{err: err}
			}
			fav = favorites.ForSpace(ws, sp)
		case navigation.NodeList:
			l, err := a.ListService.Get(ctx, row.ID)
			if err != nil {
				return favoriteToggledMsg{err: err}
			}
			fav = favorites.ForList(ws, l)
		default:
			return favoriteToggledMsg{err: fmt.Errorf("only spaces and lists can be favorites")}
		}
		on, err := a.Favorites.Toggle(ctx, ws, fav)
		return favoriteToggledMsg{name: fav.Name, on: on, err: err}
	}
}

// tick is swapped out in tests
var tick = tea.Tick

func expireAfter(d time.Duration) tea.Cmd {
	return tick(d, func(time.Time) tea.Msg { return expireNotificationsMsg{} })
}
