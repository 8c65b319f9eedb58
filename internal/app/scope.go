package app

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/taskview"
)

// ScopeTasks fetches the tasks of scope together with the lists used to name
// list sections. Workspace scopes only load lists when withLists is set.
func (a *App) ScopeTasks(ctx context.Context, scope taskview.Scope, withLists bool) ([]*models.Task, []*models.TaskList, error) {
	switch scope.Kind {
	case taskview.ScopeList:
		l, err := a.ListService.Get(ctx, scope.ListID)
		if err != nil {
			return nil, nil, err
		}
		tasks, err := a.TaskService.ListByList(ctx, scope.ListID)
		if err != nil {
			return nil, nil, err
		}
		return tasks, []*models.TaskList{l}, nil

	case taskview.ScopeGroup, taskview.ScopeSpace:
		if scope.SpaceID.Empty() {
			g, err := a.GroupService.Get(ctx, scope.GroupID)
			if err != nil {
				return nil, nil, err
			}
			scope.SpaceID = g.SpaceID
		}
		var all []*models.Task
		var lists []*models.TaskList
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			all, err = a.TaskService.All(gctx)
			return err
		})
		g.Go(func() (err error) {
			lists, err = a.ListService.List(gctx, scope.SpaceID)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
		return taskview.ResolveScope(all, lists, scope), lists, nil
	}

	all, err := a.TaskService.All(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !withLists || scope.WorkspaceID.Empty() {
		return taskview.ResolveScope(all, nil, scope), nil, nil
	}

	// list names for the by-list sections come from every space of the workspace
	spaces, err := a.SpaceService.List(ctx, scope.WorkspaceID)
	if err != nil {
		return nil, nil, err
	}
	var (
		mu    sync.Mutex
		lists []*models.TaskList
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, sp := range spaces {
		g.Go(func() error {
			ls, err := a.ListService.List(gctx, sp.ID)
			if err != nil {
				return err
			}
			mu.Lock()
			lists = append(lists, ls...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return taskview.ResolveScope(all, lists, scope), lists, nil
}
