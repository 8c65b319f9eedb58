package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/lista/internal/keyutil"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/navigation"
	"github.com/thenoetrevino/lista/internal/types"
)

// Sidebar builds the navigation tree of ws as seen from path using the
// current expansion. Call SyncTree first to open the nodes path needs. With
// expandAll every node is open.
func (a *App) Sidebar(ctx context.Context, ws types.WorkspaceID, path string, expandAll bool) (*navigation.Sidebar, error) {
	if path == "" {
		path = navigation.WorkspacePath(ws)
	}

	isExpanded := a.Expansion.IsExpanded
	if expandAll {
		isExpanded = func(string) bool { return true }
	}

	spaces, err := a.SpaceService.List(ctx, ws)
	if err != nil {
		return nil, err
	}
	favs, err := a.Favorites.List(ctx, ws)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	content := make(map[types.SpaceID]navigation.SpaceContent)
	g, gctx := errgroup.WithContext(ctx)
	for _, sp := range spaces {
		if !isExpanded(navigation.SpaceNode(sp.ID)) {
			continue
		}
		g.Go(func() error {
			var (
				groups []*models.Group
				lists  []*models.TaskList
			)
			inner, ictx := errgroup.WithContext(gctx)
			inner.Go(func() (err error) {
				groups, err = a.GroupService.List(ictx, sp.ID)
				return err
			})
			inner.Go(func() (err error) {
				lists, err = a.ListService.List(ictx, sp.ID)
				return err
			})
			if err := inner.Wait(); err != nil {
				return fmt.Errorf("failed to load space %s: %w", sp.ID, err)
			}
			mu.Lock()
			content[sp.ID] = navigation.SpaceContent{Groups: groups, Lists: lists}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sb := navigation.BuildSidebar(navigation.SidebarInput{
		WorkspaceID: ws,
		Path:        path,
		Spaces:      spaces,
		Content:     content,
		Favorites:   favs,
		IsExpanded:  isExpanded,
	})
	// rows are addressed by key in the TUI cursor
	if v := keyutil.ValidateKeys(sb.IDs()); !v.Valid {
		slog.Warn("duplicate sidebar keys", "workspace", ws, "duplicates", v.Duplicates)
	}
	return sb, nil
}
