package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/lista/internal/app"
	"github.com/thenoetrevino/lista/internal/query"
	"github.com/thenoetrevino/lista/internal/types"
)

// gcInterval is how often unused cache entries are dropped while browsing
const gcInterval = time.Minute

// Run starts the browser in the alternate screen and blocks until it quits
// or ctx is cancelled
func Run(ctx context.Context, a *app.App, ws types.WorkspaceID, path string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.RunGC(ctx, gcInterval)

	p := tea.NewProgram(New(ctx, a, ws, path), tea.WithAltScreen(), tea.WithContext(ctx))
	unsubscribe := forwardRefetches(a.Cache, p.Send)
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}

// forwardRefetches hands background refetches to the program as messages.
// Other events are the browser's own reads and writes.
func forwardRefetches(c *query.Client, send func(tea.Msg)) func() {
	return c.Subscribe(func(ev query.Event) {
		if ev.Refetched {
			send(cacheRefetchedMsg{key: ev.Key})
		}
	})
}
