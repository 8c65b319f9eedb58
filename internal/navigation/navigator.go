package navigation

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/thenoetrevino/lista/internal/types"
)

// LastVisitedRecorder persists the last path visited inside a workspace
type LastVisitedRecorder interface {
	UpdateLastVisited(ctx context.Context, id types.WorkspaceID, path string) error
}

// Navigator tracks the current path and its history. Safe for concurrent use;
// the API client calls Redirect from its response hook.
type Navigator struct {
	mu        sync.Mutex
	history   []string
	recorder  LastVisitedRecorder
	listeners []func(path string)
}

func NewNavigator(start string, recorder LastVisitedRecorder) *Navigator {
	if start == "" {
		start = Home
	}
	return &Navigator{history: []string{start}, recorder: recorder}
}

// SetRecorder wires the last-visited recorder after construction
func (n *Navigator) SetRecorder(r LastVisitedRecorder) {
	n.mu.Lock()
	n.recorder = r
	n.mu.Unlock()
}

func (n *Navigator) Path() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.history[len(n.history)-1]
}

// OnChange registers fn to run after every path change
func (n *Navigator) OnChange(fn func(path string)) {
	n.mu.Lock()
	n.listeners = append(n.listeners, fn)
	n.mu.Unlock()
}

// Push moves to path. Paths inside a workspace are reported to the
// recorder; a recorder failure is logged and does not block navigation.
func (n *Navigator) Push(ctx context.Context, path string) {
	n.mu.Lock()
	if n.history[len(n.history)-1] != path {
		n.history = append(n.history, path)
	}
	recorder := n.recorder
	n.mu.Unlock()

	n.changed(path)

	if recorder == nil || !strings.HasPrefix(path, "/workspaces/") {
		return
	}
	route := ParseRoute(path)
	if route.WorkspaceID.Empty() {
		return
	}
	if err := recorder.UpdateLastVisited(ctx, route.WorkspaceID, path); err != nil {
		slog.Warn("failed to record last visited path", "workspace", route.WorkspaceID, "path", path, "error", err)
	}
}

// Redirect replaces the current path without adding history
func (n *Navigator) Redirect(path string) {
	n.mu.Lock()
	n.history[len(n.history)-1] = path
	n.mu.Unlock()
	n.changed(path)
}

// Back returns to the previous path; false when there is none
func (n *Navigator) Back() (string, bool) {
	n.mu.Lock()
	if len(n.history) < 2 {
		n.mu.Unlock()
		return "", false
	}
	n.history = n.history[:len(n.history)-1]
	path := n.history[len(n.history)-1]
	n.mu.Unlock()
	n.changed(path)
	return path, true
}

func (n *Navigator) changed(path string) {
	n.mu.Lock()
	listeners := append([]func(string){}, n.listeners...)
	n.mu.Unlock()
	for _, fn := range listeners {
		fn(path)
	}
}
