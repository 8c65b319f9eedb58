package tui

import (
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/navigation"
	"github.com/thenoetrevino/lista/internal/query"
	"github.com/thenoetrevino/lista/internal/taskview"
)

// sidebarLoadedMsg is sequenced like tasksLoadedMsg so a slow tree load
// cannot replace a newer one
type sidebarLoadedMsg struct {
	seq     int
	path    string
	sidebar *navigation.Sidebar
	crumbs  []navigation.Crumb
	err     error
}

// tasksLoadedMsg carries the request sequence so answers for a view the
// user already left are dropped
type tasksLoadedMsg struct {
	seq        int
	projection *taskview.Projection
	err        error
}

type detailLoadedMsg struct {
	detail *taskDetail
	err    error
}

type taskUpdatedMsg struct {
	task *models.Task
	err  error
}

type favoriteToggledMsg struct {
	name string
	on   bool
	err  error
}

type expireNotificationsMsg struct{}

// cacheRefetchedMsg reports data the cache refreshed in the background,
// e.g. after a delete
type cacheRefetchedMsg struct {
	key query.Key
}

// taskDetail is what the detail pane shows for one task
type taskDetail struct {
	task     *models.Task
	listName string
	comments []*models.TaskComment
}
