// Package taskview derives the list, kanban and calendar projections of a
// task collection from the current scope and the view's query parameters.
package taskview

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/navigation"
	"github.com/thenoetrevino/lista/internal/types"
)

// ScopeKind is the level of the hierarchy a view is showing
type ScopeKind int

const (
	ScopeWorkspace ScopeKind = iota
	ScopeSpace
	ScopeGroup
	ScopeList
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeSpace:
		return "space"
	case ScopeGroup:
		return "group"
	case ScopeList:
		return "list"
	default:
		return "workspace"
	}
}

// Scope selects the tasks a view shows
type Scope struct {
	Kind        ScopeKind
	WorkspaceID types.WorkspaceID
	SpaceID     types.SpaceID
	GroupID     types.GroupID
	ListID      types.ListID
}

// ScopeFromRoute picks the narrowest scope named by the route
func ScopeFromRoute(r navigation.Route) Scope {
	s := Scope{WorkspaceID: r.WorkspaceID, SpaceID: r.SpaceID, GroupID: r.GroupID, ListID: r.ListID}
	switch {
	case !r.ListID.Empty():
		s.Kind = ScopeList
	case !r.GroupID.Empty():
		s.Kind = ScopeGroup
	case !r.SpaceID.Empty():
		s.Kind = ScopeSpace
	default:
		s.Kind = ScopeWorkspace
	}
	return s
}

// EmptyMessage is shown when the scope has no tasks
func (s Scope) EmptyMessage() string {
	return "No tasks in this " + s.Kind.String()
}

// ResolveScope keeps the tasks whose list belongs to scope. lists are the
// lists of the scope's space; they are ignored at workspace scope.
func ResolveScope(all []*models.Task, lists []*models.TaskList, scope Scope) []*models.Task {
	switch scope.Kind {
	case ScopeWorkspace:
		return append([]*models.Task{}, all...)
	case ScopeList:
		return byLists(all, mapset.NewThreadUnsafeSet(scope.ListID))
	}

	ids := mapset.NewThreadUnsafeSet[types.ListID]()
	for _, l := range lists {
		if scope.Kind == ScopeGroup && types.Deref(l.GroupID) != scope.GroupID {
			continue
		}
		if !scope.SpaceID.Empty() && l.SpaceID != scope.SpaceID {
			continue
		}
		ids.Add(l.ID)
	}
	return byLists(all, ids)
}

func byLists(all []*models.Task, ids mapset.Set[types.ListID]) []*models.Task {
	out := make([]*models.Task, 0, len(all))
	for _, t := range all {
		if ids.Contains(t.ListID) {
			out = append(out, t)
		}
	}
	return out
}
