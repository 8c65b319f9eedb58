package navigation

import (
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// SpaceNode and GroupNode build the namespaced keys of tree nodes
func SpaceNode(id types.SpaceID) string { return "space:" + id.String() }
func GroupNode(id types.GroupID) string { return "group:" + id.String() }

// Known holds what the client already knows about lists, so a list path
// can expand the group containing it
type Known struct {
	ListGroups map[types.ListID]types.GroupID
}

// KnownFromLists indexes the group of every grouped list
func KnownFromLists(lists ...[]*models.TaskList) Known {
	k := Known{ListGroups: make(map[types.ListID]types.GroupID)}
	for _, batch := range lists {
		for _, l := range batch {
			if l.Grouped() {
				k.ListGroups[l.ID] = *l.GroupID
			}
		}
	}
	return k
}

// DeriveTreeExpansion returns the nodes that must be open for path to be visible
func DeriveTreeExpansion(path string, known Known) mapset.Set[string] {
	out := mapset.NewThreadUnsafeSet[string]()
	segs := Segments(path)
	for i := 0; i+1 < len(segs); i++ {
		id := types.ID(segs[i+1])
		switch segs[i] {
		case "spaces":
			out.Add(SpaceNode(id))
		case "groups":
			out.Add(GroupNode(id))
		case "lists":
			if g, ok := known.ListGroups[id]; ok && !g.Empty() {
				out.Add(GroupNode(g))
			}
		}
	}
	return out
}

// Expansion is the locally held set of open tree nodes
type Expansion struct {
	mu  sync.Mutex
	set mapset.Set[string]
}

func NewExpansion(keys ...string) *Expansion {
	return &Expansion{set: mapset.NewThreadUnsafeSet(keys...)}
}

// Sync opens every node required by path. Nodes are never collapsed here.
func (e *Expansion) Sync(path string, known Known) {
	derived := DeriveTreeExpansion(path, known)
	e.mu.Lock()
	e.set = e.set.Union(derived)
	e.mu.Unlock()
}

// Toggle flips a node and reports whether it is now open
func (e *Expansion) Toggle(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Contains(key) {
		e.set.Remove(key)
		return false
	}
	e.set.Add(key)
	return true
}

func (e *Expansion) IsExpanded(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.set.Contains(key)
}

// Keys returns the open nodes sorted
func (e *Expansion) Keys() []string {
	e.mu.Lock()
	keys := e.set.ToSlice()
	e.mu.Unlock()
	sort.Strings(keys)
	return keys
}
