package navigation

import (
	"sort"

	"github.com/maruel/natural"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// NodeKind is the entity a sidebar node stands for
type NodeKind string

const (
	NodeSpace NodeKind = "space"
	NodeGroup NodeKind = "group"
	NodeList  NodeKind = "list"
)

// SidebarNode is one row of the navigation tree. Children of a collapsed
// space are not loaded.
type SidebarNode struct {
	Key      string         `json:"key"`
	Kind     NodeKind       `json:"kind"`
	ID       types.ID       `json:"id"`
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	Expanded bool           `json:"expanded"`
	Current  bool           `json:"current"`
	Favorite bool           `json:"favorite"`
	Children []*SidebarNode `json:"children,omitempty"`
}

// Sidebar is the tree of one workspace as seen from a path
type Sidebar struct {
	WorkspaceID types.WorkspaceID `json:"workspace_id"`
	Path        string            `json:"path"`
	Favorites   []models.Favorite `json:"favorites"`
	Spaces      []*SidebarNode    `json:"spaces"`
}

// Row is a visible node with its depth
type Row struct {
	*SidebarNode
	Depth int
}

// Rows flattens the visible part of the tree, skipping children of collapsed nodes
func (s *Sidebar) Rows() []Row {
	var rows []Row
	var walk func(nodes []*SidebarNode, depth int)
	walk = func(nodes []*SidebarNode, depth int) {
		for _, n := range nodes {
			rows = append(rows, Row{SidebarNode: n, Depth: depth})
			if n.Expanded {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(s.Spaces, 0)
	return rows
}

// IDs returns the keys of the visible rows
func (s *Sidebar) IDs() []string {
	rows := s.Rows()
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Key
	}
	return out
}

// Current returns the row matching the sidebar's path, if visible
func (s *Sidebar) Current() (Row, bool) {
	for _, r := range s.Rows() {
		if r.Current {
			return r, true
		}
	}
	return Row{}, false
}

// SpaceContent is what the tree needs to lay out an opened space
type SpaceContent struct {
	Groups []*models.Group
	Lists  []*models.TaskList
}

// SidebarInput carries everything BuildSidebar lays out
type SidebarInput struct {
	WorkspaceID types.WorkspaceID
	Path        string
	Spaces      []*models.Space
	Content     map[types.SpaceID]SpaceContent
	Favorites   []models.Favorite
	IsExpanded  func(key string) bool
}

// BuildSidebar lays out spaces, groups and lists in natural name order.
// Inside a space groups come first, then ungrouped lists. Archived lists are left out.
func BuildSidebar(in SidebarInput) *Sidebar {
	route := ParseRoute(in.Path)
	favs := make(map[types.ID]bool, len(in.Favorites))
	for _, f := range in.Favorites {
		favs[f.ID] = true
	}
	expanded := in.IsExpanded
	if expanded == nil {
		expanded = func(string) bool { return false }
	}

	sb := &Sidebar{WorkspaceID: in.WorkspaceID, Path: route.Path, Favorites: in.Favorites}

	for _, sp := range sortedByName(in.Spaces, func(s *models.Space) string { return s.Name }) {
		node := &SidebarNode{
			Key:      SpaceNode(sp.ID),
			Kind:     NodeSpace,
			ID:       sp.ID,
			Name:     sp.Name,
			Path:     SpacePath(in.WorkspaceID, sp.ID),
			Expanded: expanded(SpaceNode(sp.ID)),
			Current:  route.SpaceID == sp.ID && route.GroupID.Empty() && route.ListID.Empty(),
			Favorite: favs["space-"+sp.ID],
		}
		sb.Spaces = append(sb.Spaces, node)

		content, ok := in.Content[sp.ID]
		if !ok {
			continue
		}
		active := make([]*models.TaskList, 0, len(content.Lists))
		for _, l := range content.Lists {
			if !l.IsArchived {
				active = append(active, l)
			}
		}
		buckets := BucketLists(active)
		listNode := func(l *models.TaskList) *SidebarNode {
			return &SidebarNode{
				Key:      "list:" + l.ID.String(),
				Kind:     NodeList,
				ID:       l.ID,
				Name:     l.Name,
				Path:     ListPath(in.WorkspaceID, LocateList(l), l.ID),
				Current:  route.ListID == l.ID,
				Favorite: favs["list-"+l.ID],
			}
		}

		for _, g := range sortedByName(content.Groups, func(g *models.Group) string { return g.Name }) {
			gn := &SidebarNode{
				Key:      GroupNode(g.ID),
				Kind:     NodeGroup,
				ID:       g.ID,
				Name:     g.Name,
				Path:     GroupPath(in.WorkspaceID, sp.ID, g.ID),
				Expanded: expanded(GroupNode(g.ID)),
				Current:  route.GroupID == g.ID && route.ListID.Empty(),
			}
			for _, l := range sortedByName(buckets.Grouped[g.ID], func(l *models.TaskList) string { return l.Name }) {
				gn.Children = append(gn.Children, listNode(l))
			}
			node.Children = append(node.Children, gn)
		}
		for _, l := range sortedByName(buckets.Ungrouped, func(l *models.TaskList) string { return l.Name }) {
			node.Children = append(node.Children, listNode(l))
		}
	}
	return sb
}

func sortedByName[T any](items []T, name func(T) string) []T {
	out := append([]T(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return natural.Less(name(out[i]), name(out[j])) })
	return out
}
