package navigation

import (
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// ListLocation says where a list sits inside its space. It is either
// Ungrouped or Grouped.
type ListLocation interface {
	Space() types.SpaceID
	isListLocation()
}

// Ungrouped lists hang directly off the space
type Ungrouped struct {
	SpaceID types.SpaceID
}

// Grouped lists belong to a group of the space
type Grouped struct {
	SpaceID types.SpaceID
	GroupID types.GroupID
}

func (u Ungrouped) Space() types.SpaceID { return u.SpaceID }
func (g Grouped) Space() types.SpaceID   { return g.SpaceID }

func (Ungrouped) isListLocation() {}
func (Grouped) isListLocation()   {}

// LocateList resolves the location of l once, at fetch time
func LocateList(l *models.TaskList) ListLocation {
	if l.Grouped() {
		return Grouped{SpaceID: l.SpaceID, GroupID: *l.GroupID}
	}
	return Ungrouped{SpaceID: l.SpaceID}
}

// Buckets splits a space's lists the way the sidebar shows them
type Buckets struct {
	Ungrouped []*models.TaskList
	Grouped   map[types.GroupID][]*models.TaskList
}

// BucketLists partitions lists by location, keeping input order
func BucketLists(lists []*models.TaskList) Buckets {
	b := Buckets{Grouped: make(map[types.GroupID][]*models.TaskList)}
	for _, l := range lists {
		switch loc := LocateList(l).(type) {
		case Grouped:
			b.Grouped[loc.GroupID] = append(b.Grouped[loc.GroupID], l)
		case Ungrouped:
			b.Ungrouped = append(b.Ungrouped, l)
		}
	}
	return b
}
