package taskview

import (
	"slices"
	"strings"

	"github.com/maruel/natural"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// Group is one section of the list projection. Lists is set when the view
// also groups by list.
type Group struct {
	Key   string         `json:"key"`
	Label string         `json:"label"`
	Tasks []*models.Task `json:"tasks"`
	Lists []ListSection  `json:"lists,omitempty"`
}

// ListSection holds the tasks of one list inside a group
type ListSection struct {
	ListID types.ListID   `json:"list_id"`
	Name   string         `json:"name"`
	Tasks  []*models.Task `json:"tasks"`
}

const (
	noPriorityKey = "none"
	unassignedKey = "unassigned"
	allKey        = "all"
)

// statusGroupOrder fixes where the workflow statuses appear. pending is the
// first key of the default schema and sits next to todo.
var statusGroupOrder = []string{models.StatusTodo, models.StatusPending, models.StatusInProgress, models.StatusDone}

// Filter keeps tasks matching the status and priority sets. An empty set matches everything.
func Filter(tasks []*models.Task, p Params) []*models.Task {
	out := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if p.Status != nil && p.Status.Cardinality() > 0 && !p.Status.Contains(t.Status) {
			continue
		}
		if p.Priority != nil && p.Priority.Cardinality() > 0 && !p.Priority.Contains(t.Priority) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// GroupTasks buckets tasks by key and orders the buckets. Empty buckets are omitted.
func GroupTasks(tasks []*models.Task, by GroupBy, order Order) []Group {
	var groups []Group
	switch by {
	case GroupByStatus:
		groups = groupByStatus(tasks)
	case GroupByPriority:
		groups = groupByPriority(tasks)
	case GroupByAssignee:
		groups = groupByAssignee(tasks)
	default:
		if len(tasks) > 0 {
			groups = []Group{{Key: allKey, Label: "All tasks", Tasks: tasks}}
		}
	}
	if order == OrderDesc {
		slices.Reverse(groups)
	}
	return groups
}

// bucket collects tasks per key keeping first-seen key order
type bucket struct {
	keys  []string
	items map[string][]*models.Task
}

func newBucket() *bucket {
	return &bucket{items: make(map[string][]*models.Task)}
}

func (b *bucket) add(key string, t *models.Task) {
	if _, ok := b.items[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.items[key] = append(b.items[key], t)
}

func groupByStatus(tasks []*models.Task) []Group {
	b := newBucket()
	for _, t := range tasks {
		status := t.Status
		if status == "" {
			status = models.StatusTodo
		}
		b.add(status, t)
	}

	var out []Group
	for _, s := range statusGroupOrder {
		if items := b.items[s]; len(items) > 0 {
			out = append(out, Group{Key: s, Label: models.StatusLabel(s), Tasks: items})
		}
	}
	for _, s := range b.keys {
		if !slices.Contains(statusGroupOrder, s) {
			out = append(out, Group{Key: s, Label: models.StatusLabel(s), Tasks: b.items[s]})
		}
	}
	return out
}

func groupByPriority(tasks []*models.Task) []Group {
	b := newBucket()
	for _, t := range tasks {
		key := string(t.Priority)
		if key == "" {
			key = noPriorityKey
		}
		b.add(key, t)
	}

	var out []Group
	for _, p := range models.PriorityOrder {
		if items := b.items[string(p)]; len(items) > 0 {
			out = append(out, Group{Key: string(p), Label: p.Label(), Tasks: items})
		}
	}
	for _, k := range b.keys {
		if k != noPriorityKey && models.PriorityRank(models.Priority(k)) == len(models.PriorityOrder) {
			out = append(out, Group{Key: k, Label: k, Tasks: b.items[k]})
		}
	}
	if items := b.items[noPriorityKey]; len(items) > 0 {
		out = append(out, Group{Key: noPriorityKey, Label: "No priority", Tasks: items})
	}
	return out
}

func groupByAssignee(tasks []*models.Task) []Group {
	b := newBucket()
	labels := make(map[string]string)
	for _, t := range tasks {
		key := unassignedKey
		if t.AssignedTo != nil && !t.AssignedTo.Empty() {
			key = t.AssignedTo.String()
		} else if t.Assignee != nil && !t.Assignee.ID.Empty() {
			key = t.Assignee.ID.String()
		}
		if name := t.AssigneeName(); name != "" && labels[key] == "" {
			labels[key] = name
		}
		b.add(key, t)
	}

	var out []Group
	for _, k := range b.keys {
		if k == unassignedKey {
			continue
		}
		label := labels[k]
		if label == "" {
			label = "#" + k
		}
		out = append(out, Group{Key: k, Label: label, Tasks: b.items[k]})
	}
	slices.SortStableFunc(out, func(a, c Group) int {
		la, lc := strings.ToLower(a.Label), strings.ToLower(c.Label)
		switch {
		case natural.Less(la, lc):
			return -1
		case natural.Less(lc, la):
			return 1
		}
		return 0
	})
	if items := b.items[unassignedKey]; len(items) > 0 {
		out = append(out, Group{Key: unassignedKey, Label: "Unassigned", Tasks: items})
	}
	return out
}

// SplitByList divides tasks by owning list. Known lists come first in the
// given order, then lists only seen on tasks.
func SplitByList(tasks []*models.Task, lists []*models.TaskList) []ListSection {
	b := newBucket()
	for _, t := range tasks {
		b.add(t.ListID.String(), t)
	}

	var out []ListSection
	seen := make(map[string]bool)
	for _, l := range lists {
		id := l.ID.String()
		if items := b.items[id]; len(items) > 0 {
			out = append(out, ListSection{ListID: l.ID, Name: l.Name, Tasks: items})
			seen[id] = true
		}
	}
	for _, id := range b.keys {
		if !seen[id] {
			out = append(out, ListSection{ListID: types.ID(id), Name: "List " + id, Tasks: b.items[id]})
		}
	}
	return out
}

// ListProjection runs the pipeline: filter, group, then optionally split
// each group by list
func ListProjection(tasks []*models.Task, lists []*models.TaskList, p Params) []Group {
	groups := GroupTasks(Filter(tasks, p), p.GroupBy, p.Order)
	if p.AlsoGroupByList {
		for i := range groups {
			groups[i].Lists = SplitByList(groups[i].Tasks, lists)
		}
	}
	return groups
}
