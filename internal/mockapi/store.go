package mockapi

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

type account struct {
	user     *models.User
	password string
}

// store holds all backend state behind one mutex
type store struct {
	mu  sync.Mutex
	now func() time.Time

	seq         int
	accounts    map[string]*account // by email
	sessions    map[string]types.UserID
	workspaces  map[types.ID]*models.Workspace
	spaces      map[types.ID]*models.Space
	groups      map[types.ID]*models.Group
	lists       map[types.ID]*models.TaskList
	tasks       map[types.ID]*models.Task
	comments    map[types.ID]*models.TaskComment
	attachments map[types.ID]*models.TaskAttachment
	projects    map[types.ID]*models.Project

	// projectOwners maps a project to the user who created it
	projectOwners map[types.ID]types.UserID
	order         map[types.ID]int
}

func newStore() *store {
	return &store{
		now:         func() time.Time { return time.Now().UTC() },
		accounts:    make(map[string]*account),
		sessions:    make(map[string]types.UserID),
		workspaces:  make(map[types.ID]*models.Workspace),
		spaces:      make(map[types.ID]*models.Space),
		groups:      make(map[types.ID]*models.Group),
		lists:       make(map[types.ID]*models.TaskList),
		tasks:       make(map[types.ID]*models.Task),
		comments:    make(map[types.ID]*models.TaskComment),
		attachments: make(map[types.ID]*models.TaskAttachment),
		projects:    make(map[types.ID]*models.Project),

		projectOwners: make(map[types.ID]types.UserID),
		order:         make(map[types.ID]int),
	}
}

// numericID mirrors the backend's auto-increment keys (users, tasks, comments, attachments)
func (s *store) numericID() types.ID {
	s.seq++
	id := types.IDFromInt(s.seq)
	s.order[id] = s.seq
	return id
}

// stringID mirrors the backend's uuid keys (workspaces, spaces, groups, lists)
func (s *store) stringID() types.ID {
	s.seq++
	id := types.ID(uuid.NewString())
	s.order[id] = s.seq
	return id
}

func (s *store) stamp() *time.Time {
	t := s.now()
	return &t
}

func (s *store) userByID(id types.UserID) *models.User {
	for _, acc := range s.accounts {
		if acc.user.ID == id {
			return acc.user
		}
	}
	return nil
}

// workspaceOf resolves the workspace owning any entity, empty when unknown
func (s *store) workspaceOfSpace(id types.ID) types.ID {
	if sp, ok := s.spaces[id]; ok {
		return sp.WorkspaceID
	}
	return ""
}

func (s *store) workspaceOfList(id types.ID) types.ID {
	if l, ok := s.lists[id]; ok {
		return s.workspaceOfSpace(l.SpaceID)
	}
	return ""
}

func (s *store) workspaceOfTask(id types.ID) types.ID {
	if t, ok := s.tasks[id]; ok {
		return s.workspaceOfList(t.ListID)
	}
	return ""
}

// sorted returns values in creation order
func sorted[T any](s *store, items map[types.ID]T, id func(T) types.ID, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.order[id(out[i])] < s.order[id(out[j])]
	})
	return out
}

func (s *store) spacesIn(workspaceID types.ID) []*models.Space {
	return sorted(s, s.spaces, func(sp *models.Space) types.ID { return sp.ID }, func(sp *models.Space) bool {
		return sp.WorkspaceID == workspaceID
	})
}

func (s *store) groupsIn(spaceID types.ID) []*models.Group {
	return sorted(s, s.groups, func(g *models.Group) types.ID { return g.ID }, func(g *models.Group) bool {
		return g.SpaceID == spaceID
	})
}

func (s *store) listsIn(spaceID types.ID) []*models.TaskList {
	return sorted(s, s.lists, func(l *models.TaskList) types.ID { return l.ID }, func(l *models.TaskList) bool {
		return l.SpaceID == spaceID
	})
}

func (s *store) listsInGroup(groupID types.ID) []*models.TaskList {
	return sorted(s, s.lists, func(l *models.TaskList) types.ID { return l.ID }, func(l *models.TaskList) bool {
		return types.Deref(l.GroupID) == groupID
	})
}

func (s *store) tasksIn(listID types.ID) []*models.Task {
	return sorted(s, s.tasks, func(t *models.Task) types.ID { return t.ID }, func(t *models.Task) bool {
		return t.ListID == listID
	})
}

func (s *store) projectsOf(user types.UserID) []*models.Project {
	return sorted(s, s.projects, func(p *models.Project) types.ID { return p.ID }, func(p *models.Project) bool {
		return s.projectOwners[p.ID] == user
	})
}

func (s *store) tasksInProject(projectID types.ID) []*models.Task {
	return sorted(s, s.tasks, func(t *models.Task) types.ID { return t.ID }, func(t *models.Task) bool {
		return types.Deref(t.ProjectID) == projectID
	})
}

func (s *store) commentsOn(taskID types.ID) []*models.TaskComment {
	return sorted(s, s.comments, func(c *models.TaskComment) types.ID { return c.ID }, func(c *models.TaskComment) bool {
		return c.TaskID == taskID
	})
}

func (s *store) attachmentsOn(taskID types.ID) []*models.TaskAttachment {
	return sorted(s, s.attachments, func(a *models.TaskAttachment) types.ID { return a.ID }, func(a *models.TaskAttachment) bool {
		return a.TaskID == taskID
	})
}

func slug(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case len(out) > 0 && out[len(out)-1] != '-':
			out = append(out, '-')
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}

