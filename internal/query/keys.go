package query

import (
	"time"

	"github.com/thenoetrevino/lista/internal/types"
)

// RefetchDelay is the pause between a delete and the refetch of its parent collection
const RefetchDelay = 50 * time.Millisecond

// Collections are keyed by the plural resource and their parent id, single
// entities by the singular resource and their own id.

func CurrentUserKey() Key { return Key{"currentUser"} }

func WorkspacesKey() Key                   { return Key{"workspaces"} }
func WorkspaceKey(id types.WorkspaceID) Key { return Key{"workspace", id.String()} }

func SpacesKey(workspaceID types.WorkspaceID) Key { return Key{"spaces", workspaceID.String()} }
func SpaceKey(id types.SpaceID) Key               { return Key{"space", id.String()} }

func GroupsKey(spaceID types.SpaceID) Key { return Key{"groups", spaceID.String()} }
func GroupKey(id types.GroupID) Key       { return Key{"group", id.String()} }

func ListsKey(spaceID types.SpaceID) Key { return Key{"lists", spaceID.String()} }
func ListKey(id types.ListID) Key        { return Key{"list", id.String()} }

func AllTasksKey() Key                       { return Key{"tasks"} }
func TasksByListKey(listID types.ListID) Key { return Key{"tasks", "list", listID.String()} }
func TaskKey(id types.TaskID) Key            { return Key{"task", id.String()} }

func ProjectsKey() Key                                { return Key{"projects"} }
func ProjectKey(id types.ProjectID) Key               { return Key{"project", id.String()} }
func TasksByProjectKey(projectID types.ProjectID) Key { return Key{"tasks", "project", projectID.String()} }

func CommentsKey(taskID types.TaskID) Key    { return Key{"task-comments", taskID.String()} }
func AttachmentsKey(taskID types.TaskID) Key { return Key{"task-attachments", taskID.String()} }
