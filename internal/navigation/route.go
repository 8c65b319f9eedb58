// Package navigation maps app paths to entities and derives the UI state
// that depends on the current path.
package navigation

import (
	"net/url"
	"strings"

	"github.com/thenoetrevino/lista/internal/types"
)

// Page identifies which view a path renders
type Page int

const (
	PageUnknown Page = iota
	PageDashboard
	PageLogin
	PageRegister
	PageWorkspace
	PageSpace
	PageGroup
	PageList
	PageTasks
	PageTask
	PageSettings
)

func (p Page) String() string {
	switch p {
	case PageDashboard:
		return "dashboard"
	case PageLogin:
		return "login"
	case PageRegister:
		return "register"
	case PageWorkspace:
		return "workspace"
	case PageSpace:
		return "space"
	case PageGroup:
		return "group"
	case PageList:
		return "list"
	case PageTasks:
		return "tasks"
	case PageTask:
		return "task"
	case PageSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// Route is a parsed app path
type Route struct {
	Path        string
	Page        Page
	Settings    bool
	WorkspaceID types.WorkspaceID
	SpaceID     types.SpaceID
	GroupID     types.GroupID
	ListID      types.ListID
	TaskID      types.TaskID
	Query       url.Values
}

// Segments splits a path into its non-empty segments, dropping any query
func Segments(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// ParseRoute extracts the entity ids and page from path
func ParseRoute(raw string) Route {
	r := Route{Query: url.Values{}}
	path := raw
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		path = raw[:i]
		if q, err := url.ParseQuery(raw[i+1:]); err == nil {
			r.Query = q
		}
	}
	segs := Segments(path)
	r.Path = "/" + strings.Join(segs, "/")

	if len(segs) == 0 {
		r.Page = PageDashboard
		return r
	}
	switch segs[0] {
	case "dashboard":
		r.Page = PageDashboard
		return r
	case "login":
		r.Page = PageLogin
		return r
	case "register":
		r.Page = PageRegister
		return r
	case "settings":
		r.Page, r.Settings = PageSettings, true
		return r
	}

	for i := 0; i < len(segs); i++ {
		word := segs[i]
		var id types.ID
		if i+1 < len(segs) {
			id = types.ID(segs[i+1])
		}
		switch word {
		case "workspaces":
			r.WorkspaceID, r.Page = id, PageWorkspace
		case "spaces":
			r.SpaceID, r.Page = id, PageSpace
		case "groups":
			r.GroupID, r.Page = id, PageGroup
		case "lists":
			r.ListID, r.Page = id, PageList
		case "tasks":
			if id.Empty() {
				r.Page = PageTasks
				continue
			}
			r.TaskID, r.Page = id, PageTask
		case "settings":
			r.Settings = true
			continue
		default:
			continue
		}
		if id.Empty() {
			// a trailing collection word has no id to consume
			if word != "tasks" {
				r.Page = PageUnknown
			}
			continue
		}
		i++
	}
	if r.WorkspaceID.Empty() && r.SpaceID.Empty() {
		r.Page = PageUnknown
	}
	return r
}

// Home is where authenticated users land when nothing else applies
const Home = "/dashboard"

func WorkspacePath(ws types.WorkspaceID) string {
	return "/workspaces/" + url.PathEscape(ws.String())
}

func SpacePath(ws types.WorkspaceID, space types.SpaceID) string {
	return WorkspacePath(ws) + "/spaces/" + url.PathEscape(space.String())
}

func GroupPath(ws types.WorkspaceID, space types.SpaceID, group types.GroupID) string {
	return SpacePath(ws, space) + "/groups/" + url.PathEscape(group.String())
}

// ListPath nests the list under its group when it has one
func ListPath(ws types.WorkspaceID, loc ListLocation, list types.ListID) string {
	switch l := loc.(type) {
	case Grouped:
		return GroupPath(ws, l.SpaceID, l.GroupID) + "/lists/" + url.PathEscape(list.String())
	case Ungrouped:
		return SpacePath(ws, l.SpaceID) + "/lists/" + url.PathEscape(list.String())
	}
	return WorkspacePath(ws)
}

// TasksPath is the workspace-wide task view, with optional view params
func TasksPath(ws types.WorkspaceID, params url.Values) string {
	p := WorkspacePath(ws) + "/tasks"
	if len(params) > 0 {
		p += "?" + params.Encode()
	}
	return p
}

func SettingsPath(base string) string {
	return strings.TrimRight(base, "/") + "/settings"
}
