package navigation

import (
	"net/url"
	"strings"

	"github.com/thenoetrevino/lista/internal/types"
)

// Crumb is one breadcrumb entry. Path is the cumulative path up to it.
type Crumb struct {
	Label   string `json:"label"`
	Path    string `json:"path"`
	Current bool   `json:"current"`
}

// NameLookup resolves an entity id to a display name. collection is the
// path word preceding the id, e.g. "spaces".
type NameLookup func(collection string, id types.ID) (string, bool)

var routeTitles = map[string]string{
	"dashboard":  "Dashboard",
	"workspaces": "Workspaces",
	"spaces":     "Spaces",
	"groups":     "Groups",
	"lists":      "Lists",
	"tasks":      "Tasks",
	"projects":   "Projects",
	"settings":   "Settings",
	"profile":    "Profile",
	"login":      "Login",
	"register":   "Register",
}

var entityCollections = map[string]bool{
	"workspaces": true,
	"spaces":     true,
	"groups":     true,
	"lists":      true,
	"tasks":      true,
	"projects":   true,
}

// Breadcrumbs derives the crumb trail for path
func Breadcrumbs(path string, lookup NameLookup) []Crumb {
	segs := Segments(path)
	if len(segs) == 0 || (len(segs) == 1 && segs[0] == "dashboard") {
		return []Crumb{{Label: "Dashboard", Path: Home, Current: true}}
	}

	crumbs := make([]Crumb, 0, len(segs))
	var cur strings.Builder
	for i, seg := range segs {
		cur.WriteString("/")
		cur.WriteString(seg)

		label := crumbLabel(segs, i, lookup)
		crumbs = append(crumbs, Crumb{
			Label:   label,
			Path:    cur.String(),
			Current: i == len(segs)-1,
		})
	}
	return crumbs
}

func crumbLabel(segs []string, i int, lookup NameLookup) string {
	seg := segs[i]
	if i > 0 && entityCollections[segs[i-1]] {
		id := types.ID(seg)
		if decoded, err := url.PathUnescape(seg); err == nil {
			id = types.ID(decoded)
		}
		if lookup != nil {
			if name, ok := lookup(segs[i-1], id); ok && name != "" {
				return name
			}
		}
		return "#" + id.String()
	}
	if title, ok := routeTitles[seg]; ok {
		return title
	}
	return seg
}
