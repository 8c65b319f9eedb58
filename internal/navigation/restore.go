package navigation

import (
	"strings"

	"github.com/thenoetrevino/lista/internal/models"
)

// RestorePath picks where to land after login: the first workspace's last
// visited path, else that workspace's root, else the dashboard
func RestorePath(workspaces []*models.Workspace) string {
	if len(workspaces) == 0 || workspaces[0] == nil {
		return Home
	}
	ws := workspaces[0]
	if p := strings.TrimSpace(ws.LastVisitedPath); p != "" {
		return p
	}
	if ws.ID.Empty() {
		return Home
	}
	return WorkspacePath(ws.ID)
}
