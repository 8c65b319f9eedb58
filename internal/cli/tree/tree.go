// Package tree holds the navigation commands: the sidebar tree and breadcrumbs
package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/navigation"
)

// TreeCmd returns the tree command
func TreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the space, group and list tree of a workspace",
		Long: `Show the navigation tree of a workspace. Nodes leading to --path are
opened and the node it points at is highlighted. Favorites are listed first.

Examples:
  lista tree --workspace 1
  lista tree --path /workspaces/1/spaces/2/groups/3/lists/7
  lista tree --workspace 1 --all`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runTree), renderTree),
	}

	cmd.Flags().String("path", "", "App path to open the tree at")
	cmd.Flags().Bool("all", false, "Open every node")
	cli.AddWorkspaceFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runTree(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	path := args.GetString("path", "")
	route := navigation.ParseRoute(path)

	ws := route.WorkspaceID
	if ws.Empty() || args.Has("workspace") {
		flagWS, err := args.Parser().ParseWorkspaceID()
		if err != nil {
			return nil, err
		}
		if !ws.Empty() && flagWS != ws {
			return nil, args.Formatter.Usage(
				fmt.Sprintf("--workspace %s contradicts path %q", flagWS, path),
				"drop --workspace or use a path inside that workspace")
		}
		ws = flagWS
	}
	if path != "" && route.WorkspaceID != ws {
		return nil, args.Formatter.Usage(fmt.Sprintf("path %q is not inside workspace %s", path, ws),
			"paths look like /workspaces/<id>/spaces/<id>")
	}

	if path != "" {
		c.App.SyncTree(ctx, path)
	}
	return c.App.Sidebar(ctx, ws, path, args.GetBool("all"))
}

func renderTree(result any) error {
	sb := result.(*navigation.Sidebar)

	if len(sb.Favorites) > 0 {
		fmt.Println(styles.SectionStyle.Render("Favorites"))
		for _, f := range sb.Favorites {
			fmt.Printf("  %s %s\n", styles.FavoriteStyle.Render("★"), f.Name)
		}
		fmt.Println()
	}

	rows := sb.Rows()
	if len(rows) == 0 {
		fmt.Println("No spaces in this workspace")
		return nil
	}
	for _, r := range rows {
		fmt.Println(treeLine(r))
	}
	return nil
}

func treeLine(r navigation.Row) string {
	marker := "•"
	if r.Kind != navigation.NodeList {
		marker = "▸"
		if r.Expanded {
			marker = "▾"
		}
	}
	name := r.Name
	if r.Current {
		name = styles.CurrentStyle.Render(name)
	}
	line := strings.Repeat("  ", r.Depth) + marker + " " + name + " " + styles.SubtitleStyle.Render("["+r.ID.String()+"]")
	if r.Favorite {
		line += " " + styles.FavoriteStyle.Render("★")
	}
	return line
}
