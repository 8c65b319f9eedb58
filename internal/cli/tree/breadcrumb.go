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

// Trail is the breadcrumb trail of a path
type Trail []navigation.Crumb

// IDs returns the cumulative path of every crumb
func (t Trail) IDs() []string {
	out := make([]string, len(t))
	for i, c := range t {
		out[i] = c.Path
	}
	return out
}

// BreadcrumbCmd returns the breadcrumb command
func BreadcrumbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breadcrumb <path>",
		Short: "Show the breadcrumb trail of an app path",
		Long: `Show the breadcrumb trail of an app path with entity ids replaced by
names. Entities that cannot be loaded are shown as #<id>.

Example:
  lista breadcrumb /workspaces/1/spaces/2/lists/7`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(handler.HandlerFunc(runBreadcrumb), renderBreadcrumb),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runBreadcrumb(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	return Trail(navigation.Breadcrumbs(args.Args[0], c.App.NameLookup(ctx))), nil
}

func renderBreadcrumb(result any) error {
	trail := result.(Trail)
	labels := make([]string, len(trail))
	for i, c := range trail {
		labels[i] = c.Label
		if c.Current {
			labels[i] = styles.CurrentStyle.Render(c.Label)
		}
	}
	fmt.Println(strings.Join(labels, styles.SubtitleStyle.Render(" › ")))
	return nil
}
