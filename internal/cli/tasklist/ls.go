package tasklist

import (
	"context"
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

// LsCmd returns the list ls subcommand
func LsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the lists of a space",
		Long: `List the lists of a space, optionally only those of one group.

Examples:
  lista list list --space 12
  lista list ls --space 12 --group 4
  lista list ls --space 12 --ungrouped --quiet`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runLs), renderLs),
	}
	cmd.Flags().String("space", "", "Space ID (required)")
	cmd.Flags().String("group", "", "Only lists in this group")
	cmd.Flags().Bool("ungrouped", false, "Only lists outside any group")
	cmd.Flags().Bool("archived", false, "Include archived lists")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runLs(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	spaceID, err := args.Parser().ParseRequiredID("space")
	if err != nil {
		return nil, err
	}
	group := types.ID(args.GetString("group", ""))
	ungrouped := args.GetBool("ungrouped")
	if !group.Empty() && ungrouped {
		return nil, args.Formatter.Usage("--group and --ungrouped are mutually exclusive", "")
	}

	lists, err := c.App.ListService.List(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	out := make([]*models.TaskList, 0, len(lists))
	for _, l := range lists {
		if l.IsArchived && !args.GetBool("archived") {
			continue
		}
		switch {
		case ungrouped && l.GroupID != nil:
			continue
		case !group.Empty() && types.Deref(l.GroupID) != group:
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return natural.Less(out[i].Name, out[j].Name) })
	return out, nil
}

func renderLs(result any) error {
	lists := result.([]*models.TaskList)
	if len(lists) == 0 {
		fmt.Println("No lists found")
		return nil
	}

	fmt.Printf("Found %d lists:\n\n", len(lists))
	for _, l := range lists {
		group := "-"
		if l.GroupID != nil {
			group = l.GroupID.String()
		}
		fmt.Printf("  [%s] %-30s group: %s\n", l.ID, l.Name, group)
	}
	return nil
}
