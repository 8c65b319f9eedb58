package task

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/navigation"
	"github.com/thenoetrevino/lista/internal/taskview"
	"github.com/thenoetrevino/lista/internal/types"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the tasks of a workspace, space, group or list",
		Long: `Show tasks as a grouped list, a kanban board or a calendar month.

The scope comes from --path (an app path such as /workspaces/1/spaces/2?status=done)
or from --list, --group, --space and --workspace, narrowest first. View flags
override the parameters carried by --path.

Examples:
  lista task list --list 7
  lista task list --space 2 --status todo,in_progress --group-by priority
  lista task list --path "/workspaces/1/tasks?groupBy=assignee" --by-list
  lista task list --workspace 1 --view kanban
  lista task list --space 2 --view calendar --month 2026-11`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runList), renderView),
	}

	cmd.Flags().String("path", "", "App path selecting the scope and view parameters")
	cmd.Flags().String("space", "", "Space ID")
	cmd.Flags().String("group", "", "Group ID")
	cmd.Flags().String("list", "", "List ID")
	cmd.Flags().String("status", "", "Only these statuses (comma separated)")
	cmd.Flags().String("priority", "", "Only these priorities (comma separated)")
	cmd.Flags().String("group-by", "", "Group by: status, assignee, priority, none")
	cmd.Flags().String("group-order", "", "Group order: asc, desc")
	cmd.Flags().Bool("by-list", false, "Also split each group by list")
	cmd.Flags().String("view", "", "View: list, kanban, calendar")
	cmd.Flags().String("month", "", "Calendar month (YYYY-MM, defaults to the current month)")
	cli.AddWorkspaceFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	scope, query, err := parseScope(args)
	if err != nil {
		return nil, err
	}
	params, err := parseParams(args, query)
	if err != nil {
		return nil, err
	}

	month := time.Now()
	if m := args.GetString("month", ""); m != "" {
		month, err = time.Parse(taskview.MonthLayout, m)
		if err != nil {
			return nil, args.Formatter.Usage(fmt.Sprintf("invalid --month %q", m), "Use YYYY-MM")
		}
	}

	tasks, lists, err := c.App.ScopeTasks(ctx, scope, params.AlsoGroupByList)
	if err != nil {
		return nil, err
	}

	return taskview.Project(scope, tasks, lists, params, month, time.Now()), nil
}

// parseScope reads --path or the scope flags
func parseScope(args *handler.Arguments) (taskview.Scope, url.Values, error) {
	if path := args.GetString("path", ""); path != "" {
		route := navigation.ParseRoute(path)
		if route.WorkspaceID.Empty() && route.SpaceID.Empty() {
			return taskview.Scope{}, nil, args.Formatter.Usage(
				fmt.Sprintf("%q does not name a workspace, space, group or list", path),
				"Example: --path /workspaces/1/spaces/2")
		}
		return taskview.ScopeFromRoute(route), route.Query, nil
	}

	route := navigation.Route{
		SpaceID: types.ID(args.GetString("space", "")),
		GroupID: types.ID(args.GetString("group", "")),
		ListID:  types.ID(args.GetString("list", "")),
	}
	if ws, err := cli.GetWorkspaceID(args.GetCmd()); err == nil {
		route.WorkspaceID = ws
	}
	return taskview.ScopeFromRoute(route), url.Values{}, nil
}

// parseParams starts from the path's query parameters and applies the view flags
func parseParams(args *handler.Arguments, query url.Values) (taskview.Params, error) {
	p := taskview.ParseParams(query)
	if args.Has("status") {
		p.Status.Clear()
		for _, s := range splitFlag(args.GetString("status", "")) {
			p.Status.Add(s)
		}
	}
	if args.Has("priority") {
		p.Priority.Clear()
		for _, s := range splitFlag(args.GetString("priority", "")) {
			prio, err := models.ParsePriority(s)
			if err != nil {
				return p, err
			}
			p.Priority.Add(prio)
		}
	}
	if args.Has("group-by") {
		g, err := taskview.ParseGroupBy(args.GetString("group-by", ""))
		if err != nil {
			return p, err
		}
		p.GroupBy = g
	}
	if args.Has("group-order") {
		o, err := taskview.ParseOrder(args.GetString("group-order", ""))
		if err != nil {
			return p, err
		}
		p.Order = o
	}
	if args.Has("by-list") {
		p.AlsoGroupByList = args.GetBool("by-list")
	}
	if args.Has("view") {
		v, err := taskview.ParseView(args.GetString("view", ""))
		if err != nil {
			return p, err
		}
		p.View = v
	}
	return p, nil
}

func splitFlag(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func renderView(result any) error {
	v := result.(*taskview.Projection)
	fmt.Printf("%s %s\n", styles.TitleStyle.Render(strings.ToUpper(v.Scope[:1])+v.Scope[1:]+" tasks"),
		styles.SubtitleStyle.Render(fmt.Sprintf("%d/%d done (%d%%)", v.Stats.Completed, v.Stats.Total, v.Stats.Percent)))
	if v.Empty != "" {
		fmt.Println(v.Empty)
		return nil
	}

	switch v.View {
	case taskview.ViewKanban:
		for _, col := range v.Columns {
			fmt.Println(styles.SectionStyle.Render(fmt.Sprintf("%s (%d)", col.Label, len(col.Tasks))))
			for _, t := range col.Tasks {
				fmt.Println("  " + taskLine(t))
			}
		}
	case taskview.ViewCalendar:
		renderCalendar(v)
	default:
		for _, g := range v.Groups {
			fmt.Println(styles.SectionStyle.Render(fmt.Sprintf("%s (%d)", g.Label, len(g.Tasks))))
			if len(g.Lists) == 0 {
				for _, t := range g.Tasks {
					fmt.Println("  " + taskLine(t))
				}
				continue
			}
			for _, sec := range g.Lists {
				fmt.Println("  " + styles.LabelStyle.Render(sec.Name))
				for _, t := range sec.Tasks {
					fmt.Println("    " + taskLine(t))
				}
			}
		}
	}
	return nil
}

func renderCalendar(v *taskview.Projection) {
	fmt.Println(styles.SectionStyle.Render(v.Month))
	fmt.Println(" Sun Mon Tue Wed Thu Fri Sat")
	for week := 0; week < len(v.Days)/7; week++ {
		var line strings.Builder
		for _, d := range v.Days[week*7 : week*7+7] {
			cell := fmt.Sprintf("%3d", d.Date.Day())
			if len(d.Tasks) > 0 {
				cell = fmt.Sprintf("%2d*", d.Date.Day())
			}
			switch {
			case d.Today:
				cell = styles.CurrentStyle.Render(cell)
			case !d.InMonth:
				cell = styles.SubtitleStyle.Render(cell)
			}
			line.WriteString(" " + cell)
		}
		fmt.Println(line.String())
	}

	for _, d := range v.Days {
		if !d.InMonth || len(d.Tasks) == 0 {
			continue
		}
		fmt.Println(styles.LabelStyle.Render(d.Date.Key()))
		for _, t := range d.Tasks {
			fmt.Println("  " + taskLine(t))
		}
	}
	if v.Undated > 0 {
		fmt.Println(styles.SubtitleStyle.Render(fmt.Sprintf("%d tasks without a due date", v.Undated)))
	}
}
