package project

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/taskview"
)

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a project and the progress of its tasks",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command(handler.HandlerFunc(runShow), renderDetail),
	}
	cmd.Flags().String("id", "", "Project ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := args.Parser().ParseID(args.Args, "id", "Usage: lista project show <id>")
	if err != nil {
		return nil, err
	}

	var (
		p     *models.Project
		tasks []*models.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		p, err = c.App.ProjectService.Get(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = c.App.ProjectService.Tasks(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &projectDetail{Project: p, Stats: taskview.ComputeStats(tasks)}, nil
}
