package auth

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/session"
)

// WhoamiCmd returns the auth whoami subcommand
func WhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runWhoami), func(result any) error {
			u := result.(*models.User)
			fmt.Printf("%s %s\n", styles.TitleStyle.Render(u.Name), styles.SubtitleStyle.Render("<"+u.Email+">"))
			fmt.Printf("%s %s\n", styles.LabelStyle.Render("ID:"), u.ID)
			return nil
		}),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runWhoami(ctx context.Context, c *cli.CLI, _ *handler.Arguments) (any, error) {
	if c.App.AuthService.Initialize(ctx) != session.Authenticated {
		return nil, session.ErrAnonymous
	}
	return c.App.Session.User(), nil
}
