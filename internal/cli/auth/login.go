package auth

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
)

// PasswordEnv is read when --password is not given
const PasswordEnv = "LISTA_PASSWORD"

// LoginCmd returns the auth login subcommand
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		Long: `Log in with email and password. The session cookies are stored in the
local database so later commands reuse them.

Examples:
  lista auth login --email ada@example.com --password secret
  LISTA_PASSWORD=secret lista auth login --email ada@example.com --json`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runLogin), renderResult("Logged in")),
	}

	cmd.Flags().String("email", "", "Account email (required)")
	cmd.Flags().String("password", "", "Account password (defaults to $"+PasswordEnv+")")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runLogin(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	password := args.GetString("password", os.Getenv(PasswordEnv))
	return c.App.AuthService.Login(ctx, models.LoginRequest{
		Email:    args.GetString("email", ""),
		Password: password,
	})
}
