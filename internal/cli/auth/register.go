package auth

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/handler"
	"github.com/thenoetrevino/lista/internal/models"
)

// RegisterCmd returns the auth register subcommand
func RegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Long: `Create an account. On success the new session is stored like a login.

Examples:
  lista auth register --name "Ada Lovelace" --email ada@example.com --password secret`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runRegister), renderResult("Registered")),
	}

	cmd.Flags().String("name", "", "Display name (required)")
	cmd.Flags().String("email", "", "Account email (required)")
	cmd.Flags().String("password", "", "Account password (defaults to $"+PasswordEnv+")")
	cmd.Flags().String("password-confirmation", "", "Repeat the password (defaults to --password)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runRegister(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	password := args.GetString("password", os.Getenv(PasswordEnv))
	return c.App.AuthService.Register(ctx, models.RegisterRequest{
		Name:                 args.GetString("name", ""),
		Email:                args.GetString("email", ""),
		Password:             password,
		PasswordConfirmation: args.GetString("password-confirmation", password),
	})
}
