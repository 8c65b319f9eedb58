package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/app"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/testutil"
)

// ExecuteCLICommand executes a CLI command with a test app instance.
// The app is injected through the context so GetCLIFromContext in the CLI
// package uses it instead of loading the user's config.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
}

// ExecuteCLICommandWithContext executes a CLI command with a specific context and test app
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	ctxWithApp := cli.WithApp(ctx, testApp)
	SetupCobraCommand(cmd, args)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctxWithApp)
	})

	return output, executeErr
}

// ExecuteCommand runs a cobra command without an injected app and captures its output
func ExecuteCommand(t *testing.T, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	SetupCobraCommand(cmd, args)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.Execute()
	})

	return output, executeErr
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()
	return testutil.ParseJSON(t, output)
}

// Data returns the "data" object of a successful JSON response
func Data(t *testing.T, output string) map[string]any {
	t.Helper()
	result := testutil.ParseJSON(t, output)
	if result["success"] != true {
		t.Fatalf("expected success response, got: %s", output)
	}
	data, ok := result["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got: %s", output)
	}
	return data
}

// SetupCobraCommand sets up a cobra command with args for testing
func SetupCobraCommand(cmd *cobra.Command, args []string) {
	cmd.SetArgs(args)
	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
}
