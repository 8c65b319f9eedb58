package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/app"
	"github.com/thenoetrevino/lista/internal/types"
)

// WorkspaceEnv holds the workspace used when --workspace is not given
const WorkspaceEnv = "LISTA_WORKSPACE"

type contextKey string

const (
	appKey        contextKey = "app"
	configPathKey contextKey = "configPath"
)

// WithApp makes commands run against a, e.g. a test app wired to a mock backend
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// WithConfigPath records the --config flag for GetCLIFromContext
func WithConfigPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, configPathKey, path)
}

// GetCLIFromContext returns a CLI around the injected App, or builds one from
// the config file recorded with WithConfigPath
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a}, nil
	}
	path, _ := ctx.Value(configPathKey).(string)
	return NewCLI(ctx, path)
}

// AddWorkspaceFlag registers --workspace on cmd
func AddWorkspaceFlag(cmd *cobra.Command) {
	cmd.Flags().String("workspace", "", "Workspace ID (defaults to $"+WorkspaceEnv+")")
}

// GetWorkspaceID reads --workspace, falling back to LISTA_WORKSPACE
func GetWorkspaceID(cmd *cobra.Command) (types.WorkspaceID, error) {
	if flag := cmd.Flags().Lookup("workspace"); flag != nil {
		if v := strings.TrimSpace(flag.Value.String()); v != "" {
			return types.WorkspaceID(v), nil
		}
	}
	if v := strings.TrimSpace(os.Getenv(WorkspaceEnv)); v != "" {
		return types.WorkspaceID(v), nil
	}
	return "", fmt.Errorf("no workspace given: use --workspace or set %s", WorkspaceEnv)
}
