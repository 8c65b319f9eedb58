package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/lista/internal/app"
	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with services

	// owned is false when the App was injected through the context
	owned bool
}

// NewCLI loads the config at configPath (default location when empty) and
// builds the application container on top of it
func NewCLI(ctx context.Context, configPath string) (*CLI, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	styles.Init(cfg.ColorScheme)

	application, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}

	return &CLI{App: application, owned: true}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
