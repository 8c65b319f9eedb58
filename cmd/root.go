// Package cmd wires the lista command tree
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/cli/auth"
	"github.com/thenoetrevino/lista/internal/cli/browse"
	"github.com/thenoetrevino/lista/internal/cli/favorite"
	"github.com/thenoetrevino/lista/internal/cli/group"
	"github.com/thenoetrevino/lista/internal/cli/project"
	"github.com/thenoetrevino/lista/internal/cli/space"
	"github.com/thenoetrevino/lista/internal/cli/task"
	"github.com/thenoetrevino/lista/internal/cli/tasklist"
	"github.com/thenoetrevino/lista/internal/cli/tree"
	"github.com/thenoetrevino/lista/internal/cli/tutorial"
	"github.com/thenoetrevino/lista/internal/cli/workspace"
	"github.com/thenoetrevino/lista/internal/config"
	"github.com/thenoetrevino/lista/internal/logging"
)

var (
	configPath string
	logCloser  io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "lista",
	Short: "Lista - workspaces, spaces, lists and tasks from the terminal",
	Long: `Lista is a terminal client for a hierarchical task backend: workspaces hold
spaces, spaces hold groups and lists, lists hold tasks.

Every command prints human-readable output by default, JSON with --json and
bare IDs with --quiet. Exit codes tell failures apart (2 usage, 3 not found,
4 bad data, 5 validation, 6 not logged in, 7 forbidden).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/lista/config.yaml)")

	rootCmd.AddCommand(auth.AuthCmd())
	rootCmd.AddCommand(workspace.WorkspaceCmd())
	rootCmd.AddCommand(space.SpaceCmd())
	rootCmd.AddCommand(group.GroupCmd())
	rootCmd.AddCommand(tasklist.ListCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(favorite.FavoriteCmd())
	rootCmd.AddCommand(tree.TreeCmd())
	rootCmd.AddCommand(tree.BreadcrumbCmd())
	rootCmd.AddCommand(browse.BrowseCmd())
	rootCmd.AddCommand(tutorial.TutorialCmd())
}

// setup records --config for the commands and opens the log file
func setup(cmd *cobra.Command, _ []string) error {
	cmd.SetContext(cli.WithConfigPath(cmd.Context(), configPath))

	cfg, err := config.Load(configPath)
	if err != nil {
		// the command reports the config error itself
		logging.Discard()
		return nil
	}
	closer, err := logging.Init(logging.Options{
		Dir:        filepath.Join(cfg.DataDir, "logs"),
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		logging.Discard()
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return nil
	}
	logCloser = closer
	slog.Debug("command started", "command", cmd.CommandPath())
	return nil
}

// closeLog flushes the log file, whether or not the command succeeded
func closeLog() {
	if logCloser == nil {
		return
	}
	if err := logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close log: %v\n", err)
	}
	logCloser = nil
}

// Execute runs the command tree. Errors not already reported by a command
// (unknown flags, wrong argument counts) are printed here as usage errors.
func Execute() error {
	err := rootCmd.Execute()
	closeLog()
	if err == nil {
		return nil
	}
	var exitErr *cli.ExitCodeError
	if errors.As(err, &exitErr) {
		return err
	}
	fmt.Fprintf(os.Stderr, "Error: %v\nRun 'lista --help' for usage.\n", err)
	return &cli.ExitCodeError{Code: cli.ExitUsage, Err: err}
}
