// Package handler provides command execution abstraction to reduce boilerplate
package handler

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thenoetrevino/lista/internal/cli"
)

// Handler defines the interface for command execution
type Handler interface {
	// Execute runs the command with parsed arguments
	Execute(ctx context.Context, c *cli.CLI, args *Arguments) (any, error)
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx context.Context, c *cli.CLI, args *Arguments) (any, error)

// Execute calls f
func (f HandlerFunc) Execute(ctx context.Context, c *cli.CLI, args *Arguments) (any, error) {
	return f(ctx, c, args)
}

// Renderer prints a handler result in the human-readable mode
type Renderer func(result any) error

// Arguments captures parsed CLI arguments and flags
type Arguments struct {
	Flags     map[string]any
	Args      []string
	Formatter *cli.OutputFormatter
	cmd       *cobra.Command
}

// GetCmd returns the cobra command for access to flag parsing utilities
func (a *Arguments) GetCmd() *cobra.Command {
	return a.cmd
}

// Parser returns a FlagParser over the command's flags
func (a *Arguments) Parser() *FlagParser {
	return NewFlagParser(a.cmd, a.Formatter)
}

// Command wraps common command execution logic: formatter selection, CLI
// setup and teardown, error reporting with exit codes, and output.
// Returns a cobra RunE compatible function.
func Command(handler Handler, render Renderer) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		formatter := cli.FormatterFromFlags(cmd)

		cliInstance, err := cli.GetCLIFromContext(ctx)
		if err != nil {
			if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			return &cli.ExitCodeError{Code: cli.ExitError, Err: err}
		}
		defer func() {
			if err := cliInstance.Close(); err != nil {
				slog.Error("failed to close CLI", "error", err)
			}
		}()

		arguments := &Arguments{
			Flags:     parseFlagsToMap(cmd),
			Args:      args,
			Formatter: formatter,
			cmd:       cmd,
		}

		result, err := handler.Execute(ctx, cliInstance, arguments)
		if err != nil {
			return formatter.Fail(err)
		}

		var human func() error
		if render != nil {
			human = func() error { return render(result) }
		}
		return formatter.Emit(result, human)
	}
}

// SimpleCommand wraps a handler whose result is printed by the formatter alone
func SimpleCommand(handler HandlerFunc) func(*cobra.Command, []string) error {
	return Command(handler, nil)
}

// parseFlagsToMap converts cobra command flags to a map
func parseFlagsToMap(cmd *cobra.Command) map[string]any {
	flags := make(map[string]any)

	// Visit all flags that were explicitly set
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Value.Type() {
		case "string":
			if v, err := cmd.Flags().GetString(f.Name); err == nil {
				flags[f.Name] = v
			}
		case "int":
			if v, err := cmd.Flags().GetInt(f.Name); err == nil {
				flags[f.Name] = v
			}
		case "bool":
			if v, err := cmd.Flags().GetBool(f.Name); err == nil {
				flags[f.Name] = v
			}
		case "stringSlice":
			if v, err := cmd.Flags().GetStringSlice(f.Name); err == nil {
				flags[f.Name] = v
			}
		default:
			slog.Debug("unsupported flag type", "flag", f.Name, "type", f.Value.Type())
		}
	})

	return flags
}

// GetString retrieves a string flag with default
func (a *Arguments) GetString(name string, defaultVal string) string {
	v, ok := a.Flags[name]
	if !ok {
		return defaultVal
	}
	val, ok := v.(string)
	if !ok {
		return defaultVal
	}
	return val
}

// GetInt retrieves an int flag with default
func (a *Arguments) GetInt(name string, defaultVal int) int {
	v, ok := a.Flags[name]
	if !ok {
		return defaultVal
	}
	val, ok := v.(int)
	if !ok {
		return defaultVal
	}
	return val
}

// GetBool retrieves a bool flag
func (a *Arguments) GetBool(name string) bool {
	v, ok := a.Flags[name]
	if !ok {
		return false
	}
	val, ok := v.(bool)
	if !ok {
		return false
	}
	return val
}

// Has reports whether the flag was set explicitly
func (a *Arguments) Has(name string) bool {
	_, ok := a.Flags[name]
	return ok
}

// GetStringSlice retrieves a string slice flag with default
func (a *Arguments) GetStringSlice(name string, defaultVal []string) []string {
	v, ok := a.Flags[name]
	if !ok {
		return defaultVal
	}
	val, ok := v.([]string)
	if !ok {
		return defaultVal
	}
	return val
}
