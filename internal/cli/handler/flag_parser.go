// Package handler provides flag parsing utilities
package handler

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/types"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd       *cobra.Command
	formatter *cli.OutputFormatter
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command, formatter *cli.OutputFormatter) *FlagParser {
	return &FlagParser{
		cmd:       cmd,
		formatter: formatter,
	}
}

// ParseWorkspaceID extracts the workspace from --workspace or LISTA_WORKSPACE.
// A missing workspace is reported as a usage error.
func (p *FlagParser) ParseWorkspaceID() (types.WorkspaceID, error) {
	id, err := cli.GetWorkspaceID(p.cmd)
	if err != nil {
		return "", p.formatter.Usage(err.Error(),
			"Set a workspace with: eval $(lista workspace use <workspace-id>)")
	}
	return id, nil
}

// ParseID extracts an id from the first positional argument or the named flag.
// A missing id is reported as a usage error.
func (p *FlagParser) ParseID(args []string, flagName, usage string) (types.ID, error) {
	id, err := cli.IDArg(p.cmd, args, flagName)
	if err != nil {
		return "", p.formatter.Usage(err.Error(), usage)
	}
	return id, nil
}

// ParseRequiredID extracts a mandatory id flag, reported as a usage error when missing
func (p *FlagParser) ParseRequiredID(flagName string) (types.ID, error) {
	id, err := cli.RequiredID(p.cmd, flagName)
	if err != nil {
		return "", p.formatter.Usage(err.Error(), "")
	}
	return id, nil
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", p.formatter.Usage(fmt.Sprintf("--%s is required", flagName), "")
	}
	return value, nil
}

// ParseStringOptional extracts an optional string flag
func (p *FlagParser) ParseStringOptional(flagName string) (string, error) {
	return p.cmd.Flags().GetString(flagName)
}

// ParseBool extracts a boolean flag
func (p *FlagParser) ParseBool(flagName string) (bool, error) {
	return p.cmd.Flags().GetBool(flagName)
}

// ParseColor extracts and validates an optional color flag
func (p *FlagParser) ParseColor(flagName string) (string, error) {
	color, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if color == "" {
		return "", nil
	}
	if err := cli.ValidateColorHex(color); err != nil {
		return "", p.formatter.Usage(err.Error(), "")
	}
	return color, nil
}

// OutputFormats extracts JSON and Quiet output flags
func (p *FlagParser) OutputFormats() (jsonOutput bool, quietMode bool, err error) {
	jsonOutput, err = p.cmd.Flags().GetBool("json")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse json flag: %w", err)
	}

	quietMode, err = p.cmd.Flags().GetBool("quiet")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse quiet flag: %w", err)
	}

	return jsonOutput, quietMode, nil
}
