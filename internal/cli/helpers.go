package cli

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

var colorHex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateColorHex validates that a color string is in valid hex format #RRGGBB
func ValidateColorHex(color string) error {
	if !colorHex.MatchString(color) {
		return fmt.Errorf("color must be in hex format #RRGGBB (e.g., #FF0000), got: %s", color)
	}
	return nil
}

// IDArg reads an id from the first positional argument or from --flag
func IDArg(cmd *cobra.Command, args []string, flag string) (types.ID, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return types.ID(strings.TrimSpace(args[0])), nil
	}
	if f := cmd.Flags().Lookup(flag); f != nil {
		if v := strings.TrimSpace(f.Value.String()); v != "" {
			return types.ID(v), nil
		}
	}
	return "", fmt.Errorf("%s is required", flag)
}

// RequiredID reads a mandatory id flag
func RequiredID(cmd *cobra.Command, flag string) (types.ID, error) {
	v, err := cmd.Flags().GetString(flag)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flag, err)
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("--%s is required", flag)
	}
	return types.ID(v), nil
}

// ChangedString returns the flag value only when the user set it
func ChangedString(cmd *cobra.Command, flag string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	v, err := cmd.Flags().GetString(flag)
	if err != nil {
		return nil
	}
	return &v
}

// ChangedBool returns the flag value only when the user set it
func ChangedBool(cmd *cobra.Command, flag string) *bool {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	v, err := cmd.Flags().GetBool(flag)
	if err != nil {
		return nil
	}
	return &v
}

// ParseDueDate parses a YYYY-MM-DD date; an empty string means no date
func ParseDueDate(s string) (*models.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseSchema parses "key=Label,key2=Label 2" into a status schema.
// A key without a label gets its display label.
func ParseSchema(s string) (models.StatusSchema, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	schema := models.StatusSchema{}
	for _, part := range strings.Split(s, ",") {
		key, label, found := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%w: empty key in %q", models.ErrInvalidStatus, s)
		}
		label = strings.TrimSpace(label)
		if !found || label == "" {
			label = models.StatusLabel(key)
		}
		schema[key] = label
	}
	return schema, nil
}

// Deleted is the result of a delete command
type Deleted struct {
	ID      types.ID `json:"id"`
	Deleted bool     `json:"deleted"`
}

// GetID returns the deleted entity's id
func (d *Deleted) GetID() string { return d.ID.String() }

// Confirm asks a yes/no question on stdin. JSON and quiet modes and --force
// skip the prompt and count as yes.
func Confirm(f *OutputFormatter, force bool, prompt string) bool {
	if force || !f.Human() {
		return true
	}
	fmt.Printf("%s (y/N): ", prompt)
	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		slog.Debug("failed to read confirmation", "error", err)
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// RenderDeleted prints the outcome of a delete command for a named kind
func RenderDeleted(kind string) func(any) error {
	return func(result any) error {
		d := result.(*Deleted)
		if !d.Deleted {
			fmt.Println("Cancelled")
			return nil
		}
		fmt.Printf("✓ %s %s deleted successfully\n", kind, d.ID)
		return nil
	}
}
