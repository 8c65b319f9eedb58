package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lista/internal/api"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

type identified interface {
	GetID() string
}

// Human reports whether neither --json nor --quiet was given
func (f *OutputFormatter) Human() bool {
	return !f.JSON && !f.Quiet
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		if ids, ok := collectIDs(data); ok {
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		}
	}

	if f.JSON {
		return writeJSON(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Emit writes data as JSON or IDs, or calls human for the default mode
func (f *OutputFormatter) Emit(data any, human func() error) error {
	if f.Human() && human != nil {
		return human()
	}
	return f.Success(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	return f.write(code, message, suggestion, nil)
}

// Fail reports err and returns it wrapped with the matching exit code
func (f *OutputFormatter) Fail(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return err
	}

	exit, code := Classify(err)
	suggestion := ""
	if exit == ExitUnauthorized {
		suggestion = "Run 'lista auth login' first"
	}

	var fields map[string][]string
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		fields = apiErr.Errors
	}

	if fmtErr := f.write(code, api.UserMessage(err), suggestion, fields); fmtErr != nil {
		fmt.Fprintf(os.Stderr, "Error formatting error message: %v\n", fmtErr)
	}
	return &ExitCodeError{Code: exit, Err: err}
}

// Usage reports a usage problem and returns an ExitUsage error
func (f *OutputFormatter) Usage(message, suggestion string) error {
	if fmtErr := f.ErrorWithSuggestion("USAGE", message, suggestion); fmtErr != nil {
		fmt.Fprintf(os.Stderr, "Error formatting error message: %v\n", fmtErr)
	}
	return &ExitCodeError{Code: ExitUsage, Err: errors.New(message)}
}

// DataError reports input the command could not read, such as a missing
// upload file, and returns an ExitDataErr error
func (f *OutputFormatter) DataError(err error) error {
	if fmtErr := f.Error("DATA_ERROR", err.Error()); fmtErr != nil {
		fmt.Fprintf(os.Stderr, "Error formatting error message: %v\n", fmtErr)
	}
	return &ExitCodeError{Code: ExitDataErr, Err: err}
}

func (f *OutputFormatter) write(code, message, suggestion string, fields map[string][]string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		if len(fields) > 0 {
			errData["fields"] = fields
		}
		return writeJSON(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintf(os.Stderr, "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	fmt.Printf("%+v\n", data)
	return nil
}

// collectIDs extracts ids from a single entity or a slice of entities
func collectIDs(data any) ([]string, bool) {
	if data == nil {
		return nil, false
	}
	if v, ok := data.(identified); ok {
		return []string{v.GetID()}, true
	}
	if v, ok := data.(interface{ IDs() []string }); ok {
		return v.IDs(), true
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	ids := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		v, ok := rv.Index(i).Interface().(identified)
		if !ok {
			return nil, false
		}
		ids = append(ids, v.GetID())
	}
	return ids, true
}

// AddOutputFlags registers --json and --quiet on cmd
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// FormatterFromFlags builds the formatter selected by --json and --quiet
func FormatterFromFlags(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// writeJSON prints v to stdout. Usage strings such as "<id>" stay readable.
func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
