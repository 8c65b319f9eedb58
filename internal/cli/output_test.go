package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lista/internal/api"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/services/space"
	"github.com/thenoetrevino/lista/internal/session"
)

// ============================================================================
// Test Helpers
// ============================================================================

// capture swaps os.Stdout and os.Stderr for pipes while fn runs
func capture(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()

	oldOut, oldErr := os.Stdout, os.Stderr
	rOut, wOut, err := os.Pipe()
	require.NoError(t, err)
	rErr, wErr, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout, os.Stderr = wOut, wErr

	outC := make(chan string)
	errC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rOut)
		outC <- buf.String()
	}()
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rErr)
		errC <- buf.String()
	}()

	fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout, os.Stderr = oldOut, oldErr
	return <-outC, <-errC
}

func decode(t *testing.T, out string) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result), "output: %s", out)
	return result
}

// ============================================================================
// Success Tests
// ============================================================================

func TestOutputFormatter_Success_JSON(t *testing.T) {
	f := &OutputFormatter{JSON: true}
	out, _ := capture(t, func() {
		require.NoError(t, f.Success(&models.Workspace{ID: "w1", Name: "Acme"}))
	})

	result := decode(t, out)
	assert.Equal(t, true, result["success"])
	data := result["data"].(map[string]any)
	assert.Equal(t, "w1", data["id"])
	assert.Equal(t, "Acme", data["name"])
}

func TestOutputFormatter_Success_Quiet(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{name: "single entity", data: &models.Space{ID: "s1"}, want: "s1\n"},
		{
			name: "slice of entities",
			data: []*models.Task{{ID: "1"}, {ID: "2"}},
			want: "1\n2\n",
		},
		{name: "empty slice", data: []*models.Task{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &OutputFormatter{Quiet: true}
			out, _ := capture(t, func() {
				require.NoError(t, f.Success(tt.data))
			})
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestOutputFormatter_Success_QuietWithoutID(t *testing.T) {
	f := &OutputFormatter{Quiet: true}
	out, _ := capture(t, func() {
		require.NoError(t, f.Success(map[string]string{"k": "v"}))
	})
	assert.Contains(t, out, "k:v")
}

func TestOutputFormatter_Emit(t *testing.T) {
	called := false
	human := func() error {
		called = true
		return nil
	}

	f := &OutputFormatter{}
	_, _ = capture(t, func() {
		require.NoError(t, f.Emit(&models.Group{ID: "g1"}, human))
	})
	assert.True(t, called, "human renderer runs in the default mode")

	called = false
	f = &OutputFormatter{Quiet: true}
	out, _ := capture(t, func() {
		require.NoError(t, f.Emit(&models.Group{ID: "g1"}, human))
	})
	assert.False(t, called)
	assert.Equal(t, "g1\n", out)
}

// ============================================================================
// Error Tests
// ============================================================================

func TestOutputFormatter_ErrorWithSuggestion(t *testing.T) {
	f := &OutputFormatter{JSON: true}
	out, _ := capture(t, func() {
		require.NoError(t, f.ErrorWithSuggestion("NOT_FOUND", "missing", "try again"))
	})

	result := decode(t, out)
	assert.Equal(t, false, result["success"])
	errData := result["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errData["code"])
	assert.Equal(t, "missing", errData["message"])
	assert.Equal(t, "try again", errData["suggestion"])

	f = &OutputFormatter{}
	stdout, stderr := capture(t, func() {
		require.NoError(t, f.ErrorWithSuggestion("NOT_FOUND", "missing", "try again"))
	})
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error: missing")
	assert.Contains(t, stderr, "Suggestion: try again")
}

func TestOutputFormatter_JSONKeepsUsageVerbatim(t *testing.T) {
	f := &OutputFormatter{JSON: true}
	out, _ := capture(t, func() {
		require.NoError(t, f.ErrorWithSuggestion("USAGE", "missing id", "Usage: lista task show <id> & more"))
	})

	assert.Contains(t, out, "Usage: lista task show <id> & more")
	assert.NotContains(t, out, `\u003c`)
	errData := decode(t, out)["error"].(map[string]any)
	assert.Equal(t, "Usage: lista task show <id> & more", errData["suggestion"])
}

func TestOutputFormatter_Fail(t *testing.T) {
	validation := &api.Error{
		Status:  http.StatusUnprocessableEntity,
		Message: "The given data was invalid.",
		Errors:  map[string][]string{"name": {"The name field is required."}},
	}

	tests := []struct {
		name     string
		err      error
		wantExit int
		wantCode string
	}{
		{"not found", &api.Error{Status: http.StatusNotFound}, ExitNotFound, "NOT_FOUND"},
		{"unauthorized", &api.Error{Status: http.StatusUnauthorized}, ExitUnauthorized, "UNAUTHORIZED"},
		{"forbidden", &api.Error{Status: http.StatusForbidden}, ExitForbidden, "FORBIDDEN"},
		{"server validation", validation, ExitValidation, "VALIDATION_ERROR"},
		{"server error", &api.Error{Status: http.StatusBadGateway}, ExitError, "SERVER_ERROR"},
		{"network", &api.Error{Err: errors.New("refused")}, ExitError, "NETWORK_ERROR"},
		{"local validation", fmt.Errorf("failed to create space: %w", space.ErrEmptyName), ExitValidation, "VALIDATION_ERROR"},
		{"anonymous", session.ErrAnonymous, ExitUnauthorized, "UNAUTHORIZED"},
		{"other", errors.New("boom"), ExitError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &OutputFormatter{JSON: true}
			var failErr error
			out, _ := capture(t, func() {
				failErr = f.Fail(tt.err)
			})

			assert.Equal(t, tt.wantExit, ExitCodeOf(failErr))
			assert.ErrorIs(t, failErr, tt.err)
			errData := decode(t, out)["error"].(map[string]any)
			assert.Equal(t, tt.wantCode, errData["code"])
		})
	}
}

func TestOutputFormatter_Fail_Fields(t *testing.T) {
	f := &OutputFormatter{JSON: true}
	out, _ := capture(t, func() {
		_ = f.Fail(&api.Error{
			Status: http.StatusUnprocessableEntity,
			Errors: map[string][]string{"name": {"The name field is required."}},
		})
	})

	errData := decode(t, out)["error"].(map[string]any)
	assert.Equal(t, "name: The name field is required.", errData["message"])
	fields := errData["fields"].(map[string]any)
	assert.Equal(t, []any{"The name field is required."}, fields["name"])
}

func TestOutputFormatter_Fail_HumanSuggestsLogin(t *testing.T) {
	f := &OutputFormatter{}
	_, stderr := capture(t, func() {
		_ = f.Fail(&api.Error{Status: http.StatusUnauthorized})
	})
	assert.Contains(t, stderr, "Please log in")
	assert.Contains(t, stderr, "lista auth login")
}

func TestOutputFormatter_Fail_KeepsExitCodeError(t *testing.T) {
	f := &OutputFormatter{}
	original := &ExitCodeError{Code: ExitDataErr, Err: errors.New("bad file")}
	var got error
	_, stderr := capture(t, func() {
		got = f.Fail(original)
	})
	assert.Same(t, original, got)
	assert.Empty(t, stderr, "already reported errors are not printed twice")
}

func TestOutputFormatter_Usage(t *testing.T) {
	f := &OutputFormatter{}
	var err error
	_, stderr := capture(t, func() {
		err = f.Usage("task ID is required", "Usage: lista task show <id>")
	})
	assert.Equal(t, ExitUsage, ExitCodeOf(err))
	assert.True(t, strings.Contains(stderr, "task ID is required"))
}

func TestExitCodeOf(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCodeOf(nil))
	assert.Equal(t, ExitError, ExitCodeOf(errors.New("plain")))
	assert.Equal(t, ExitNotFound, ExitCodeOf(fmt.Errorf("wrapped: %w", &ExitCodeError{Code: ExitNotFound})))
}
