package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lista/internal/cli"
	"github.com/thenoetrevino/lista/internal/session"
	"github.com/thenoetrevino/lista/internal/testutil/apitest"
	clitest "github.com/thenoetrevino/lista/internal/testutil/cli"
)

func TestLogin_Positive(t *testing.T) {
	env := apitest.New(t)
	a := clitest.NewTestApp(t, env)

	output, err := clitest.ExecuteCLICommand(t, a, LoginCmd(), []string{
		"--email", apitest.Email,
		"--password", apitest.Password,
		"--json",
	})
	require.NoError(t, err)

	data := clitest.Data(t, output)
	user := data["user"].(map[string]any)
	assert.Equal(t, env.User.ID.String(), user["id"])
	assert.Equal(t, "/dashboard", data["landing"], "no workspaces yet")
	assert.True(t, a.Session.IsAuthenticated())
}

func TestLogin_PasswordFromEnv(t *testing.T) {
	env := apitest.New(t)
	a := clitest.NewTestApp(t, env)
	t.Setenv(PasswordEnv, apitest.Password)

	output, err := clitest.ExecuteCLICommand(t, a, LoginCmd(), []string{"--email", apitest.Email, "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, env.User.ID.String(), strings.TrimSpace(output))
}

func TestLogin_Negative(t *testing.T) {
	env := apitest.New(t)
	t.Setenv(PasswordEnv, "")

	tests := []struct {
		name     string
		args     []string
		wantExit int
		wantCode string
	}{
		{
			name:     "missing email",
			args:     []string{"--password", "x", "--json"},
			wantExit: cli.ExitValidation,
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "missing password",
			args:     []string{"--email", apitest.Email, "--json"},
			wantExit: cli.ExitValidation,
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "wrong password",
			args:     []string{"--email", apitest.Email, "--password", "nope", "--json"},
			wantExit: cli.ExitValidation,
			wantCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := clitest.NewTestApp(t, env)
			output, err := clitest.ExecuteCLICommand(t, a, LoginCmd(), tt.args)
			assert.Equal(t, tt.wantExit, cli.ExitCodeOf(err))

			errData := clitest.ParseJSON(t, output)["error"].(map[string]any)
			assert.Equal(t, tt.wantCode, errData["code"])
			assert.False(t, a.Session.IsAuthenticated())
		})
	}
}

func TestRegister(t *testing.T) {
	env := apitest.New(t)
	a := clitest.NewTestApp(t, env)

	output, err := clitest.ExecuteCLICommand(t, a, RegisterCmd(), []string{
		"--name", "Grace Hopper",
		"--email", "grace@example.com",
		"--password", "cobol1959",
		"--json",
	})
	require.NoError(t, err)

	user := clitest.Data(t, output)["user"].(map[string]any)
	assert.Equal(t, "Grace Hopper", user["name"])
	assert.Equal(t, "Grace Hopper", a.Session.User().Name)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	env := apitest.New(t)
	a := clitest.NewTestApp(t, env)

	_, err := clitest.ExecuteCLICommand(t, a, RegisterCmd(), []string{
		"--name", "Grace Hopper",
		"--email", "grace@example.com",
		"--password", "cobol1959",
		"--password-confirmation", "cobol1960",
		"--json",
	})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err))
	assert.Equal(t, 0, env.Server.Hits("POST", "/api/auth/session/register"))
}

func TestWhoami(t *testing.T) {
	env, a := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, a, WhoamiCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, env.User.ID.String(), strings.TrimSpace(output))

	output, err = clitest.ExecuteCLICommand(t, a, WhoamiCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, apitest.Email)
}

func TestWhoami_Anonymous(t *testing.T) {
	env := apitest.New(t)
	a := clitest.NewTestApp(t, env)

	output, err := clitest.ExecuteCLICommand(t, a, WhoamiCmd(), []string{"--json"})
	assert.Equal(t, cli.ExitUnauthorized, cli.ExitCodeOf(err))
	errData := clitest.ParseJSON(t, output)["error"].(map[string]any)
	assert.Equal(t, "UNAUTHORIZED", errData["code"])
	assert.Equal(t, session.Anonymous, a.Session.State())
}

func TestLogout(t *testing.T) {
	_, a := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, a, LogoutCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "Logged out")
	assert.False(t, a.Session.IsAuthenticated())
	assert.Equal(t, "/login", a.Navigator.Path())
}
