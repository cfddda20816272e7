package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/cli/styles"
)

type testEnv struct {
	configDir string
	dbPath    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	return &testEnv{
		configDir: filepath.Join(base, "dockyard"),
		dbPath:    filepath.Join(base, "dockyard.db"),
	}
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with the env's directories and returns stdout.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config-dir", e.configDir, "--db", e.dbPath}, args...))

	err := rootCmd.Execute()
	if closeErr := closeApp(); err == nil {
		err = closeErr
	}
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, "", args...)
	require.NoError(t, err, "dockyard %s", strings.Join(args, " "))
	return out
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "version")

	assert.Contains(t, out, "github.com/bnema/dockyard")
	assert.Nil(t, GetApp())
}

func TestDemoCommand_SaveThenTree(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "demo", "--save", "default", "--name", "Default layout")
	assert.Contains(t, out, `* solution-explorer "Solution Explorer"`)
	assert.Contains(t, out, "Saved workspace default (json)")

	out = env.mustRun(t, "tree")
	assert.Contains(t, out, "Default layout")
	assert.Contains(t, out, "left [tool_dock left 20%]")
	assert.NotContains(t, out, "splitter-1")

	out = env.mustRun(t, "tree", "default", "--splitters")
	assert.Contains(t, out, "splitter-1")
}

func TestTreeCommand_MissingWorkspace(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "tree", "nowhere")

	require.Error(t, err)
}

func TestWorkspacesCommands(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "demo", "--save", "review", "--name", "Review")
	env.mustRun(t, "demo", "--save", "default")

	out := env.mustRun(t, "workspaces", "list")
	assert.Contains(t, out, "review")
	assert.Contains(t, out, "Review")
	assert.Contains(t, out, "default")

	out = env.mustRun(t, "workspaces", "show", "review", "--raw")
	assert.Contains(t, out, `"version"`)
	assert.Contains(t, out, `"solution-explorer"`)

	out = env.mustRun(t, "workspaces", "verify")
	assert.Contains(t, out, "review")
	assert.Contains(t, out, "default")
	assert.NotContains(t, out, styles.IconX)

	out = env.mustRun(t, "ws", "delete", "review")
	assert.Contains(t, out, "Deleted workspace review")

	out = env.mustRun(t, "workspaces", "list")
	assert.NotContains(t, out, "review")

	_, err := env.run(t, "", "workspaces", "delete", "review")
	require.Error(t, err)
}

func TestWorkspacesCommands_EmptyList(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "workspaces", "list")

	assert.Contains(t, out, "No saved workspaces.")
}

func TestApplyCommand_PersistsResult(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "demo", "--save", "default")

	out := env.mustRun(t, "apply", "default", "hide", "output")
	assert.Contains(t, out, "hidden: output")
	assert.Contains(t, out, "Saved workspace default")

	out = env.mustRun(t, "tree", "default")
	assert.Contains(t, out, "hidden: output")
}

func TestApplyCommand_DryRunDoesNotPersist(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "demo", "--save", "default")

	out := env.mustRun(t, "apply", "default", "pin", "class-view", "--dry-run")
	assert.Contains(t, out, "pinned left: class-view")
	assert.NotContains(t, out, "Saved workspace")

	out = env.mustRun(t, "tree", "default")
	assert.NotContains(t, out, "pinned left")
}

func TestApplyCommand_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "demo", "--save", "default")

	_, err := env.run(t, "", "apply", "default", "explode", "output")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown operation "explode"`)

	_, err = env.run(t, "", "apply", "default", "hide", "ghost")
	require.Error(t, err)

	_, err = env.run(t, "", "apply", "default", "move", "output")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a target")

	_, err = env.run(t, "", "apply", "default", "hide", "output", "errors")
	require.Error(t, err)
}

func TestDropCommand_DryRunThenApply(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "demo", "--save", "default")
	before := env.mustRun(t, "tree", "default")

	out := env.mustRun(t, "drop", "default", "output", "properties", "--dry-run")
	assert.Contains(t, out, "output -> ")
	assert.Equal(t, before, env.mustRun(t, "tree", "default"))

	out = env.mustRun(t, "drop", "default", "output", "properties")
	assert.Contains(t, out, "Saved workspace default")
	assert.NotEqual(t, before, env.mustRun(t, "tree", "default"))
}

func TestDropCommand_Rejected(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "demo", "--save", "default")

	out, err := env.run(t, "", "drop", "default", "output", "errors", "--action", "copy")

	require.ErrorIs(t, err, usecase.ErrPlanRejected)
	assert.Contains(t, out, "drop rejected")
}

func TestDropCommand_InvalidFlags(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "demo", "--save", "default")

	_, err := env.run(t, "", "drop", "default", "output", "errors", "--op", "diagonal")
	require.Error(t, err)

	_, err = env.run(t, "", "drop", "default", "output", "errors", "--action", "throw")
	require.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "config", "path")
	assert.Equal(t, filepath.Join(env.configDir, "config.toml"), strings.TrimSpace(out))

	out = env.mustRun(t, "config", "schema")
	assert.Contains(t, out, "Dockyard Configuration")

	out = env.mustRun(t, "config", "status")
	assert.Contains(t, out, "Config is up to date")
}

func TestConfigMigrateCommand(t *testing.T) {
	env := newTestEnv(t)
	configFile := filepath.Join(env.configDir, "config.toml")
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(configFile, []byte("[logging]\nlevel = \"debug\"\n"), 0o600))

	out := env.mustRun(t, "config", "status")
	assert.Contains(t, out, "new settings available")
	assert.Contains(t, out, "+ docking.cascade_offset")

	out, err := env.run(t, "n\r", "config", "migrate")
	require.NoError(t, err)
	assert.NotContains(t, out, "Updated")
	data, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "[docking]")

	out = env.mustRun(t, "config", "migrate", "--yes")
	assert.Contains(t, out, "Updated")
	data, err = os.ReadFile(configFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[docking]")
	assert.Contains(t, string(data), "debug")
}

func TestConfigMigrateCommand_ConfirmYes(t *testing.T) {
	env := newTestEnv(t)
	configFile := filepath.Join(env.configDir, "config.toml")
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(configFile, []byte("[logging]\nlevel = \"debug\"\n"), 0o600))

	out, err := env.run(t, "y\r", "config", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated")
	data, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[docking]")

	out = env.mustRun(t, "config", "status")
	assert.Contains(t, out, "Config is up to date")
}
