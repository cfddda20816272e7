package cli_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/cli"
	"github.com/bnema/dockyard/internal/domain/entity"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	return base
}

func newTestApp(t *testing.T, configTOML string) *cli.App {
	t.Helper()
	base := isolateXDG(t)

	configDir := filepath.Join(base, "dockyard")
	if configTOML != "" {
		require.NoError(t, os.MkdirAll(configDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(configTOML), 0o600))
	}

	app, err := cli.NewApp(cli.Options{
		ConfigDir:    configDir,
		DatabasePath: filepath.Join(base, "dockyard.db"),
		LogWriter:    io.Discard,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewApp_Defaults(t *testing.T) {
	app := newTestApp(t, "")

	assert.Nil(t, app.Autosave)
	assert.Equal(t, "default", app.Config.Workspace.Default)
	assert.False(t, app.Layout().Root.IsValid())
	assert.FileExists(t, app.ConfigManager.GetConfigFile())
}

func TestNewApp_RejectsUnknownFormat(t *testing.T) {
	base := isolateXDG(t)
	configDir := filepath.Join(base, "dockyard")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte("[workspace]\nformat = \"xml\"\n"), 0o600))

	_, err := cli.NewApp(cli.Options{ConfigDir: configDir, DatabasePath: filepath.Join(base, "db"), LogWriter: io.Discard})

	require.Error(t, err)
}

func TestApp_RunOperations(t *testing.T) {
	app := newTestApp(t, "")
	require.NoError(t, app.LoadDemo())

	require.NoError(t, app.Run("float", "output", ""))
	assert.Len(t, app.Hosts.Open(), 1)

	require.NoError(t, app.Run("split-right", "errors", "readme.md"))
	errs, err := app.Node("errors")
	require.NoError(t, err)
	assert.NotEqual(t, app.Layout().FindByID("bottom").Handle, errs.Owner)

	require.NoError(t, app.Run("pin", "class-view", ""))
	assert.True(t, app.Factory.IsDockablePinned(app.Layout().FindByID("class-view").Handle))

	assert.Error(t, app.Run("explode", "output", ""))
	assert.Error(t, app.Run("hide", "ghost", ""))
	assert.Error(t, app.Run("swap", "main.go", ""))
}

func TestApp_DropToWindowUsesPointer(t *testing.T) {
	app := newTestApp(t, "")
	require.NoError(t, app.LoadDemo())
	l := app.Layout()

	p, err := app.Drop(usecase.DropRequest{
		Source:    l.FindByID("properties").Handle,
		Target:    l.Root,
		Action:    entity.ActionMove,
		Operation: entity.OpWindow,
		Pointer:   &entity.Point{X: 40, Y: 80},
	}, false)
	require.NoError(t, err)
	require.Equal(t, usecase.PlanFloat, p.Kind)

	open := app.Hosts.Open()
	require.Len(t, open, 1)
	assert.Equal(t, entity.Rect{X: 40, Y: 80, W: 300, H: 400}, open[0].Bounds)
	_, _, ok := app.Bounds.PointerScreenPosition()
	assert.False(t, ok)
}

func TestApp_DropDryRunLeavesLayout(t *testing.T) {
	app := newTestApp(t, "")
	require.NoError(t, app.LoadDemo())
	l := app.Layout()
	rev := l.Revision()

	p, err := app.Drop(usecase.DropRequest{
		Source:    l.FindByID("output").Handle,
		Target:    l.FindByID("properties").Handle,
		Action:    entity.ActionMove,
		Operation: entity.OpFill,
	}, true)

	require.NoError(t, err)
	assert.True(t, p.Legal())
	assert.Equal(t, rev, l.Revision())
}

func TestApp_SaveAndLoadWorkspace(t *testing.T) {
	app := newTestApp(t, "")
	require.NoError(t, app.LoadDemo())

	_, err := app.SaveWorkspace("Default", "Demo")
	require.NoError(t, err)
	require.NoError(t, app.Run("hide", "errors", ""))

	ws, err := app.LoadWorkspace("default")
	require.NoError(t, err)
	assert.Equal(t, "Demo", ws.Name)
	assert.False(t, app.Factory.IsDockableHidden(app.Layout().FindByID("errors").Handle))
}

func TestApp_AutosaveFlushesOnPersist(t *testing.T) {
	app := newTestApp(t, "[workspace]\nautosave = true\nautosave_interval_ms = 60000\n")
	require.NotNil(t, app.Autosave)
	require.NoError(t, app.LoadDemo())
	_, err := app.SaveWorkspace("default", "")
	require.NoError(t, err)

	require.NoError(t, app.Run("hide", "output", ""))
	assert.True(t, app.Autosave.Dirty())

	require.NoError(t, app.Persist("default", ""))
	assert.False(t, app.Autosave.Dirty())

	ws, err := app.Workspaces.Get(app.Ctx(), "default")
	require.NoError(t, err)
	layout, err := app.Workspaces.Decode(ws)
	require.NoError(t, err)
	root := layout.Node(layout.Root)
	require.NotNil(t, root)
	require.Len(t, root.Root.HiddenDockables, 1)
	assert.Equal(t, "output", layout.Node(root.Root.HiddenDockables[0]).ID)
}

func TestParseWorkspaceID(t *testing.T) {
	id, err := cli.ParseWorkspaceID("  Review ")
	require.NoError(t, err)
	assert.Equal(t, entity.WorkspaceID("Review"), id)

	_, err = cli.ParseWorkspaceID("   ")
	assert.Error(t, err)
}
