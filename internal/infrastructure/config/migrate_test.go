package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrator_DetectChanges(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.toml")
	content := `[docking]
  cascade_offset = 32.0
  enable_global_docking = true

[logging]
  level = 'debug'
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	changes, err := NewMigrator().DetectChanges(configFile)
	require.NoError(t, err)

	added := map[string]bool{}
	var removed []string
	for _, c := range changes {
		switch c.Type {
		case KeyChangeAdded:
			added[c.Key] = true
		case KeyChangeRemoved:
			removed = append(removed, c.Key)
		}
	}

	assert.True(t, added["docking.float_default_width"])
	assert.True(t, added["workspace.autosave_interval_ms"])
	assert.False(t, added["docking.cascade_offset"])
	assert.False(t, added["logging.level"])
	assert.False(t, added["database.path"])
	assert.Equal(t, []string{"docking.enable_global_docking"}, removed)
}

func TestMigrator_DetectChangesMissingFile(t *testing.T) {
	changes, err := NewMigrator().DetectChanges(filepath.Join(t.TempDir(), "none.toml"))

	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestMigrator_DetectChangesCompleteFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteConfigOrdered(DefaultConfig(), configFile))

	changes, err := NewMigrator().DetectChanges(configFile)

	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestMigrator_MigrateKeepsUserValues(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configFile, []byte("[docking]\n  cascade_offset = 32.0\n"), 0o644))

	m := NewMigrator()
	changes, err := m.Migrate(configFile)
	require.NoError(t, err)
	assert.NotEmpty(t, changes)

	after, err := m.DetectChanges(configFile)
	require.NoError(t, err)
	assert.Empty(t, after)

	keys, err := readUserKeys(configFile)
	require.NoError(t, err)
	assert.InDelta(t, 32.0, keys["docking.cascade_offset"], 0.001)
	assert.Equal(t, "info", keys["logging.level"])
}

func TestFormatChangesAsDiff(t *testing.T) {
	out := FormatChangesAsDiff([]KeyChange{
		{Type: KeyChangeAdded, Key: "workspace.autosave", Value: "false"},
		{Type: KeyChangeRemoved, Key: "docking.legacy", Value: `"x"`},
	})

	assert.Contains(t, out, "  + workspace.autosave = false\n")
	assert.Contains(t, out, `  - docking.legacy = "x" (deprecated)`)
	assert.Equal(t, "No changes detected.\n", FormatChangesAsDiff(nil))
}
