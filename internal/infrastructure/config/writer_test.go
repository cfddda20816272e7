package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConfigOrdered(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "sub", "config.toml")

	require.NoError(t, WriteConfigOrdered(DefaultConfig(), configPath))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var sections []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sections = append(sections, line)
		}
	}
	assert.Equal(t, []string{"[database]", "[docking]", "[logging]", "[workspace]"}, sections)
	assert.Contains(t, string(content), "cascade_offset = 24.0")
}

func TestWriteConfigOrdered_Nil(t *testing.T) {
	assert.Error(t, WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "config.toml")))
}

func TestSortTOMLSections(t *testing.T) {
	input := `title = 'x'

[workspace]
  default = 'main'

[docking]
  cascade_offset = 24.0

[docking.extra]
  value = 1
`
	want := `title = 'x'

[docking]
  cascade_offset = 24.0

[docking.extra]
  value = 1

[workspace]
  default = 'main'
`

	assert.Equal(t, want, sortTOMLSections(input))
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"$id": "https://github.com/bnema/dockyard/config.schema.json"`)
	assert.Contains(t, out, `"DockingConfig"`)
	assert.Contains(t, out, `"cascade_offset"`)
	assert.Contains(t, out, `"autosave_interval_ms"`)
}
