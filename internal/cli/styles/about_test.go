package styles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/domain/build"
)

func TestAboutRenderer(t *testing.T) {
	r := styles.NewAboutRenderer(styles.NewTheme())

	out := r.Render(build.Info{Version: "v0.3.0", Commit: "abc123", GoVersion: "go1.25.3"})

	assert.Contains(t, out, "v0.3.0")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, "go1.25.3")
	assert.Contains(t, out, "github.com/bnema/dockyard")
	assert.NotContains(t, out, "built")
}

func TestAboutRenderer_DefaultsToDev(t *testing.T) {
	out := styles.NewAboutRenderer(styles.NewTheme()).Render(build.Info{})

	assert.Contains(t, out, "dev")
}
