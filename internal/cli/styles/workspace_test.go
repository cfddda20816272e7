package styles_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/domain/entity"
)

func TestWorkspaceRenderer_RenderList(t *testing.T) {
	r := styles.NewWorkspaceRenderer(styles.NewTheme())

	out := r.RenderList([]*entity.DockWorkspace{
		{ID: "default", Name: "Default", Format: "json", SavedAt: time.Now()},
		{ID: "review", Format: "yaml", IsDirty: true},
	})

	for _, want := range []string{"ID", "FORMAT", "default", "Default", "json", "review", "yaml", "yes", "-"} {
		assert.Contains(t, out, want)
	}
}

func TestWorkspaceRenderer_EmptyList(t *testing.T) {
	r := styles.NewWorkspaceRenderer(styles.NewTheme())

	assert.Contains(t, r.RenderList(nil), "No saved workspaces.")
	assert.Contains(t, r.RenderVerify(nil), "No saved workspaces.")
}

func TestWorkspaceRenderer_RenderVerify(t *testing.T) {
	r := styles.NewWorkspaceRenderer(styles.NewTheme())

	out := r.RenderVerify([]styles.VerifyResult{
		{ID: "good"},
		{ID: "broken", Err: errors.New("unknown workspace format \"xml\"")},
	})

	assert.Contains(t, out, styles.IconCheck+" good")
	assert.Contains(t, out, styles.IconX+" broken")
	assert.Contains(t, out, `unknown workspace format "xml"`)
}

func TestWorkspaceRenderer_Confirmations(t *testing.T) {
	r := styles.NewWorkspaceRenderer(styles.NewTheme())

	assert.Contains(t, r.RenderSaved(&entity.DockWorkspace{ID: "demo", Format: "yaml"}), "Saved workspace demo (yaml)")
	assert.Contains(t, r.RenderDeleted("demo"), "Deleted workspace demo")
	assert.Contains(t, r.RenderHeader(&entity.DockWorkspace{ID: "demo", Format: "json"}), "json")
}
