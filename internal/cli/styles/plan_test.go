package styles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/domain/entity"
)

func TestPlanRenderer_Rejected(t *testing.T) {
	f := newDemoFactory(t)
	l := f.Layout()
	m := usecase.NewDockManager(f)

	p := m.Decide(usecase.DropRequest{
		Source:    l.FindByID("output").Handle,
		Target:    l.FindByID("errors").Handle,
		Action:    entity.ActionCopy,
		Operation: entity.OpFill,
	})
	require.False(t, p.Legal())

	out := styles.NewPlanRenderer(styles.NewTheme()).Render(p, l)

	assert.Contains(t, out, "drop rejected: "+p.Reason.String())
}

func TestPlanRenderer_Legal(t *testing.T) {
	f := newDemoFactory(t)
	l := f.Layout()
	m := usecase.NewDockManager(f)

	p := m.Decide(usecase.DropRequest{
		Source:    l.FindByID("output").Handle,
		Target:    l.FindByID("properties").Handle,
		Action:    entity.ActionMove,
		Operation: entity.OpFill,
	})
	require.True(t, p.Legal())

	out := styles.NewPlanRenderer(styles.NewTheme()).Render(p, l)

	assert.Contains(t, out, p.Kind.String())
	assert.Contains(t, out, "output -> ")
	assert.NotContains(t, out, "rejected")
}
