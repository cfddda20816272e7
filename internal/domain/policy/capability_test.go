package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/policy"
)

// buildTree returns root -> toolDock -> tool.
func buildTree(t *testing.T) (*entity.Layout, *entity.Node, *entity.Node, *entity.Node) {
	t.Helper()
	l := entity.NewLayout()
	root := l.NewNode(entity.KindRootDock, "root")
	dock := l.NewNode(entity.KindToolDock, "tools")
	tool := l.NewNode(entity.KindTool, "explorer")

	l.Root = root.Handle
	root.Container.VisibleDockables = []entity.Handle{dock.Handle}
	dock.Owner = root.Handle
	dock.Container.VisibleDockables = []entity.Handle{tool.Handle}
	tool.Owner = dock.Handle
	return l, root, dock, tool
}

func TestEvaluate_BaseValueWhenNoPolicy(t *testing.T) {
	l, _, _, tool := buildTree(t)
	tool.Caps.CanFloat = false

	ev := policy.Evaluate(l, tool.Handle, entity.CapabilityFloat, entity.NoHandle)

	assert.False(t, ev.BaseValue)
	assert.False(t, ev.EffectiveValue)
	assert.Equal(t, policy.SourceDockable, ev.Source)
	assert.Nil(t, ev.RootPolicyValue)
	assert.Nil(t, ev.DockPolicyValue)
	assert.Nil(t, ev.OverrideValue)
}

func TestEvaluate_MostSpecificPolicyWins(t *testing.T) {
	l, root, dock, tool := buildTree(t)
	tool.Caps.CanClose = false
	root.Root.CapabilityPolicy = (&entity.CapabilityPolicy{}).Set(entity.CapabilityClose, true)
	dock.Container.CapabilityPolicy = (&entity.CapabilityPolicy{}).Set(entity.CapabilityClose, false)

	ev := policy.Evaluate(l, tool.Handle, entity.CapabilityClose, entity.NoHandle)

	require.NotNil(t, ev.RootPolicyValue)
	require.NotNil(t, ev.DockPolicyValue)
	assert.True(t, *ev.RootPolicyValue)
	assert.False(t, *ev.DockPolicyValue)
	assert.False(t, ev.EffectiveValue)
	assert.Equal(t, policy.SourceDockPolicy, ev.Source)
	assert.NotEmpty(t, ev.Diagnostic)
}

func TestEvaluate_OverrideBeatsEverything(t *testing.T) {
	l, root, dock, tool := buildTree(t)
	root.Root.CapabilityPolicy = (&entity.CapabilityPolicy{}).Set(entity.CapabilityFloat, false)
	dock.Container.CapabilityPolicy = (&entity.CapabilityPolicy{}).Set(entity.CapabilityFloat, false)
	tool.Overrides.Set(entity.CapabilityFloat, true)

	ev := policy.Evaluate(l, tool.Handle, entity.CapabilityFloat, entity.NoHandle)

	assert.True(t, ev.EffectiveValue)
	assert.Equal(t, policy.SourceDockableOverride, ev.Source)
	assert.True(t, policy.IsEnabled(l, tool.Handle, entity.CapabilityFloat, entity.NoHandle))
}

func TestEvaluate_RootPolicyAppliesAcrossDocks(t *testing.T) {
	l, root, _, tool := buildTree(t)
	root.Root.CapabilityPolicy = (&entity.CapabilityPolicy{}).Set(entity.CapabilityPin, false)

	ev := policy.Evaluate(l, tool.Handle, entity.CapabilityPin, entity.NoHandle)

	assert.False(t, ev.EffectiveValue)
	assert.Equal(t, policy.SourceRootPolicy, ev.Source)
}

func TestEvaluate_ExplicitDockContext(t *testing.T) {
	l, root, _, tool := buildTree(t)
	other := l.NewNode(entity.KindDocumentDock, "docs")
	other.Owner = root.Handle
	other.Container.CapabilityPolicy = (&entity.CapabilityPolicy{}).Set(entity.CapabilityDrop, false)

	assert.True(t, policy.IsEnabled(l, tool.Handle, entity.CapabilityDrop, entity.NoHandle))
	assert.False(t, policy.IsEnabled(l, tool.Handle, entity.CapabilityDrop, other.Handle))
}

func TestEvaluate_FallsBackToNonFocusableRoot(t *testing.T) {
	l, root, _, tool := buildTree(t)
	root.Root.IsFocusableRoot = false
	root.Root.CapabilityPolicy = (&entity.CapabilityPolicy{}).Set(entity.CapabilityDrag, false)

	assert.False(t, policy.IsEnabled(l, tool.Handle, entity.CapabilityDrag, entity.NoHandle))
}

func TestEvaluate_MissingDockable(t *testing.T) {
	l := entity.NewLayout()

	ev := policy.Evaluate(l, entity.Handle(42), entity.CapabilityClose, entity.NoHandle)

	assert.False(t, ev.EffectiveValue)
	assert.Equal(t, "dockable not found", ev.Diagnostic)
}
