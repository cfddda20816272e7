package policy_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/policy"
)

func TestEffectiveGroup_InheritsFromOwner(t *testing.T) {
	l, _, dock, tool := buildTree(t)
	dock.DockGroup = "tools"

	assert.Equal(t, "tools", policy.EffectiveGroup(l, tool.Handle))

	tool.DockGroup = "inspectors"
	assert.Equal(t, "inspectors", policy.EffectiveGroup(l, tool.Handle))
}

func TestValidateDockingGroups(t *testing.T) {
	tests := []struct {
		name   string
		source string
		target string
		want   bool
	}{
		{"both ungrouped", "", "", true},
		{"same group", "a", "a", true},
		{"different groups", "a", "b", false},
		{"grouped into ungrouped", "a", "", false},
		{"ungrouped into grouped", "", "b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := entity.NewLayout()
			src := l.NewNode(entity.KindTool, "src")
			dst := l.NewNode(entity.KindTool, "dst")
			src.DockGroup = tt.source
			dst.DockGroup = tt.target

			assert.Equal(t, tt.want, policy.ValidateDockingGroups(l, src.Handle, dst.Handle))
		})
	}
}

func TestValidateDockingGroupsInDock_ChecksEveryChild(t *testing.T) {
	l, _, dock, tool := buildTree(t)
	tool.DockGroup = "a"
	other := l.NewNode(entity.KindTool, "other")
	other.Owner = dock.Handle
	other.DockGroup = "b"
	dock.Container.VisibleDockables = append(dock.Container.VisibleDockables, other.Handle)

	src := l.NewNode(entity.KindTool, "src")
	src.DockGroup = "a"

	assert.False(t, policy.ValidateDockingGroupsInDock(l, src.Handle, dock.Handle))

	other.DockGroup = "a"
	assert.True(t, policy.ValidateDockingGroupsInDock(l, src.Handle, dock.Handle))
}

func TestValidateDockingGroupsInDock_EmptyDockUsesDockGroup(t *testing.T) {
	l := entity.NewLayout()
	dock := l.NewNode(entity.KindToolDock, "empty")
	dock.DockGroup = "a"
	src := l.NewNode(entity.KindTool, "src")

	assert.False(t, policy.ValidateDockingGroupsInDock(l, src.Handle, dock.Handle))

	src.DockGroup = "a"
	assert.True(t, policy.ValidateDockingGroupsInDock(l, src.Handle, dock.Handle))
}

func TestValidateGlobalDocking(t *testing.T) {
	l := entity.NewLayout()
	root := l.NewNode(entity.KindRootDock, "root")
	dock := l.NewNode(entity.KindToolDock, "grouped")
	dock.Owner = root.Handle
	dock.DockGroup = "a"
	src := l.NewNode(entity.KindTool, "src")

	assert.True(t, policy.ValidateGlobalDocking(l, src.Handle, dock.Handle), "ungrouped content docks anywhere")

	root.Container.EnableGlobalDocking = false
	assert.False(t, policy.ValidateGlobalDocking(l, src.Handle, dock.Handle), "disabled chain falls back to strict")

	root.Container.EnableGlobalDocking = true
	src.DockGroup = "b"
	assert.False(t, policy.ValidateGlobalDocking(l, src.Handle, dock.Handle))

	src.DockGroup = "a"
	assert.True(t, policy.ValidateGlobalDocking(l, src.Handle, dock.Handle))
}

func TestValidateGlobalDocking_GroupedContent(t *testing.T) {
	tests := []struct {
		name      string
		dockGroup string
		nested    []string
		want      bool
	}{
		{"empty ungrouped dock", "", nil, true},
		{"ungrouped descendants", "", []string{"", ""}, true},
		{"same group descendant", "", []string{"a", ""}, true},
		{"conflicting nested descendant", "", []string{"", "b"}, false},
		{"conflicting dock group", "b", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := entity.NewLayout()
			root := l.NewNode(entity.KindRootDock, "root")
			dock := l.NewNode(entity.KindDock, "target")
			dock.Owner = root.Handle
			dock.DockGroup = tt.dockGroup
			root.Container.VisibleDockables = []entity.Handle{dock.Handle}

			// Each entry sits one level deeper inside its own tool dock.
			for i, g := range tt.nested {
				inner := l.NewNode(entity.KindToolDock, fmt.Sprintf("inner-%d", i))
				inner.Owner = dock.Handle
				dock.Container.VisibleDockables = append(dock.Container.VisibleDockables, inner.Handle)
				tool := l.NewNode(entity.KindTool, fmt.Sprintf("tool-%d", i))
				tool.Owner = inner.Handle
				tool.DockGroup = g
				inner.Container.VisibleDockables = []entity.Handle{tool.Handle}
			}

			src := l.NewNode(entity.KindTool, "src")
			src.DockGroup = "a"

			assert.Equal(t, tt.want, policy.ValidateGlobalDocking(l, src.Handle, dock.Handle))
		})
	}
}
