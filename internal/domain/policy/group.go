package policy

import "github.com/bnema/dockyard/internal/domain/entity"

// EffectiveGroup returns the first non-empty DockGroup on h and its owner chain.
func EffectiveGroup(l *entity.Layout, h entity.Handle) string {
	n := l.Node(h)
	if n == nil {
		return ""
	}
	if n.DockGroup != "" {
		return n.DockGroup
	}
	for _, a := range l.Ancestors(h) {
		if a.DockGroup != "" {
			return a.DockGroup
		}
	}
	return ""
}

// GroupsCompatible reports whether two effective groups may be combined.
// Ungrouped content only combines with ungrouped content.
func GroupsCompatible(source, target string) bool {
	return source == target
}

// ValidateDockingGroups is the strict pairwise check between two dockables.
func ValidateDockingGroups(l *entity.Layout, source, target entity.Handle) bool {
	return GroupsCompatible(EffectiveGroup(l, source), EffectiveGroup(l, target))
}

// ValidateDockingGroupsInDock checks source against every non-splitter child
// of dock, or against the dock itself when it has no content.
func ValidateDockingGroupsInDock(l *entity.Layout, source, dock entity.Handle) bool {
	d := l.Node(dock)
	if d == nil {
		return false
	}
	sourceGroup := EffectiveGroup(l, source)
	checked := false
	for _, child := range d.Visible() {
		c := l.Node(child)
		if c == nil || c.IsSplitter() || child == source {
			continue
		}
		checked = true
		if !GroupsCompatible(sourceGroup, EffectiveGroup(l, child)) {
			return false
		}
	}
	if !checked {
		return GroupsCompatible(sourceGroup, EffectiveGroup(l, dock))
	}
	return true
}

// GlobalDockingEnabled reports whether dock and all its ancestors allow
// global docking.
func GlobalDockingEnabled(l *entity.Layout, dock entity.Handle) bool {
	d := l.Node(dock)
	if d == nil {
		return false
	}
	if d.Container != nil && !d.Container.EnableGlobalDocking {
		return false
	}
	for _, a := range l.Ancestors(dock) {
		if a.Container != nil && !a.Container.EnableGlobalDocking {
			return false
		}
	}
	return true
}

// ValidateGlobalDocking is the relaxed check used when no concrete target
// dockable exists. With global docking enabled on the dock chain, ungrouped
// content may dock anywhere and grouped content may dock wherever no
// conflicting group appears on dock or its visible descendants. A dock chain
// with global docking disabled falls back to the strict in-dock check.
func ValidateGlobalDocking(l *entity.Layout, source, dock entity.Handle) bool {
	if l.Node(dock) == nil || l.Node(source) == nil {
		return false
	}
	if !GlobalDockingEnabled(l, dock) {
		return ValidateDockingGroupsInDock(l, source, dock)
	}
	group := EffectiveGroup(l, source)
	if group == "" {
		return true
	}
	return !hasConflictingGroup(l, source, dock, group)
}

// hasConflictingGroup reports whether dock or any visible descendant other
// than source carries an effective group different from group. Ungrouped
// content never conflicts.
func hasConflictingGroup(l *entity.Layout, source, dock entity.Handle, group string) bool {
	conflicts := func(h entity.Handle) bool {
		g := EffectiveGroup(l, h)
		return g != "" && g != group
	}
	if conflicts(dock) {
		return true
	}
	seen := map[entity.Handle]bool{dock: true}
	stack := []entity.Handle{dock}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range l.Node(h).Visible() {
			n := l.Node(c)
			if n == nil || n.IsSplitter() || c == source || seen[c] {
				continue
			}
			seen[c] = true
			if conflicts(c) {
				return true
			}
			stack = append(stack, c)
		}
	}
	return false
}
