// Package policy resolves dockable capabilities and dock group compatibility.
// Everything here is a pure function of the layout.
package policy

import (
	"fmt"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// Source names the layer that decided an effective capability value.
type Source int

const (
	SourceDockable Source = iota
	SourceRootPolicy
	SourceDockPolicy
	SourceDockableOverride
)

func (s Source) String() string {
	switch s {
	case SourceRootPolicy:
		return "root_policy"
	case SourceDockPolicy:
		return "dock_policy"
	case SourceDockableOverride:
		return "dockable_override"
	default:
		return "dockable"
	}
}

// Evaluation is the full trace of a capability resolution.
type Evaluation struct {
	Capability      entity.Capability
	BaseValue       bool
	RootPolicyValue *bool
	DockPolicyValue *bool
	OverrideValue   *bool
	EffectiveValue  bool
	Source          Source
	Diagnostic      string
}

// Evaluate resolves capability for the dockable h. Precedence, lowest first:
// the raw flag, the root policy, the local dock policy, the dockable's own
// override. The last present value wins. dockContext selects the local dock;
// when it is NoHandle the dockable's owner is used.
func Evaluate(l *entity.Layout, h entity.Handle, capability entity.Capability, dockContext entity.Handle) Evaluation {
	ev := Evaluation{Capability: capability, Source: SourceDockable}

	n := l.Node(h)
	if n == nil {
		ev.Diagnostic = "dockable not found"
		return ev
	}

	ev.BaseValue = n.Caps.Get(capability)
	ev.EffectiveValue = ev.BaseValue

	if root := resolveRoot(l, h); root != nil {
		if v, ok := root.Root.CapabilityPolicy.Value(capability); ok {
			ev.RootPolicyValue = boolPtr(v)
			ev.EffectiveValue = v
			ev.Source = SourceRootPolicy
		}
	}

	local := l.Node(dockContext)
	if local == nil {
		local = l.Node(n.Owner)
	}
	if local != nil && local.Container != nil {
		if v, ok := local.Container.CapabilityPolicy.Value(capability); ok {
			ev.DockPolicyValue = boolPtr(v)
			ev.EffectiveValue = v
			ev.Source = SourceDockPolicy
		}
	}

	if v, ok := n.Overrides.Value(capability); ok {
		ev.OverrideValue = boolPtr(v)
		ev.EffectiveValue = v
		ev.Source = SourceDockableOverride
	}

	ev.Diagnostic = fmt.Sprintf("%s=%t from %s (base %t)", capability, ev.EffectiveValue, ev.Source, ev.BaseValue)
	return ev
}

// IsEnabled returns only the effective value of Evaluate.
func IsEnabled(l *entity.Layout, h entity.Handle, capability entity.Capability, dockContext entity.Handle) bool {
	return Evaluate(l, h, capability, dockContext).EffectiveValue
}

// resolveRoot prefers the focusable root and falls back to any root on the owner chain.
func resolveRoot(l *entity.Layout, h entity.Handle) *entity.Node {
	if root := l.FindRoot(h, func(n *entity.Node) bool { return n.Root.IsFocusableRoot }); root != nil {
		return root
	}
	return l.FindRoot(h, nil)
}

func boolPtr(v bool) *bool {
	return &v
}
