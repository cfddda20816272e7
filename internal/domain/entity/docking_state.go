package entity

import "strings"

// DockingWindowState is the composite presentation state of a dockable.
// Exactly one of Docked, Pinned or Document is the location bit;
// Floating and Hidden are orthogonal modifiers.
type DockingWindowState uint8

const (
	StateDocked DockingWindowState = 1 << iota
	StatePinned
	StateDocument
	StateFloating
	StateHidden
)

const locationMask = StateDocked | StatePinned | StateDocument

// Location returns only the location bit.
func (s DockingWindowState) Location() DockingWindowState {
	return s & locationMask
}

// Has reports whether every bit of flag is set.
func (s DockingWindowState) Has(flag DockingWindowState) bool {
	return s&flag == flag
}

func (s DockingWindowState) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	names := []struct {
		flag DockingWindowState
		name string
	}{
		{StateDocked, "docked"},
		{StatePinned, "pinned"},
		{StateDocument, "document"},
		{StateFloating, "floating"},
		{StateHidden, "hidden"},
	}
	for _, n := range names {
		if s.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
