package entity

// WindowID identifies a dock window inside a Layout arena.
type WindowID uint32

// NoWindow is the absent window.
const NoWindow WindowID = 0

// Window hosts one root dock as its layout.
type Window struct {
	ID     WindowID
	Key    string
	Title  string
	Layout Handle
	// Owner is the root that spawned the window; NoHandle for the main window.
	Owner   Handle
	Bounds  Rect
	Topmost bool
}

// IsFloating reports whether the window was spawned by another root.
func (w *Window) IsFloating() bool {
	return w != nil && w.Owner.IsValid()
}
