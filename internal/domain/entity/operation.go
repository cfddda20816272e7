package entity

// DockOperation is where a dropped dockable lands relative to its target.
type DockOperation int

const (
	OpFill DockOperation = iota
	OpLeft
	OpRight
	OpTop
	OpBottom
	OpWindow
)

func (o DockOperation) String() string {
	switch o {
	case OpFill:
		return "fill"
	case OpLeft:
		return "left"
	case OpRight:
		return "right"
	case OpTop:
		return "top"
	case OpBottom:
		return "bottom"
	case OpWindow:
		return "window"
	default:
		return "unknown"
	}
}

// ParseDockOperation resolves an operation from its String form.
func ParseDockOperation(s string) (DockOperation, bool) {
	for _, o := range []DockOperation{OpFill, OpLeft, OpRight, OpTop, OpBottom, OpWindow} {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

// IsSplit reports whether the operation inserts a new split level.
func (o DockOperation) IsSplit() bool {
	return o == OpLeft || o == OpRight || o == OpTop || o == OpBottom
}

// DragAction is the modifier of a drag gesture.
type DragAction int

const (
	ActionNone DragAction = iota
	ActionCopy
	ActionMove
	ActionLink
)

func (a DragAction) String() string {
	switch a {
	case ActionCopy:
		return "copy"
	case ActionMove:
		return "move"
	case ActionLink:
		return "link"
	default:
		return "none"
	}
}

// ParseDragAction resolves an action from its String form.
func ParseDragAction(s string) (DragAction, bool) {
	for _, a := range []DragAction{ActionNone, ActionCopy, ActionMove, ActionLink} {
		if a.String() == s {
			return a, true
		}
	}
	return 0, false
}

// Point is a screen position.
type Point struct {
	X float64
	Y float64
}
