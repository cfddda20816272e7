// Package entity contains the dock tree model: dockables, docks, roots and
// floating windows. These are pure Go types with no infrastructure dependencies.
package entity

import "math"

// Handle identifies a node inside a Layout arena. The zero value means "none".
type Handle uint32

// NoHandle is the absent handle.
const NoHandle Handle = 0

// IsValid reports whether h refers to a node.
func (h Handle) IsValid() bool {
	return h != NoHandle
}

// IDGenerator produces unique string identifiers for synthesized nodes.
type IDGenerator func() string

// Kind is the closed set of node variants.
type Kind int

const (
	KindTool Kind = iota + 1
	KindDocument
	KindDock // generic container, used when floating a group whose owner had no specific kind
	KindToolDock
	KindDocumentDock
	KindProportionalDock
	KindRootDock
	KindSplitter
)

var kindNames = map[Kind]string{
	KindTool:             "tool",
	KindDocument:         "document",
	KindDock:             "dock",
	KindToolDock:         "tool_dock",
	KindDocumentDock:     "document_dock",
	KindProportionalDock: "proportional_dock",
	KindRootDock:         "root_dock",
	KindSplitter:         "splitter",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind resolves a kind from its String form.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// IsDock returns true for every container kind.
func (k Kind) IsDock() bool {
	switch k {
	case KindDock, KindToolDock, KindDocumentDock, KindProportionalDock, KindRootDock:
		return true
	default:
		return false
	}
}

// IsLeaf returns true for content dockables (tools and documents).
func (k Kind) IsLeaf() bool {
	return k == KindTool || k == KindDocument
}

// Alignment is the edge a tool dock is attached to.
type Alignment int

const (
	AlignUnset Alignment = iota
	AlignLeft
	AlignRight
	AlignTop
	AlignBottom
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignTop:
		return "top"
	case AlignBottom:
		return "bottom"
	default:
		return "unset"
	}
}

// Orientation of a proportional dock.
type Orientation int

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

// GripMode controls how a tool dock exposes its drag grip.
type GripMode int

const (
	GripVisible GripMode = iota
	GripAutoHide
	GripHidden
)

// DocumentPresentation selects how a document dock shows its documents.
type DocumentPresentation int

const (
	PresentationTabs DocumentPresentation = iota
	PresentationMdi
)

// TabsLayout is the tab strip placement of a document dock.
type TabsLayout int

const (
	TabsTop TabsLayout = iota
	TabsLeft
	TabsRight
)

// MDIState is the window state of a document shown in MDI presentation.
type MDIState int

const (
	MDINormal MDIState = iota
	MDIMinimized
	MDIMaximized
)

// ContainerFacet is carried by every dock kind.
type ContainerFacet struct {
	// VisibleDockables is ordered; order is tab/strip position.
	VisibleDockables []Handle
	ActiveDockable   Handle
	// IsActive is set on the dock owning the root's focused dockable.
	IsActive             bool
	IsEmpty              bool
	IsCollapsable        bool
	CanCloseLastDockable bool
	OpenedDockablesCount int
	EnableGlobalDocking  bool
	CapabilityPolicy     *CapabilityPolicy
}

// ToolDockFacet is carried by tool docks.
type ToolDockFacet struct {
	Alignment  Alignment `json:"alignment" yaml:"alignment"`
	IsExpanded bool      `json:"is_expanded" yaml:"is_expanded"`
	AutoHide   bool      `json:"auto_hide" yaml:"auto_hide"`
	GripMode   GripMode  `json:"grip_mode" yaml:"grip_mode"`
}

// DocumentDockFacet is carried by document docks.
type DocumentDockFacet struct {
	CanCreateDocument bool
	Presentation      DocumentPresentation
	TabsLayout        TabsLayout
	// Template is an opaque, non-serializable document template.
	Template any
}

// ProportionalFacet is carried by proportional docks.
type ProportionalFacet struct {
	Orientation Orientation
}

// RootFacet is carried by root docks.
type RootFacet struct {
	HiddenDockables       []Handle
	LeftPinnedDockables   []Handle
	RightPinnedDockables  []Handle
	TopPinnedDockables    []Handle
	BottomPinnedDockables []Handle
	// PinnedDock is the synthesized tool dock used to preview a pinned dockable.
	PinnedDock       Handle
	Windows          []WindowID
	Window           WindowID
	FocusedDockable  Handle
	IsFocusableRoot  bool
	CapabilityPolicy *CapabilityPolicy
}

// PinnedList returns a pointer to the pinned list for an alignment.
// AlignUnset maps to the left list.
func (r *RootFacet) PinnedList(a Alignment) *[]Handle {
	switch a {
	case AlignRight:
		return &r.RightPinnedDockables
	case AlignTop:
		return &r.TopPinnedDockables
	case AlignBottom:
		return &r.BottomPinnedDockables
	default:
		return &r.LeftPinnedDockables
	}
}

// PinnedAlignment reports which pinned list holds h.
func (r *RootFacet) PinnedAlignment(h Handle) (Alignment, bool) {
	for _, a := range []Alignment{AlignLeft, AlignRight, AlignTop, AlignBottom} {
		if IndexOf(*r.PinnedList(a), h) >= 0 {
			return a, true
		}
	}
	return AlignUnset, false
}

// IsHidden reports whether h is parked in the hidden list.
func (r *RootFacet) IsHidden(h Handle) bool {
	return IndexOf(r.HiddenDockables, h) >= 0
}

// MDIFacet holds the per-document MDI window geometry.
type MDIFacet struct {
	Bounds Rect     `json:"bounds" yaml:"bounds"`
	State  MDIState `json:"state" yaml:"state"`
	ZIndex int      `json:"z_index" yaml:"z_index"`
}

// Node is a dockable in the layout arena. Facets are non-nil only for the
// kinds that carry them.
type Node struct {
	Handle        Handle
	ID            string
	Title         string
	Kind          Kind
	Owner         Handle
	OriginalOwner Handle

	Caps      Capabilities
	Overrides CapabilityPolicy
	DockGroup string

	IsModified bool
	Bounds     Rect
	Proportion float64

	// Context is opaque runtime content bound to the dockable.
	Context any
	// OnClose may veto a close request by returning false.
	OnClose func(*Node) bool

	Container    *ContainerFacet
	ToolDock     *ToolDockFacet
	DocumentDock *DocumentDockFacet
	Proportional *ProportionalFacet
	Root         *RootFacet
	MDI          *MDIFacet
}

func newNode(h Handle, kind Kind, id string) *Node {
	n := &Node{
		Handle:     h,
		ID:         id,
		Kind:       kind,
		Caps:       DefaultCapabilities(),
		Proportion: math.NaN(),
	}
	if kind.IsDock() {
		n.Container = &ContainerFacet{
			IsCollapsable:        true,
			CanCloseLastDockable: true,
			EnableGlobalDocking:  true,
			IsEmpty:              true,
		}
	}
	switch kind {
	case KindToolDock:
		n.ToolDock = &ToolDockFacet{IsExpanded: true}
	case KindDocumentDock:
		n.DocumentDock = &DocumentDockFacet{CanCreateDocument: true}
	case KindProportionalDock:
		n.Proportional = &ProportionalFacet{}
	case KindRootDock:
		n.Root = &RootFacet{IsFocusableRoot: true}
	case KindDocument:
		n.MDI = &MDIFacet{}
	case KindSplitter:
		n.Caps = Capabilities{}
	}
	return n
}

// IsDock returns true if the node is a container.
func (n *Node) IsDock() bool {
	return n != nil && n.Container != nil
}

// IsSplitter returns true for splitter markers.
func (n *Node) IsSplitter() bool {
	return n != nil && n.Kind == KindSplitter
}

// HasProportion reports whether a proportion has been assigned.
func (n *Node) HasProportion() bool {
	return !math.IsNaN(n.Proportion)
}

// Visible returns the visible children of a dock, nil for leaves.
func (n *Node) Visible() []Handle {
	if n == nil || n.Container == nil {
		return nil
	}
	return n.Container.VisibleDockables
}

// IndexOf returns the position of h in list or -1.
func IndexOf(list []Handle, h Handle) int {
	for i, item := range list {
		if item == h {
			return i
		}
	}
	return -1
}

// InsertAt inserts h at index, clamping out-of-range indexes to the ends.
func InsertAt(list []Handle, index int, h Handle) []Handle {
	if index < 0 {
		index = 0
	}
	if index >= len(list) {
		return append(list, h)
	}
	list = append(list, NoHandle)
	copy(list[index+1:], list[index:])
	list[index] = h
	return list
}

// RemoveAt drops the element at index.
func RemoveAt(list []Handle, index int) []Handle {
	if index < 0 || index >= len(list) {
		return list
	}
	return append(list[:index], list[index+1:]...)
}

// Remove drops the first occurrence of h and reports whether it was found.
func Remove(list []Handle, h Handle) ([]Handle, bool) {
	i := IndexOf(list, h)
	if i < 0 {
		return list, false
	}
	return RemoveAt(list, i), true
}
