package entity

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// LayoutStateVersion is the current schema version for serialized layouts.
// Increment when making breaking changes to the serialization format.
const LayoutStateVersion = 1

// ErrInvalidLayoutState is returned when a snapshot cannot be turned back into a layout.
var ErrInvalidLayoutState = errors.New("invalid layout state")

// LayoutState is a complete, serializable snapshot of a layout arena.
// Runtime content (Context, templates) is captured separately by DockState.
type LayoutState struct {
	Version int           `json:"version" yaml:"version"`
	Root    *NodeSnapshot `json:"root" yaml:"root"`
	SavedAt time.Time     `json:"saved_at" yaml:"saved_at"`
}

// NodeSnapshot captures a node and its visible subtree.
type NodeSnapshot struct {
	ID              string            `json:"id" yaml:"id"`
	Kind            string            `json:"kind" yaml:"kind"`
	Title           string            `json:"title,omitempty" yaml:"title,omitempty"`
	DockGroup       string            `json:"dock_group,omitempty" yaml:"dock_group,omitempty"`
	OriginalOwnerID string            `json:"original_owner_id,omitempty" yaml:"original_owner_id,omitempty"`
	Caps            Capabilities      `json:"caps" yaml:"caps"`
	Overrides       *CapabilityPolicy `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	IsModified      bool              `json:"is_modified,omitempty" yaml:"is_modified,omitempty"`
	Bounds          Rect              `json:"bounds" yaml:"bounds"`
	Proportion      *float64          `json:"proportion,omitempty" yaml:"proportion,omitempty"`

	Children    []*NodeSnapshot       `json:"children,omitempty" yaml:"children,omitempty"`
	ActiveIndex int                   `json:"active_index" yaml:"active_index"`
	Container   *ContainerSnapshot    `json:"container,omitempty" yaml:"container,omitempty"`
	ToolDock    *ToolDockFacet        `json:"tool_dock,omitempty" yaml:"tool_dock,omitempty"`
	Document    *DocumentDockSnapshot `json:"document_dock,omitempty" yaml:"document_dock,omitempty"`
	Orientation *Orientation          `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	MDI         *MDIFacet             `json:"mdi,omitempty" yaml:"mdi,omitempty"`
	Root        *RootSnapshot         `json:"root,omitempty" yaml:"root,omitempty"`
}

// ContainerSnapshot captures the persisted container settings.
type ContainerSnapshot struct {
	IsCollapsable        bool              `json:"is_collapsable" yaml:"is_collapsable"`
	CanCloseLastDockable bool              `json:"can_close_last_dockable" yaml:"can_close_last_dockable"`
	EnableGlobalDocking  bool              `json:"enable_global_docking" yaml:"enable_global_docking"`
	Policy               *CapabilityPolicy `json:"policy,omitempty" yaml:"policy,omitempty"`
}

// DocumentDockSnapshot captures the serializable part of a document dock.
type DocumentDockSnapshot struct {
	CanCreateDocument bool                 `json:"can_create_document" yaml:"can_create_document"`
	Presentation      DocumentPresentation `json:"presentation" yaml:"presentation"`
	TabsLayout        TabsLayout           `json:"tabs_layout" yaml:"tabs_layout"`
}

// RootSnapshot captures root-only lists and floating windows.
type RootSnapshot struct {
	Hidden          []*NodeSnapshot   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	LeftPinned      []*NodeSnapshot   `json:"left_pinned,omitempty" yaml:"left_pinned,omitempty"`
	RightPinned     []*NodeSnapshot   `json:"right_pinned,omitempty" yaml:"right_pinned,omitempty"`
	TopPinned       []*NodeSnapshot   `json:"top_pinned,omitempty" yaml:"top_pinned,omitempty"`
	BottomPinned    []*NodeSnapshot   `json:"bottom_pinned,omitempty" yaml:"bottom_pinned,omitempty"`
	FocusedID       string            `json:"focused_id,omitempty" yaml:"focused_id,omitempty"`
	IsFocusableRoot bool              `json:"is_focusable_root" yaml:"is_focusable_root"`
	Policy          *CapabilityPolicy `json:"policy,omitempty" yaml:"policy,omitempty"`
	Windows         []*WindowSnapshot `json:"windows,omitempty" yaml:"windows,omitempty"`
}

// WindowSnapshot captures a floating window and its root layout.
type WindowSnapshot struct {
	Key     string        `json:"key" yaml:"key"`
	Title   string        `json:"title,omitempty" yaml:"title,omitempty"`
	Bounds  Rect          `json:"bounds" yaml:"bounds"`
	Topmost bool          `json:"topmost,omitempty" yaml:"topmost,omitempty"`
	Layout  *NodeSnapshot `json:"layout" yaml:"layout"`
}

// SnapshotLayout creates a LayoutState from a live layout.
func SnapshotLayout(l *Layout) *LayoutState {
	state := &LayoutState{
		Version: LayoutStateVersion,
		SavedAt: time.Now(),
	}
	if l == nil {
		return state
	}
	state.Root = snapshotNode(l, l.Root)
	return state
}

func snapshotNode(l *Layout, h Handle) *NodeSnapshot {
	n := l.Node(h)
	if n == nil {
		return nil
	}

	snap := &NodeSnapshot{
		ID:          n.ID,
		Kind:        n.Kind.String(),
		Title:       n.Title,
		DockGroup:   n.DockGroup,
		Caps:        n.Caps,
		IsModified:  n.IsModified,
		Bounds:      n.Bounds,
		ActiveIndex: -1,
	}
	if !n.Overrides.IsEmpty() {
		overrides := n.Overrides
		snap.Overrides = &overrides
	}
	if n.HasProportion() {
		p := n.Proportion
		snap.Proportion = &p
	}
	if owner := l.Node(n.OriginalOwner); owner != nil {
		snap.OriginalOwnerID = owner.ID
	}

	if c := n.Container; c != nil {
		snap.Container = &ContainerSnapshot{
			IsCollapsable:        c.IsCollapsable,
			CanCloseLastDockable: c.CanCloseLastDockable,
			EnableGlobalDocking:  c.EnableGlobalDocking,
			Policy:               c.CapabilityPolicy,
		}
		snap.ActiveIndex = IndexOf(c.VisibleDockables, c.ActiveDockable)
		if len(c.VisibleDockables) > 0 {
			snap.Children = snapshotList(l, c.VisibleDockables)
		}
	}
	if n.ToolDock != nil {
		td := *n.ToolDock
		snap.ToolDock = &td
	}
	if d := n.DocumentDock; d != nil {
		snap.Document = &DocumentDockSnapshot{
			CanCreateDocument: d.CanCreateDocument,
			Presentation:      d.Presentation,
			TabsLayout:        d.TabsLayout,
		}
	}
	if n.Proportional != nil {
		o := n.Proportional.Orientation
		snap.Orientation = &o
	}
	if n.MDI != nil {
		mdi := *n.MDI
		snap.MDI = &mdi
	}
	if r := n.Root; r != nil {
		rs := &RootSnapshot{
			Hidden:          snapshotList(l, r.HiddenDockables),
			LeftPinned:      snapshotList(l, r.LeftPinnedDockables),
			RightPinned:     snapshotList(l, r.RightPinnedDockables),
			TopPinned:       snapshotList(l, r.TopPinnedDockables),
			BottomPinned:    snapshotList(l, r.BottomPinnedDockables),
			IsFocusableRoot: r.IsFocusableRoot,
			Policy:          r.CapabilityPolicy,
		}
		if focused := l.Node(r.FocusedDockable); focused != nil {
			rs.FocusedID = focused.ID
		}
		for _, wid := range r.Windows {
			w := l.Window(wid)
			if w == nil {
				continue
			}
			rs.Windows = append(rs.Windows, &WindowSnapshot{
				Key:     w.Key,
				Title:   w.Title,
				Bounds:  w.Bounds,
				Topmost: w.Topmost,
				Layout:  snapshotNode(l, w.Layout),
			})
		}
		snap.Root = rs
	}

	return snap
}

func snapshotList(l *Layout, list []Handle) []*NodeSnapshot {
	if len(list) == 0 {
		return nil
	}
	out := make([]*NodeSnapshot, 0, len(list))
	for _, h := range list {
		if s := snapshotNode(l, h); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// LayoutFromSnapshot rebuilds a layout arena from a snapshot.
// Owners are bound; derived flags are left for the factory to recompute.
// This is the inverse of SnapshotLayout.
func LayoutFromSnapshot(state *LayoutState) (*Layout, error) {
	if state == nil || state.Root == nil {
		return nil, fmt.Errorf("%w: missing root", ErrInvalidLayoutState)
	}
	if state.Version > LayoutStateVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidLayoutState, state.Version)
	}

	b := &layoutBuilder{
		layout:  NewLayout(),
		pending: make(map[Handle]string),
	}
	root, err := b.build(state.Root, NoHandle)
	if err != nil {
		return nil, err
	}
	if root.Root == nil {
		return nil, fmt.Errorf("%w: root node is %s", ErrInvalidLayoutState, root.Kind)
	}
	b.layout.Root = root.Handle
	b.resolveOriginalOwners()
	return b.layout, nil
}

type layoutBuilder struct {
	layout *Layout
	// pending maps a node to the id of its original owner, resolved after the build.
	pending map[Handle]string
	focus   []struct {
		root Handle
		id   string
	}
}

func (b *layoutBuilder) build(snap *NodeSnapshot, owner Handle) (*Node, error) {
	kind, ok := ParseKind(snap.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q for %q", ErrInvalidLayoutState, snap.Kind, snap.ID)
	}

	n := b.layout.NewNode(kind, snap.ID)
	n.Owner = owner
	n.Title = snap.Title
	n.DockGroup = snap.DockGroup
	n.Caps = snap.Caps
	n.IsModified = snap.IsModified
	n.Bounds = snap.Bounds
	n.Proportion = math.NaN()
	if snap.Proportion != nil {
		n.Proportion = *snap.Proportion
	}
	if snap.Overrides != nil {
		n.Overrides = *snap.Overrides
	}
	if snap.OriginalOwnerID != "" {
		b.pending[n.Handle] = snap.OriginalOwnerID
	}

	if c := n.Container; c != nil {
		if cs := snap.Container; cs != nil {
			c.IsCollapsable = cs.IsCollapsable
			c.CanCloseLastDockable = cs.CanCloseLastDockable
			c.EnableGlobalDocking = cs.EnableGlobalDocking
			c.CapabilityPolicy = cs.Policy
		}
		children, err := b.buildList(snap.Children, n.Handle)
		if err != nil {
			return nil, err
		}
		c.VisibleDockables = children
		if snap.ActiveIndex >= 0 && snap.ActiveIndex < len(children) {
			if active := b.layout.Node(children[snap.ActiveIndex]); !active.IsSplitter() {
				c.ActiveDockable = active.Handle
			}
		}
	}
	if n.ToolDock != nil && snap.ToolDock != nil {
		*n.ToolDock = *snap.ToolDock
	}
	if n.DocumentDock != nil && snap.Document != nil {
		n.DocumentDock.CanCreateDocument = snap.Document.CanCreateDocument
		n.DocumentDock.Presentation = snap.Document.Presentation
		n.DocumentDock.TabsLayout = snap.Document.TabsLayout
	}
	if n.Proportional != nil && snap.Orientation != nil {
		n.Proportional.Orientation = *snap.Orientation
	}
	if n.MDI != nil && snap.MDI != nil {
		*n.MDI = *snap.MDI
	}
	if r := n.Root; r != nil && snap.Root != nil {
		if err := b.buildRoot(n, snap.Root); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (b *layoutBuilder) buildList(snaps []*NodeSnapshot, owner Handle) ([]Handle, error) {
	if len(snaps) == 0 {
		return nil, nil
	}
	out := make([]Handle, 0, len(snaps))
	for _, s := range snaps {
		if s == nil {
			continue
		}
		child, err := b.build(s, owner)
		if err != nil {
			return nil, err
		}
		out = append(out, child.Handle)
	}
	return out, nil
}

func (b *layoutBuilder) buildRoot(n *Node, rs *RootSnapshot) error {
	r := n.Root
	r.IsFocusableRoot = rs.IsFocusableRoot
	r.CapabilityPolicy = rs.Policy

	lists := []struct {
		dst *[]Handle
		src []*NodeSnapshot
	}{
		{&r.HiddenDockables, rs.Hidden},
		{&r.LeftPinnedDockables, rs.LeftPinned},
		{&r.RightPinnedDockables, rs.RightPinned},
		{&r.TopPinnedDockables, rs.TopPinned},
		{&r.BottomPinnedDockables, rs.BottomPinned},
	}
	for _, list := range lists {
		handles, err := b.buildList(list.src, n.Handle)
		if err != nil {
			return err
		}
		*list.dst = handles
	}

	for _, ws := range rs.Windows {
		if ws == nil || ws.Layout == nil {
			continue
		}
		layoutRoot, err := b.build(ws.Layout, NoHandle)
		if err != nil {
			return err
		}
		if layoutRoot.Root == nil {
			return fmt.Errorf("%w: window %q layout is %s", ErrInvalidLayoutState, ws.Key, layoutRoot.Kind)
		}
		w := b.layout.NewWindow(ws.Key)
		w.Title = ws.Title
		w.Bounds = ws.Bounds
		w.Topmost = ws.Topmost
		w.Layout = layoutRoot.Handle
		w.Owner = n.Handle
		layoutRoot.Root.Window = w.ID
		r.Windows = append(r.Windows, w.ID)
	}

	if rs.FocusedID != "" {
		b.focus = append(b.focus, struct {
			root Handle
			id   string
		}{n.Handle, rs.FocusedID})
	}
	return nil
}

func (b *layoutBuilder) resolveOriginalOwners() {
	for h, ownerID := range b.pending {
		if owner := b.layout.FindByID(ownerID); owner != nil {
			b.layout.Node(h).OriginalOwner = owner.Handle
		}
	}
	for _, f := range b.focus {
		if focused := b.layout.FindByID(f.id); focused != nil {
			b.layout.Node(f.root).Root.FocusedDockable = focused.Handle
		}
	}
}

// CountDockables returns the number of tools and documents in the snapshot,
// including hidden, pinned and floating ones.
func (s *LayoutState) CountDockables() int {
	if s == nil {
		return 0
	}
	return countDockables(s.Root)
}

func countDockables(snap *NodeSnapshot) int {
	if snap == nil {
		return 0
	}
	count := 0
	if k, ok := ParseKind(snap.Kind); ok && k.IsLeaf() {
		count++
	}
	for _, c := range snap.Children {
		count += countDockables(c)
	}
	if rs := snap.Root; rs != nil {
		for _, list := range [][]*NodeSnapshot{rs.Hidden, rs.LeftPinned, rs.RightPinned, rs.TopPinned, rs.BottomPinned} {
			for _, c := range list {
				count += countDockables(c)
			}
		}
		for _, w := range rs.Windows {
			if w != nil {
				count += countDockables(w.Layout)
			}
		}
	}
	return count
}
