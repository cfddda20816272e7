package entity

import "sort"

// Layout is the arena owning every node and window of a dock tree.
// Back-references between nodes are handles resolved through the arena.
type Layout struct {
	nodes   map[Handle]*Node
	windows map[WindowID]*Window
	next    Handle
	nextWin WindowID

	// Root is the main root dock.
	Root Handle

	revision uint64
}

// NewLayout creates an empty arena.
func NewLayout() *Layout {
	return &Layout{
		nodes:   make(map[Handle]*Node),
		windows: make(map[WindowID]*Window),
	}
}

// NewNode allocates a node of the given kind with default facets.
func (l *Layout) NewNode(kind Kind, id string) *Node {
	l.next++
	n := newNode(l.next, kind, id)
	l.nodes[n.Handle] = n
	return n
}

// NewWindow allocates a dock window.
func (l *Layout) NewWindow(key string) *Window {
	l.nextWin++
	w := &Window{ID: l.nextWin, Key: key}
	l.windows[w.ID] = w
	return w
}

// Node resolves a handle, returning nil when absent.
func (l *Layout) Node(h Handle) *Node {
	if l == nil || !h.IsValid() {
		return nil
	}
	return l.nodes[h]
}

// Window resolves a window id, returning nil when absent.
func (l *Layout) Window(id WindowID) *Window {
	if l == nil || id == NoWindow {
		return nil
	}
	return l.windows[id]
}

// DropWindow forgets a window. Its layout nodes stay in the arena until collected.
func (l *Layout) DropWindow(id WindowID) {
	delete(l.windows, id)
}

// Owner returns the owner node of h.
func (l *Layout) Owner(h Handle) *Node {
	n := l.Node(h)
	if n == nil {
		return nil
	}
	return l.Node(n.Owner)
}

// Len returns the number of nodes in the arena.
func (l *Layout) Len() int {
	return len(l.nodes)
}

// Nodes returns all nodes ordered by handle.
func (l *Layout) Nodes() []*Node {
	out := make([]*Node, 0, len(l.nodes))
	for _, n := range l.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Windows returns all windows ordered by id.
func (l *Layout) Windows() []*Window {
	out := make([]*Window, 0, len(l.windows))
	for _, w := range l.windows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Revision increases on every structural change recorded through Touch.
func (l *Layout) Revision() uint64 {
	return l.revision
}

// Touch records a structural change.
func (l *Layout) Touch() {
	l.revision++
}

// Walk visits h and its visible descendants depth-first. Returning false
// from fn skips the node's children.
func (l *Layout) Walk(h Handle, fn func(*Node) bool) {
	n := l.Node(h)
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Visible() {
		l.Walk(child, fn)
	}
}

// Find returns the first visible descendant of h (h included) matching pred.
func (l *Layout) Find(h Handle, pred func(*Node) bool) *Node {
	var found *Node
	l.Walk(h, func(n *Node) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByID searches every node in the arena for a stable id.
func (l *Layout) FindByID(id string) *Node {
	for _, n := range l.Nodes() {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Ancestors returns the owner chain of h, nearest first.
func (l *Layout) Ancestors(h Handle) []*Node {
	var out []*Node
	seen := map[Handle]bool{h: true}
	for owner := l.Owner(h); owner != nil; owner = l.Owner(owner.Handle) {
		if seen[owner.Handle] {
			break
		}
		seen[owner.Handle] = true
		out = append(out, owner)
	}
	return out
}

// FindRoot walks the owner chain of h (h included) and returns the first
// root dock matching pred.
func (l *Layout) FindRoot(h Handle, pred func(*Node) bool) *Node {
	n := l.Node(h)
	if n == nil {
		return nil
	}
	if n.Root != nil && (pred == nil || pred(n)) {
		return n
	}
	for _, a := range l.Ancestors(h) {
		if a.Root != nil && (pred == nil || pred(a)) {
			return a
		}
	}
	return nil
}

// Children returns every list a dock holds: visible children and, for roots,
// hidden and pinned dockables.
func (l *Layout) Children(h Handle) []Handle {
	n := l.Node(h)
	if n == nil || n.Container == nil {
		return nil
	}
	out := append([]Handle(nil), n.Container.VisibleDockables...)
	if r := n.Root; r != nil {
		out = append(out, r.HiddenDockables...)
		out = append(out, r.LeftPinnedDockables...)
		out = append(out, r.RightPinnedDockables...)
		out = append(out, r.TopPinnedDockables...)
		out = append(out, r.BottomPinnedDockables...)
		if r.PinnedDock.IsValid() {
			out = append(out, r.PinnedDock)
		}
	}
	return out
}

// Reachable returns the set of nodes reachable from the main root, its
// windows' layouts and their hidden and pinned lists.
func (l *Layout) Reachable() map[Handle]bool {
	seen := make(map[Handle]bool)
	var visit func(h Handle)
	visit = func(h Handle) {
		if !h.IsValid() || seen[h] || l.Node(h) == nil {
			return
		}
		seen[h] = true
		for _, c := range l.Children(h) {
			visit(c)
		}
		if r := l.Node(h).Root; r != nil {
			for _, wid := range r.Windows {
				if w := l.Window(wid); w != nil {
					visit(w.Layout)
				}
			}
		}
	}
	visit(l.Root)
	return seen
}

// IsReachable reports whether h is still attached to the tree.
func (l *Layout) IsReachable(h Handle) bool {
	return l.Reachable()[h]
}

// Collect drops every node no longer reachable from the main root and
// returns how many were dropped.
func (l *Layout) Collect() int {
	keep := l.Reachable()
	dropped := 0
	for h := range l.nodes {
		if !keep[h] {
			delete(l.nodes, h)
			dropped++
		}
	}
	return dropped
}

// Replace swaps the contents of l for other's while keeping l's identity.
// The revision keeps increasing so plans decided before the swap go stale.
func (l *Layout) Replace(other *Layout) {
	rev := max(l.revision, other.revision) + 1
	*l = *other
	l.revision = rev
}
