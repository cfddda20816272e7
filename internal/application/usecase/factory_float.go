package usecase

import (
	"fmt"
	"slices"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/event"
)

// FloatDockable moves h into a new floating window placed at the pointer or,
// failing that, over its last known bounds.
func (f *Factory) FloatDockable(h entity.Handle) error {
	n := f.node(h)
	if n == nil || n.Root != nil {
		return nil
	}
	if f.IsDockablePinned(h) {
		f.UnpinDockable(h)
	}
	owner := f.dock(n.Owner)
	if owner == nil || entity.IndexOf(owner.Container.VisibleDockables, h) < 0 {
		return nil
	}
	if !f.isEnabled(h, entity.CapabilityFloat) {
		f.logger.Debug().Str("dockable", n.ID).Msg("float refused by capability policy")
		return nil
	}
	return f.SplitToWindow(owner.Handle, h, f.FloatingBounds(h, owner.Handle))
}

// FloatingBounds computes where a floating window for h should appear.
// Position prefers the live pointer, size prefers the dockable's rendered
// bounds, then the owner's, then the configured default.
func (f *Factory) FloatingBounds(h, owner entity.Handle) entity.Rect {
	b := f.knownBounds(h)
	if !b.HasSize() {
		b = f.knownBounds(owner)
	}
	if !b.HasSize() {
		b.W = f.opts.FloatDefaultWidth
		b.H = f.opts.FloatDefaultHeight
	}
	if f.bounds != nil {
		if x, y, ok := f.bounds.PointerScreenPosition(); ok {
			b.X, b.Y = x, y
		}
	}
	return b
}

func (f *Factory) knownBounds(h entity.Handle) entity.Rect {
	if f.bounds != nil {
		if b, ok := f.bounds.VisibleBounds(h); ok && b.HasSize() {
			return b
		}
	}
	if n := f.node(h); n != nil {
		return n.Bounds
	}
	return entity.Rect{}
}

// SplitToWindow detaches h from dock and hosts it in a new floating window
// owned by dock's root.
func (f *Factory) SplitToWindow(dock, h entity.Handle, bounds entity.Rect) error {
	d := f.dock(dock)
	n := f.node(h)
	if d == nil || n == nil {
		return nil
	}
	root := f.FindRoot(dock)
	if root == nil {
		return nil
	}
	key := f.idGen()
	host, err := f.GetHostWindow(key)
	if err != nil {
		return fmt.Errorf("split to window: %w", err)
	}

	f.RemoveDockable(h, false)
	win := f.CreateWindowFrom(h, d)
	if win == nil {
		return nil
	}
	win.Key = key
	win.Bounds = bounds
	f.AddWindow(root.Handle, win.ID, host)

	f.CollapseDock(dock)
	f.present(win)
	f.SetFocusedDockable(win.Layout, h)

	f.logger.Debug().Str("dockable", n.ID).Str("window", key).Msg("dockable floated")
	return nil
}

// FloatAllDockables floats h together with every sibling, preserving the
// owner's kind and settings on the cloned container.
func (f *Factory) FloatAllDockables(h entity.Handle) error {
	n := f.node(h)
	if n == nil {
		return nil
	}
	if f.IsDockablePinned(h) {
		f.UnpinDockable(h)
	}
	owner := f.dock(n.Owner)
	if owner == nil || owner.Root != nil || owner.Proportional != nil {
		return nil
	}
	if !f.isEnabled(h, entity.CapabilityFloat) {
		return nil
	}
	root := f.FindRoot(owner.Handle)
	if root == nil {
		return nil
	}
	key := f.idGen()
	host, err := f.GetHostWindow(key)
	if err != nil {
		return fmt.Errorf("float all: %w", err)
	}

	bounds := f.FloatingBounds(h, owner.Handle)
	container := f.cloneContainer(owner)
	var moved []entity.Handle
	for _, c := range append([]entity.Handle(nil), owner.Container.VisibleDockables...) {
		if cn := f.node(c); cn != nil && !cn.IsSplitter() {
			moved = append(moved, c)
		}
	}
	for _, c := range moved {
		f.RemoveDockable(c, false)
		container.Container.VisibleDockables = append(container.Container.VisibleDockables, c)
	}
	container.Container.ActiveDockable = h

	win := f.wrapInWindow(container, n.Title, n.Kind == entity.KindTool)
	win.Key = key
	win.Bounds = bounds
	f.AddWindow(root.Handle, win.ID, host)

	f.CollapseDock(owner.Handle)
	f.present(win)
	f.SetFocusedDockable(win.Layout, h)
	return nil
}

func (f *Factory) cloneContainer(src *entity.Node) *entity.Node {
	kind := entity.KindDock
	switch src.Kind {
	case entity.KindToolDock, entity.KindDocumentDock:
		kind = src.Kind
	}
	c := f.NewNode(kind)
	c.Title = src.Title
	c.DockGroup = src.DockGroup
	c.Container.CanCloseLastDockable = src.Container.CanCloseLastDockable
	c.Container.EnableGlobalDocking = src.Container.EnableGlobalDocking
	if src.ToolDock != nil {
		c.ToolDock.Alignment = src.ToolDock.Alignment
		c.ToolDock.AutoHide = src.ToolDock.AutoHide
		c.ToolDock.GripMode = src.ToolDock.GripMode
	}
	if src.DocumentDock != nil {
		*c.DocumentDock = *src.DocumentDock
	}
	return c
}

// CreateWindowFrom builds a floating root around h. Leaves are wrapped in a
// container matching their kind; docks are hosted directly. from is the dock
// h was taken from and supplies settings for the wrapper.
func (f *Factory) CreateWindowFrom(h entity.Handle, from *entity.Node) *entity.Window {
	n := f.node(h)
	if n == nil || n.Root != nil || n.IsSplitter() {
		return nil
	}
	target := n
	switch n.Kind {
	case entity.KindTool:
		target = f.NewNode(entity.KindToolDock)
		if from != nil && from.ToolDock != nil {
			target.ToolDock.Alignment = from.ToolDock.Alignment
		}
	case entity.KindDocument:
		target = f.NewNode(entity.KindDocumentDock)
		if from != nil && from.DocumentDock != nil {
			*target.DocumentDock = *from.DocumentDock
		}
	}
	if target != n {
		target.Title = n.Title
		target.DockGroup = n.DockGroup
		target.Container.VisibleDockables = []entity.Handle{h}
		target.Container.ActiveDockable = h
	}
	return f.wrapInWindow(target, n.Title, n.Kind == entity.KindTool)
}

func (f *Factory) wrapInWindow(content *entity.Node, title string, topmost bool) *entity.Window {
	root := f.NewNode(entity.KindRootDock)
	root.Title = title
	root.Container.VisibleDockables = []entity.Handle{content.Handle}
	root.Container.ActiveDockable = content.Handle

	win := f.layout.NewWindow(f.idGen())
	win.Title = title
	win.Layout = root.Handle
	win.Topmost = topmost
	root.Root.Window = win.ID

	if err := f.InitDockable(root.Handle, entity.NoHandle); err != nil {
		f.logger.Warn().Err(err).Msg("floating content context unresolved")
	}
	return win
}

// AddWindow attaches a floating window to owner root and binds its host.
func (f *Factory) AddWindow(owner entity.Handle, id entity.WindowID, host port.HostWindow) {
	r := f.dock(owner)
	win := f.layout.Window(id)
	if r == nil || r.Root == nil || win == nil {
		return
	}
	if !slices.Contains(r.Root.Windows, id) {
		r.Root.Windows = append(r.Root.Windows, id)
	}
	win.Owner = owner
	if lr := f.dock(win.Layout); lr != nil && lr.Root != nil {
		lr.Root.Window = id
	}
	if host != nil {
		f.hosts[id] = host
		host.SetTitle(win.Title)
		if win.Bounds.HasSize() {
			host.SetBounds(win.Bounds)
		}
	}
	f.bus.Publish(event.Event{Kind: event.WindowAdded, Dock: owner, Window: id})
	f.layout.Touch()
}

// InitDockWindow binds a persisted window to owner, resolves its host and
// initializes its layout.
func (f *Factory) InitDockWindow(id entity.WindowID, owner entity.Handle) error {
	win := f.layout.Window(id)
	if win == nil {
		return nil
	}
	win.Owner = owner
	if lr := f.dock(win.Layout); lr != nil && lr.Root != nil {
		lr.Root.Window = id
	}
	err := f.InitDockable(win.Layout, entity.NoHandle)
	if _, bound := f.hosts[id]; !bound {
		host, hostErr := f.GetHostWindow(win.Key)
		if hostErr != nil {
			return fmt.Errorf("init window %s: %w", win.Key, hostErr)
		}
		f.hosts[id] = host
		host.SetTitle(win.Title)
		if win.Bounds.HasSize() {
			host.SetBounds(win.Bounds)
		}
	}
	return err
}

// PresentWindows shows every bound host of the main root.
func (f *Factory) PresentWindows() {
	root := f.dock(f.layout.Root)
	if root == nil || root.Root == nil {
		return
	}
	for _, id := range root.Root.Windows {
		if win := f.layout.Window(id); win != nil {
			f.present(win)
		}
	}
}

func (f *Factory) present(win *entity.Window) {
	host, ok := f.hosts[win.ID]
	if !ok {
		return
	}
	host.Present(false)
	f.bus.Publish(event.Event{Kind: event.WindowOpened, Dock: win.Layout, Window: win.ID})
}

// RemoveWindow detaches a floating window from its owner root and closes its host.
func (f *Factory) RemoveWindow(id entity.WindowID) {
	win := f.layout.Window(id)
	if win == nil {
		return
	}
	if owner := f.dock(win.Owner); owner != nil && owner.Root != nil {
		list := owner.Root.Windows
		if i := slices.Index(list, id); i >= 0 {
			owner.Root.Windows = slices.Delete(list, i, i+1)
		}
	}
	if lr := f.dock(win.Layout); lr != nil && lr.Root != nil {
		lr.Root.Window = entity.NoWindow
	}
	if host, ok := f.hosts[id]; ok {
		delete(f.hosts, id)
		host.Exit()
	}
	f.layout.DropWindow(id)
	f.bus.Publish(event.Event{Kind: event.WindowRemoved, Dock: win.Owner, Window: id})
	f.bus.Publish(event.Event{Kind: event.WindowClosed, Dock: win.Layout, Window: id})
	f.layout.Touch()
	f.logger.Debug().Str("window", win.Key).Msg("window removed")
}

// ReplaceLayout swaps the live tree for l, destroying the hosts of the old
// floating windows, then initializes the new tree.
func (f *Factory) ReplaceLayout(l *entity.Layout) error {
	for id, host := range f.hosts {
		host.Destroy()
		delete(f.hosts, id)
	}
	f.layout.Replace(l)
	return f.InitLayout()
}
