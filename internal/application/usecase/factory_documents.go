package usecase

import (
	"math"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/event"
)

// defaultMDIArea is used when neither the dock nor the renderer knows its size.
var defaultMDIArea = entity.Rect{W: 800, H: 600}

// DockAsDocument moves h into the first document dock of its root, restoring
// or unpinning it first.
func (f *Factory) DockAsDocument(h entity.Handle) bool {
	n := f.node(h)
	if n == nil || n.Root != nil || n.IsSplitter() {
		return false
	}
	if !f.isEnabled(h, entity.CapabilityDockAsDocument) {
		f.logger.Debug().Str("dockable", n.ID).Msg("dock as document refused by capability policy")
		return false
	}
	return f.dockInto(h, entity.KindDocumentDock)
}

// DockAsTool moves h into the first tool dock of its root.
func (f *Factory) DockAsTool(h entity.Handle) bool {
	n := f.node(h)
	if n == nil || n.Root != nil || n.IsSplitter() {
		return false
	}
	return f.dockInto(h, entity.KindToolDock)
}

// DockIntoMainRoot moves h out of a floating window into the first dock of
// kind in the main root.
func (f *Factory) DockIntoMainRoot(h entity.Handle, kind entity.Kind) bool {
	n := f.node(h)
	if n == nil {
		return false
	}
	if f.IsDockableHidden(h) {
		f.RestoreDockable(h)
	}
	if f.IsDockablePinned(h) {
		f.UnpinDockable(h)
	}
	target := f.findDock(f.layout.Root, kind)
	if target == nil {
		return false
	}
	return f.moveIntoDock(n, target)
}

func (f *Factory) dockInto(h entity.Handle, kind entity.Kind) bool {
	n := f.node(h)
	if f.IsDockableHidden(h) {
		f.RestoreDockable(h)
	}
	if f.IsDockablePinned(h) {
		f.UnpinDockable(h)
	}

	var target *entity.Node
	if root := f.pinRoot(h); root != nil {
		target = f.findDock(root.Handle, kind)
	}
	if target == nil {
		target = f.findDock(f.layout.Root, kind)
	}
	if target == nil {
		f.logger.Debug().Str("dockable", n.ID).Str("kind", kind.String()).Msg("no dock to move into")
		return false
	}
	return f.moveIntoDock(n, target)
}

func (f *Factory) findDock(root entity.Handle, kind entity.Kind) *entity.Node {
	var preview entity.Handle
	if r := f.node(root); r != nil && r.Root != nil {
		preview = r.Root.PinnedDock
	}
	return f.layout.Find(root, func(c *entity.Node) bool {
		return c.Kind == kind && c.Handle != preview
	})
}

func (f *Factory) moveIntoDock(n, target *entity.Node) bool {
	if n.Owner == target.Handle {
		return false
	}
	anchor := target.Container.ActiveDockable
	if !anchor.IsValid() {
		anchor = f.lastContent(target)
	}
	if n.Owner.IsValid() {
		f.MoveDockableBetween(n.Owner, target.Handle, n.Handle, anchor)
	} else {
		f.InsertDockable(target.Handle, n.Handle, entity.IndexOf(target.Container.VisibleDockables, anchor)+1)
		f.setActive(target, n.Handle)
	}
	f.emit(event.DockableDocked, n.Handle, target.Handle)
	return n.Owner == target.Handle
}

// SetDocumentPresentation switches a document dock between tabs and MDI.
func (f *Factory) SetDocumentPresentation(dock entity.Handle, p entity.DocumentPresentation) {
	d := f.dock(dock)
	if d == nil || d.DocumentDock == nil || d.DocumentDock.Presentation == p {
		return
	}
	d.DocumentDock.Presentation = p
	if p == entity.PresentationMdi {
		f.CascadeDocuments(dock)
		return
	}
	f.layout.Touch()
}

func (f *Factory) mdiDocuments(dock entity.Handle) (*entity.Node, []*entity.Node, entity.Rect) {
	d := f.dock(dock)
	if d == nil || d.DocumentDock == nil {
		return nil, nil, entity.Rect{}
	}
	var docs []*entity.Node
	for _, h := range d.Container.VisibleDockables {
		if c := f.node(h); c != nil && c.MDI != nil {
			docs = append(docs, c)
		}
	}
	area := f.knownBounds(dock)
	if !area.HasSize() {
		area = defaultMDIArea
	}
	return d, docs, area
}

// CascadeDocuments staggers the MDI windows of dock by the cascade offset.
func (f *Factory) CascadeDocuments(dock entity.Handle) {
	d, docs, area := f.mdiDocuments(dock)
	if d == nil || len(docs) == 0 {
		return
	}
	offset := f.opts.CascadeOffset
	span := offset * float64(len(docs)-1)
	w := math.Max(area.W-span, area.W/2)
	h := math.Max(area.H-span, area.H/2)
	for i, doc := range docs {
		step := offset * float64(i)
		doc.MDI.Bounds = entity.Rect{X: area.X + step, Y: area.Y + step, W: w, H: h}
		doc.MDI.State = entity.MDINormal
		doc.MDI.ZIndex = i
	}
	f.layout.Touch()
}

// TileDocumentsHorizontally lays the MDI windows of dock out side by side.
func (f *Factory) TileDocumentsHorizontally(dock entity.Handle) {
	d, docs, area := f.mdiDocuments(dock)
	if d == nil || len(docs) == 0 {
		return
	}
	w := area.W / float64(len(docs))
	for i, doc := range docs {
		doc.MDI.Bounds = entity.Rect{X: area.X + w*float64(i), Y: area.Y, W: w, H: area.H}
		doc.MDI.State = entity.MDINormal
		doc.MDI.ZIndex = i
	}
	f.layout.Touch()
}

// TileDocumentsVertically stacks the MDI windows of dock top to bottom.
func (f *Factory) TileDocumentsVertically(dock entity.Handle) {
	d, docs, area := f.mdiDocuments(dock)
	if d == nil || len(docs) == 0 {
		return
	}
	h := area.H / float64(len(docs))
	for i, doc := range docs {
		doc.MDI.Bounds = entity.Rect{X: area.X, Y: area.Y + h*float64(i), W: area.W, H: h}
		doc.MDI.State = entity.MDINormal
		doc.MDI.ZIndex = i
	}
	f.layout.Touch()
}

// SetMDIState changes the window state of a document. Maximizing one
// document restores any other maximized sibling, and the affected document
// is raised above its siblings.
func (f *Factory) SetMDIState(h entity.Handle, state entity.MDIState) {
	n := f.node(h)
	if n == nil || n.MDI == nil {
		return
	}
	owner := f.dock(n.Owner)
	top := 0
	if owner != nil {
		for _, c := range owner.Container.VisibleDockables {
			cn := f.node(c)
			if cn == nil || cn.MDI == nil || c == h {
				continue
			}
			if state == entity.MDIMaximized && cn.MDI.State == entity.MDIMaximized {
				cn.MDI.State = entity.MDINormal
			}
			top = max(top, cn.MDI.ZIndex+1)
		}
	}
	n.MDI.State = state
	n.MDI.ZIndex = top
	if state != entity.MDIMinimized {
		f.SetActiveDockable(h)
	}
	f.layout.Touch()
}
