package usecase

import (
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/event"
)

// PinDockable moves a tool into its root's pinned list for the tool dock's
// alignment. Pinning an already pinned dockable unpins it.
func (f *Factory) PinDockable(h entity.Handle) {
	n := f.node(h)
	if n == nil {
		return
	}
	root := f.pinRoot(h)
	if root == nil {
		return
	}
	if _, pinned := root.Root.PinnedAlignment(h); pinned {
		f.UnpinDockable(h)
		return
	}

	owner := f.dock(n.Owner)
	if owner == nil || owner.ToolDock == nil {
		return
	}
	if !f.isEnabled(h, entity.CapabilityPin) {
		f.logger.Debug().Str("dockable", n.ID).Msg("pin refused by capability policy")
		return
	}
	idx := entity.IndexOf(owner.Container.VisibleDockables, h)
	if idx < 0 {
		return
	}

	alignment := owner.ToolDock.Alignment
	if orig := f.dock(n.OriginalOwner); orig != nil && orig.ToolDock != nil {
		alignment = orig.ToolDock.Alignment
	}

	f.HidePreviewingDockables(root.Handle)
	f.detach(owner, idx)

	list := root.Root.PinnedList(alignment)
	*list = append(*list, h)
	n.OriginalOwner = owner.Handle
	n.Owner = root.Handle

	owner.ToolDock.IsExpanded = false
	owner.ToolDock.AutoHide = true

	f.emit(event.DockablePinned, h, root.Handle)
	f.changed(owner.Handle, root.Handle)
	f.logger.Debug().Str("dockable", n.ID).Str("alignment", alignment.String()).Msg("dockable pinned")
}

// UnpinDockable returns a pinned dockable to the tool dock it was pinned from.
// When that dock is gone the first tool dock of the root takes it.
func (f *Factory) UnpinDockable(h entity.Handle) {
	n := f.node(h)
	root := f.pinRoot(h)
	if n == nil || root == nil {
		return
	}
	alignment, pinned := root.Root.PinnedAlignment(h)
	if !pinned {
		return
	}
	if n.Owner == root.Root.PinnedDock {
		f.HidePreviewingDockables(root.Handle)
	}

	target := f.dock(n.OriginalOwner)
	if target == nil || !f.layout.IsReachable(target.Handle) {
		target = f.layout.Find(root.Handle, func(c *entity.Node) bool {
			return c.Kind == entity.KindToolDock && c.Handle != root.Root.PinnedDock
		})
	}
	if target == nil {
		f.logger.Warn().Str("dockable", n.ID).Msg("no tool dock left to unpin into")
		return
	}

	list := root.Root.PinnedList(alignment)
	*list, _ = entity.Remove(*list, h)
	n.OriginalOwner = entity.NoHandle

	target.Container.VisibleDockables = append(target.Container.VisibleDockables, h)
	if err := f.InitDockable(h, target.Handle); err != nil {
		f.logger.Warn().Err(err).Str("dockable", n.ID).Msg("dockable context unresolved")
	}
	if target.ToolDock != nil {
		target.ToolDock.IsExpanded = true
		target.ToolDock.AutoHide = f.hasPinnedFrom(root, target.Handle)
	}
	f.setActive(target, h)

	f.emit(event.DockableUnpinned, h, target.Handle)
	f.changed(target.Handle, root.Handle)
	f.logger.Debug().Str("dockable", n.ID).Str("dock", target.ID).Msg("dockable unpinned")
}

func (f *Factory) hasPinnedFrom(root *entity.Node, dock entity.Handle) bool {
	for _, a := range []entity.Alignment{entity.AlignLeft, entity.AlignRight, entity.AlignTop, entity.AlignBottom} {
		for _, h := range *root.Root.PinnedList(a) {
			if n := f.node(h); n != nil && n.OriginalOwner == dock {
				return true
			}
		}
	}
	return false
}

// PreviewPinnedDockable shows a pinned dockable in the root's synthesized
// preview tool dock. It stays in its pinned list while previewed.
func (f *Factory) PreviewPinnedDockable(h entity.Handle) {
	n := f.node(h)
	root := f.pinRoot(h)
	if n == nil || root == nil {
		return
	}
	alignment, pinned := root.Root.PinnedAlignment(h)
	if !pinned {
		return
	}
	f.HidePreviewingDockables(root.Handle)

	preview := f.dock(root.Root.PinnedDock)
	if preview == nil {
		preview = f.NewNode(entity.KindToolDock)
		preview.Title = "pinned"
		preview.Container.IsCollapsable = false
		preview.Owner = root.Handle
		root.Root.PinnedDock = preview.Handle
	}
	preview.ToolDock.Alignment = alignment
	preview.ToolDock.IsExpanded = true
	preview.ToolDock.AutoHide = true
	preview.Container.VisibleDockables = []entity.Handle{h}
	preview.Container.ActiveDockable = h
	n.Owner = preview.Handle

	f.changed(preview.Handle)
}

// HidePreviewingDockables ends any preview on root. Previewed dockables go
// back to being owned by the root's pinned lists.
func (f *Factory) HidePreviewingDockables(root entity.Handle) {
	r := f.dock(root)
	if r == nil || r.Root == nil {
		return
	}
	preview := f.dock(r.Root.PinnedDock)
	if preview == nil || len(preview.Container.VisibleDockables) == 0 {
		return
	}
	for _, h := range preview.Container.VisibleDockables {
		if n := f.node(h); n != nil && n.Owner == preview.Handle {
			n.Owner = r.Handle
		}
	}
	preview.Container.VisibleDockables = nil
	preview.Container.ActiveDockable = entity.NoHandle
	f.changed(preview.Handle)
}
