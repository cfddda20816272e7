package usecase

import (
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/event"
)

// HideDockable parks h in its root's hidden list, remembering where it came
// from. The emptied owner is not collapsed.
func (f *Factory) HideDockable(h entity.Handle) {
	n := f.node(h)
	if n == nil || n.Root != nil || n.IsSplitter() {
		return
	}
	if f.IsDockablePinned(h) {
		f.UnpinDockable(h)
	}
	root := f.pinRoot(h)
	if root == nil || root.Root.IsHidden(h) {
		return
	}
	owner := f.dock(n.Owner)
	if owner == nil {
		return
	}
	idx := entity.IndexOf(owner.Container.VisibleDockables, h)
	if idx < 0 {
		return
	}

	f.detach(owner, idx)
	f.pruneSplitters(owner)
	n.OriginalOwner = owner.Handle
	n.Owner = root.Handle
	root.Root.HiddenDockables = append(root.Root.HiddenDockables, h)

	if root.Root.FocusedDockable == h {
		f.SetFocusedDockable(root.Handle, entity.NoHandle)
	}

	f.emit(event.DockableHidden, h, root.Handle)
	f.changed(owner.Handle, root.Handle)
	f.logger.Debug().Str("dockable", n.ID).Str("owner", owner.ID).Msg("dockable hidden")
}

// RestoreDockable puts a hidden dockable back into its original owner. If
// that owner is no longer attached the dockable is left detached.
func (f *Factory) RestoreDockable(h entity.Handle) {
	n := f.node(h)
	root := f.pinRoot(h)
	if n == nil || root == nil || !root.Root.IsHidden(h) {
		return
	}
	root.Root.HiddenDockables, _ = entity.Remove(root.Root.HiddenDockables, h)

	target := f.dock(n.OriginalOwner)
	n.OriginalOwner = entity.NoHandle
	n.Owner = entity.NoHandle
	if target == nil || !f.layout.IsReachable(target.Handle) {
		f.logger.Warn().Str("dockable", n.ID).Msg("original owner gone, dockable left detached")
		f.emit(event.DockableRestored, h, entity.NoHandle)
		f.changed(root.Handle)
		return
	}

	if target.Proportional != nil && f.contentCount(target) > 0 {
		splitter := f.NewNode(entity.KindSplitter)
		splitter.Owner = target.Handle
		target.Container.VisibleDockables = append(target.Container.VisibleDockables, splitter.Handle)
	}
	target.Container.VisibleDockables = append(target.Container.VisibleDockables, h)
	if err := f.InitDockable(h, target.Handle); err != nil {
		f.logger.Warn().Err(err).Str("dockable", n.ID).Msg("dockable context unresolved")
	}
	f.setActive(target, h)

	f.emit(event.DockableRestored, h, target.Handle)
	f.changed(target.Handle, root.Handle)
	f.logger.Debug().Str("dockable", n.ID).Str("owner", target.ID).Msg("dockable restored")
}
