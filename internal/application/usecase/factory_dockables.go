package usecase

import (
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/event"
)

// AddDockable appends h to dock's visible list and binds its owner.
func (f *Factory) AddDockable(dock, h entity.Handle) {
	d := f.dock(dock)
	if d == nil || f.node(h) == nil {
		return
	}
	f.InsertDockable(dock, h, len(d.Container.VisibleDockables))
}

// InsertDockable inserts h into dock at index, clamped to the list bounds.
func (f *Factory) InsertDockable(dock, h entity.Handle, index int) {
	d := f.dock(dock)
	n := f.node(h)
	if d == nil || n == nil || entity.IndexOf(d.Container.VisibleDockables, h) >= 0 {
		return
	}
	d.Container.VisibleDockables = entity.InsertAt(d.Container.VisibleDockables, index, h)
	if err := f.InitDockable(h, dock); err != nil {
		f.logger.Warn().Err(err).Str("dockable", n.ID).Msg("dockable context unresolved")
	}
	if !d.Container.ActiveDockable.IsValid() && !n.IsSplitter() {
		f.setActive(d, h)
	}
	f.emit(event.DockableAdded, h, dock)
	f.changed(dock)
}

// RemoveDockable detaches h from its owner. Active selection moves to the
// nearest preceding content child, dangling splitters are pruned and, when
// collapse is set, an emptied collapsible owner is removed in turn.
func (f *Factory) RemoveDockable(h entity.Handle, collapse bool) {
	n := f.node(h)
	if n == nil {
		return
	}
	// A window root has no owner; removing it closes its window.
	if n.Root != nil && n.Root.Window != entity.NoWindow {
		f.RemoveWindow(n.Root.Window)
		return
	}
	if f.IsDockablePinned(h) {
		f.UnpinDockable(h)
	}
	if root := f.pinRoot(h); root != nil && root.Root.IsHidden(h) {
		root.Root.HiddenDockables, _ = entity.Remove(root.Root.HiddenDockables, h)
		n.Owner = entity.NoHandle
		f.emit(event.DockableRemoved, h, root.Handle)
		f.changed(root.Handle)
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
	f.changed(owner.Handle)

	f.logger.Debug().Str("dockable", n.ID).Str("owner", owner.ID).Bool("collapse", collapse).Msg("dockable removed")

	if collapse {
		f.CollapseDock(owner.Handle)
	}
}

// detach drops the child at idx, reassigns the active child when needed and
// clears the child's owner.
func (f *Factory) detach(d *entity.Node, idx int) {
	list := d.Container.VisibleDockables
	removed := list[idx]
	d.Container.VisibleDockables = entity.RemoveAt(list, idx)

	if d.Container.ActiveDockable == removed {
		f.setActive(d, f.nearestContent(d, idx-1))
	}
	if n := f.node(removed); n != nil {
		n.Owner = entity.NoHandle
	}
	f.emit(event.DockableRemoved, removed, d.Handle)
}

// nearestContent looks for a non-splitter child at from, then backwards, then
// forwards.
func (f *Factory) nearestContent(d *entity.Node, from int) entity.Handle {
	list := d.Container.VisibleDockables
	if len(list) == 0 {
		return entity.NoHandle
	}
	if from < 0 {
		from = 0
	}
	if from >= len(list) {
		from = len(list) - 1
	}
	for i := from; i >= 0; i-- {
		if c := f.node(list[i]); c != nil && !c.IsSplitter() {
			return list[i]
		}
	}
	for i := from + 1; i < len(list); i++ {
		if c := f.node(list[i]); c != nil && !c.IsSplitter() {
			return list[i]
		}
	}
	return entity.NoHandle
}

// pruneSplitters removes leading, trailing and doubled splitters so that
// every splitter sits between two content children.
func (f *Factory) pruneSplitters(d *entity.Node) {
	for {
		list := d.Container.VisibleDockables
		drop := -1
		for i, h := range list {
			if !f.node(h).IsSplitter() {
				continue
			}
			if i == 0 || i == len(list)-1 || f.node(list[i-1]).IsSplitter() {
				drop = i
				break
			}
		}
		if drop < 0 {
			return
		}
		f.detach(d, drop)
	}
}

// CollapseDock removes an empty, collapsible dock from its owner. A root
// hosted by a floating window closes the window instead. Docks still named
// as the original owner of a pinned or hidden dockable are kept so that
// unpin and restore have somewhere to return to.
func (f *Factory) CollapseDock(dock entity.Handle) {
	d := f.dock(dock)
	if d == nil || !d.Container.IsCollapsable || len(d.Container.VisibleDockables) > 0 {
		return
	}
	if d.Root != nil {
		if d.Root.Window != entity.NoWindow && dock != f.layout.Root {
			f.RemoveWindow(d.Root.Window)
		}
		return
	}
	if f.isRestoreTarget(dock) {
		return
	}
	if root := f.pinRoot(dock); root != nil && root.Root.PinnedDock == dock {
		return
	}
	f.logger.Debug().Str("dock", d.ID).Msg("collapsing empty dock")
	f.RemoveDockable(dock, true)
}

func (f *Factory) isRestoreTarget(dock entity.Handle) bool {
	root := f.pinRoot(dock)
	if root == nil {
		return false
	}
	r := root.Root
	for _, list := range [][]entity.Handle{
		r.HiddenDockables, r.LeftPinnedDockables, r.RightPinnedDockables,
		r.TopPinnedDockables, r.BottomPinnedDockables,
	} {
		for _, h := range list {
			if n := f.node(h); n != nil && n.OriginalOwner == dock {
				return true
			}
		}
	}
	return false
}

// MoveDockable reorders source inside dock so it takes target's position.
func (f *Factory) MoveDockable(dock, source, target entity.Handle) {
	d := f.dock(dock)
	if d == nil {
		return
	}
	list := d.Container.VisibleDockables
	sIdx := entity.IndexOf(list, source)
	tIdx := entity.IndexOf(list, target)
	if sIdx < 0 || tIdx < 0 || sIdx == tIdx {
		return
	}
	if sIdx < tIdx {
		list = entity.InsertAt(list, tIdx+1, source)
		list = entity.RemoveAt(list, sIdx)
	} else {
		list = entity.InsertAt(list, tIdx, source)
		list = entity.RemoveAt(list, sIdx+1)
	}
	d.Container.VisibleDockables = list
	f.emit(event.DockableMoved, source, dock)
	f.setActive(d, source)
	f.changed(dock)
}

// MoveDockableBetween moves source from sourceDock into targetDock right after
// target, or at the end when target is NoHandle. The source dock collapses
// if the move empties it.
func (f *Factory) MoveDockableBetween(sourceDock, targetDock, source, target entity.Handle) {
	src := f.node(source)
	td := f.dock(targetDock)
	if src == nil || td == nil {
		return
	}
	if f.IsDockablePinned(source) {
		f.UnpinDockable(source)
		sourceDock = src.Owner
	}
	if sourceDock == targetDock && target.IsValid() {
		f.MoveDockable(targetDock, source, target)
		return
	}
	sd := f.dock(sourceDock)
	if sd == nil || entity.IndexOf(sd.Container.VisibleDockables, source) < 0 {
		return
	}

	f.RemoveDockable(source, false)

	index := len(td.Container.VisibleDockables)
	if target.IsValid() {
		if i := entity.IndexOf(td.Container.VisibleDockables, target); i >= 0 {
			index = i + 1
		}
	}
	td.Container.VisibleDockables = entity.InsertAt(td.Container.VisibleDockables, index, source)
	if err := f.InitDockable(source, targetDock); err != nil {
		f.logger.Warn().Err(err).Str("dockable", src.ID).Msg("dockable context unresolved")
	}
	f.emit(event.DockableMoved, source, targetDock)
	f.setActive(td, source)
	f.changed(targetDock, sourceDock)

	f.logger.Debug().Str("dockable", src.ID).Str("from", sd.ID).Str("to", td.ID).Msg("dockable moved")

	f.CollapseDock(sourceDock)
}

// SwapDockable exchanges the positions of source and target inside dock.
func (f *Factory) SwapDockable(dock, source, target entity.Handle) {
	d := f.dock(dock)
	if d == nil {
		return
	}
	list := d.Container.VisibleDockables
	sIdx := entity.IndexOf(list, source)
	tIdx := entity.IndexOf(list, target)
	if sIdx < 0 || tIdx < 0 || sIdx == tIdx {
		return
	}
	list[sIdx], list[tIdx] = list[tIdx], list[sIdx]
	f.emit(event.DockableSwapped, source, dock)
	f.setActive(d, source)
	f.changed(dock)
}

// SwapDockableBetween exchanges source and target across two docks. Each dock
// ends up with the dockable it received as its active child.
func (f *Factory) SwapDockableBetween(sourceDock, targetDock, source, target entity.Handle) {
	if sourceDock == targetDock {
		f.SwapDockable(sourceDock, source, target)
		return
	}
	sd := f.dock(sourceDock)
	td := f.dock(targetDock)
	if sd == nil || td == nil {
		return
	}
	sIdx := entity.IndexOf(sd.Container.VisibleDockables, source)
	tIdx := entity.IndexOf(td.Container.VisibleDockables, target)
	if sIdx < 0 || tIdx < 0 {
		return
	}
	sd.Container.VisibleDockables[sIdx] = target
	td.Container.VisibleDockables[tIdx] = source
	if err := f.InitDockable(target, sourceDock); err != nil {
		f.logger.Warn().Err(err).Msg("dockable context unresolved")
	}
	if err := f.InitDockable(source, targetDock); err != nil {
		f.logger.Warn().Err(err).Msg("dockable context unresolved")
	}
	f.emit(event.DockableSwapped, source, targetDock)
	f.setActive(sd, target)
	f.setActive(td, source)
	f.changed(sourceDock, targetDock)
}
