package usecase

import (
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/event"
)

// CloseDockable closes h, honoring the close capability, the owner's
// CanCloseLastDockable flag and the dockable's OnClose veto. Depending on the
// options, tools and documents are hidden rather than removed.
func (f *Factory) CloseDockable(h entity.Handle) bool {
	n := f.node(h)
	if n == nil || n.IsSplitter() || n.Root != nil {
		return false
	}
	if !f.isEnabled(h, entity.CapabilityClose) {
		f.logger.Debug().Str("dockable", n.ID).Msg("close refused by capability policy")
		return false
	}
	if owner := f.dock(n.Owner); owner != nil && !owner.Container.CanCloseLastDockable &&
		entity.IndexOf(owner.Container.VisibleDockables, h) >= 0 && f.contentCount(owner) <= 1 {
		f.logger.Debug().Str("dockable", n.ID).Str("owner", owner.ID).Msg("close refused, last dockable")
		return false
	}
	if n.OnClose != nil && !n.OnClose(n) {
		f.logger.Debug().Str("dockable", n.ID).Msg("close vetoed")
		return false
	}

	owner := n.Owner
	switch {
	case n.Kind == entity.KindTool && f.opts.HideToolsOnClose,
		n.Kind == entity.KindDocument && f.opts.HideDocumentsOnClose:
		f.HideDockable(h)
	default:
		f.RemoveDockable(h, true)
	}
	f.emit(event.DockableClosed, h, owner)
	f.logger.Debug().Str("dockable", n.ID).Msg("dockable closed")
	return true
}

// CloseOtherDockables closes every sibling of h.
func (f *Factory) CloseOtherDockables(h entity.Handle) {
	f.closeSiblings(h, func(i, at int) bool { return i != at })
}

// CloseAllDockables closes h and every sibling.
func (f *Factory) CloseAllDockables(h entity.Handle) {
	f.closeSiblings(h, func(int, int) bool { return true })
}

// CloseLeftDockables closes the siblings before h.
func (f *Factory) CloseLeftDockables(h entity.Handle) {
	f.closeSiblings(h, func(i, at int) bool { return i < at })
}

// CloseRightDockables closes the siblings after h.
func (f *Factory) CloseRightDockables(h entity.Handle) {
	f.closeSiblings(h, func(i, at int) bool { return i > at })
}

func (f *Factory) closeSiblings(h entity.Handle, pick func(i, at int) bool) {
	n := f.node(h)
	if n == nil {
		return
	}
	owner := f.dock(n.Owner)
	if owner == nil {
		return
	}
	list := owner.Container.VisibleDockables
	at := entity.IndexOf(list, h)
	if at < 0 {
		return
	}
	var targets []entity.Handle
	for i, c := range list {
		if cn := f.node(c); cn != nil && !cn.IsSplitter() && pick(i, at) {
			targets = append(targets, c)
		}
	}
	for _, c := range targets {
		f.CloseDockable(c)
	}
}
