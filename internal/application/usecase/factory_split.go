package usecase

import (
	"fmt"
	"math"
	"slices"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/event"
)

func splitOrientation(op entity.DockOperation) (entity.Orientation, bool, error) {
	switch op {
	case entity.OpLeft:
		return entity.OrientationHorizontal, true, nil
	case entity.OpRight:
		return entity.OrientationHorizontal, false, nil
	case entity.OpTop:
		return entity.OrientationVertical, true, nil
	case entity.OpBottom:
		return entity.OrientationVertical, false, nil
	default:
		return 0, false, fmt.Errorf("%w: %s", ErrSplitNotSupported, op)
	}
}

// CreateSplitLayout builds an unattached proportional dock holding dock and
// dockable separated by a splitter. The wrapper inherits dock's proportion
// and dock's own proportion is reset. A leaf dockable is first wrapped in a
// container of its kind. It returns nil without error when either node is missing.
func (f *Factory) CreateSplitLayout(dock, dockable entity.Handle, op entity.DockOperation) (*entity.Node, error) {
	orientation, newFirst, err := splitOrientation(op)
	if err != nil {
		return nil, err
	}
	d := f.node(dock)
	x := f.node(dockable)
	if d == nil || x == nil {
		return nil, nil
	}

	split := x
	switch x.Kind {
	case entity.KindTool:
		split = f.NewNode(entity.KindToolDock)
	case entity.KindDocument:
		split = f.NewNode(entity.KindDocumentDock)
	}
	if split != x {
		split.Title = x.Title
		split.DockGroup = x.DockGroup
		split.Container.VisibleDockables = []entity.Handle{x.Handle}
		split.Container.ActiveDockable = x.Handle
		x.Owner = split.Handle
	}

	wrapper := f.NewNode(entity.KindProportionalDock)
	wrapper.Proportional.Orientation = orientation
	wrapper.Proportion = d.Proportion
	d.Proportion = math.NaN()

	splitter := f.NewNode(entity.KindSplitter)
	if newFirst {
		wrapper.Container.VisibleDockables = []entity.Handle{split.Handle, splitter.Handle, d.Handle}
	} else {
		wrapper.Container.VisibleDockables = []entity.Handle{d.Handle, splitter.Handle, split.Handle}
	}
	wrapper.Container.ActiveDockable = split.Handle
	for _, h := range wrapper.Container.VisibleDockables {
		f.node(h).Owner = wrapper.Handle
	}
	return wrapper, nil
}

// SplitToDock replaces dock in its owner with a split of dock and dockable.
// dockable is detached from its previous owner first; that owner collapses
// if it ends up empty.
func (f *Factory) SplitToDock(dock, dockable entity.Handle, op entity.DockOperation) error {
	if _, _, err := splitOrientation(op); err != nil {
		return err
	}
	d := f.node(dock)
	x := f.node(dockable)
	if d == nil || x == nil || dock == dockable {
		return nil
	}
	owner := f.dock(d.Owner)
	if owner == nil || entity.IndexOf(owner.Container.VisibleDockables, dock) < 0 {
		return nil
	}
	// Wrapping dock inside one of its own ancestors would make a cycle.
	if slices.ContainsFunc(f.layout.Ancestors(dock), func(a *entity.Node) bool { return a.Handle == dockable }) {
		f.logger.Debug().Str("dock", d.ID).Str("dockable", x.ID).Msg("split refused, dockable is an ancestor")
		return nil
	}

	if f.IsDockablePinned(dockable) {
		f.UnpinDockable(dockable)
	}
	formerOwner := x.Owner
	if formerOwner.IsValid() {
		f.RemoveDockable(dockable, false)
	}
	// Detaching dockable may have shifted dock within its owner.
	idx := entity.IndexOf(owner.Container.VisibleDockables, dock)
	if idx < 0 {
		return nil
	}

	wrapper, err := f.CreateSplitLayout(dock, dockable, op)
	if err != nil || wrapper == nil {
		return err
	}
	owner.Container.VisibleDockables[idx] = wrapper.Handle
	if err := f.InitDockable(wrapper.Handle, owner.Handle); err != nil {
		f.logger.Warn().Err(err).Msg("split content context unresolved")
	}
	if owner.Container.ActiveDockable == dock {
		f.setActive(owner, wrapper.Handle)
	}

	f.emit(event.DockableAdded, wrapper.Handle, owner.Handle)
	f.emit(event.DockableDocked, dockable, wrapper.Handle)
	f.changed(wrapper.Handle, owner.Handle)
	f.logger.Debug().Str("dock", d.ID).Str("dockable", x.ID).Str("op", op.String()).Msg("dock split")

	if formerOwner.IsValid() && formerOwner != owner.Handle {
		f.CollapseDock(formerOwner)
	}
	return nil
}
