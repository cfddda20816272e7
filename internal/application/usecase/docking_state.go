package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/event"
	"github.com/bnema/dockyard/internal/logging"
)

// ViewState is what a bound view model sees of a dockable.
type ViewState struct {
	IsOpen       bool
	IsActive     bool
	IsSelected   bool
	DockingState entity.DockingWindowState
}

// StateSink receives view state after every synchronization.
type StateSink interface {
	PushDockingState(h entity.Handle, state ViewState)
}

// StateSinkFunc adapts a function to StateSink.
type StateSinkFunc func(h entity.Handle, state ViewState)

// PushDockingState calls fn.
func (fn StateSinkFunc) PushDockingState(h entity.Handle, state ViewState) {
	fn(h, state)
}

// StateProperty names the view property a request changes.
type StateProperty int

const (
	PropertyIsOpen StateProperty = iota
	PropertyIsActive
	PropertyIsSelected
	PropertyDockingState
)

func (p StateProperty) String() string {
	switch p {
	case PropertyIsOpen:
		return "is_open"
	case PropertyIsActive:
		return "is_active"
	case PropertyIsSelected:
		return "is_selected"
	case PropertyDockingState:
		return "docking_state"
	default:
		return "unknown"
	}
}

// StateRequest is a view-initiated change of one property.
type StateRequest struct {
	Property StateProperty
	Value    bool
	State    entity.DockingWindowState
}

// syncTxn tracks one in-flight request. Dockables touched by factory events
// while it is open are pushed once when it closes.
type syncTxn struct {
	touched []entity.Handle
	seen    map[entity.Handle]bool
}

func (t *syncTxn) touch(h entity.Handle) {
	if !h.IsValid() || t.seen[h] {
		return
	}
	t.seen[h] = true
	t.touched = append(t.touched, h)
}

// DockingStateSynchronizer keeps view state and the layout in agreement in
// both directions: view requests become factory calls, factory events become
// pushed view state. Requests arriving while one is in flight are dropped.
type DockingStateSynchronizer struct {
	factory     *Factory
	layout      *entity.Layout
	sink        StateSink
	txn         *syncTxn
	unsubscribe func()
	logger      zerolog.Logger
}

// NewDockingStateSynchronizer subscribes to factory's bus and pushes to sink.
func NewDockingStateSynchronizer(ctx context.Context, factory *Factory, sink StateSink) *DockingStateSynchronizer {
	log := logging.FromContext(ctx)
	s := &DockingStateSynchronizer{
		factory: factory,
		layout:  factory.Layout(),
		sink:    sink,
		logger:  log.With().Str("component", "docking-state").Logger(),
	}
	s.unsubscribe = factory.Bus().Subscribe(event.ObserverFunc(s.onEvent))
	return s
}

// Close stops listening to factory events.
func (s *DockingStateSynchronizer) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// Resolve computes the docking state of h from the layout alone.
func (s *DockingStateSynchronizer) Resolve(h entity.Handle) entity.DockingWindowState {
	n := s.layout.Node(h)
	if n == nil {
		return 0
	}
	root := s.layout.FindRoot(h, nil)

	state := entity.StateDocked
	switch {
	case root != nil && s.isPinned(root, h):
		state = entity.StatePinned
	case s.underDocumentDock(n, root):
		state = entity.StateDocument
	}

	if root != nil {
		if win := s.layout.Window(root.Root.Window); win != nil && win.IsFloating() {
			state |= entity.StateFloating
		}
	}
	if s.isHidden(h) {
		state |= entity.StateHidden
	}
	return state
}

func (s *DockingStateSynchronizer) isPinned(root *entity.Node, h entity.Handle) bool {
	_, ok := root.Root.PinnedAlignment(h)
	return ok
}

// underDocumentDock follows the owner chain, or the original owner chain of
// a hidden dockable.
func (s *DockingStateSynchronizer) underDocumentDock(n, root *entity.Node) bool {
	start := n.Handle
	if root != nil && root.Root.IsHidden(n.Handle) && n.OriginalOwner.IsValid() {
		start = n.OriginalOwner
		if o := s.layout.Node(start); o != nil && o.Kind == entity.KindDocumentDock {
			return true
		}
	}
	for _, a := range s.layout.Ancestors(start) {
		if a.Kind == entity.KindDocumentDock {
			return true
		}
	}
	return false
}

// isHidden reports whether h or any ancestor sits in a hidden list.
func (s *DockingStateSynchronizer) isHidden(h entity.Handle) bool {
	if s.factory.IsDockableHidden(h) {
		return true
	}
	for _, a := range s.layout.Ancestors(h) {
		if s.factory.IsDockableHidden(a.Handle) {
			return true
		}
	}
	return false
}

// State returns the full view state of h.
func (s *DockingStateSynchronizer) State(h entity.Handle) ViewState {
	n := s.layout.Node(h)
	if n == nil {
		return ViewState{}
	}
	state := s.Resolve(h)
	vs := ViewState{
		IsOpen:       s.layout.IsReachable(h) && !state.Has(entity.StateHidden),
		DockingState: state,
	}
	if owner := s.factory.dock(n.Owner); owner != nil {
		vs.IsSelected = owner.Container.ActiveDockable == h
	}
	if root := s.factory.FindRoot(h); root != nil {
		vs.IsActive = root.Root.FocusedDockable == h
	}
	return vs
}

// Request applies a view-initiated change. It returns false when the request
// was dropped as re-entrant or needed no mutation.
func (s *DockingStateSynchronizer) Request(h entity.Handle, req StateRequest) bool {
	if s.txn != nil {
		s.logger.Trace().Uint32("dockable", uint32(h)).Str("property", req.Property.String()).Msg("re-entrant request skipped")
		return false
	}
	if s.layout.Node(h) == nil {
		return false
	}
	txn := &syncTxn{seen: make(map[entity.Handle]bool)}
	s.txn = txn
	defer func() { s.txn = nil }()

	txn.touch(h)
	applied := s.apply(h, req)
	for _, t := range txn.touched {
		s.push(t)
	}
	return applied
}

func (s *DockingStateSynchronizer) apply(h entity.Handle, req StateRequest) bool {
	f := s.factory
	switch req.Property {
	case PropertyIsOpen:
		hidden := f.IsDockableHidden(h)
		switch {
		case req.Value && hidden:
			f.RestoreDockable(h)
			return true
		case !req.Value && !hidden:
			f.HideDockable(h)
			return true
		}
	case PropertyIsActive:
		if req.Value {
			n := s.layout.Node(h)
			f.SetActiveDockable(h)
			f.SetFocusedDockable(n.Owner, h)
			return true
		}
	case PropertyIsSelected:
		if req.Value {
			f.SetActiveDockable(h)
			return true
		}
	case PropertyDockingState:
		return s.applyDockingState(h, req.State)
	}
	return false
}

// applyDockingState reaches a composite target state in a fixed order:
// unhide, then location, then floating.
func (s *DockingStateSynchronizer) applyDockingState(h entity.Handle, want entity.DockingWindowState) bool {
	f := s.factory
	cur := s.Resolve(h)
	if cur == want {
		return false
	}

	if want.Has(entity.StateHidden) {
		if !cur.Has(entity.StateHidden) {
			f.HideDockable(h)
		}
		return true
	}
	if cur.Has(entity.StateHidden) {
		f.RestoreDockable(h)
	}

	cur = s.Resolve(h)
	if cur.Location() != want.Location() {
		switch want.Location() {
		case entity.StateDocument:
			f.DockAsDocument(h)
		case entity.StatePinned:
			if cur.Location() == entity.StateDocument {
				f.DockAsTool(h)
			}
			f.PinDockable(h)
		default:
			if cur.Location() == entity.StatePinned {
				f.UnpinDockable(h)
			} else {
				f.DockAsTool(h)
			}
		}
	}

	cur = s.Resolve(h)
	switch {
	case want.Has(entity.StateFloating) && !cur.Has(entity.StateFloating):
		if err := f.FloatDockable(h); err != nil {
			s.logger.Error().Err(err).Uint32("dockable", uint32(h)).Msg("float failed")
		}
	case !want.Has(entity.StateFloating) && cur.Has(entity.StateFloating):
		kind := entity.KindToolDock
		if want.Location() == entity.StateDocument {
			kind = entity.KindDocumentDock
		}
		f.DockIntoMainRoot(h, kind)
	}
	return true
}

func (s *DockingStateSynchronizer) onEvent(e event.Event) {
	if s.txn != nil {
		s.txn.touch(e.Dockable)
		s.txn.touch(e.Previous)
		return
	}
	if e.Dockable.IsValid() {
		s.push(e.Dockable)
	}
	if e.Previous.IsValid() {
		s.push(e.Previous)
	}
}

func (s *DockingStateSynchronizer) push(h entity.Handle) {
	if s.sink == nil || s.layout.Node(h) == nil {
		return
	}
	s.sink.PushDockingState(h, s.State(h))
}
