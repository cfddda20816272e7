package usecase

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/policy"
)

// DockService holds the per-shape drop rules. Every rule is pure: it turns a
// partially filled plan into a legal plan or a rejection. Execute performs a
// legal plan through the factory.
type DockService struct {
	factory *Factory
	layout  *entity.Layout
	logger  zerolog.Logger
}

// NewDockService creates the rule set for factory's layout.
func NewDockService(factory *Factory) *DockService {
	return &DockService{
		factory: factory,
		layout:  factory.Layout(),
		logger:  factory.logger.With().Str("component", "dock-service").Logger(),
	}
}

func reject(p Plan, r Reason) Plan {
	p.Kind = PlanNone
	p.Reason = r
	return p
}

// accepts checks whether dock can take src as a direct child by fill.
func (s *DockService) accepts(src, dock *entity.Node) Reason {
	switch dock.Kind {
	case entity.KindToolDock:
		if src.Kind == entity.KindDocument {
			return ReasonKindMismatch
		}
	case entity.KindDocumentDock:
		if src.Kind == entity.KindTool &&
			!policy.IsEnabled(s.layout, src.Handle, entity.CapabilityDockAsDocument, entity.NoHandle) {
			return ReasonCapabilityDisabled
		}
	case entity.KindDock:
	default:
		return ReasonInvalidTarget
	}
	return ReasonNone
}

func (s *DockService) dropEnabled(dock *entity.Node) bool {
	return policy.IsEnabled(s.layout, dock.Handle, entity.CapabilityDrop, dock.Handle)
}

// anchor returns the child a fill drop lands next to: the active child, else
// the last content child.
func (s *DockService) anchor(dock *entity.Node) entity.Handle {
	if a := dock.Container.ActiveDockable; a.IsValid() && !s.layout.Node(a).IsSplitter() &&
		slices.Contains(dock.Container.VisibleDockables, a) {
		return a
	}
	return s.factory.lastContent(dock)
}

// MoveDockable plans moving src into dock after target.
func (s *DockService) MoveDockable(p Plan, src, dock *entity.Node, target entity.Handle) Plan {
	p.SourceOwner = src.Owner
	p.TargetDock = dock.Handle
	p.TargetDockable = target
	if src.Owner == dock.Handle && target.IsValid() {
		p.Kind = PlanMoveWithin
	} else {
		p.Kind = PlanMoveBetween
	}
	return p
}

// SwapDockable plans exchanging src with target inside dock.
func (s *DockService) SwapDockable(p Plan, src, dock *entity.Node, target entity.Handle) Plan {
	if !target.IsValid() {
		return reject(p, ReasonUnsupportedOperation)
	}
	p.SourceOwner = src.Owner
	p.TargetDock = dock.Handle
	p.TargetDockable = target
	if src.Owner == dock.Handle {
		p.Kind = PlanSwapWithin
	} else {
		p.Kind = PlanSwapBetween
	}
	return p
}

// SplitDockable plans splitting dock with src on the side named by the operation.
func (s *DockService) SplitDockable(p Plan, src, dock *entity.Node) Plan {
	if dock.Root != nil || s.factory.dock(dock.Owner) == nil {
		return reject(p, ReasonInvalidTarget)
	}
	if p.Action != entity.ActionMove {
		return reject(p, ReasonUnsupportedOperation)
	}
	if s.factory.contentCount(dock) > 0 {
		if !policy.ValidateDockingGroupsInDock(s.layout, src.Handle, dock.Handle) {
			return reject(p, ReasonGroupMismatch)
		}
	} else if !policy.ValidateGlobalDocking(s.layout, src.Handle, dock.Handle) {
		return reject(p, ReasonGroupMismatch)
	}
	switch src.Kind {
	case entity.KindTool:
		p.WrapKind = entity.KindToolDock
	case entity.KindDocument:
		p.WrapKind = entity.KindDocumentDock
	}
	p.Kind = PlanSplit
	p.SourceOwner = src.Owner
	p.TargetDock = dock.Handle
	return p
}

// DockDockableIntoWindow plans floating src at pointer.
func (s *DockService) DockDockableIntoWindow(p Plan, src *entity.Node, pointer *entity.Point) Plan {
	if !src.Owner.IsValid() {
		return reject(p, ReasonInvalidSource)
	}
	if !policy.IsEnabled(s.layout, src.Handle, entity.CapabilityFloat, entity.NoHandle) {
		return reject(p, ReasonCapabilityDisabled)
	}
	p.Kind = PlanFloat
	p.SourceOwner = src.Owner
	p.Bounds = s.factory.FloatingBounds(src.Handle, src.Owner)
	if pointer != nil {
		p.Bounds.X, p.Bounds.Y = pointer.X, pointer.Y
	}
	return p
}

// DockDockableIntoDockable plans a fill drop of src onto a sibling-to-be.
func (s *DockService) DockDockableIntoDockable(p Plan, src, target *entity.Node) Plan {
	owner := s.factory.dock(target.Owner)
	if owner == nil {
		return reject(p, ReasonInvalidTarget)
	}
	if src.Handle == target.Handle {
		return reject(p, ReasonSameTarget)
	}
	if src.Kind == entity.KindDocument && target.Kind == entity.KindTool {
		return reject(p, ReasonKindMismatch)
	}
	if r := s.accepts(src, owner); r != ReasonNone {
		return reject(p, r)
	}
	if !s.dropEnabled(owner) {
		return reject(p, ReasonCapabilityDisabled)
	}
	if !policy.ValidateDockingGroups(s.layout, src.Handle, target.Handle) {
		return reject(p, ReasonGroupMismatch)
	}
	switch p.Action {
	case entity.ActionMove:
		return s.MoveDockable(p, src, owner, target.Handle)
	case entity.ActionLink:
		return s.SwapDockable(p, src, owner, target.Handle)
	case entity.ActionCopy:
		return reject(p, ReasonCopyUnsupported)
	default:
		return reject(p, ReasonUnsupportedOperation)
	}
}

// DockDockableIntoDock plans dropping a leaf src on dock.
func (s *DockService) DockDockableIntoDock(p Plan, src, dock *entity.Node) Plan {
	if src.Owner == dock.Handle && s.factory.contentCount(dock) <= 1 {
		return reject(p, ReasonLastDockable)
	}
	if !s.dropEnabled(dock) {
		return reject(p, ReasonCapabilityDisabled)
	}
	if p.Operation.IsSplit() {
		return s.SplitDockable(p, src, dock)
	}
	if p.Operation != entity.OpFill {
		return reject(p, ReasonUnsupportedOperation)
	}

	if r := s.accepts(src, dock); r != ReasonNone {
		return reject(p, r)
	}
	if target := s.anchor(dock); target.IsValid() {
		return s.DockDockableIntoDockable(p, src, s.layout.Node(target))
	}
	if !policy.ValidateGlobalDocking(s.layout, src.Handle, dock.Handle) {
		return reject(p, ReasonGroupMismatch)
	}
	if p.Action != entity.ActionMove {
		return reject(p, ReasonUnsupportedOperation)
	}
	return s.MoveDockable(p, src, dock, entity.NoHandle)
}

// DockDockIntoDock plans dropping a whole dock on another. Fill moves each
// child in order, each landing after the previous one.
func (s *DockService) DockDockIntoDock(p Plan, src, dock *entity.Node) Plan {
	var content []*entity.Node
	for _, h := range src.Container.VisibleDockables {
		if c := s.layout.Node(h); c != nil && !c.IsSplitter() {
			content = append(content, c)
		}
	}
	if len(content) == 0 {
		return reject(p, ReasonInvalidSource)
	}
	if dock.Handle == src.Handle || slices.ContainsFunc(s.layout.Ancestors(dock.Handle), func(a *entity.Node) bool {
		return a.Handle == src.Handle
	}) {
		return reject(p, ReasonInvalidTarget)
	}
	if !s.dropEnabled(dock) {
		return reject(p, ReasonCapabilityDisabled)
	}
	if p.Operation.IsSplit() {
		return s.SplitDockable(p, src, dock)
	}
	if p.Operation != entity.OpFill {
		return reject(p, ReasonUnsupportedOperation)
	}
	if p.Action != entity.ActionMove {
		return reject(p, ReasonUnsupportedOperation)
	}

	anchor := s.anchor(dock)
	for _, c := range content {
		if r := s.accepts(c, dock); r != ReasonNone {
			return reject(p, r)
		}
		compatible := policy.ValidateGlobalDocking(s.layout, c.Handle, dock.Handle)
		if anchor.IsValid() {
			compatible = policy.ValidateDockingGroups(s.layout, c.Handle, anchor)
		}
		if !compatible {
			return reject(p, ReasonGroupMismatch)
		}
		p.Steps = append(p.Steps, Plan{
			Kind:           PlanMoveBetween,
			Action:         p.Action,
			Operation:      p.Operation,
			Source:         c.Handle,
			SourceOwner:    src.Handle,
			TargetDock:     dock.Handle,
			TargetDockable: anchor,
		})
		anchor = c.Handle
	}
	p.Kind = PlanSequence
	p.SourceOwner = src.Owner
	p.TargetDock = dock.Handle
	return p
}

// Execute performs a legal plan. It does not check staleness.
func (s *DockService) Execute(p Plan) error {
	f := s.factory
	switch p.Kind {
	case PlanMoveWithin:
		f.MoveDockable(p.TargetDock, p.Source, p.TargetDockable)
	case PlanMoveBetween:
		f.MoveDockableBetween(s.ownerOf(p), p.TargetDock, p.Source, p.TargetDockable)
	case PlanSwapWithin:
		f.SwapDockable(p.TargetDock, p.Source, p.TargetDockable)
	case PlanSwapBetween:
		if f.IsDockablePinned(p.Source) {
			f.UnpinDockable(p.Source)
		}
		f.SwapDockableBetween(s.ownerOf(p), p.TargetDock, p.Source, p.TargetDockable)
	case PlanSplit:
		return f.SplitToDock(p.TargetDock, p.Source, p.Operation)
	case PlanFloat:
		if f.IsDockablePinned(p.Source) {
			f.UnpinDockable(p.Source)
		}
		return f.SplitToWindow(s.ownerOf(p), p.Source, p.Bounds)
	case PlanSequence:
		for _, step := range p.Steps {
			if err := s.Execute(step); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("execute %s: %w", p.Kind, ErrPlanRejected)
	}
	return nil
}

// ownerOf prefers the live owner over the one recorded at decision time.
func (s *DockService) ownerOf(p Plan) entity.Handle {
	if n := s.layout.Node(p.Source); n != nil && n.Owner.IsValid() {
		return n.Owner
	}
	return p.SourceOwner
}
