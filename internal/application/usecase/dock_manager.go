package usecase

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/policy"
)

// DockManager decides drag-and-drop requests and applies the resulting plans.
// Decide is read-only; Apply refuses plans decided against an older layout
// revision.
type DockManager struct {
	factory *Factory
	service *DockService
	layout  *entity.Layout
	logger  zerolog.Logger
}

// NewDockManager creates a manager driving factory.
func NewDockManager(factory *Factory) *DockManager {
	return &DockManager{
		factory: factory,
		service: NewDockService(factory),
		layout:  factory.Layout(),
		logger:  factory.logger.With().Str("component", "dock-manager").Logger(),
	}
}

// Decide computes what dropping req.Source on req.Target would do.
func (m *DockManager) Decide(req DropRequest) Plan {
	p := Plan{
		Action:    req.Action,
		Operation: req.Operation,
		Source:    req.Source,
		revision:  m.layout.Revision(),
	}
	p = m.decide(p, req)
	if !p.Legal() {
		m.logger.Trace().
			Uint32("source", uint32(req.Source)).
			Uint32("target", uint32(req.Target)).
			Str("op", req.Operation.String()).
			Str("reason", p.Reason.String()).
			Msg("drop rejected")
	}
	return p
}

func (m *DockManager) decide(p Plan, req DropRequest) Plan {
	src := m.layout.Node(req.Source)
	tgt := m.layout.Node(req.Target)
	if src == nil {
		return reject(p, ReasonInvalidSource)
	}
	// Hidden dockables are not on screen and cannot be dragged.
	if m.factory.IsDockableHidden(src.Handle) {
		return reject(p, ReasonInvalidSource)
	}
	if tgt == nil {
		return reject(p, ReasonInvalidTarget)
	}
	if src.Handle == tgt.Handle {
		return reject(p, ReasonSameTarget)
	}
	switch src.Kind {
	case entity.KindRootDock, entity.KindProportionalDock, entity.KindSplitter:
		return reject(p, ReasonInvalidSource)
	}
	if tgt.IsSplitter() {
		return reject(p, ReasonInvalidTarget)
	}
	if req.Action == entity.ActionCopy {
		return reject(p, ReasonCopyUnsupported)
	}
	if !policy.IsEnabled(m.layout, src.Handle, entity.CapabilityDrag, entity.NoHandle) {
		return reject(p, ReasonCapabilityDisabled)
	}
	p.SourceOwner = src.Owner

	if req.Operation == entity.OpWindow {
		return m.service.DockDockableIntoWindow(p, src, req.Pointer)
	}
	if tgt.Root != nil || tgt.Proportional != nil {
		return reject(p, ReasonInvalidTarget)
	}

	if src.IsDock() {
		target := tgt
		if !target.IsDock() {
			target = m.factory.dock(tgt.Owner)
		}
		if target == nil {
			return reject(p, ReasonInvalidTarget)
		}
		return m.service.DockDockIntoDock(p, src, target)
	}

	if tgt.IsDock() {
		return m.service.DockDockableIntoDock(p, src, tgt)
	}
	if req.Operation == entity.OpFill {
		return m.service.DockDockableIntoDockable(p, src, tgt)
	}
	owner := m.factory.dock(tgt.Owner)
	if owner == nil {
		return reject(p, ReasonInvalidTarget)
	}
	return m.service.DockDockableIntoDock(p, src, owner)
}

// Apply performs a plan returned by Decide.
func (m *DockManager) Apply(p Plan) error {
	if !p.Legal() {
		return fmt.Errorf("apply %s: %w: %s", p.Kind, ErrPlanRejected, p.Reason)
	}
	if p.revision != m.layout.Revision() {
		return fmt.Errorf("apply %s: %w", p.Kind, ErrStalePlan)
	}
	if err := m.service.Execute(p); err != nil {
		return fmt.Errorf("apply %s: %w", p.Kind, err)
	}
	m.logger.Debug().
		Str("plan", p.Kind.String()).
		Str("op", p.Operation.String()).
		Str("action", p.Action.String()).
		Msg("drop applied")
	return nil
}

// ValidateDockable decides a drop and, when legal and execute is set, applies it.
func (m *DockManager) ValidateDockable(source, target entity.Handle, action entity.DragAction, op entity.DockOperation, execute bool) bool {
	p := m.Decide(DropRequest{Source: source, Target: target, Action: action, Operation: op})
	if !p.Legal() {
		return false
	}
	if !execute {
		return true
	}
	if err := m.Apply(p); err != nil {
		m.logger.Error().Err(err).Msg("drop failed")
		return false
	}
	return true
}

// ValidateTool is ValidateDockable restricted to tool sources.
func (m *DockManager) ValidateTool(source, target entity.Handle, action entity.DragAction, op entity.DockOperation, execute bool) bool {
	if n := m.layout.Node(source); n == nil || n.Kind != entity.KindTool {
		return false
	}
	return m.ValidateDockable(source, target, action, op, execute)
}

// ValidateDocument is ValidateDockable restricted to document sources.
func (m *DockManager) ValidateDocument(source, target entity.Handle, action entity.DragAction, op entity.DockOperation, execute bool) bool {
	if n := m.layout.Node(source); n == nil || n.Kind != entity.KindDocument {
		return false
	}
	return m.ValidateDockable(source, target, action, op, execute)
}

// ValidateDock is ValidateDockable restricted to dock sources.
func (m *DockManager) ValidateDock(source, target entity.Handle, action entity.DragAction, op entity.DockOperation, execute bool) bool {
	if n := m.layout.Node(source); n == nil || !n.IsDock() {
		return false
	}
	return m.ValidateDockable(source, target, action, op, execute)
}
