package usecase

import (
	"errors"

	"github.com/bnema/dockyard/internal/domain/entity"
)

var (
	// ErrStalePlan is returned when a plan is applied to a layout that changed
	// since the plan was decided.
	ErrStalePlan = errors.New("plan is stale")
	// ErrPlanRejected is returned when applying a plan that was decided illegal.
	ErrPlanRejected = errors.New("plan rejected")
)

// PlanKind is the mutation a legal drop resolves to.
type PlanKind int

const (
	PlanNone PlanKind = iota
	PlanMoveWithin
	PlanMoveBetween
	PlanSwapWithin
	PlanSwapBetween
	PlanSplit
	PlanFloat
	PlanSequence
)

func (k PlanKind) String() string {
	switch k {
	case PlanMoveWithin:
		return "move_within"
	case PlanMoveBetween:
		return "move_between"
	case PlanSwapWithin:
		return "swap_within"
	case PlanSwapBetween:
		return "swap_between"
	case PlanSplit:
		return "split"
	case PlanFloat:
		return "float"
	case PlanSequence:
		return "sequence"
	default:
		return "none"
	}
}

// Reason explains why a drop was refused.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonInvalidSource
	ReasonInvalidTarget
	ReasonSameTarget
	ReasonLastDockable
	ReasonCapabilityDisabled
	ReasonGroupMismatch
	ReasonKindMismatch
	ReasonCopyUnsupported
	ReasonUnsupportedOperation
)

var reasonNames = map[Reason]string{
	ReasonNone:                 "none",
	ReasonInvalidSource:        "invalid source",
	ReasonInvalidTarget:        "invalid target",
	ReasonSameTarget:           "source is the target",
	ReasonLastDockable:         "last dockable of its dock",
	ReasonCapabilityDisabled:   "capability disabled",
	ReasonGroupMismatch:        "dock group mismatch",
	ReasonKindMismatch:         "kind not accepted by target",
	ReasonCopyUnsupported:      "copy is not supported",
	ReasonUnsupportedOperation: "unsupported operation",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return "unknown"
}

// DropRequest describes a drag gesture released over a target.
type DropRequest struct {
	Source    entity.Handle
	Target    entity.Handle
	Action    entity.DragAction
	Operation entity.DockOperation
	// Pointer is the screen position of the release, used by float drops.
	Pointer *entity.Point
}

// Plan is the outcome of Decide: either a rejection with a Reason, or the
// exact mutation Apply will perform. Deciding never mutates the layout.
type Plan struct {
	Kind      PlanKind
	Reason    Reason
	Action    entity.DragAction
	Operation entity.DockOperation

	Source         entity.Handle
	SourceOwner    entity.Handle
	TargetDock     entity.Handle
	TargetDockable entity.Handle

	// WrapKind is the container kind created around a leaf source for splits.
	WrapKind entity.Kind
	// Bounds is the floating window geometry for float plans.
	Bounds entity.Rect
	// Steps holds the ordered sub-plans of a sequence.
	Steps []Plan

	revision uint64
}

// Legal reports whether the plan can be applied.
func (p Plan) Legal() bool {
	return p.Kind != PlanNone && p.Reason == ReasonNone
}
