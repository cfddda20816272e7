package styles

import (
	"fmt"

	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/domain/entity"
)

// PlanRenderer renders drop decisions.
type PlanRenderer struct {
	theme *Theme
}

// NewPlanRenderer creates a new plan renderer with the given theme.
func NewPlanRenderer(theme *Theme) *PlanRenderer {
	return &PlanRenderer{theme: theme}
}

// Render describes p using node ids from l.
func (r *PlanRenderer) Render(p usecase.Plan, l *entity.Layout) string {
	if !p.Legal() {
		return fmt.Sprintf("%s drop rejected: %s",
			r.theme.ErrorStyle.Render(IconX),
			r.theme.WarningStyle.Render(p.Reason.String()))
	}

	target := p.TargetDockable
	if !target.IsValid() {
		target = p.TargetDock
	}
	line := fmt.Sprintf("%s %s %s: %s -> %s",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(p.Kind.String()),
		p.Operation,
		idOf(l, p.Source),
		idOf(l, target))
	for _, step := range p.Steps {
		line += "\n    " + r.theme.Subtle.Render(fmt.Sprintf("%s %s", IconCursor, step.Kind))
	}
	return line
}

func idOf(l *entity.Layout, h entity.Handle) string {
	if n := l.Node(h); n != nil && n.ID != "" {
		return n.ID
	}
	if !h.IsValid() {
		return "-"
	}
	return fmt.Sprintf("#%d", h)
}
