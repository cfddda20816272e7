package cli

import (
	"fmt"
	"sort"

	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/logging"
)

type operation struct {
	needsTarget bool
	run         func(a *App, n, target *entity.Node) error
}

var operations = map[string]operation{
	"pin":     {run: leafOp((*usecase.Factory).PinDockable)},
	"unpin":   {run: leafOp((*usecase.Factory).UnpinDockable)},
	"hide":    {run: leafOp((*usecase.Factory).HideDockable)},
	"restore": {run: leafOp((*usecase.Factory).RestoreDockable)},
	"float": {run: func(a *App, n, _ *entity.Node) error {
		return a.Factory.FloatDockable(n.Handle)
	}},
	"float-all": {run: func(a *App, n, _ *entity.Node) error {
		return a.Factory.FloatAllDockables(n.Handle)
	}},
	"close": {run: func(a *App, n, _ *entity.Node) error {
		if !a.Factory.CloseDockable(n.Handle) {
			return fmt.Errorf("%s cannot be closed", n.ID)
		}
		return nil
	}},
	"close-others": {run: leafOp((*usecase.Factory).CloseOtherDockables)},
	"close-all":    {run: leafOp((*usecase.Factory).CloseAllDockables)},
	"close-left":   {run: leafOp((*usecase.Factory).CloseLeftDockables)},
	"close-right":  {run: leafOp((*usecase.Factory).CloseRightDockables)},
	"dock-as-document": {run: func(a *App, n, _ *entity.Node) error {
		if !a.Factory.DockAsDocument(n.Handle) {
			return fmt.Errorf("%s cannot be docked as a document", n.ID)
		}
		return nil
	}},
	"dock-as-tool": {run: func(a *App, n, _ *entity.Node) error {
		if !a.Factory.DockAsTool(n.Handle) {
			return fmt.Errorf("%s cannot be docked as a tool", n.ID)
		}
		return nil
	}},
	"move":         {needsTarget: true, run: dropOp(entity.ActionMove)},
	"swap":         {needsTarget: true, run: dropOp(entity.ActionLink)},
	"split-left":   {needsTarget: true, run: splitOp(entity.OpLeft)},
	"split-right":  {needsTarget: true, run: splitOp(entity.OpRight)},
	"split-top":    {needsTarget: true, run: splitOp(entity.OpTop)},
	"split-bottom": {needsTarget: true, run: splitOp(entity.OpBottom)},
}

func leafOp(fn func(*usecase.Factory, entity.Handle)) func(*App, *entity.Node, *entity.Node) error {
	return func(a *App, n, _ *entity.Node) error {
		fn(a.Factory, n.Handle)
		return nil
	}
}

// dropOp runs a fill drop through the dock manager so the same rules as an
// interactive drag apply.
func dropOp(action entity.DragAction) func(*App, *entity.Node, *entity.Node) error {
	return func(a *App, n, target *entity.Node) error {
		p := a.DockManager.Decide(usecase.DropRequest{
			Source:    n.Handle,
			Target:    target.Handle,
			Action:    action,
			Operation: entity.OpFill,
		})
		return a.DockManager.Apply(p)
	}
}

// splitOp splits the dock holding target, or target itself when it is a dock.
func splitOp(op entity.DockOperation) func(*App, *entity.Node, *entity.Node) error {
	return func(a *App, n, target *entity.Node) error {
		dock := target
		if !dock.IsDock() {
			dock = a.Layout().Node(target.Owner)
		}
		if dock == nil {
			return fmt.Errorf("%s has no owning dock", target.ID)
		}
		return a.Factory.SplitToDock(dock.Handle, n.Handle, op)
	}
}

// Operations lists the names accepted by Run.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OperationNeedsTarget reports whether op takes a second dockable id.
func OperationNeedsTarget(op string) bool {
	return operations[op].needsTarget
}

// Run applies a named operation to the dockable with id in the live layout.
func (a *App) Run(op, id, targetID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	o, ok := operations[op]
	if !ok {
		return fmt.Errorf("unknown operation %q", op)
	}
	n, err := a.Node(id)
	if err != nil {
		return err
	}
	var target *entity.Node
	if o.needsTarget {
		if targetID == "" {
			return fmt.Errorf("operation %s requires a target", op)
		}
		if target, err = a.Node(targetID); err != nil {
			return err
		}
	}

	logging.FromContext(logging.WithDockableID(a.ctx, id)).Debug().
		Str("op", op).
		Str("target", targetID).
		Msg("running operation")
	if err := o.run(a, n, target); err != nil {
		return fmt.Errorf("%s %s: %w", op, id, err)
	}
	return nil
}

// Drop decides a drag of source onto target and applies it unless dryRun.
// The plan is returned in both cases, including rejected ones.
func (a *App) Drop(req usecase.DropRequest, dryRun bool) (usecase.Plan, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if req.Pointer != nil {
		a.Bounds.SetPointer(req.Pointer.X, req.Pointer.Y)
		defer a.Bounds.ClearPointer()
	}
	p := a.DockManager.Decide(req)
	logging.FromContext(logging.With(a.ctx, map[string]any{
		"source":    req.Source,
		"target":    req.Target,
		"operation": req.Operation.String(),
	})).Debug().
		Str("plan", p.Kind.String()).
		Str("reason", p.Reason.String()).
		Bool("dry_run", dryRun).
		Msg("drop decided")
	if dryRun || !p.Legal() {
		return p, nil
	}
	return p, a.DockManager.Apply(p)
}
