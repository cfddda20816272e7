package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/cli"
	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/domain/entity"
)

var (
	dropOp     string
	dropAction string
	dropDryRun bool
	dropX      float64
	dropY      float64
)

var dropCmd = &cobra.Command{
	Use:   "drop <workspace> <source> <target>",
	Short: "Simulate dragging a dockable or dock onto a target",
	Long: `Decide what dropping source on target would do and apply it.

The decision follows the same rules as an interactive drag: the target kind,
the docking groups and the capabilities of both sides. Use --dry-run to
only print the plan.

Examples:
  dockyard drop default output properties                 # tab into the right dock
  dockyard drop default errors documents --op left        # split the document dock
  dockyard drop default output left --action link         # swap with the active tool
  dockyard drop default output root --op window --x 40 --y 80`,
	Args: cobra.ExactArgs(3),
	RunE: runDrop,
}

func init() {
	rootCmd.AddCommand(dropCmd)
	dropCmd.Flags().StringVar(&dropOp, "op", "fill", "dock operation: fill, left, right, top, bottom or window")
	dropCmd.Flags().StringVar(&dropAction, "action", "move", "drag action: move or link")
	dropCmd.Flags().BoolVar(&dropDryRun, "dry-run", false, "print the plan without applying it")
	dropCmd.Flags().Float64Var(&dropX, "x", 0, "pointer x position for window drops")
	dropCmd.Flags().Float64Var(&dropY, "y", 0, "pointer y position for window drops")
}

func runDrop(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	id, err := cli.ParseWorkspaceID(args[0])
	if err != nil {
		return err
	}
	op, ok := entity.ParseDockOperation(dropOp)
	if !ok {
		return fmt.Errorf("unknown dock operation %q", dropOp)
	}
	action, ok := entity.ParseDragAction(dropAction)
	if !ok {
		return fmt.Errorf("unknown drag action %q", dropAction)
	}

	ws, err := a.LoadWorkspace(id)
	if err != nil {
		return err
	}
	source, err := a.Node(args[1])
	if err != nil {
		return err
	}
	target, err := a.Node(args[2])
	if err != nil {
		return err
	}

	req := usecase.DropRequest{
		Source:    source.Handle,
		Target:    target.Handle,
		Action:    action,
		Operation: op,
	}
	if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
		req.Pointer = &entity.Point{X: dropX, Y: dropY}
	}

	p, err := a.Drop(req, dropDryRun)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.NewPlanRenderer(a.Theme).Render(p, a.Layout()))
	if err != nil {
		return err
	}
	if !p.Legal() {
		return fmt.Errorf("drop not applied: %w", usecase.ErrPlanRejected)
	}
	if dropDryRun {
		return nil
	}

	fmt.Fprintln(out, styles.NewLayoutRenderer(a.Theme).Render(a.Layout()))
	if err := a.Persist(ws.ID, ws.Name); err != nil {
		return err
	}
	fmt.Fprintln(out, styles.NewWorkspaceRenderer(a.Theme).RenderSaved(ws))
	return nil
}
