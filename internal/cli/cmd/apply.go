package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/cli"
	"github.com/bnema/dockyard/internal/cli/styles"
)

var applyDryRun bool

var applyCmd = &cobra.Command{
	Use:   "apply <workspace> <operation> <dockable> [target]",
	Short: "Run a layout operation on a stored workspace",
	Long: `Load a workspace, run one operation on a dockable and save the result.

Operations: ` + strings.Join(cli.Operations(), ", ") + `

move, swap and split-* take a target dockable. split-* splits the dock that
holds the target.

Examples:
  dockyard apply default pin class-view
  dockyard apply default float output
  dockyard apply default move output properties
  dockyard apply default split-right errors readme.md`,
	Args: cobra.RangeArgs(3, 4),
	ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return cli.Operations(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "print the result without saving it")
}

func runApply(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	id, err := cli.ParseWorkspaceID(args[0])
	if err != nil {
		return err
	}
	op, dockable := args[1], args[2]
	target := ""
	if len(args) == 4 {
		target = args[3]
	}
	if !cli.OperationNeedsTarget(op) && target != "" {
		return fmt.Errorf("operation %s takes no target", op)
	}

	ws, err := a.LoadWorkspace(id)
	if err != nil {
		return err
	}
	if err := a.Run(op, dockable, target); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.NewLayoutRenderer(a.Theme).Render(a.Layout()))
	if applyDryRun {
		return nil
	}
	if err := a.Persist(ws.ID, ws.Name); err != nil {
		return err
	}
	fmt.Fprintln(out, styles.NewWorkspaceRenderer(a.Theme).RenderSaved(ws))
	return nil
}
