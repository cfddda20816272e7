package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/cli"
	"github.com/bnema/dockyard/internal/cli/styles"
)

var treeSplitters bool

var treeCmd = &cobra.Command{
	Use:   "tree [workspace]",
	Short: "Print a stored workspace as a tree",
	Long: `Load a workspace and print its dock tree, floating windows, pinned
and hidden tools. Without an argument the configured default workspace
(workspace.default) is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().BoolVar(&treeSplitters, "splitters", false, "include splitters in the tree")
}

func runTree(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	name := a.Config.Workspace.Default
	if len(args) == 1 {
		name = args[0]
	}
	id, err := cli.ParseWorkspaceID(name)
	if err != nil {
		return err
	}
	ws, err := a.LoadWorkspace(id)
	if err != nil {
		return err
	}

	renderer := styles.NewLayoutRenderer(a.Theme)
	renderer.ShowSplitters = treeSplitters
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.NewWorkspaceRenderer(a.Theme).RenderHeader(ws))
	fmt.Fprintln(out, renderer.Render(a.Layout()))
	return nil
}
