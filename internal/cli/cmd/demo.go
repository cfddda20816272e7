package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/cli"
	"github.com/bnema/dockyard/internal/cli/styles"
)

var (
	demoSave string
	demoName string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show the built-in demo layout",
	Long: `Build the demo layout (tool docks around a document dock) and print it.

Examples:
  dockyard demo                          # Print the demo layout
  dockyard demo --save default           # Store it as the "default" workspace`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVar(&demoSave, "save", "", "store the layout under this workspace id")
	demoCmd.Flags().StringVar(&demoName, "name", "", "display name of the saved workspace")
}

func runDemo(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if err := a.LoadDemo(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.NewLayoutRenderer(a.Theme).Render(a.Layout()))

	if demoSave == "" {
		return nil
	}
	id, err := cli.ParseWorkspaceID(demoSave)
	if err != nil {
		return err
	}
	ws, err := a.SaveWorkspace(id, demoName)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, styles.NewWorkspaceRenderer(a.Theme).RenderSaved(ws))
	return nil
}
