package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/dockyard/internal/cli"
	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/domain/entity"
)

// verifyConcurrency bounds parallel decodes in workspaces verify.
const verifyConcurrency = 4

var showRaw bool

var workspacesCmd = &cobra.Command{
	Use:     "workspaces",
	Aliases: []string{"ws"},
	Short:   "Manage stored workspaces",
	Long:    `List, inspect, delete and verify the workspaces stored in the database.`,
}

var workspacesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored workspaces",
	Args:  cobra.NoArgs,
	RunE:  runWorkspacesList,
}

var workspacesShowCmd = &cobra.Command{
	Use:   "show <workspace>",
	Short: "Show a workspace tree or its stored payload",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspacesShow,
}

var workspacesDeleteCmd = &cobra.Command{
	Use:   "delete <workspace>",
	Short: "Delete a stored workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspacesDelete,
}

var workspacesVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Decode every stored workspace and report broken ones",
	Args:  cobra.NoArgs,
	RunE:  runWorkspacesVerify,
}

func init() {
	rootCmd.AddCommand(workspacesCmd)
	workspacesCmd.AddCommand(workspacesListCmd)
	workspacesCmd.AddCommand(workspacesShowCmd)
	workspacesCmd.AddCommand(workspacesDeleteCmd)
	workspacesCmd.AddCommand(workspacesVerifyCmd)
	workspacesShowCmd.Flags().BoolVar(&showRaw, "raw", false, "print the stored payload instead of the tree")
}

func runWorkspacesList(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	list, err := a.Workspaces.List(a.Ctx())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.NewWorkspaceRenderer(a.Theme).RenderList(list))
	return nil
}

func runWorkspacesShow(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	id, err := cli.ParseWorkspaceID(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showRaw {
		ws, err := a.Workspaces.Get(a.Ctx(), id)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ws.Layout)
		return nil
	}

	ws, err := a.LoadWorkspace(id)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, styles.NewWorkspaceRenderer(a.Theme).RenderHeader(ws))
	fmt.Fprintln(out, styles.NewLayoutRenderer(a.Theme).Render(a.Layout()))
	return nil
}

func runWorkspacesDelete(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	id, err := cli.ParseWorkspaceID(args[0])
	if err != nil {
		return err
	}
	if _, err := a.Workspaces.Get(a.Ctx(), id); err != nil {
		return err
	}
	if err := a.Workspaces.Remove(a.Ctx(), id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.NewWorkspaceRenderer(a.Theme).RenderDeleted(id))
	return nil
}

func runWorkspacesVerify(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	list, err := a.Workspaces.List(a.Ctx())
	if err != nil {
		return err
	}

	results := verifyWorkspaces(a, list)
	fmt.Fprint(cmd.OutOrStdout(), styles.NewWorkspaceRenderer(a.Theme).RenderVerify(results))

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d workspaces failed to decode", failed, len(results))
	}
	return nil
}

// verifyWorkspaces decodes list concurrently. Results keep the list order.
func verifyWorkspaces(a *cli.App, list []*entity.DockWorkspace) []styles.VerifyResult {
	results := make([]styles.VerifyResult, len(list))
	g, ctx := errgroup.WithContext(a.Ctx())
	g.SetLimit(verifyConcurrency)
	for i, ws := range list {
		g.Go(func() error {
			results[i] = styles.VerifyResult{ID: ws.ID, Err: a.Workspaces.Verify(ctx, ws)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
