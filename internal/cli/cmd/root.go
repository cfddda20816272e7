// Package cmd provides Cobra CLI commands for dockyard.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/cli"
	"github.com/bnema/dockyard/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	configDir string
	dbPath    string
	rootCmd   = &cobra.Command{
		Use:   "dockyard",
		Short: "Inspect and rearrange dock layouts from the terminal",
		Long: `Dockyard - a docking layout engine for tool and document panes.

Layouts are trees of docks holding tools and documents, with splitters,
pinned and hidden tools, and floating windows. Workspaces store named
layouts in SQLite so they can be re-applied later.

Start with 'dockyard demo --save default' to store the built-in layout,
then explore it with 'dockyard tree' and change it with 'dockyard apply'
or 'dockyard drop'.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{
				ConfigDir:    configDir,
				DatabasePath: dbPath,
				LogWriter:    cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return closeApp()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default $XDG_CONFIG_HOME/dockyard)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "workspace database path (overrides database.path)")
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	// PersistentPostRunE is skipped when a command fails.
	if closeErr := closeApp(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func closeApp() error {
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	return err
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
