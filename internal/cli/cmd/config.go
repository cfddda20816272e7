package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/infrastructure/config"
)

var configYes bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View configuration status and migrate to add new default settings.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.ConfigManager.GetConfigFile())
		return nil
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		schema, err := config.GenerateSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return nil
	},
}

var configStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show config file status and migration availability",
	Long:  `Display the config file path and check if any new settings are available.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigStatus,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Add missing default settings to config file",
	Long: `Compares your config file with available defaults and adds any missing settings.

Existing settings are never modified - only missing keys are added with default values.`,
	Args: cobra.NoArgs,
	RunE: runConfigMigrate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configStatusCmd)
	configCmd.AddCommand(configMigrateCmd)
	configMigrateCmd.Flags().BoolVarP(&configYes, "yes", "y", false, "skip confirmation prompt")
}

// addedKeys counts the changes a migration would write.
func addedKeys(changes []config.KeyChange) int {
	n := 0
	for _, c := range changes {
		if c.Type == config.KeyChangeAdded {
			n++
		}
	}
	return n
}

// runConfigStatus shows config file path and migration status.
func runConfigStatus(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	renderer := styles.NewConfigRenderer(a.Theme)
	configFile := a.ConfigManager.GetConfigFile()

	changes, err := config.NewMigrator().DetectChanges(configFile)
	if err != nil {
		fmt.Fprintln(out, renderer.RenderError(err))
		return nil
	}
	if len(changes) == 0 {
		fmt.Fprintln(out, renderer.RenderUpToDate(configFile))
		return nil
	}

	fmt.Fprintln(out, renderer.RenderConfigInfo(configFile, addedKeys(changes)))
	fmt.Fprint(out, config.FormatChangesAsDiff(changes))
	fmt.Fprintln(out, renderer.RenderMigrateHint())
	return nil
}

// runConfigMigrate runs the migration with optional confirmation.
func runConfigMigrate(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	renderer := styles.NewConfigRenderer(a.Theme)
	configFile := a.ConfigManager.GetConfigFile()

	if _, statErr := os.Stat(configFile); errors.Is(statErr, fs.ErrNotExist) {
		fmt.Fprintln(out, renderer.RenderError(fmt.Errorf("no config file at %s", configFile)))
		return nil
	}

	migrator := config.NewMigrator()
	changes, err := migrator.DetectChanges(configFile)
	if err != nil {
		fmt.Fprintln(out, renderer.RenderError(err))
		return nil
	}
	if len(changes) == 0 {
		fmt.Fprintln(out, renderer.RenderUpToDate(configFile))
		return nil
	}

	fmt.Fprintln(out, renderer.RenderConfigInfo(configFile, addedKeys(changes)))
	fmt.Fprint(out, config.FormatChangesAsDiff(changes))

	if !configYes {
		return runMigrateWithConfirmation(cmd, migrator, renderer, a.Theme, configFile)
	}

	applied, err := migrator.Migrate(configFile)
	if err != nil {
		fmt.Fprintln(out, renderer.RenderError(err))
		return nil
	}
	fmt.Fprintln(out, renderer.RenderMigrationSuccess(len(applied), configFile))
	return nil
}

// migrateState represents the current state of the migrate confirmation.
type migrateState int

const (
	migrateStateConfirm migrateState = iota
	migrateStateRunning
	migrateStateDone
)

// migrateModel is the bubbletea model for the migrate confirmation.
type migrateModel struct {
	confirm    styles.ConfirmModel
	state      migrateState
	migrator   *config.Migrator
	configFile string

	applied int
	err     error
}

// migrateResultMsg is sent when the migration completes.
type migrateResultMsg struct {
	applied []config.KeyChange
	err     error
}

func newMigrateModel(theme *styles.Theme, migrator *config.Migrator, configFile string) migrateModel {
	return migrateModel{
		confirm:    styles.NewConfirm(theme, "Add these settings with default values?"),
		state:      migrateStateConfirm,
		migrator:   migrator,
		configFile: configFile,
	}
}

func (m migrateModel) Init() tea.Cmd {
	return nil
}

func (m migrateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(migrateResultMsg); ok {
		m.state = migrateStateDone
		m.applied = len(msg.applied)
		m.err = msg.err
		return m, tea.Quit
	}

	if m.state != migrateStateConfirm {
		return m, nil
	}
	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)
	if !m.confirm.Done() {
		return m, cmd
	}
	if !m.confirm.Result() {
		m.state = migrateStateDone
		return m, tea.Quit
	}
	m.state = migrateStateRunning
	return m, m.runMigration()
}

func (m migrateModel) View() string {
	if m.state != migrateStateConfirm {
		return ""
	}
	return m.confirm.View()
}

func (m migrateModel) runMigration() tea.Cmd {
	return func() tea.Msg {
		applied, err := m.migrator.Migrate(m.configFile)
		return migrateResultMsg{applied: applied, err: err}
	}
}

// runMigrateWithConfirmation asks for confirmation in a bubbletea program
// bound to the command's streams, then reports the outcome.
func runMigrateWithConfirmation(
	cmd *cobra.Command,
	migrator *config.Migrator,
	renderer *styles.ConfigRenderer,
	theme *styles.Theme,
	configFile string,
) error {
	out := cmd.OutOrStdout()
	opts := []tea.ProgramOption{tea.WithContext(cmd.Context()), tea.WithOutput(out)}
	if in := cmd.InOrStdin(); in != os.Stdin {
		opts = append(opts, tea.WithInput(in))
	}

	final, err := tea.NewProgram(newMigrateModel(theme, migrator, configFile), opts...).Run()
	if err != nil {
		return fmt.Errorf("migrate confirmation: %w", err)
	}

	m, ok := final.(migrateModel)
	if !ok {
		return nil
	}
	switch {
	case m.err != nil:
		fmt.Fprintln(out, renderer.RenderError(m.err))
	case m.confirm.Result():
		fmt.Fprintln(out, renderer.RenderMigrationSuccess(m.applied, configFile))
	}
	return nil
}
