// Package config loads, validates and watches the dockyard configuration.
package config

// Config represents the complete configuration for dockyard.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging" toml:"logging" json:"logging"`
	Docking   DockingConfig   `mapstructure:"docking" toml:"docking" json:"docking"`
	Database  DatabaseConfig  `mapstructure:"database" toml:"database" json:"database"`
	Workspace WorkspaceConfig `mapstructure:"workspace" toml:"workspace" json:"workspace"`
}

// LoggingConfig controls log level, format and optional file output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	// EnableFileLog also writes JSON logs to LogDir with size-based rotation.
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir,omitempty"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	MaxAgeDays    int    `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days" jsonschema:"minimum=0"`
	Compress      bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}

// DockingConfig holds the layout engine tunables.
type DockingConfig struct {
	// HideToolsOnClose hides closed tools instead of removing them.
	HideToolsOnClose bool `mapstructure:"hide_tools_on_close" toml:"hide_tools_on_close" json:"hide_tools_on_close"`
	// HideDocumentsOnClose hides closed documents instead of removing them.
	HideDocumentsOnClose bool `mapstructure:"hide_documents_on_close" toml:"hide_documents_on_close" json:"hide_documents_on_close"`
	// FloatDefaultWidth and FloatDefaultHeight size a floated dockable whose bounds are unknown.
	FloatDefaultWidth  float64 `mapstructure:"float_default_width" toml:"float_default_width" json:"float_default_width" jsonschema:"exclusiveMinimum=0"`
	FloatDefaultHeight float64 `mapstructure:"float_default_height" toml:"float_default_height" json:"float_default_height" jsonschema:"exclusiveMinimum=0"`
	// CascadeOffset is the step between cascaded MDI documents.
	CascadeOffset float64 `mapstructure:"cascade_offset" toml:"cascade_offset" json:"cascade_offset" jsonschema:"minimum=0"`
}

// DatabaseConfig locates the workspace database.
type DatabaseConfig struct {
	// Path defaults to $XDG_DATA_HOME/dockyard/dockyard.db when empty.
	Path string `mapstructure:"path" toml:"path" json:"path,omitempty"`
}

// WorkspaceConfig controls workspace persistence.
type WorkspaceConfig struct {
	// Default is the workspace the CLI loads when none is named.
	Default string `mapstructure:"default" toml:"default" json:"default"`
	// Format is the layout serialization format for new saves.
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=json,enum=yaml"`
	// Autosave writes the tracked workspace back after structural edits.
	Autosave           bool `mapstructure:"autosave" toml:"autosave" json:"autosave"`
	AutosaveIntervalMs int  `mapstructure:"autosave_interval_ms" toml:"autosave_interval_ms" json:"autosave_interval_ms" jsonschema:"minimum=100"`
}
