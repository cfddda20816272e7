package config

const (
	defaultLogMaxSizeMB       = 10
	defaultLogMaxBackups      = 5
	defaultLogMaxAgeDays      = 7
	defaultFloatWidth         = 300
	defaultFloatHeight        = 400
	defaultCascadeOffset      = 24
	defaultWorkspaceName      = "default"
	defaultAutosaveIntervalMs = 2000
	minimumAutosaveIntervalMs = 100
	defaultWorkspaceFormat    = "json"
	defaultLoggingLevel       = "info"
	defaultLoggingFormat      = "console"
)

// DefaultConfig returns the default configuration. Database.Path and
// Logging.LogDir stay empty and resolve to XDG locations on load.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      defaultLoggingLevel,
			Format:     defaultLoggingFormat,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
			Compress:   true,
		},
		Docking: DockingConfig{
			FloatDefaultWidth:  defaultFloatWidth,
			FloatDefaultHeight: defaultFloatHeight,
			CascadeOffset:      defaultCascadeOffset,
		},
		Workspace: WorkspaceConfig{
			Default:            defaultWorkspaceName,
			Format:             defaultWorkspaceFormat,
			AutosaveIntervalMs: defaultAutosaveIntervalMs,
		},
	}
}
