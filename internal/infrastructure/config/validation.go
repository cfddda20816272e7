package config

import (
	"fmt"
	"strings"
)

// validateConfig validates configuration values and returns every problem at once.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(&config.Logging)...)
	validationErrors = append(validationErrors, validateDocking(&config.Docking)...)
	validationErrors = append(validationErrors, validateWorkspace(&config.Workspace)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) []string {
	var errs []string

	switch strings.ToLower(cfg.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error (got %q)", cfg.Level))
	}
	switch strings.ToLower(cfg.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("logging.format must be console or json (got %q)", cfg.Format))
	}
	if cfg.MaxSizeMB <= 0 {
		errs = append(errs, "logging.max_size_mb must be positive")
	}
	if cfg.MaxBackups < 0 {
		errs = append(errs, "logging.max_backups must be non-negative")
	}
	if cfg.MaxAgeDays < 0 {
		errs = append(errs, "logging.max_age_days must be non-negative")
	}
	return errs
}

func validateDocking(cfg *DockingConfig) []string {
	var errs []string

	if cfg.FloatDefaultWidth <= 0 {
		errs = append(errs, "docking.float_default_width must be positive")
	}
	if cfg.FloatDefaultHeight <= 0 {
		errs = append(errs, "docking.float_default_height must be positive")
	}
	if cfg.CascadeOffset < 0 {
		errs = append(errs, "docking.cascade_offset must be non-negative")
	}
	return errs
}

func validateWorkspace(cfg *WorkspaceConfig) []string {
	var errs []string

	if strings.TrimSpace(cfg.Default) == "" {
		errs = append(errs, "workspace.default cannot be empty")
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "yaml", "yml":
	default:
		errs = append(errs, fmt.Sprintf("workspace.format must be json or yaml (got %q)", cfg.Format))
	}
	if cfg.AutosaveIntervalMs < minimumAutosaveIntervalMs {
		errs = append(errs, fmt.Sprintf("workspace.autosave_interval_ms must be at least %d", minimumAutosaveIntervalMs))
	}
	return errs
}
