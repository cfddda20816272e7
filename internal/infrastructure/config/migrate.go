package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// KeyChangeType classifies a difference between a user file and the defaults.
type KeyChangeType int

const (
	// KeyChangeAdded is a default key missing from the user file.
	KeyChangeAdded KeyChangeType = iota
	// KeyChangeRemoved is a user key dockyard no longer reads.
	KeyChangeRemoved
)

// KeyChange is one key-level difference found by the Migrator.
type KeyChange struct {
	Type  KeyChangeType
	Key   string
	Value string
}

// Migrator compares a config file with the current defaults and merges
// missing keys into it.
type Migrator struct {
	defaultViper *viper.Viper
}

// NewMigrator creates a new Migrator instance.
func NewMigrator() *Migrator {
	v := viper.New()
	v.SetConfigType("toml")
	m := &Manager{viper: v}
	m.setDefaults()

	return &Migrator{defaultViper: v}
}

// DetectChanges lists added and deprecated keys of configFile, sorted by key.
// A missing file has no changes since Load writes every default.
func (m *Migrator) DetectChanges(configFile string) ([]KeyChange, error) {
	userKeys, err := readUserKeys(configFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	defaults := m.defaultKeys()
	var changes []KeyChange
	for _, key := range defaults {
		if _, ok := userKeys[key]; !ok {
			changes = append(changes, KeyChange{Type: KeyChangeAdded, Key: key, Value: formatValue(m.defaultViper.Get(key))})
		}
	}

	known := make(map[string]bool, len(defaults)+1)
	for _, key := range defaults {
		known[key] = true
	}
	known["database.path"] = true
	for key, value := range userKeys {
		if !known[key] {
			changes = append(changes, KeyChange{Type: KeyChangeRemoved, Key: key, Value: formatValue(value)})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Key != changes[j].Key {
			return changes[i].Key < changes[j].Key
		}
		return changes[i].Type < changes[j].Type
	})
	return changes, nil
}

// Migrate rewrites configFile with every missing default key filled in.
// User values are kept. Deprecated keys are dropped from the rewritten file.
func (m *Migrator) Migrate(configFile string) ([]KeyChange, error) {
	changes, err := m.DetectChanges(configFile)
	if err != nil || len(changes) == 0 {
		return nil, err
	}

	userViper := viper.New()
	userViper.SetConfigFile(configFile)
	userViper.SetConfigType("toml")
	mgr := &Manager{viper: userViper}
	mgr.setDefaults()
	if err := userViper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	merged := &Config{}
	if err := userViper.Unmarshal(merged); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := WriteConfigOrdered(merged, configFile); err != nil {
		return nil, err
	}
	return changes, nil
}

// FormatChangesAsDiff renders changes as a diff for display.
func FormatChangesAsDiff(changes []KeyChange) string {
	if len(changes) == 0 {
		return "No changes detected.\n"
	}

	var sb strings.Builder
	sb.WriteString("Config migration changes:\n\n")
	for _, change := range changes {
		switch change.Type {
		case KeyChangeAdded:
			fmt.Fprintf(&sb, "  + %s = %s\n", change.Key, change.Value)
		case KeyChangeRemoved:
			fmt.Fprintf(&sb, "  - %s = %s (deprecated)\n", change.Key, change.Value)
		}
	}
	return sb.String()
}

// defaultKeys skips database.path, which is resolved at load time.
func (m *Migrator) defaultKeys() []string {
	keys := m.defaultViper.AllKeys()
	filtered := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "database.path" {
			continue
		}
		filtered = append(filtered, key)
	}
	sort.Strings(filtered)
	return filtered
}

func readUserKeys(configFile string) (map[string]any, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	keys := make(map[string]any)
	flatten(raw, "", keys)
	return keys, nil
}

func flatten(data map[string]any, prefix string, out map[string]any) {
	for k, v := range data {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(nested, key, out)
			continue
		}
		out[key] = v
	}
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case nil:
		return "<unset>"
	default:
		return fmt.Sprintf("%v", v)
	}
}
