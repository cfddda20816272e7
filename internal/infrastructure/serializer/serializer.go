// Package serializer provides the layout payload formats used by workspaces.
package serializer

import (
	"fmt"
	"strings"

	"github.com/bnema/dockyard/internal/application/port"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// New returns the serializer for a format name.
func New(format string) (port.DockSerializer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON, "":
		return JSON{}, nil
	case FormatYAML, "yml":
		return YAML{}, nil
	}
	return nil, fmt.Errorf("unknown layout format %q", format)
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatJSON, FormatYAML}
}
