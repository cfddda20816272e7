package serializer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML writes block-style YAML payloads.
type YAML struct{}

// Format implements port.DockSerializer.
func (YAML) Format() string { return FormatYAML }

// Serialize implements port.DockSerializer.
func (YAML) Serialize(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	return buf.String(), nil
}

// Deserialize implements port.DockSerializer.
func (YAML) Deserialize(data string, v any) error {
	dec := yaml.NewDecoder(bytes.NewBufferString(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("unmarshal yaml: %w", err)
	}
	return nil
}
