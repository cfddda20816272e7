package serializer

import (
	"encoding/json"
	"fmt"
)

// JSON writes compact JSON payloads.
type JSON struct {
	Indent bool
}

// Format implements port.DockSerializer.
func (JSON) Format() string { return FormatJSON }

// Serialize implements port.DockSerializer.
func (s JSON) Serialize(v any) (string, error) {
	var (
		data []byte
		err  error
	)
	if s.Indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	return string(data), nil
}

// Deserialize implements port.DockSerializer.
func (JSON) Deserialize(data string, v any) error {
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}
	return nil
}
