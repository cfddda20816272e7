package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

const schemaID = "https://github.com/bnema/dockyard/config.schema.json"

// GenerateSchema returns the JSON schema of config.toml.
func GenerateSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})

	schema.ID = jsonschema.ID(schemaID)
	schema.Title = "Dockyard Configuration"
	schema.Description = "Configuration schema for dockyard, a docking layout engine"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
