package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the configuration file
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:   "mapstructure",
		DoNotReference: true,
	}
	schema := r.Reflect(&Config{})
	schema.Title = "zero coordinator configuration"
	return json.MarshalIndent(schema, "", "  ")
}
