package config

import "github.com/invopop/jsonschema"

// Schema returns the JSON schema for rallylog config files.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		ExpandedStruct: true,
		FieldNameTag:   "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "rallylog configuration"
	schema.Description = "Schema for rallylog.yml and rallylog.toml."

	// Every key is optional; unset keys fall back to the defaults.
	schema.Required = nil
	return schema
}
