package profiles

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const profileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["profiles"],
  "properties": {
    "profiles": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "base_url", "api_key"],
        "properties": {
          "name":     {"type": "string"},
          "base_url": {"type": "string"},
          "api_key":  {"type": "string"}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(profileSchema)

// validate checks raw file content against the profile file schema. Invalid
// JSON surfaces as an error from gojsonschema as well.
func validate(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var errorMessages []string
		for _, desc := range result.Errors() {
			errorMessages = append(errorMessages, desc.String())
		}
		return fmt.Errorf("schema validation failed:\n  - %s", strings.Join(errorMessages, "\n  - "))
	}
	return nil
}
