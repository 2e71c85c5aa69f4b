package config

import (
	"errors"

	"github.com/hansbonini/nanitools/pkg/common"
	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// fileSchema describes the configuration file. Unknown keys are rejected so
// a misspelled column key does not silently fall back to its default.
const fileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "character_sheet": {"type": "string"},
    "stage_sheet": {"type": "string"},
    "extension": {"type": "string"},
    "terminator": {"type": "string"},
    "columns": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "display_name": {"type": "string"},
        "id": {"type": "string"},
        "has_portrait": {"type": "string"},
        "speaker": {"type": "string"},
        "dialogue": {"type": "string"},
        "choice": {"type": "string"}
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(fileSchema)

// checkSchema validates the raw YAML document against fileSchema.
// An empty document is valid and leaves every default in place.
func checkSchema(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return common.FormatError(common.ErrFailedToParseConfig, err)
	}
	if doc == nil {
		return nil
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return common.FormatError(common.ErrInvalidConfig, err)
	}
	if result.Valid() {
		return nil
	}

	var problems []error
	for _, e := range result.Errors() {
		problems = append(problems, errors.New(e.String()))
	}
	return common.FormatError(common.ErrInvalidConfig, errors.Join(problems...))
}
