// Package schemas provides JSON Schema validation for structured blocks
// recovered from free-form model output.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// optimizationSchema describes the optimizer's recommendation object.
// Array bounds are deliberately loose: models frequently return one hook
// or eight hashtags, and those results are still usable.
const optimizationSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "hashtags": {
      "type": "array",
      "items": {"type": "string"},
      "minItems": 1
    },
    "abHooks": {
      "type": "array",
      "items": {"type": "string"},
      "minItems": 1
    },
    "schedulingSuggestion": {"type": "string"}
  },
  "required": ["hashtags", "abHooks", "schedulingSuggestion"]
}`

var (
	optimizationOnce   sync.Once
	optimizationLoaded *gojsonschema.Schema
	optimizationErr    error
)

// ValidationError reports why a candidate block failed schema validation.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("optimization block validation failed: %s", strings.Join(e.Errors, "; "))
}

// ValidateOptimization checks a candidate JSON document against the
// optimization schema. Callers treat a validation failure the same way
// as a parse failure.
func ValidateOptimization(jsonText string) error {
	optimizationOnce.Do(func() {
		optimizationLoaded, optimizationErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(optimizationSchema))
	})
	if optimizationErr != nil {
		return fmt.Errorf("failed to compile optimization schema: %w", optimizationErr)
	}

	result, err := optimizationLoaded.Validate(gojsonschema.NewStringLoader(jsonText))
	if err != nil {
		return fmt.Errorf("failed to validate optimization block: %w", err)
	}
	if !result.Valid() {
		ve := &ValidationError{}
		for _, detail := range result.Errors() {
			ve.Errors = append(ve.Errors, detail.String())
		}
		return ve
	}
	return nil
}
