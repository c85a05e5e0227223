// Package schemas validates LLM-produced stage artifacts against embedded
// JSON Schemas before they are persisted. Schema-invalid model output is a
// stage failure, not something to patch downstream.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed outline.json script.json qa_report.json
var schemaFS embed.FS

// Schema names accepted by Validate.
const (
	Outline  = "outline"
	Script   = "script"
	QAReport = "qa_report"
)

// FieldError is a single validation failure at a field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates the failures from one document.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("%s failed schema validation: %s", e.Schema, strings.Join(parts, "; "))
}

// Validate checks a JSON document against a named embedded schema. It
// returns *ValidationError when the document is invalid.
func Validate(name string, document []byte) error {
	schemaBytes, err := schemaFS.ReadFile(name + ".json")
	if err != nil {
		return fmt.Errorf("unknown schema %q: %w", name, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation of %s failed to run: %w", name, err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: name}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}
