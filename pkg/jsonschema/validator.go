// Package jsonschema checks JSON documents against JSON Schema definitions.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const resourceName = "schema.json"

// ValidationErrors collects every violation found in a document.
type ValidationErrors []error

// Error joins the violations with "; ".
func (ve ValidationErrors) Error() string {
	parts := make([]string, len(ve))
	for i, err := range ve {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

// Schema is a compiled JSON Schema, reusable across documents.
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile parses and compiles a schema definition.
func Compile(schema []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return &Schema{compiled: compiled}, nil
}

// CompileFile reads and compiles the schema stored at path.
func CompileFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading schema file: %w", err)
	}
	return Compile(data)
}

// Validate checks document against the schema. A document that violates the
// schema yields ValidationErrors; a document that is not JSON yields a plain
// error.
func (s *Schema) Validate(document []byte) error {
	var value interface{}
	if err := json.Unmarshal(document, &value); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	err := s.compiled.Validate(value)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return flatten(validationErr)
	}
	return ValidationErrors{err}
}

// Validate compiles schema and checks document against it in one step.
func Validate(document, schema []byte) error {
	compiled, err := Compile(schema)
	if err != nil {
		return err
	}
	return compiled.Validate(document)
}

// flatten walks the cause tree, keeping only leaf violations that carry a
// message.
func flatten(err *jsonschema.ValidationError) ValidationErrors {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return ValidationErrors{fmt.Errorf("validation error at %s: %s", location, err.Message)}
	}

	var errs ValidationErrors
	for _, cause := range err.Causes {
		errs = append(errs, flatten(cause)...)
	}
	return errs
}
