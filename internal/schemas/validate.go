// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schemas validates letter files against the embedded JSON Schema
// before they are decoded.
package schemas

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed letter.schema.json
var letterSchema string

// LetterSchema returns the JSON Schema of a letter file.
func LetterSchema() string {
	return letterSchema
}

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError reports a schema that could not be compiled.
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema
	compileErr  error
)

func letterValidator() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(letterSchema))
	})
	return compiled, compileErr
}

// ValidateLetter checks a decoded document (maps, slices, and scalars as
// produced by a YAML or JSON decoder) against the letter schema.
func ValidateLetter(doc any) error {
	return validate(gojsonschema.NewGoLoader(doc))
}

// ValidateLetterJSON checks raw JSON against the letter schema.
func ValidateLetterJSON(data []byte) error {
	return validate(gojsonschema.NewBytesLoader(data))
}

func validate(doc gojsonschema.JSONLoader) error {
	schema, err := letterValidator()
	if err != nil {
		return &SchemaLoadError{Message: "compiling letter schema", Cause: err}
	}

	result, err := schema.Validate(doc)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	sort.Slice(ve.Errors, func(i, j int) bool {
		if ve.Errors[i].Field != ve.Errors[j].Field {
			return ve.Errors[i].Field < ve.Errors[j].Field
		}
		return ve.Errors[i].Message < ve.Errors[j].Message
	})
	return ve
}
