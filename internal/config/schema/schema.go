// Package schema provides a JSON Schema model, builder and validator.
//
// Schemas built here describe configuration documents such as keymap files.
// They marshal to standard JSON Schema (draft 2020-12) so external tooling
// can consume them, and the Validator checks parsed documents against them.
package schema

import (
	"encoding/json"
	"fmt"
)

// Draft is the JSON Schema dialect emitted by this package.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema represents a JSON Schema definition.
//
// A Schema may also be a boolean schema: true accepts any value and false
// rejects every value. Any builds the first; Parse reads both. They marshal
// to the bare literals.
type Schema struct {
	// ID is the schema identifier ($id).
	ID string `json:"$id,omitempty"`

	// SchemaVersion is the JSON Schema dialect ($schema).
	SchemaVersion string `json:"$schema,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Type is the JSON type (string, number, integer, boolean, array, object, null).
	Type SchemaType `json:"type,omitzero"`

	// Properties defines object properties (for type: object).
	Properties map[string]*Schema `json:"properties,omitempty"`

	// AdditionalProperties applies to object members not named in
	// Properties. Nil allows anything.
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`

	// Required lists required property names.
	Required []string `json:"required,omitempty"`

	// Items defines the schema for array elements.
	Items *Schema `json:"items,omitempty"`

	Enum    []any `json:"enum,omitempty"`
	Default any   `json:"default,omitempty"`

	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	MinItems *int `json:"minItems,omitempty"`
	MaxItems *int `json:"maxItems,omitempty"`

	// AnyOf requires at least one schema to match.
	AnyOf []*Schema `json:"anyOf,omitempty"`

	// OneOf requires exactly one schema to match.
	OneOf []*Schema `json:"oneOf,omitempty"`

	// Ref references a definition ($ref), in the form "#/$defs/Name".
	Ref string `json:"$ref,omitempty"`

	// Defs contains schema definitions ($defs).
	Defs map[string]*Schema `json:"$defs,omitempty"`

	// Examples lists sample values for documentation.
	Examples []any `json:"examples,omitempty"`

	// boolean is non-nil for boolean schemas.
	boolean *bool
}

// Any returns the boolean schema that accepts every value.
func Any() *Schema {
	b := true
	return &Schema{boolean: &b}
}

// IsBoolean reports whether s is a boolean schema, and its value.
func (s *Schema) IsBoolean() (value, ok bool) {
	if s == nil || s.boolean == nil {
		return false, false
	}
	return *s.boolean, true
}

// schemaFields has the same fields as Schema without its methods.
type schemaFields Schema

// MarshalJSON writes boolean schemas as literals.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if v, ok := s.IsBoolean(); ok {
		return json.Marshal(v)
	}
	return json.Marshal((*schemaFields)(s))
}

// UnmarshalJSON accepts both boolean and object schemas.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = Schema{boolean: &b}
		return nil
	}
	var f schemaFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Schema(f)
	return nil
}

// SchemaType represents JSON Schema type(s).
// Can be a single type or an array of types.
type SchemaType struct {
	Types []string
}

// UnmarshalJSON handles both single type and array of types.
func (t *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		t.Types = []string{single}
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("type must be string or array of strings: %w", err)
	}
	t.Types = arr
	return nil
}

// MarshalJSON outputs single type as string, multiple as array.
func (t SchemaType) MarshalJSON() ([]byte, error) {
	if len(t.Types) == 1 {
		return json.Marshal(t.Types[0])
	}
	return json.Marshal(t.Types)
}

// IsZero lets encoding/json omit an empty type.
func (t SchemaType) IsZero() bool {
	return len(t.Types) == 0
}

// String returns the type as a string.
func (t SchemaType) String() string {
	if len(t.Types) == 1 {
		return t.Types[0]
	}
	return fmt.Sprintf("%v", t.Types)
}

// Parse decodes a JSON Schema document. Keywords the validator does not know
// are ignored.
func Parse(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return s, nil
}

// Definition returns the named entry of $defs, or nil.
func (s *Schema) Definition(name string) *Schema {
	if s == nil {
		return nil
	}
	return s.Defs[name]
}
