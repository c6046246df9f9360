// Package schema holds the JSON Schema output model and its serializer.
//
// Single-document output uses the 2020-12 `$defs` keyword; batch output
// embeds draft-07 `definitions` blocks instead, deliberately, for wide
// validator compatibility. The two are kept distinct rather than unified.
package schema

import (
	"bytes"
	"encoding/json"
)

// Version2020 is the default value for `$schema`.
const Version2020 = "https://json-schema.org/draft/2020-12/schema"

// Schema is one JSON Schema document or sub-schema. Fields marshal in
// declaration order; zero values are omitted.
type Schema struct {
	SchemaURL string `json:"$schema,omitempty"`
	ID        string `json:"$id,omitempty"`
	Ref       string `json:"$ref,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Type  TypeValue `json:"type,omitempty"`
	Const any       `json:"const,omitempty"`
	Enum  []any     `json:"enum,omitempty"`

	Properties           *Map             `json:"properties,omitempty"`
	Required             []string         `json:"required,omitempty"`
	AdditionalProperties *AdditionalProps `json:"additionalProperties,omitempty"`

	Items       *Schema   `json:"items,omitempty"`
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	MinItems    *int      `json:"minItems,omitempty"`
	MaxItems    *int      `json:"maxItems,omitempty"`
	UniqueItems bool      `json:"uniqueItems,omitempty"`

	AnyOf []*Schema `json:"anyOf,omitempty"`
	AllOf []*Schema `json:"allOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`

	Minimum    *float64 `json:"minimum,omitempty"`
	Maximum    *float64 `json:"maximum,omitempty"`
	MinLength  *int     `json:"minLength,omitempty"`
	MaxLength  *int     `json:"maxLength,omitempty"`
	Pattern    string   `json:"pattern,omitempty"`
	Format     string   `json:"format,omitempty"`
	MultipleOf *float64 `json:"multipleOf,omitempty"`

	Default    any   `json:"default,omitempty"`
	Examples   []any `json:"examples,omitempty"`
	Deprecated bool  `json:"deprecated,omitempty"`
	ReadOnly   bool  `json:"readOnly,omitempty"`

	Defs        *Map `json:"$defs,omitempty"`
	Definitions *Map `json:"definitions,omitempty"`
}

// Encode renders the schema pretty-printed with two-space indentation.
func (s *Schema) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// TypeValue is the `type` keyword: a single name or a list of names.
type TypeValue []string

// MarshalJSON renders a singleton as a bare string.
func (t TypeValue) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// Single returns the type name when exactly one is set.
func (t TypeValue) Single() (string, bool) {
	if len(t) == 1 {
		return t[0], true
	}
	return "", false
}

// AdditionalProps is the `additionalProperties` keyword: a boolean or a
// sub-schema.
type AdditionalProps struct {
	IsBool bool
	Bool   bool
	Schema *Schema
}

// Bool returns an AdditionalProps carrying a boolean.
func Bool(v bool) *AdditionalProps {
	return &AdditionalProps{IsBool: true, Bool: v}
}

// Of returns an AdditionalProps carrying a sub-schema.
func Of(s *Schema) *AdditionalProps {
	return &AdditionalProps{Schema: s}
}

func (a *AdditionalProps) MarshalJSON() ([]byte, error) {
	if a.IsBool {
		return json.Marshal(a.Bool)
	}
	return json.Marshal(a.Schema)
}
