package emitter

import (
	"encoding/json"
	"strconv"
	"strings"

	"tschema/internal/ast"
	"tschema/internal/schema"
)

// applyDoc applies a JSDoc payload to a schema value: the description and
// the recognized constraint tags. Unknown tags are ignored. A no-op when
// JSDoc inclusion is disabled.
func (e *Emitter) applyDoc(s *schema.Schema, doc *ast.Doc) {
	if !e.opts.IncludeJSDoc || doc == nil {
		return
	}
	if doc.Description != "" {
		s.Description = doc.Description
	}
	for _, tag := range doc.Tags {
		applyTag(s, tag)
	}
}

func applyTag(s *schema.Schema, tag ast.Tag) {
	switch strings.ToLower(tag.Name) {
	case "minimum":
		if v, err := strconv.ParseFloat(tag.Value, 64); err == nil {
			s.Minimum = floatPtr(v)
		}
	case "maximum":
		if v, err := strconv.ParseFloat(tag.Value, 64); err == nil {
			s.Maximum = floatPtr(v)
		}
	case "multipleof":
		if v, err := strconv.ParseFloat(tag.Value, 64); err == nil {
			s.MultipleOf = floatPtr(v)
		}
	case "minlength":
		if v, err := strconv.Atoi(tag.Value); err == nil {
			s.MinLength = intPtr(v)
		}
	case "maxlength":
		if v, err := strconv.Atoi(tag.Value); err == nil {
			s.MaxLength = intPtr(v)
		}
	case "pattern":
		s.Pattern = tag.Value
	case "format":
		s.Format = tag.Value
	case "default":
		s.Default = parseTagValue(tag.Value)
	case "example", "examples":
		s.Examples = append(s.Examples, parseTagValue(tag.Value))
	case "deprecated":
		s.Deprecated = true
	case "title":
		s.Title = tag.Value
	case "additionalproperties":
		// object schemas only; an index signature's sub-schema wins
		if t, ok := s.Type.Single(); !ok || t != "object" {
			return
		}
		if s.AdditionalProperties != nil && !s.AdditionalProperties.IsBool {
			return
		}
		if v, err := strconv.ParseBool(tag.Value); err == nil {
			s.AdditionalProperties = schema.Bool(v)
		}
	}
}

// parseTagValue reads a tag payload as JSON, falling back to the raw text.
func parseTagValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
