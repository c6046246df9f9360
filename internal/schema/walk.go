package schema

// children returns every directly nested sub-schema, in a stable order.
func children(s *Schema) []*Schema {
	if s == nil {
		return nil
	}
	var out []*Schema
	if s.Properties != nil {
		for _, k := range s.Properties.Keys() {
			v, _ := s.Properties.Get(k)
			out = append(out, v)
		}
	}
	if s.AdditionalProperties != nil && s.AdditionalProperties.Schema != nil {
		out = append(out, s.AdditionalProperties.Schema)
	}
	out = append(out, s.Items)
	out = append(out, s.PrefixItems...)
	out = append(out, s.AnyOf...)
	out = append(out, s.AllOf...)
	out = append(out, s.Not)
	for _, m := range []*Map{s.Defs, s.Definitions} {
		if m != nil {
			for _, k := range m.Keys() {
				v, _ := m.Get(k)
				out = append(out, v)
			}
		}
	}
	return out
}

// WalkRefs calls fn for every `$ref` value inside s, including s itself.
func WalkRefs(s *Schema, fn func(ref string)) {
	if s == nil {
		return
	}
	if s.Ref != "" {
		fn(s.Ref)
	}
	for _, c := range children(s) {
		WalkRefs(c, fn)
	}
}

// RewriteRefs replaces every `$ref` value inside s through fn, in place.
func RewriteRefs(s *Schema, fn func(string) string) {
	if s == nil {
		return
	}
	if s.Ref != "" {
		s.Ref = fn(s.Ref)
	}
	for _, c := range children(s) {
		RewriteRefs(c, fn)
	}
}

// Clone deep-copies the schema tree. Scalar payloads (const, default,
// examples) are shared; they are never mutated after emission.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s

	if s.Type != nil {
		out.Type = append(TypeValue(nil), s.Type...)
	}
	out.Enum = append([]any(nil), s.Enum...)
	out.Required = append([]string(nil), s.Required...)
	out.Examples = append([]any(nil), s.Examples...)

	out.Properties = cloneMap(s.Properties)
	out.Defs = cloneMap(s.Defs)
	out.Definitions = cloneMap(s.Definitions)

	if s.AdditionalProperties != nil {
		ap := *s.AdditionalProperties
		ap.Schema = s.AdditionalProperties.Schema.Clone()
		out.AdditionalProperties = &ap
	}
	out.Items = s.Items.Clone()
	out.Not = s.Not.Clone()
	out.PrefixItems = cloneSlice(s.PrefixItems)
	out.AnyOf = cloneSlice(s.AnyOf)
	out.AllOf = cloneSlice(s.AllOf)

	out.MinItems = cloneInt(s.MinItems)
	out.MaxItems = cloneInt(s.MaxItems)
	out.MinLength = cloneInt(s.MinLength)
	out.MaxLength = cloneInt(s.MaxLength)
	out.Minimum = cloneFloat(s.Minimum)
	out.Maximum = cloneFloat(s.Maximum)
	out.MultipleOf = cloneFloat(s.MultipleOf)

	return &out
}

func cloneMap(m *Map) *Map {
	if m == nil {
		return nil
	}
	out := NewMap()
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		out.Set(k, v.Clone())
	}
	return out
}

func cloneSlice(s []*Schema) []*Schema {
	if s == nil {
		return nil
	}
	out := make([]*Schema, len(s))
	for i, v := range s {
		out[i] = v.Clone()
	}
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
