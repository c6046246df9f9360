package emitter

import (
	"tschema/internal/ast"
	"tschema/internal/schema"
)

// emitType maps a type expression to its schema.
func (e *Emitter) emitType(t ast.TypeNode) (*schema.Schema, error) {
	switch n := t.(type) {
	case *ast.PrimitiveType:
		return emitPrimitive(n), nil

	case *ast.StringLit:
		return &schema.Schema{Const: n.Value}, nil

	case *ast.NumberLit:
		return &schema.Schema{Const: n.Value}, nil

	case *ast.BoolLit:
		return &schema.Schema{Const: n.Value}, nil

	case *ast.ObjectType:
		return e.emitObject(&objParts{props: n.Props, index: n.Index}, nil)

	case *ast.ArrayType:
		items, err := e.emitType(n.Elem)
		if err != nil {
			return nil, err
		}
		return &schema.Schema{Type: schema.TypeValue{"array"}, Items: items}, nil

	case *ast.TupleType:
		return e.emitTuple(n)

	case *ast.UnionType:
		return e.emitUnion(n)

	case *ast.IntersectionType:
		return e.emitIntersection(n)

	case *ast.ParenType:
		return e.emitType(n.Inner)

	case *ast.RecordType:
		return e.emitRecord(n)

	case *ast.TemplateLitType:
		// best effort: template structure is not expressible
		return &schema.Schema{Type: schema.TypeValue{"string"}}, nil

	case *ast.MappedType:
		return &schema.Schema{Type: schema.TypeValue{"object"}}, nil

	case *ast.RefType:
		return e.emitRef(n)
	}
	return &schema.Schema{}, nil
}

func emitPrimitive(p *ast.PrimitiveType) *schema.Schema {
	switch p.Name {
	case "string", "number", "boolean", "null":
		return &schema.Schema{Type: schema.TypeValue{p.Name}}
	case "bigint":
		return &schema.Schema{Type: schema.TypeValue{"integer"}}
	case "object":
		return &schema.Schema{Type: schema.TypeValue{"object"}}
	case "never":
		return &schema.Schema{Not: &schema.Schema{}}
	default:
		// undefined, void, any, unknown: accepts anything
		return &schema.Schema{}
	}
}

func (e *Emitter) emitIntersection(n *ast.IntersectionType) (*schema.Schema, error) {
	if len(n.Members) == 1 {
		return e.emitType(n.Members[0])
	}
	all := make([]*schema.Schema, 0, len(n.Members))
	for _, m := range n.Members {
		s, err := e.emitType(m)
		if err != nil {
			return nil, err
		}
		all = append(all, s)
	}
	return &schema.Schema{AllOf: all}, nil
}

// emitTuple maps a tuple to prefixItems with min/max bounds. A rest
// element becomes `items` and lifts the upper bound.
func (e *Emitter) emitTuple(n *ast.TupleType) (*schema.Schema, error) {
	s := &schema.Schema{Type: schema.TypeValue{"array"}}
	required := 0
	for _, el := range n.Elements {
		elemSchema, err := e.emitType(el.Type)
		if err != nil {
			return nil, err
		}
		if el.Rest {
			s.Items = elemSchema
			continue
		}
		s.PrefixItems = append(s.PrefixItems, elemSchema)
		if !el.Optional {
			required++
		}
	}
	s.MinItems = intPtr(required)
	if s.Items == nil {
		s.MaxItems = intPtr(len(s.PrefixItems))
	}
	return s, nil
}

// emitRecord maps Record<K, V>. A literal-keyed K becomes explicit
// properties (all required); anything else keys an open object.
func (e *Emitter) emitRecord(n *ast.RecordType) (*schema.Schema, error) {
	if keys, ok := e.literalKeys(n.Key); ok && len(keys) > 0 {
		s := &schema.Schema{Type: schema.TypeValue{"object"}, Properties: schema.NewMap()}
		for _, k := range keys {
			vs, err := e.emitType(n.Value)
			if err != nil {
				return nil, err
			}
			s.Properties.Set(k, vs)
			s.Required = append(s.Required, k)
		}
		return s, nil
	}
	vs, err := e.emitType(n.Value)
	if err != nil {
		return nil, err
	}
	return &schema.Schema{
		Type:                 schema.TypeValue{"object"},
		AdditionalProperties: schema.Of(vs),
	}, nil
}

// emitRef resolves a reference: utility types first, then inline generic
// instantiation, then the built-in Date mapping, and finally a `$defs`
// pointer.
func (e *Emitter) emitRef(n *ast.RefType) (*schema.Schema, error) {
	if s, handled, err := e.emitUtility(n); handled {
		return s, err
	}

	if d, ok := e.lookup(n.Name); ok {
		if d.IsGeneric() && len(n.Args) > 0 {
			if e.depth >= maxExpandDepth {
				return &schema.Schema{}, nil
			}
			e.depth++
			defer func() { e.depth-- }()
			return e.emitType(e.instantiate(d, n.Args))
		}
		return e.refTo(n.Name), nil
	}

	if n.Name == "Date" && len(n.Args) == 0 {
		return &schema.Schema{Type: schema.TypeValue{"string"}, Format: "date-time"}, nil
	}
	return e.refTo(n.Name), nil
}

// emitUtility handles the built-in generic names with known semantics.
// handled=false lets the caller fall through to declaration lookup, so a
// user type that shadows a utility name keeps working.
func (e *Emitter) emitUtility(n *ast.RefType) (*schema.Schema, bool, error) {
	if len(n.Args) == 0 {
		return nil, false, nil
	}
	if _, declared := e.lookup(n.Name); declared {
		return nil, false, nil
	}

	switch n.Name {
	case "Partial", "Required", "Pick", "Omit":
		parts, ok, err := e.objectParts(n)
		if err != nil {
			return nil, true, err
		}
		if !ok {
			// unresolvable base: emit it unchanged
			s, err := e.emitType(n.Args[0])
			return s, true, err
		}
		s, err := e.emitObject(parts, nil)
		return s, true, err

	case "Readonly", "NonNullable":
		s, err := e.emitType(n.Args[0])
		return s, true, err

	case "Promise":
		s, err := e.emitType(n.Args[0])
		return s, true, err

	case "Set":
		items, err := e.emitType(n.Args[0])
		if err != nil {
			return nil, true, err
		}
		return &schema.Schema{
			Type:        schema.TypeValue{"array"},
			Items:       items,
			UniqueItems: true,
		}, true, nil

	case "Map":
		if len(n.Args) != 2 {
			return nil, false, nil
		}
		vs, err := e.emitType(n.Args[1])
		if err != nil {
			return nil, true, err
		}
		return &schema.Schema{
			Type:                 schema.TypeValue{"object"},
			AdditionalProperties: schema.Of(vs),
		}, true, nil
	}
	return nil, false, nil
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
