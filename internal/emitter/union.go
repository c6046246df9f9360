package emitter

import (
	"tschema/internal/ast"
	"tschema/internal/schema"
)

// emitUnion flattens nested unions and applies the union emission rules:
// literal-only unions become enums, a single member plus null/undefined
// becomes a nullable type, everything else becomes anyOf.
func (e *Emitter) emitUnion(n *ast.UnionType) (*schema.Schema, error) {
	members := flattenUnion(n.Members)

	if vals, ok := allStringLits(members); ok {
		return &schema.Schema{Type: schema.TypeValue{"string"}, Enum: vals}, nil
	}
	if vals, ok := allNumberLits(members); ok {
		return &schema.Schema{Type: schema.TypeValue{"number"}, Enum: vals}, nil
	}

	var rest []ast.TypeNode
	sawNull := false
	for _, m := range members {
		if isNullish(m) {
			sawNull = true
			continue
		}
		rest = append(rest, m)
	}

	if sawNull && len(rest) == 0 {
		return &schema.Schema{Type: schema.TypeValue{"null"}}, nil
	}

	if sawNull && len(rest) == 1 {
		s, err := e.emitType(rest[0])
		if err != nil {
			return nil, err
		}
		if name, single := s.Type.Single(); single {
			s.Type = schema.TypeValue{name, "null"}
			return s, nil
		}
		// a composite member cannot carry a type list
		return &schema.Schema{AnyOf: []*schema.Schema{
			s,
			{Type: schema.TypeValue{"null"}},
		}}, nil
	}

	anyOf := make([]*schema.Schema, 0, len(members))
	for _, m := range members {
		s, err := e.emitType(m)
		if err != nil {
			return nil, err
		}
		anyOf = append(anyOf, s)
	}
	return &schema.Schema{AnyOf: anyOf}, nil
}

// flattenUnion recursively splices nested unions, looking through
// parentheses.
func flattenUnion(members []ast.TypeNode) []ast.TypeNode {
	var out []ast.TypeNode
	for _, m := range members {
		switch n := m.(type) {
		case *ast.UnionType:
			out = append(out, flattenUnion(n.Members)...)
		case *ast.ParenType:
			out = append(out, flattenUnion([]ast.TypeNode{n.Inner})...)
		default:
			out = append(out, m)
		}
	}
	return out
}

func allStringLits(members []ast.TypeNode) ([]any, bool) {
	vals := make([]any, 0, len(members))
	for _, m := range members {
		lit, ok := m.(*ast.StringLit)
		if !ok {
			return nil, false
		}
		vals = append(vals, lit.Value)
	}
	return vals, true
}

func allNumberLits(members []ast.TypeNode) ([]any, bool) {
	vals := make([]any, 0, len(members))
	for _, m := range members {
		lit, ok := m.(*ast.NumberLit)
		if !ok {
			return nil, false
		}
		vals = append(vals, lit.Value)
	}
	return vals, true
}

func isNullish(t ast.TypeNode) bool {
	p, ok := t.(*ast.PrimitiveType)
	return ok && (p.Name == "null" || p.Name == "undefined")
}
