package emitter

import (
	"tschema/internal/ast"
)

// conventionalParams is the positional fallback table for declarations
// whose parameter names were not recorded. Parsed parameter names take
// precedence; the table keeps behavior identical for conventionally named
// sources.
var conventionalParams = []string{"T", "U", "V", "W", "K", "TKey", "TValue"}

// instantiate builds the body of a generic declaration with its type
// parameters substituted by the given arguments. The declaration itself
// is never mutated; the result is a fresh tree.
func (e *Emitter) instantiate(d *ast.Declaration, args []ast.TypeNode) ast.TypeNode {
	params := d.TypeParams
	if len(params) == 0 {
		params = conventionalParams
	}
	subst := make(map[string]ast.TypeNode, len(args))
	for i, arg := range args {
		if i >= len(params) {
			break
		}
		subst[params[i]] = arg
	}

	switch d.Kind {
	case ast.DeclTypeAlias:
		return substType(d.Alias, subst)
	case ast.DeclInterface:
		obj := &ast.ObjectType{
			Props: substProps(d.Props, subst),
			Index: substIndex(d.Index, subst),
		}
		if len(d.Extends) == 0 {
			return obj
		}
		members := make([]ast.TypeNode, 0, len(d.Extends)+1)
		for _, ext := range d.Extends {
			members = append(members, substType(ext, subst))
		}
		members = append(members, obj)
		return &ast.IntersectionType{Members: members}
	}
	return &ast.PrimitiveType{Name: "unknown"}
}

// substType replaces parameter references inside t, producing a new tree.
func substType(t ast.TypeNode, subst map[string]ast.TypeNode) ast.TypeNode {
	switch n := t.(type) {
	case *ast.RefType:
		if len(n.Args) == 0 {
			if repl, ok := subst[n.Name]; ok {
				return repl
			}
			return n
		}
		args := make([]ast.TypeNode, len(n.Args))
		for i, a := range n.Args {
			args[i] = substType(a, subst)
		}
		return &ast.RefType{Name: n.Name, Args: args}

	case *ast.ArrayType:
		return &ast.ArrayType{Elem: substType(n.Elem, subst)}

	case *ast.ParenType:
		return &ast.ParenType{Inner: substType(n.Inner, subst)}

	case *ast.UnionType:
		return &ast.UnionType{Members: substList(n.Members, subst)}

	case *ast.IntersectionType:
		return &ast.IntersectionType{Members: substList(n.Members, subst)}

	case *ast.ObjectType:
		return &ast.ObjectType{
			Props: substProps(n.Props, subst),
			Index: substIndex(n.Index, subst),
		}

	case *ast.TupleType:
		elements := make([]ast.TupleElement, len(n.Elements))
		for i, el := range n.Elements {
			el.Type = substType(el.Type, subst)
			elements[i] = el
		}
		return &ast.TupleType{Elements: elements}

	case *ast.RecordType:
		return &ast.RecordType{
			Key:   substType(n.Key, subst),
			Value: substType(n.Value, subst),
		}

	case *ast.MappedType:
		return &ast.MappedType{
			Param:      n.Param,
			Constraint: substType(n.Constraint, subst),
			Value:      substType(n.Value, subst),
			Optional:   n.Optional,
		}
	}
	// literals and primitives carry no references
	return t
}

func substList(members []ast.TypeNode, subst map[string]ast.TypeNode) []ast.TypeNode {
	out := make([]ast.TypeNode, len(members))
	for i, m := range members {
		out[i] = substType(m, subst)
	}
	return out
}

func substProps(props []ast.Property, subst map[string]ast.TypeNode) []ast.Property {
	out := make([]ast.Property, len(props))
	for i, p := range props {
		p.Type = substType(p.Type, subst)
		out[i] = p
	}
	return out
}

func substIndex(idx *ast.IndexSignature, subst map[string]ast.TypeNode) *ast.IndexSignature {
	if idx == nil {
		return nil
	}
	return &ast.IndexSignature{
		KeyName:   idx.KeyName,
		KeyType:   substType(idx.KeyType, subst),
		ValueType: substType(idx.ValueType, subst),
	}
}
