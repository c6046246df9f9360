package emitter

import (
	"tschema/internal/ast"
)

// objParts is the resolved property set of an object-like type, used for
// interface flattening and the object-shaped utility types.
type objParts struct {
	props []ast.Property
	index *ast.IndexSignature
}

// merge folds src into p. A property redeclared later replaces the earlier
// one in place, keeping its original position; a later index signature
// wins.
func (p *objParts) merge(src *objParts) {
	for _, prop := range src.props {
		replaced := false
		for i := range p.props {
			if p.props[i].Name == prop.Name {
				p.props[i] = prop
				replaced = true
				break
			}
		}
		if !replaced {
			p.props = append(p.props, prop)
		}
	}
	if src.index != nil {
		p.index = src.index
	}
}

// interfaceParts resolves an interface declaration to its flattened
// property set: extends clauses first, own members overriding.
func (e *Emitter) interfaceParts(d *ast.Declaration) (*objParts, error) {
	parts := &objParts{}
	for _, ext := range d.Extends {
		extParts, ok, err := e.objectParts(ext)
		if err != nil {
			return nil, err
		}
		if ok {
			parts.merge(extParts)
		}
	}
	parts.merge(&objParts{props: d.Props, index: d.Index})
	return parts, nil
}

// objectParts resolves a type expression to object parts when it is
// object-like: an inline object, a reference to an interface or
// object-shaped alias, an object utility type, a generic instantiation,
// or an intersection of such. ok=false means the type is not resolvable
// to a plain property set.
func (e *Emitter) objectParts(t ast.TypeNode) (*objParts, bool, error) {
	if e.depth >= maxExpandDepth {
		return nil, false, nil
	}
	e.depth++
	defer func() { e.depth-- }()

	switch n := t.(type) {
	case *ast.ObjectType:
		return &objParts{props: n.Props, index: n.Index}, true, nil

	case *ast.ParenType:
		return e.objectParts(n.Inner)

	case *ast.IntersectionType:
		parts := &objParts{}
		for _, m := range n.Members {
			mp, ok, err := e.objectParts(m)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, nil
			}
			parts.merge(mp)
		}
		return parts, true, nil

	case *ast.RefType:
		return e.refParts(n)
	}
	return nil, false, nil
}

// refParts resolves a reference to object parts, handling the
// object-shaped utility types before declared names.
func (e *Emitter) refParts(ref *ast.RefType) (*objParts, bool, error) {
	switch ref.Name {
	case "Partial", "Required", "Readonly", "NonNullable":
		if len(ref.Args) != 1 {
			break
		}
		parts, ok, err := e.objectParts(ref.Args[0])
		if err != nil || !ok {
			return nil, ok, err
		}
		switch ref.Name {
		case "Partial":
			parts = markOptional(parts, true)
		case "Required":
			parts = markOptional(parts, false)
		}
		return parts, true, nil

	case "Pick", "Omit":
		if len(ref.Args) != 2 {
			break
		}
		parts, ok, err := e.objectParts(ref.Args[0])
		if err != nil || !ok {
			return nil, ok, err
		}
		keys, literal := e.literalKeys(ref.Args[1])
		if !literal {
			// non-literal key set: the base type passes through unchanged
			return parts, true, nil
		}
		return filterParts(parts, keys, ref.Name == "Pick"), true, nil
	}

	d, ok := e.lookup(ref.Name)
	if !ok {
		return nil, false, nil
	}
	if d.IsGeneric() && len(ref.Args) > 0 {
		inst := e.instantiate(d, ref.Args)
		return e.objectParts(inst)
	}
	switch d.Kind {
	case ast.DeclInterface:
		parts, err := e.interfaceParts(d)
		if err != nil {
			return nil, false, err
		}
		return parts, true, nil
	case ast.DeclTypeAlias:
		return e.objectParts(d.Alias)
	}
	return nil, false, nil
}

// markOptional returns a copy of parts with every property's optionality
// forced to the given value.
func markOptional(parts *objParts, optional bool) *objParts {
	out := &objParts{index: parts.index}
	out.props = make([]ast.Property, len(parts.props))
	for i, p := range parts.props {
		p.Optional = optional
		out.props[i] = p
	}
	return out
}

// filterParts keeps (Pick) or drops (Omit) the named properties.
func filterParts(parts *objParts, keys []string, keep bool) *objParts {
	named := make(map[string]bool, len(keys))
	for _, k := range keys {
		named[k] = true
	}
	out := &objParts{index: parts.index}
	for _, p := range parts.props {
		if named[p.Name] == keep {
			out.props = append(out.props, p)
		}
	}
	return out
}

// literalKeys extracts a string-literal key set from K in Pick/Omit/Record
// position: a single literal, a union of literals, or a reference chain
// resolving to one.
func (e *Emitter) literalKeys(t ast.TypeNode) ([]string, bool) {
	if e.depth >= maxExpandDepth {
		return nil, false
	}
	e.depth++
	defer func() { e.depth-- }()

	switch n := t.(type) {
	case *ast.StringLit:
		return []string{n.Value}, true
	case *ast.ParenType:
		return e.literalKeys(n.Inner)
	case *ast.UnionType:
		var keys []string
		for _, m := range n.Members {
			ks, ok := e.literalKeys(m)
			if !ok {
				return nil, false
			}
			keys = append(keys, ks...)
		}
		return keys, true
	case *ast.RefType:
		if len(n.Args) > 0 {
			return nil, false
		}
		d, ok := e.lookup(n.Name)
		if !ok || d.Kind != ast.DeclTypeAlias {
			return nil, false
		}
		return e.literalKeys(d.Alias)
	}
	return nil, false
}
