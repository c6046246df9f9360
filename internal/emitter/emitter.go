// Package emitter turns a merged declaration list into JSON Schema.
//
// Single-document mode groups non-root declarations under 2020-12 `$defs`;
// batch mode produces self-contained schemas with draft-07 `definitions`
// blocks. The split is intentional (validator compatibility) and must not
// be unified.
package emitter

import (
	"fmt"

	"tschema/internal/ast"
	"tschema/internal/schema"
)

// maxExpandDepth bounds inline generic expansion so that a recursive
// generic cannot run the emitter into the ground.
const maxExpandDepth = 32

// Emitter emits one declaration set. It never mutates the declarations;
// generic instantiation builds fresh substituted trees.
type Emitter struct {
	opts    Options
	decls   []*ast.Declaration
	byName  map[string]*ast.Declaration
	nameMap map[string]string // original -> transformed
	depth   int               // generic expansion depth
}

// New builds an emitter over decls, applying the name transform up front
// so that collisions fail before any schema is produced.
func New(decls []*ast.Declaration, opts Options) (*Emitter, error) {
	e := &Emitter{
		opts:    opts,
		decls:   decls,
		byName:  make(map[string]*ast.Declaration, len(decls)),
		nameMap: make(map[string]string, len(decls)),
	}
	for _, d := range decls {
		if _, dup := e.byName[d.Name]; !dup {
			e.byName[d.Name] = d
		}
	}
	if err := e.buildNameMap(); err != nil {
		return nil, err
	}
	return e, nil
}

// buildNameMap applies DefineNameTransform to every declaration and
// verifies the mapping is a bijection.
func (e *Emitter) buildNameMap() error {
	reverse := make(map[string]string, len(e.decls))
	for _, d := range e.decls {
		transformed := d.Name
		if e.opts.DefineNameTransform != nil {
			t, err := e.opts.DefineNameTransform(d.Name, d, d.SourceFile)
			if err != nil {
				return &CallbackError{Callback: "defineNameTransform", TypeName: d.Name, Err: err}
			}
			transformed = t
		}
		if first, clash := reverse[transformed]; clash && first != d.Name {
			return &NameCollisionError{Transformed: transformed, First: first, Second: d.Name}
		}
		reverse[transformed] = d.Name
		e.nameMap[d.Name] = transformed
	}
	return nil
}

// transformed maps an original declaration name to its output name.
// Names without a declaration pass through unchanged.
func (e *Emitter) transformed(name string) string {
	if t, ok := e.nameMap[name]; ok {
		return t
	}
	return name
}

func (e *Emitter) refTo(name string) *schema.Schema {
	return &schema.Schema{Ref: "#/$defs/" + e.transformed(name)}
}

// lookup finds a declaration by original name.
func (e *Emitter) lookup(name string) (*ast.Declaration, bool) {
	d, ok := e.byName[name]
	return d, ok
}

// emittable reports whether a declaration gets a `$defs` entry: generic
// declarations are only ever expanded inline at instantiation sites.
func emittable(d *ast.Declaration) bool {
	return !d.IsGeneric()
}

// emitDefs emits every emittable declaration keyed by transformed name.
func (e *Emitter) emitDefs() (*schema.Map, error) {
	defs := schema.NewMap()
	for _, d := range e.decls {
		if !emittable(d) {
			continue
		}
		s, err := e.emitDecl(d)
		if err != nil {
			return nil, err
		}
		defs.Set(e.transformed(d.Name), s)
	}
	return defs, nil
}

// emitDecl emits the body schema for one declaration.
func (e *Emitter) emitDecl(d *ast.Declaration) (*schema.Schema, error) {
	var s *schema.Schema
	var err error
	switch d.Kind {
	case ast.DeclInterface:
		s, err = e.emitInterface(d)
	case ast.DeclTypeAlias:
		s, err = e.emitType(d.Alias)
	case ast.DeclEnum:
		s = emitEnum(d)
	default:
		return nil, fmt.Errorf("unknown declaration kind %d", d.Kind)
	}
	if err != nil {
		return nil, err
	}
	e.applyDoc(s, d.Doc)
	return s, nil
}

// emitInterface merges the extends clauses into the body and emits the
// flattened object.
func (e *Emitter) emitInterface(d *ast.Declaration) (*schema.Schema, error) {
	parts, err := e.interfaceParts(d)
	if err != nil {
		return nil, err
	}
	return e.emitObject(parts, d.Doc)
}

// emitEnum emits an enum declaration as an enum schema. Homogeneous
// member values also pin the type.
func emitEnum(d *ast.Declaration) *schema.Schema {
	s := &schema.Schema{}
	allString, allNumber := true, true
	for _, m := range d.Members {
		if m.IsString {
			allNumber = false
			s.Enum = append(s.Enum, m.Str)
		} else {
			allString = false
			s.Enum = append(s.Enum, m.Num)
		}
	}
	switch {
	case allString && len(d.Members) > 0:
		s.Type = schema.TypeValue{"string"}
	case allNumber && len(d.Members) > 0:
		s.Type = schema.TypeValue{"number"}
	}
	return s
}

// Emit produces the single-document output: a root schema with every
// other declaration grouped under `$defs`. A transitively
// self-referential root stays inside `$defs` with the root reduced to a
// `$ref`, which 2020-12 validators require for recursion.
func (e *Emitter) Emit() (*schema.Schema, error) {
	defs, err := e.emitDefs()
	if err != nil {
		return nil, err
	}

	rootName, err := e.rootName()
	if err != nil {
		return nil, err
	}

	var root *schema.Schema
	switch {
	case rootName == "":
		root = &schema.Schema{}
	case e.selfReferentialKey(defs, e.transformed(rootName)):
		root = &schema.Schema{Ref: "#/$defs/" + e.transformed(rootName)}
	default:
		tname := e.transformed(rootName)
		root, _ = defs.Get(tname)
		defs.Delete(tname)
	}

	if defs.Len() > 0 {
		root.Defs = defs
	}
	if e.opts.IncludeSchema {
		root.SchemaURL = e.opts.schemaVersion()
	}
	return root, nil
}

// rootName picks the root declaration: the RootType option when set, else
// the first emittable declaration.
func (e *Emitter) rootName() (string, error) {
	if e.opts.RootType != "" {
		d, ok := e.lookup(e.opts.RootType)
		if !ok {
			return "", fmt.Errorf("root type %q is not declared", e.opts.RootType)
		}
		if !emittable(d) {
			return "", fmt.Errorf("root type %q is generic and cannot be emitted directly", e.opts.RootType)
		}
		return d.Name, nil
	}
	for _, d := range e.decls {
		if emittable(d) {
			return d.Name, nil
		}
	}
	return "", nil
}
