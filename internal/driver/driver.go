// Package driver wires the conversion pipeline: tokenize, parse, resolve,
// emit. Every entry point allocates its own state; nothing persists
// between calls.
package driver

import (
	"tschema/internal/ast"
	"tschema/internal/diag"
	"tschema/internal/emitter"
	"tschema/internal/parser"
	"tschema/internal/resolver"
	"tschema/internal/schema"
)

// Result bundles a conversion's output with its non-fatal diagnostics.
type Result struct {
	Schema *schema.Schema
	Bag    *diag.Bag
}

// BatchResult is the batch-mode counterpart, preserving entry order.
type BatchResult struct {
	Schemas *schema.Map
	Bag     *diag.Bag
}

// Convert turns TypeScript declaration source into one schema document.
func Convert(src string, opts Options) (*Result, error) {
	decls, bag, err := parseSource(src, opts)
	if err != nil {
		return nil, err
	}
	s, err := emitOne(decls, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Schema: s, Bag: bag}, nil
}

// ConvertAll turns source into the batch mapping of self-contained
// schemas.
func ConvertAll(src string, opts Options) (*BatchResult, error) {
	decls, bag, err := parseSource(src, opts)
	if err != nil {
		return nil, err
	}
	schemas, err := emitAll(decls, opts)
	if err != nil {
		return nil, err
	}
	return &BatchResult{Schemas: schemas, Bag: bag}, nil
}

// ConvertFile resolves the entry file and its imports, then emits one
// schema document.
func ConvertFile(entryPath string, opts Options) (*Result, error) {
	res, err := resolver.Resolve(entryPath, opts.resolverOptions())
	if err != nil {
		return nil, err
	}
	s, err := emitOne(res.Decls, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Schema: s, Bag: res.Bag}, nil
}

// ConvertAllFromFile resolves the entry file and emits the batch mapping.
func ConvertAllFromFile(entryPath string, opts Options) (*BatchResult, error) {
	res, err := resolver.Resolve(entryPath, opts.resolverOptions())
	if err != nil {
		return nil, err
	}
	schemas, err := emitAll(res.Decls, opts)
	if err != nil {
		return nil, err
	}
	return &BatchResult{Schemas: schemas, Bag: res.Bag}, nil
}

// ParseDeclarations exposes the parsed AST for inspection.
func ParseDeclarations(src string) ([]*ast.Declaration, error) {
	return parser.ParseSource(src)
}

func parseSource(src string, opts Options) ([]*ast.Declaration, *diag.Bag, error) {
	decls, err := parser.ParseSource(src)
	if err != nil {
		return nil, nil, err
	}
	bag := diag.NewBag()
	decls, err = resolver.Dedupe(decls, opts.OnDuplicateDeclarations, bag)
	if err != nil {
		return nil, nil, err
	}
	return decls, bag, nil
}

func emitOne(decls []*ast.Declaration, opts Options) (*schema.Schema, error) {
	e, err := emitter.New(decls, opts.emitterOptions())
	if err != nil {
		return nil, err
	}
	return e.Emit()
}

func emitAll(decls []*ast.Declaration, opts Options) (*schema.Map, error) {
	e, err := emitter.New(decls, opts.emitterOptions())
	if err != nil {
		return nil, err
	}
	return e.EmitAll()
}
