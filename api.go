// Package tschema converts a practical subset of TypeScript
// type-declaration syntax into JSON Schema (draft 2020-12) documents,
// without pulling in a TypeScript type checker.
//
// The pipeline is tokenize → parse → emit; the file-based entry points
// additionally run a module resolver that follows imports across files.
// All conversions are synchronous and allocate per call; running several
// conversions in parallel on disjoint inputs is safe as long as callback
// closures are not shared mutable state.
package tschema

import (
	"context"
	"os"

	"tschema/internal/ast"
	"tschema/internal/diag"
	"tschema/internal/diagfmt"
	"tschema/internal/driver"
	"tschema/internal/emitter"
	"tschema/internal/parser"
	"tschema/internal/resolver"
	"tschema/internal/schema"
	"tschema/internal/source"
)

// Core types of the public surface.
type (
	// Options configures a conversion; the zero value uses the defaults
	// (include $schema, include JSDoc, follow mode none, duplicate
	// policy error).
	Options = driver.Options
	// Schema is a JSON Schema document or sub-schema.
	Schema = schema.Schema
	// Declaration is a parsed top-level entity.
	Declaration = ast.Declaration
	// FileReader abstracts filesystem access for the resolver.
	FileReader = source.Reader
	// MapReader is an in-memory FileReader keyed by absolute path.
	MapReader = source.MapReader
	// FollowMode governs import traversal.
	FollowMode = resolver.FollowMode
	// DuplicatePolicy governs name collisions between files.
	DuplicatePolicy = resolver.DuplicatePolicy
	// NameTransform renames declarations in defs keys and refs.
	NameTransform = emitter.NameTransform
	// IDProvider produces external $id values for batch output.
	IDProvider = emitter.IDProvider
)

// Error taxonomy. All are fatal for the conversion that raised them.
type (
	// ParseError is an unexpected token with its position.
	ParseError = parser.ParseError
	// ResolutionError is an unresolvable followed import.
	ResolutionError = resolver.ResolutionError
	// ReadError is a filesystem read failure.
	ReadError = resolver.ReadError
	// DuplicateDeclarationError is a name collision under the error
	// policy.
	DuplicateDeclarationError = resolver.DuplicateDeclarationError
	// NameCollisionError is a non-bijective name transform.
	NameCollisionError = emitter.NameCollisionError
	// CallbackError wraps a user callback failure.
	CallbackError = emitter.CallbackError
	// DuplicateIDError is a defineId callback returning the same id
	// twice.
	DuplicateIDError = emitter.DuplicateIDError
)

// Follow modes.
const (
	FollowNone  = resolver.FollowNone
	FollowLocal = resolver.FollowLocal
	FollowAll   = resolver.FollowAll
)

// Duplicate policies.
const (
	DupError  = resolver.DupError
	DupWarn   = resolver.DupWarn
	DupSilent = resolver.DupSilent
)

// ToJSONSchema converts declaration source text into one schema document.
func ToJSONSchema(src string, opts ...Options) (*Schema, error) {
	res, err := driver.Convert(src, first(opts))
	if err != nil {
		return nil, err
	}
	reportWarnings(res.Bag)
	return res.Schema, nil
}

// ToJSONSchemas converts source text into the batch mapping from type
// name (or $id, with DefineID set) to a self-contained schema.
func ToJSONSchemas(src string, opts ...Options) (map[string]*Schema, error) {
	res, err := driver.ConvertAll(src, first(opts))
	if err != nil {
		return nil, err
	}
	reportWarnings(res.Bag)
	return toPlainMap(res.Schemas), nil
}

// ToJSONSchemaFromFile resolves entryPath and its imports per the follow
// mode and emits one schema document.
func ToJSONSchemaFromFile(entryPath string, opts ...Options) (*Schema, error) {
	res, err := driver.ConvertFile(entryPath, first(opts))
	if err != nil {
		return nil, err
	}
	reportWarnings(res.Bag)
	return res.Schema, nil
}

// ToJSONSchemasFromFile resolves entryPath and emits the batch mapping.
func ToJSONSchemasFromFile(entryPath string, opts ...Options) (map[string]*Schema, error) {
	res, err := driver.ConvertAllFromFile(entryPath, first(opts))
	if err != nil {
		return nil, err
	}
	reportWarnings(res.Bag)
	return toPlainMap(res.Schemas), nil
}

// ToJSONSchemasFromFiles converts several entries. Each entry is either a
// concrete path or a glob pattern (*, ?, ** supported). Entries convert
// concurrently; the merged mapping keeps the first occurrence of each
// type name.
func ToJSONSchemasFromFiles(entries []string, opts ...Options) (map[string]*Schema, error) {
	res, err := driver.ConvertFiles(context.Background(), entries, first(opts))
	if err != nil {
		return nil, err
	}
	reportWarnings(res.Bag)
	return toPlainMap(res.Schemas), nil
}

// ParseDeclarations exposes the parsed AST for inspection.
func ParseDeclarations(src string) ([]*Declaration, error) {
	return driver.ParseDeclarations(src)
}

func first(opts []Options) Options {
	if len(opts) > 0 {
		return opts[0]
	}
	return Options{}
}

func toPlainMap(m *schema.Map) map[string]*Schema {
	out := make(map[string]*Schema, m.Len())
	for _, k := range m.Keys() {
		s, _ := m.Get(k)
		out[k] = s
	}
	return out
}

// reportWarnings writes warn-policy diagnostics to the standard
// diagnostic channel.
func reportWarnings(bag *diag.Bag) {
	if bag == nil || !bag.HasWarnings() {
		return
	}
	diagfmt.Pretty(os.Stderr, bag, diagfmt.PrettyOpts{})
}
