package emitter

import (
	"tschema/internal/ast"
	"tschema/internal/schema"
)

// NameTransform renames a declaration for `$defs`/`definitions` keys and
// `$ref` pointers. file is the declaring source file when known.
type NameTransform func(name string, decl *ast.Declaration, file string) (string, error)

// IDProvider produces an external `$id` for a declaration's schema.
type IDProvider func(name string, decl *ast.Declaration) (string, error)

// Options configures one emission.
type Options struct {
	// IncludeSchema prepends `$schema` to root schemas.
	IncludeSchema bool
	// SchemaVersion is the `$schema` URL; empty means draft 2020-12.
	SchemaVersion string
	// StrictObjects sets additionalProperties:false on object schemas
	// where nothing more specific applies.
	StrictObjects bool
	// AdditionalProperties is the lowest-precedence fallback value; nil
	// leaves the field absent.
	AdditionalProperties *bool
	// RootType selects the root declaration; empty means the first one.
	RootType string
	// IncludeJSDoc applies descriptions and JSDoc-derived constraints.
	// When false only structural fields survive.
	IncludeJSDoc bool
	// DefineNameTransform renames declarations; see NameTransform.
	DefineNameTransform NameTransform
	// DefineID gives each batch entry an external id; definitions blocks
	// are omitted and cross-references become `$ref: <id>`.
	DefineID IDProvider
}

func (o Options) schemaVersion() string {
	if o.SchemaVersion != "" {
		return o.SchemaVersion
	}
	return schema.Version2020
}
