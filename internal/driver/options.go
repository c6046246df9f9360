package driver

import (
	"tschema/internal/emitter"
	"tschema/internal/resolver"
	"tschema/internal/source"
)

// Options is the full option surface of the conversion pipeline, shared
// by the library façade and the CLI.
type Options struct {
	// IncludeSchema prepends `$schema` to root schemas. nil means true.
	IncludeSchema *bool
	// SchemaVersion overrides the `$schema` URL.
	SchemaVersion string
	// StrictObjects closes object schemas that nothing else configures.
	StrictObjects bool
	// AdditionalProperties is the lowest-precedence fallback; nil leaves
	// the field absent.
	AdditionalProperties *bool
	// RootType names the root declaration; empty means the first one.
	RootType string
	// IncludeJSDoc applies descriptions and JSDoc constraints. nil means
	// true.
	IncludeJSDoc *bool

	// FollowImports governs the module resolver (file entry points only).
	FollowImports resolver.FollowMode
	// OnDuplicateDeclarations is the name-collision policy.
	OnDuplicateDeclarations resolver.DuplicatePolicy
	// BaseDir anchors relative entry paths; empty means the working
	// directory.
	BaseDir string
	// Reader overrides filesystem access; nil means the OS filesystem.
	Reader source.Reader

	// DefineNameTransform renames declarations in defs keys and $ref
	// pointers.
	DefineNameTransform emitter.NameTransform
	// DefineID assigns external $id values in batch mode.
	DefineID emitter.IDProvider
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func (o Options) emitterOptions() emitter.Options {
	return emitter.Options{
		IncludeSchema:        boolOr(o.IncludeSchema, true),
		SchemaVersion:        o.SchemaVersion,
		StrictObjects:        o.StrictObjects,
		AdditionalProperties: o.AdditionalProperties,
		RootType:             o.RootType,
		IncludeJSDoc:         boolOr(o.IncludeJSDoc, true),
		DefineNameTransform:  o.DefineNameTransform,
		DefineID:             o.DefineID,
	}
}

func (o Options) resolverOptions() resolver.Options {
	return resolver.Options{
		Follow:      o.FollowImports,
		OnDuplicate: o.OnDuplicateDeclarations,
		Reader:      o.Reader,
		BaseDir:     o.BaseDir,
	}
}

// HasCallbacks reports whether closure options are set; closures cannot
// be fingerprinted, so the disk cache is bypassed for them.
func (o Options) HasCallbacks() bool {
	return o.DefineNameTransform != nil || o.DefineID != nil
}
