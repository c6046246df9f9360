package emitter

import (
	"strings"

	"tschema/internal/schema"
)

// EmitAll produces the batch output: one self-contained schema per
// declaration. Each entry embeds its transitive dependencies in a
// draft-07 `definitions` block (deliberately, for validator reach) with
// pointers rewritten from `#/$defs/` to `#/definitions/`. With DefineID
// set, definitions are omitted entirely and cross-references become the
// external ids.
func (e *Emitter) EmitAll() (*schema.Map, error) {
	defs, err := e.emitDefs()
	if err != nil {
		return nil, err
	}

	ids, err := e.assignIDs()
	if err != nil {
		return nil, err
	}

	out := schema.NewMap()
	for _, d := range e.decls {
		if !emittable(d) {
			continue
		}
		tname := e.transformed(d.Name)
		def, _ := defs.Get(tname)
		entry := def.Clone()

		key := tname
		if ids != nil {
			entry.ID = ids[tname]
			key = ids[tname]
			schema.RewriteRefs(entry, func(ref string) string {
				if name, ok := strings.CutPrefix(ref, defsPrefix); ok {
					if id, known := ids[name]; known {
						return id
					}
				}
				return ref
			})
		} else {
			e.embedDefinitions(entry, defs, tname)
		}

		if e.opts.IncludeSchema {
			entry.SchemaURL = e.opts.schemaVersion()
		}
		out.Set(key, entry)
	}
	return out, nil
}

// assignIDs runs DefineID over the emittable declarations, enforcing
// uniqueness. Returns nil when no callback is configured.
func (e *Emitter) assignIDs() (map[string]string, error) {
	if e.opts.DefineID == nil {
		return nil, nil
	}
	ids := make(map[string]string)
	seen := make(map[string]string) // id -> original name
	for _, d := range e.decls {
		if !emittable(d) {
			continue
		}
		id, err := e.opts.DefineID(d.Name, d)
		if err != nil {
			return nil, &CallbackError{Callback: "defineId", TypeName: d.Name, Err: err}
		}
		if first, dup := seen[id]; dup {
			return nil, &DuplicateIDError{ID: id, First: first, Second: d.Name}
		}
		seen[id] = d.Name
		ids[e.transformed(d.Name)] = id
	}
	return ids, nil
}

// embedDefinitions attaches the entry's transitive dependencies as a
// definitions block and rewrites every pointer. The entry's own
// declaration is embedded only when it is self-referential.
func (e *Emitter) embedDefinitions(entry *schema.Schema, defs *schema.Map, root string) {
	reachable := e.reachableDefs(defs, root)
	if len(reachable) > 0 {
		definitions := schema.NewMap()
		for _, name := range defs.Keys() {
			if !reachable[name] {
				continue
			}
			dep, _ := defs.Get(name)
			definitions.Set(name, dep.Clone())
		}
		entry.Definitions = definitions
	}

	rewrite := func(ref string) string {
		if name, ok := strings.CutPrefix(ref, defsPrefix); ok {
			return "#/definitions/" + name
		}
		return ref
	}
	schema.RewriteRefs(entry, rewrite)
}
