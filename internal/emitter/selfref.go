package emitter

import (
	"strings"

	"tschema/internal/schema"
)

const defsPrefix = "#/$defs/"

// defRefs returns the `$defs` keys referenced from s.
func defRefs(s *schema.Schema) []string {
	var out []string
	schema.WalkRefs(s, func(ref string) {
		if name, ok := strings.CutPrefix(ref, defsPrefix); ok {
			out = append(out, name)
		}
	})
	return out
}

// selfReferentialKey reports whether the def named target can reach itself
// through the `$ref` graph between defs, directly or mutually.
func (e *Emitter) selfReferentialKey(defs *schema.Map, target string) bool {
	start, ok := defs.Get(target)
	if !ok {
		return false
	}
	visited := make(map[string]bool)
	stack := defRefs(start)
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if name == target {
			return true
		}
		if visited[name] {
			continue
		}
		visited[name] = true
		if next, ok := defs.Get(name); ok {
			stack = append(stack, defRefs(next)...)
		}
	}
	return false
}

// reachableDefs returns every def key transitively referenced from root's
// def, excluding root itself unless it is self-referential.
func (e *Emitter) reachableDefs(defs *schema.Map, root string) map[string]bool {
	out := make(map[string]bool)
	start, ok := defs.Get(root)
	if !ok {
		return out
	}
	stack := defRefs(start)
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if out[name] {
			continue
		}
		if name == root && !e.selfReferentialKey(defs, root) {
			continue
		}
		out[name] = true
		if next, ok := defs.Get(name); ok {
			stack = append(stack, defRefs(next)...)
		}
	}
	return out
}
