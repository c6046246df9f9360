package resolver

import (
	"encoding/json"
	"path"
	"strings"

	"tschema/internal/source"
)

// resolveNodeModule resolves a bare specifier (`pkg`, `@scope/pkg`,
// `pkg/sub`) by ascending parent directories looking for
// node_modules/<pkg>, then consulting package.json: `types`/`typings`,
// conditional `exports` with a types condition, then `main` with a
// sibling .d.ts, else index.d.ts. Sub-path imports honor the `exports`
// map and fall back to extension resolution.
func (r *resolver) resolveNodeModule(fromDir, spec string) string {
	pkg, sub := splitPackageSpec(spec)
	dir := fromDir
	for {
		pkgDir := path.Join(dir, "node_modules", pkg)
		if found := r.resolveInPackage(pkgDir, sub); found != "" {
			return found
		}
		parent := path.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// splitPackageSpec separates the package name (one segment, or two for a
// scoped package) from the sub-path.
func splitPackageSpec(spec string) (pkg, sub string) {
	segs := strings.Split(spec, "/")
	take := 1
	if strings.HasPrefix(spec, "@") && len(segs) > 1 {
		take = 2
	}
	pkg = strings.Join(segs[:take], "/")
	if len(segs) > take {
		sub = strings.Join(segs[take:], "/")
	}
	return pkg, sub
}

type packageJSON struct {
	Types   string          `json:"types"`
	Typings string          `json:"typings"`
	Main    string          `json:"main"`
	Exports json.RawMessage `json:"exports"`
}

func (r *resolver) resolveInPackage(pkgDir, sub string) string {
	reader := r.fs.Reader()

	var pj packageJSON
	pjPath := path.Join(pkgDir, "package.json")
	if data, err := reader.ReadFile(pjPath); err == nil {
		// malformed manifests degrade to the file-probing fallbacks
		_ = json.Unmarshal(data, &pj)
	}

	if sub != "" {
		if target := exportsEntry(pj.Exports, "./"+sub); target != "" {
			if found := r.probeExtensions(source.NormalizePath(path.Join(pkgDir, target))); found != "" {
				return found
			}
		}
		return r.probeExtensions(source.NormalizePath(path.Join(pkgDir, sub)))
	}

	if pj.Types != "" {
		if found := r.probeExtensions(source.NormalizePath(path.Join(pkgDir, pj.Types))); found != "" {
			return found
		}
	}
	if pj.Typings != "" {
		if found := r.probeExtensions(source.NormalizePath(path.Join(pkgDir, pj.Typings))); found != "" {
			return found
		}
	}
	if target := exportsEntry(pj.Exports, "."); target != "" {
		if found := r.probeExtensions(source.NormalizePath(path.Join(pkgDir, target))); found != "" {
			return found
		}
	}
	if pj.Main != "" {
		// a .d.ts sibling of the JS entry point
		base := strings.TrimSuffix(pj.Main, path.Ext(pj.Main))
		candidate := source.NormalizePath(path.Join(pkgDir, base+".d.ts"))
		if reader.Exists(candidate) {
			return candidate
		}
	}
	index := source.NormalizePath(path.Join(pkgDir, "index.d.ts"))
	if reader.Exists(index) {
		return index
	}
	return ""
}

// exportsEntry finds a type-resolvable target for the given key inside a
// package.json `exports` value. A string entry is taken as-is; an object
// entry prefers the "types" condition and then descends through the usual
// conditions.
func exportsEntry(raw json.RawMessage, key string) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		if key == "." {
			return val
		}
		return ""
	case map[string]any:
		if entry, ok := val[key]; ok {
			return typesCondition(entry)
		}
		// an exports map without sub-path keys is itself the "." entry
		if key == "." {
			return typesCondition(val)
		}
	}
	return ""
}

// typesCondition walks an exports condition object preferring "types",
// then "import", "require", "default".
func typesCondition(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		for _, cond := range []string{"types", "import", "require", "default"} {
			if inner, ok := val[cond]; ok {
				if s := typesCondition(inner); s != "" {
					return s
				}
			}
		}
	}
	return ""
}
