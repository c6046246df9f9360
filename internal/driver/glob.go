package driver

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandEntries maps a list of entries to concrete file paths. An entry
// containing glob metacharacters (`*`, `?`, `**`, `[`, `{`) is expanded
// against baseDir; plain paths pass through untouched. The result is
// deduplicated and keeps a deterministic order: plain entries in place,
// glob matches sorted.
func ExpandEntries(entries []string, baseDir string) ([]string, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		baseDir = wd
	}

	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, entry := range entries {
		if !isGlobPattern(entry) {
			add(entry)
			continue
		}
		pattern := entry
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(baseDir, pattern)
		}
		matches, err := doublestar.FilepathGlob(filepath.ToSlash(pattern))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

func isGlobPattern(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
