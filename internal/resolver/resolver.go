// Package resolver walks imports across files and merges their
// declarations into one deduplicated list.
package resolver

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"tschema/internal/ast"
	"tschema/internal/diag"
	"tschema/internal/lexer"
	"tschema/internal/parser"
	"tschema/internal/source"
)

// Options configures one resolution pass.
type Options struct {
	Follow      FollowMode
	OnDuplicate DuplicatePolicy
	// Reader is the filesystem access used for every read and existence
	// probe; nil means the OS filesystem.
	Reader source.Reader
	// BaseDir anchors a relative entry path. Empty means the process
	// working directory.
	BaseDir string
}

// Result is a merged declaration set spanning every transitively reachable
// file.
type Result struct {
	Decls []*ast.Declaration
	// Files lists every visited file in discovery order.
	Files []*source.File
	// Bag carries non-fatal diagnostics (duplicate warnings).
	Bag *diag.Bag
}

// Resolve reads the entry file, follows its imports per the follow mode,
// and returns the merged declarations in discovery order. Each file is
// visited exactly once, so import cycles terminate cleanly.
func Resolve(entryPath string, opts Options) (*Result, error) {
	r := &resolver{
		fs:      source.NewFileSet(opts.Reader),
		opts:    opts,
		visited: make(map[string]bool),
		byName:  make(map[string]*ast.Declaration),
		bag:     diag.NewBag(),
	}

	abs, err := r.absEntry(entryPath)
	if err != nil {
		return nil, err
	}
	if err := r.visit(abs); err != nil {
		return nil, err
	}
	return &Result{Decls: r.decls, Files: r.fs.Files(), Bag: r.bag}, nil
}

type resolver struct {
	fs      *source.FileSet
	opts    Options
	visited map[string]bool
	decls   []*ast.Declaration
	byName  map[string]*ast.Declaration
	bag     *diag.Bag
}

func (r *resolver) absEntry(entry string) (string, error) {
	if filepath.IsAbs(entry) {
		return source.NormalizePath(entry), nil
	}
	base := r.opts.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		base = wd
	}
	return source.NormalizePath(filepath.Join(base, entry)), nil
}

// visit loads, parses and merges one file, then recurses on its imports.
func (r *resolver) visit(absPath string) error {
	if r.visited[absPath] {
		return nil
	}
	r.visited[absPath] = true

	file, err := r.fs.Load(absPath)
	if err != nil {
		return &ReadError{Path: absPath, Err: err}
	}

	toks := lexer.Tokenize(string(file.Content))
	imports := parser.ExtractImports(toks)
	decls, err := parser.Parse(toks)
	if err != nil {
		return err
	}
	for _, d := range decls {
		d.SourceFile = absPath
		if err := r.merge(d); err != nil {
			return err
		}
	}

	for _, imp := range imports {
		resolved, err := r.resolveImport(absPath, imp.ModulePath)
		if err != nil {
			return err
		}
		if resolved == "" {
			continue // skipped by follow-mode rule
		}
		if err := r.visit(resolved); err != nil {
			return err
		}
	}
	return nil
}

// merge appends a declaration, applying the collision policy when the name
// was already declared by an earlier file.
func (r *resolver) merge(d *ast.Declaration) error {
	first, exists := r.byName[d.Name]
	if !exists {
		r.byName[d.Name] = d
		r.decls = append(r.decls, d)
		return nil
	}
	switch r.opts.OnDuplicate {
	case DupError:
		return &DuplicateDeclarationError{
			Name:       d.Name,
			FirstFile:  first.SourceFile,
			SecondFile: d.SourceFile,
		}
	case DupWarn:
		r.bag.Warnf(diag.ResDuplicateDecl, d.SourceFile,
			"duplicate declaration "+d.Name+" (first declared in "+first.SourceFile+"); keeping the first")
	}
	// warn and silent both keep the first declaration
	return nil
}

// resolveImport maps an import specifier to an absolute file path, or ""
// when the follow mode skips it. A followed specifier that resolves to no
// file is a hard error.
func (r *resolver) resolveImport(fromFile, spec string) (string, error) {
	relative := strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") ||
		spec == "." || spec == ".."
	switch r.opts.Follow {
	case FollowNone:
		return "", nil
	case FollowLocal:
		if !relative {
			return "", nil
		}
	}

	if relative {
		candidate := source.NormalizePath(filepath.Join(path.Dir(fromFile), spec))
		if found := r.probeExtensions(candidate); found != "" {
			return found, nil
		}
		return "", &ResolutionError{ImportPath: spec, FromFile: fromFile}
	}

	// bare specifier, follow mode `all`
	if found := r.resolveNodeModule(path.Dir(fromFile), spec); found != "" {
		return found, nil
	}
	return "", &ResolutionError{ImportPath: spec, FromFile: fromFile}
}

// probeExtensions applies the TypeScript-style candidate order: the path
// itself, then .ts/.tsx/.d.ts suffixes, then index files.
func (r *resolver) probeExtensions(p string) string {
	reader := r.fs.Reader()
	candidates := []string{
		p,
		p + ".ts",
		p + ".tsx",
		p + ".d.ts",
		p + "/index.ts",
		p + "/index.tsx",
		p + "/index.d.ts",
	}
	for _, c := range candidates {
		if reader.Exists(c) {
			return source.NormalizePath(c)
		}
	}
	return ""
}
