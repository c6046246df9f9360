package resolver

import (
	"tschema/internal/ast"
	"tschema/internal/diag"
)

// Dedupe applies the name-collision policy to a declaration list parsed
// from a single source, mirroring what the cross-file merge does.
func Dedupe(decls []*ast.Declaration, policy DuplicatePolicy, bag *diag.Bag) ([]*ast.Declaration, error) {
	byName := make(map[string]*ast.Declaration, len(decls))
	out := make([]*ast.Declaration, 0, len(decls))
	for _, d := range decls {
		first, exists := byName[d.Name]
		if !exists {
			byName[d.Name] = d
			out = append(out, d)
			continue
		}
		switch policy {
		case DupError:
			return nil, &DuplicateDeclarationError{
				Name:       d.Name,
				FirstFile:  first.SourceFile,
				SecondFile: d.SourceFile,
			}
		case DupWarn:
			bag.Warnf(diag.ResDuplicateDecl, d.SourceFile,
				"duplicate declaration "+d.Name+"; keeping the first")
		}
	}
	return out, nil
}
