package parser

import (
	"tschema/internal/ast"
	"tschema/internal/token"
)

// ExtractImports runs an independent pass over the token stream and
// collects import and re-export statements. It is fault-tolerant by
// contract: malformed import-like syntax never fails the pipeline, the
// scan simply abandons the statement at the first token it cannot
// classify.
func ExtractImports(toks []token.Token) []ast.Import {
	c := &tokCursor{toks: toks}
	var imports []ast.Import
	for {
		t := c.peek()
		if t.Kind == token.EOF {
			return imports
		}
		switch {
		case t.IsKeyword("import"):
			if imp, ok := scanImport(c); ok {
				imports = append(imports, imp)
			}
		case t.IsKeyword("export"):
			if imp, ok := scanReExport(c); ok {
				imports = append(imports, imp)
			}
		default:
			c.next()
		}
	}
}

// tokCursor is a minimal significant-token cursor for the import scan.
type tokCursor struct {
	toks []token.Token
	pos  int
}

func (c *tokCursor) skip() {
	for c.pos < len(c.toks) {
		k := c.toks[c.pos].Kind
		if k == token.Newline || k == token.JSDoc {
			c.pos++
			continue
		}
		return
	}
}

func (c *tokCursor) peek() token.Token {
	c.skip()
	if c.pos >= len(c.toks) {
		return token.Token{Kind: token.EOF}
	}
	return c.toks[c.pos]
}

func (c *tokCursor) peekAhead(n int) token.Token {
	c.skip()
	seen := 0
	for i := c.pos; i < len(c.toks); i++ {
		k := c.toks[i].Kind
		if k == token.Newline || k == token.JSDoc {
			continue
		}
		if seen == n {
			return c.toks[i]
		}
		seen++
	}
	return token.Token{Kind: token.EOF}
}

func (c *tokCursor) next() token.Token {
	t := c.peek()
	if c.pos < len(c.toks) {
		c.pos++
	}
	return t
}

// scanImport recognizes
//
//	import [type] { X, Y as Z } from "path"
//	import [type] X from "path"
//	import [type] * as N from "path"
//
// with the cursor on the `import` keyword.
func scanImport(c *tokCursor) (ast.Import, bool) {
	c.next() // 'import'
	if c.peek().IsKeyword("type") && !c.peekAhead(1).IsKeyword("from") {
		c.next()
	}

	switch t := c.peek(); {
	case t.IsPunct("{"):
		names, ok := scanNamedList(c)
		if !ok {
			return ast.Import{}, false
		}
		path, ok := scanFromClause(c)
		if !ok {
			return ast.Import{}, false
		}
		return ast.Import{Names: names, ModulePath: path}, true

	case t.IsPunct("*"):
		c.next()
		if !c.peek().IsKeyword("as") {
			return ast.Import{}, false
		}
		c.next()
		alias := c.peek()
		if alias.Kind != token.Ident {
			return ast.Import{}, false
		}
		c.next()
		path, ok := scanFromClause(c)
		if !ok {
			return ast.Import{}, false
		}
		return ast.Import{ModulePath: path, IsNamespace: true, NamespaceAlias: alias.Text}, true

	case t.Kind == token.Ident:
		name := c.next().Text
		path, ok := scanFromClause(c)
		if !ok {
			return ast.Import{}, false
		}
		return ast.Import{Names: []string{name}, ModulePath: path, IsDefault: true}, true

	default:
		return ast.Import{}, false
	}
}

// scanReExport recognizes
//
//	export { X } from "path"
//	export type { X } from "path"
//	export * from "path"
//
// with the cursor on the `export` keyword. A plain `export { X }` without
// a from-clause is not an import and is left alone.
func scanReExport(c *tokCursor) (ast.Import, bool) {
	start := c.pos
	c.next() // 'export'
	if c.peek().IsKeyword("type") && c.peekAhead(1).IsPunct("{") {
		c.next()
	}

	switch t := c.peek(); {
	case t.IsPunct("{"):
		names, ok := scanNamedList(c)
		if !ok {
			return ast.Import{}, false
		}
		if !c.peek().IsKeyword("from") {
			// local export list: restore so the export keyword is not
			// matched again, then bail
			c.pos = start + 1
			return ast.Import{}, false
		}
		path, ok := scanFromClause(c)
		if !ok {
			return ast.Import{}, false
		}
		return ast.Import{Names: names, ModulePath: path}, true

	case t.IsPunct("*"):
		c.next()
		alias := ""
		if c.peek().IsKeyword("as") {
			c.next()
			a := c.peek()
			if a.Kind != token.Ident {
				return ast.Import{}, false
			}
			c.next()
			alias = a.Text
		}
		path, ok := scanFromClause(c)
		if !ok {
			return ast.Import{}, false
		}
		return ast.Import{ModulePath: path, IsNamespace: true, NamespaceAlias: alias}, true

	default:
		return ast.Import{}, false
	}
}

// scanNamedList parses `{ X, Y as Z, ... }` keeping original exported
// names; renames drop the alias.
func scanNamedList(c *tokCursor) ([]string, bool) {
	c.next() // '{'
	var names []string
	for {
		t := c.peek()
		switch {
		case t.IsPunct("}"):
			c.next()
			return names, true
		case t.Kind == token.EOF:
			return nil, false
		case t.Kind == token.Ident || t.Kind == token.Keyword || t.Kind == token.Primitive:
			name := c.next().Text
			if name == "type" && (c.peek().Kind == token.Ident || c.peek().Kind == token.Primitive) {
				// inline `import { type X }` form
				name = c.next().Text
			}
			if c.peek().IsKeyword("as") {
				c.next()
				if c.peek().Kind != token.Ident {
					return nil, false
				}
				c.next()
			}
			names = append(names, name)
			c.peek()
			if c.peek().IsPunct(",") {
				c.next()
			}
		default:
			return nil, false
		}
	}
}

// scanFromClause parses `from "path"`.
func scanFromClause(c *tokCursor) (string, bool) {
	if !c.peek().IsKeyword("from") {
		return "", false
	}
	c.next()
	if c.peek().Kind != token.String {
		return "", false
	}
	return c.next().Text, true
}
