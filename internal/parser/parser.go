// Package parser turns a token stream into a list of top-level
// declarations via recursive descent with one token of lookahead.
// The first syntax error aborts the parse; no recovery is attempted.
package parser

import (
	"tschema/internal/ast"
	"tschema/internal/lexer"
	"tschema/internal/token"
)

// Parser holds the state for parsing one token sequence.
type Parser struct {
	toks []token.Token
	pos  int
	// pendingDoc is a single-slot buffer pairing the most recent JSDoc
	// comment with the next declaration or property rule that fires.
	// It is deliberately not cleared by intervening tokens such as
	// `export`.
	pendingDoc *ast.Doc
}

// ParseSource tokenizes and parses src in one step.
func ParseSource(src string) ([]*ast.Declaration, error) {
	return Parse(lexer.Tokenize(src))
}

// Parse consumes a token sequence and returns the declarations in source
// order.
func Parse(toks []token.Token) ([]*ast.Declaration, error) {
	p := &Parser{toks: toks}
	return p.parseTop()
}

// rawPeek returns the next token without skipping anything.
func (p *Parser) rawPeek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

// rawNext consumes and returns the next token without skipping anything.
func (p *Parser) rawNext() token.Token {
	t := p.rawPeek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

// peek returns the next significant token, skipping newlines.
func (p *Parser) peek() token.Token {
	for p.pos < len(p.toks) && p.toks[p.pos].Kind == token.Newline {
		p.pos++
	}
	return p.rawPeek()
}

// peekAhead returns the n-th significant token after the current one
// (peekAhead(0) == peek()).
func (p *Parser) peekAhead(n int) token.Token {
	p.peek()
	seen := 0
	for i := p.pos; i < len(p.toks); i++ {
		if p.toks[i].Kind == token.Newline {
			continue
		}
		if seen == n {
			return p.toks[i]
		}
		seen++
	}
	return token.Token{Kind: token.EOF}
}

// next consumes and returns the next significant token.
func (p *Parser) next() token.Token {
	p.peek()
	return p.rawNext()
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atPunct(ch string) bool {
	return p.peek().IsPunct(ch)
}

func (p *Parser) atKeyword(word string) bool {
	return p.peek().IsKeyword(word)
}

// eatPunct consumes the punctuation if present.
func (p *Parser) eatPunct(ch string) bool {
	if p.atPunct(ch) {
		p.next()
		return true
	}
	return false
}

// expectPunct consumes the punctuation or fails.
func (p *Parser) expectPunct(ch string) error {
	if p.eatPunct(ch) {
		return nil
	}
	return p.unexpected("'" + ch + "'")
}

// expectName consumes a declaration name. Identifiers only: keywords and
// primitives cannot name a declaration.
func (p *Parser) expectName() (string, error) {
	if p.at(token.Ident) {
		return p.next().Text, nil
	}
	return "", p.unexpected("identifier")
}

// takeDoc consumes the pending JSDoc slot.
func (p *Parser) takeDoc() *ast.Doc {
	d := p.pendingDoc
	p.pendingDoc = nil
	return d
}

// absorbDocs moves any JSDoc tokens at the cursor into the pending slot.
// A later doc comment replaces an earlier unconsumed one.
func (p *Parser) absorbDocs() {
	for p.at(token.JSDoc) {
		p.pendingDoc = ast.ParseDoc(p.next().Text)
	}
}

// parseTop is the top-level loop: declarations, import/export statements,
// and skippable ambient blocks until EOF.
func (p *Parser) parseTop() ([]*ast.Declaration, error) {
	var decls []*ast.Declaration
	for {
		p.absorbDocs()
		tok := p.peek()
		if tok.Kind == token.EOF {
			return decls, nil
		}

		exported := false
		if p.atKeyword("export") {
			p.next()
			exported = true
			// `export default interface ...`
			if p.peek().Kind == token.Ident && p.peek().Text == "default" {
				p.next()
			}
			// `export { X } from "..."`, `export * from "..."`,
			// `export type { X } from "..."` are the extractor's
			// business; `export =` assignments are ambient noise.
			if p.atPunct("{") || p.atPunct("*") || p.atPunct("=") ||
				(p.atKeyword("type") && p.peekAhead(1).IsPunct("{")) {
				p.skipStatement()
				continue
			}
		}
		if p.atKeyword("declare") {
			p.next()
		}
		p.absorbDocs()
		tok = p.peek()

		switch {
		case p.atKeyword("interface"):
			decl, err := p.parseInterface(exported)
			if err != nil {
				return nil, err
			}
			decls = append(decls, decl)

		case p.atKeyword("type"):
			decl, err := p.parseTypeAlias(exported)
			if err != nil {
				return nil, err
			}
			decls = append(decls, decl)

		case p.atKeyword("enum"),
			p.atKeyword("const") && p.peekAhead(1).IsKeyword("enum"):
			if p.atKeyword("const") {
				p.next()
			}
			decl, err := p.parseEnum(exported)
			if err != nil {
				return nil, err
			}
			decls = append(decls, decl)

		case p.atKeyword("import"):
			// consumed here only to move past it; the import extractor
			// runs its own pass over the same tokens
			p.skipStatement()

		case p.atKeyword("namespace"), p.atKeyword("module"),
			p.atKeyword("const"),
			tok.Kind == token.Ident && isAmbientStarter(tok.Text):
			p.skipStatement()

		default:
			return nil, p.unexpected("declaration")
		}
	}
}

// isAmbientStarter matches the identifier-shaped starters of skippable
// ambient statements (`declare function f(): void`, `declare class C {}`,
// `var`, `let`).
func isAmbientStarter(word string) bool {
	switch word {
	case "function", "var", "let", "class", "abstract", "global":
		return true
	default:
		return false
	}
}
