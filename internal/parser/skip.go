package parser

import (
	"tschema/internal/token"
)

// skipStatement consumes an unparsed top-level statement: an import or
// re-export line, or an ambient `declare ...` construct. Braces are
// counted so that a skipped `namespace`/`module`/`class` body with nested
// blocks does not over-consume the stream. Without a block, the statement
// ends at a `;` or at a line break followed by a new top-level construct.
func (p *Parser) skipStatement() {
	depth := 0
	for {
		t := p.rawPeek()
		switch {
		case t.Kind == token.EOF:
			return

		case t.IsPunct("{"):
			depth++
			p.rawNext()

		case t.IsPunct("}"):
			p.rawNext()
			if depth > 0 {
				depth--
			}
			if depth == 0 {
				// `import { X } from "path"` continues past its brace
				// group; a namespace/module body does not
				if p.peek().IsKeyword("from") {
					continue
				}
				p.eatPunct(";")
				return
			}

		case t.IsPunct(";") && depth == 0:
			p.rawNext()
			return

		case t.Kind == token.Newline && depth == 0:
			p.rawNext()
			next := p.peek()
			if next.Kind == token.EOF || next.Kind == token.JSDoc || next.Kind == token.Keyword {
				return
			}

		default:
			p.rawNext()
		}
	}
}
