package lexer

import (
	"strings"

	"tschema/internal/token"
)

// scanSlash handles everything that starts with '/'. JSDoc comments
// (/** ... */) become tokens; line and plain block comments are discarded.
// Returns ok=false whenever no token results; a stray slash is consumed
// here so the scan loop makes progress.
func (lx *Lexer) scanSlash() (token.Token, bool) {
	next := lx.cursor.PeekAt(1)
	switch next {
	case '/':
		// line comment: discard to end of line, keep the newline
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return token.Token{}, false
	case '*':
		// "/**" starts a doc comment unless it is the empty "/**/"
		if lx.cursor.PeekAt(2) == '*' && lx.cursor.PeekAt(3) != '/' {
			return lx.scanJSDoc(), true
		}
		lx.skipBlockComment()
		return token.Token{}, false
	default:
		// stray '/': consume it so the scan loop makes progress
		lx.cursor.Bump()
		return token.Token{}, false
	}
}

// scanJSDoc consumes "/** ... */" and returns a JSDoc token carrying the
// trimmed inner body. The comment markers themselves are stripped.
func (lx *Lexer) scanJSDoc() token.Token {
	line, col := lx.cursor.Line(), lx.cursor.Col()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	lx.cursor.Bump() // '*'

	start := lx.cursor.Mark()
	body := ""
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
			body = lx.cursor.TextFrom(start)
			lx.cursor.Bump()
			lx.cursor.Bump()
			break
		}
		lx.cursor.Bump()
	}
	if body == "" && lx.cursor.EOF() {
		// unterminated doc comment: take what is there
		body = lx.cursor.TextFrom(start)
	}
	return token.Token{
		Kind: token.JSDoc,
		Text: strings.TrimSpace(body),
		Line: line,
		Col:  col,
	}
}

// skipBlockComment discards "/* ... */", tolerating an unterminated one.
func (lx *Lexer) skipBlockComment() {
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return
		}
		lx.cursor.Bump()
	}
}
