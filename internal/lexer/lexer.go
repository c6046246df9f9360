package lexer

import (
	"tschema/internal/token"
)

// Lexer turns TypeScript declaration source into a token stream.
// It never fails: bytes it cannot classify are skipped, so partial or
// malformed sources still tokenize to something the parser can reject
// with a precise position.
type Lexer struct {
	cursor Cursor
	look   *token.Token // 1-element lookahead buffer
	// prev is the kind of the last significant token, used to decide
	// whether a '-' starts a negative number literal.
	prev token.Kind
}

// New creates a lexer over src.
func New(src string) *Lexer {
	return &Lexer{cursor: NewCursor([]byte(src))}
}

// Tokenize scans the whole input and returns every token including the
// trailing EOF.
func Tokenize(src string) []token.Token {
	lx := New(src)
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	tok := lx.scan()
	if tok.Kind != token.Newline {
		lx.prev = tok.Kind
	}
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) scan() token.Token {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r':
			lx.cursor.Bump()

		case b == '\n':
			return lx.scanNewlines()

		case b == '/':
			if tok, ok := lx.scanSlash(); ok {
				return tok
			}
			// not a comment and '/' is not punctuation: skip it

		case isQuote(b):
			return lx.scanString()

		case isDec(b):
			return lx.scanNumber()

		case b == '-' && isDec(lx.cursor.PeekAt(1)) && lx.negativeAllowed():
			return lx.scanNumber()

		case isIdentStartByte(b) || b >= utf8RuneSelf:
			return lx.scanIdentOrWord()

		case token.IsPunctByte(b):
			tok := lx.tokenAt(token.Punct, string(b))
			lx.cursor.Bump()
			return tok

		default:
			// unknown byte, skip silently
			lx.cursor.Bump()
		}
	}
	return lx.tokenAt(token.EOF, "")
}

// scanNewlines coalesces a run of line breaks into a single Newline token.
func (lx *Lexer) scanNewlines() token.Token {
	tok := lx.tokenAt(token.Newline, "\n")
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			lx.cursor.Bump()
			continue
		}
		break
	}
	return tok
}

// negativeAllowed reports whether a '-' at the cursor can begin a number.
// After an identifier, primitive, or another literal it cannot: there a
// dash would be an (unsupported) operator, which is skipped instead.
func (lx *Lexer) negativeAllowed() bool {
	switch lx.prev {
	case token.Ident, token.Primitive, token.Number, token.String:
		return false
	default:
		return true
	}
}

func (lx *Lexer) tokenAt(kind token.Kind, text string) token.Token {
	return token.Token{
		Kind: kind,
		Text: text,
		Line: lx.cursor.Line(),
		Col:  lx.cursor.Col(),
	}
}
