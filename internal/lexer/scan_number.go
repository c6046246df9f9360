package lexer

import (
	"tschema/internal/token"
)

// scanNumber consumes [-]digits[.digits].
func (lx *Lexer) scanNumber() token.Token {
	line, col := lx.cursor.Line(), lx.cursor.Col()
	start := lx.cursor.Mark()
	lx.cursor.Eat('-')
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	return token.Token{
		Kind: token.Number,
		Text: lx.cursor.TextFrom(start),
		Line: line,
		Col:  col,
	}
}
