package lexer

import (
	"tschema/internal/token"
)

// scanIdentOrWord consumes an identifier-shaped word and classifies it as
// keyword, primitive, or identifier.
func (lx *Lexer) scanIdentOrWord() token.Token {
	line, col := lx.cursor.Line(), lx.cursor.Col()
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) || b >= utf8RuneSelf {
			lx.cursor.Bump()
			continue
		}
		break
	}
	word := lx.cursor.TextFrom(start)
	return token.Token{
		Kind: token.ClassifyWord(word),
		Text: word,
		Line: line,
		Col:  col,
	}
}
