package lexer

import (
	"strings"

	"tschema/internal/token"
)

// scanString consumes a string literal delimited by ", ', or a backtick.
// Escapes are resolved by dropping the backslash and keeping the following
// byte. Template literals are scanned as plain strings; interpolation is
// not recognized. An unterminated literal ends at EOF.
func (lx *Lexer) scanString() token.Token {
	line, col := lx.cursor.Line(), lx.cursor.Col()
	quote := lx.cursor.Bump()

	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			if !lx.cursor.EOF() {
				sb.WriteByte(lx.cursor.Bump())
			}
			continue
		}
		if b == quote {
			break
		}
		sb.WriteByte(b)
	}
	return token.Token{
		Kind: token.String,
		Text: sb.String(),
		Line: line,
		Col:  col,
	}
}
