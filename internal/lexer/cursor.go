package lexer

import (
	"fmt"

	"fortio.org/safecast"
)

// Cursor is a byte position inside the source buffer with 1-based
// line/column tracking.
type Cursor struct {
	src  []byte
	off  uint32
	limit uint32
	line int
	col  int
}

// NewCursor creates a cursor at the start of src.
func NewCursor(src []byte) Cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("source length overflow: %w", err))
	}
	return Cursor{src: src, off: 0, limit: limit, line: 1, col: 1}
}

// EOF reports whether the cursor reached the end of the buffer.
func (c *Cursor) EOF() bool {
	return c.off >= c.limit
}

// Peek reads the current byte without consuming it; 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.off]
}

// PeekAt reads the byte n positions ahead of the cursor; 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.src[c.off+n]
}

// Bump consumes and returns the current byte, updating line/column.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return b
}

// Eat consumes the next byte if it equals b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.src[c.off] == b {
		c.Bump()
		return true
	}
	return false
}

// Mark is a saved byte offset used to slice out scanned text.
type Mark uint32

// Mark saves the current offset.
func (c *Cursor) Mark() Mark {
	return Mark(c.off)
}

// TextFrom returns the raw source between a mark and the cursor.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.src[uint32(m):c.off])
}

// Line returns the current 1-based line.
func (c *Cursor) Line() int { return c.line }

// Col returns the current 1-based column.
func (c *Cursor) Col() int { return c.col }
