package token

// Cursor walks a byte buffer tracking byte offset and line/column position.
// Grounded on the shape of the teacher's PosDoc (an offset-to-position
// mapper) but inverted: the teacher builds its mapping lazily from stored
// newline offsets because its tokenizer can be asked about a position it
// has already passed; a Cursor only ever moves forward over one in-memory
// buffer, so it keeps line/column as running counters instead.
type Cursor struct {
	data []byte
	off  int
	line int
	col  int
}

// NewCursor returns a cursor positioned at the start of data, line 1
// column 1.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data, line: 1, col: 1}
}

// Pos returns the cursor's current position.
func (c *Cursor) Pos() Pos { return Pos{Line: c.line, Col: c.col} }

// Offset returns the cursor's current byte offset into the buffer.
func (c *Cursor) Offset() int { return c.off }

// Eof reports whether the cursor has consumed the entire buffer.
func (c *Cursor) Eof() bool { return c.off >= len(c.data) }

// Peek returns the byte at the cursor without consuming it.
func (c *Cursor) Peek() (byte, bool) {
	return c.PeekAt(0)
}

// PeekAt returns the byte `ahead` bytes past the cursor without consuming
// anything.
func (c *Cursor) PeekAt(ahead int) (byte, bool) {
	i := c.off + ahead
	if i < 0 || i >= len(c.data) {
		return 0, false
	}
	return c.data[i], true
}

// Advance consumes and returns the byte at the cursor, updating
// line/column (a consumed '\n' starts a new line).
func (c *Cursor) Advance() (byte, bool) {
	b, ok := c.Peek()
	if !ok {
		return 0, false
	}
	c.off++
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return b, true
}

// SkipWhile advances the cursor over every consecutive byte satisfying
// pred, returning the number of bytes skipped.
func (c *Cursor) SkipWhile(pred func(byte) bool) int {
	n := 0
	for {
		b, ok := c.Peek()
		if !ok || !pred(b) {
			return n
		}
		c.Advance()
		n++
	}
}

// Rest returns the unconsumed remainder of the buffer.
func (c *Cursor) Rest() []byte { return c.data[c.off:] }
