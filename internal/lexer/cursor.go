package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"sapling/internal/source"
	"sapling/internal/token"
)

// Cursor walks the content rune by rune and tracks line/column.
// Перевод строки засчитывается на своей строке: номер строки растёт,
// когда читается следующий за '\n' символ.
type Cursor struct {
	File    source.FileID
	Content []byte
	Off     uint32
	Line    uint32
	Col     uint32
	limit   uint32
	newline bool
}

// NewCursor creates a cursor at the beginning of content.
func NewCursor(file source.FileID, content []byte) Cursor {
	limit, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("len content overflow: %w", err))
	}
	return Cursor{
		File:    file,
		Content: content,
		Line:    1,
		limit:   limit,
	}
}

// EOF проверяет, достигнут ли конец содержимого
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit
}

// Next reads one rune and returns it with its byte offset and location.
// Invalid UTF-8 yields utf8.RuneError of width one.
func (c *Cursor) Next() (r rune, off uint32, loc token.Location) {
	if c.EOF() {
		return utf8.RuneError, c.Off, token.Location{Line: c.Line, Col: c.Col}
	}
	if c.newline {
		c.Line++
		c.Col = 0
		c.newline = false
	}
	off = c.Off
	b := c.Content[c.Off]
	size := 1
	if b < utf8.RuneSelf {
		r = rune(b)
	} else {
		r, size = utf8.DecodeRune(c.Content[c.Off:])
	}
	usz, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	c.Off += usz
	c.Col++
	if r == '\n' {
		c.newline = true
	}
	return r, off, token.Location{Line: c.Line, Col: c.Col}
}

// SpanFrom returns the span from start up to the current offset.
func (c *Cursor) SpanFrom(start uint32) source.Span {
	return source.Span{File: c.File, Start: start, End: c.Off}
}
