package parser

import "sapling/internal/token"

// Cursor is a forward-only view over a token slice. It belongs to a single
// Parse call and must not be shared.
type Cursor struct {
	tokens []token.Token
	index  int
}

// NewCursor creates a cursor positioned at start.
func NewCursor(tokens []token.Token, start int) *Cursor {
	return &Cursor{tokens: tokens, index: start}
}

// Consume returns the current token and advances by one.
func (c *Cursor) Consume() (token.Token, bool) {
	return c.ConsumeN(1)
}

// ConsumeN returns the token at the current index and advances by n.
// Out of bounds it returns false and leaves the index alone.
func (c *Cursor) ConsumeN(n int) (token.Token, bool) {
	if !c.HasMore() {
		return token.Token{}, false
	}
	tok := c.tokens[c.index]
	c.index += n
	return tok, true
}

func (c *Cursor) HasMore() bool {
	return c.index >= 0 && c.index < len(c.tokens)
}

// Peek returns the current token. Panics if HasMore is false.
func (c *Cursor) Peek() token.Token {
	return c.tokens[c.index]
}

// PeekNext returns the token after the current one. Panics out of bounds.
// Part of the public cursor API; the parser itself looks ahead via Consume.
func (c *Cursor) PeekNext() token.Token {
	return c.tokens[c.index+1]
}

// Prev returns the most recently consumed token.
func (c *Cursor) Prev() (token.Token, bool) {
	i := c.index - 1
	if i < 0 || i >= len(c.tokens) {
		return token.Token{}, false
	}
	return c.tokens[i], true
}

// ConsumeUntil collects tokens up to the first one of kind k. The terminator
// is consumed and dropped; found is false when the input ran out first.
// The parser slices with ConsumeBalanced; this flat form is kept for callers
// that know the terminator cannot nest.
func (c *Cursor) ConsumeUntil(k token.Kind) (tokens []token.Token, found bool) {
	for {
		tok, ok := c.Consume()
		if !ok {
			return tokens, false
		}
		if tok.Kind == k {
			return tokens, true
		}
		tokens = append(tokens, tok)
	}
}

// ConsumeBalanced works like ConsumeUntil(close) but counts nested open/close
// pairs, so the returned slice ends at the close matching an already
// consumed open.
func (c *Cursor) ConsumeBalanced(open, close token.Kind) (tokens []token.Token, found bool) {
	depth := 1
	for {
		tok, ok := c.Consume()
		if !ok {
			return tokens, false
		}
		switch tok.Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return tokens, true
			}
		}
		tokens = append(tokens, tok)
	}
}

// SetIndex moves the cursor. Index and SetIndex let callers save and rewind
// a position; the parser never backtracks and does not use them.
func (c *Cursor) SetIndex(i int) {
	c.index = i
}

// Index is the position of the next token to consume.
func (c *Cursor) Index() int {
	return c.index
}

// Remaining reports how many tokens are left. Public API, unused by Parse.
func (c *Cursor) Remaining() int {
	if !c.HasMore() {
		return 0
	}
	return len(c.tokens) - c.index
}
