package mviewgen

// Cursor is a position in one delimiter level of a token tree. Cursors are
// cheap to copy; Fork hands out an independent cursor and AdvanceTo commits
// a fork's progress back.
type Cursor struct {
	tokens []Token
	pos    int
	end    Span // reported once the tokens run out
}

// NewCursor creates a cursor over tokens. end is the span used for
// end-of-stream diagnostics, usually the closing delimiter.
func NewCursor(tokens []Token, end Span) *Cursor {
	return &Cursor{tokens: tokens, end: end}
}

// Peek returns the next token without consuming it. At the end of the
// stream it returns an EOF token positioned at the end span.
func (c *Cursor) Peek() Token {
	return c.PeekN(0)
}

// Peek2 returns the token after the next one.
func (c *Cursor) Peek2() Token {
	return c.PeekN(1)
}

// PeekN returns the token n positions ahead.
func (c *Cursor) PeekN(n int) Token {
	if c.pos+n >= len(c.tokens) {
		return Token{Type: TokenEOF, Span: c.end}
	}
	return c.tokens[c.pos+n]
}

// Next consumes and returns the next token.
func (c *Cursor) Next() Token {
	tok := c.Peek()
	if c.pos < len(c.tokens) {
		c.pos++
	}
	return tok
}

// Empty reports whether all tokens have been consumed.
func (c *Cursor) Empty() bool {
	return c.pos >= len(c.tokens)
}

// Span returns the span of the next token, or the end span.
func (c *Cursor) Span() Span {
	return c.Peek().Span
}

// Fork returns an independent cursor at the same position.
func (c *Cursor) Fork() *Cursor {
	f := *c
	return &f
}

// AdvanceTo moves c to the position of a fork of c.
func (c *Cursor) AdvanceTo(fork *Cursor) {
	c.pos = fork.pos
}

// SkipRest consumes every remaining token.
func (c *Cursor) SkipRest() {
	c.pos = len(c.tokens)
}

// Remaining returns the number of unconsumed tokens.
func (c *Cursor) Remaining() int {
	return len(c.tokens) - c.pos
}

// rollback runs parse on a fork of c. On success c advances past what was
// parsed; on failure c is untouched and any diagnostics parse emitted are
// discarded.
func rollback[T any](p *Parser, c *Cursor, parse func(*Cursor) (T, error)) (T, bool) {
	fork := c.Fork()
	mark := p.diags.mark()
	v, err := parse(fork)
	if err != nil {
		p.diags.reset(mark)
		var zero T
		return zero, false
	}
	c.AdvanceTo(fork)
	return v, true
}

// parseRepeated parses items until one fails to parse or consumes nothing,
// returning them in source order. Tokens it cannot parse are left for the
// caller.
func parseRepeated[T any](p *Parser, c *Cursor, item func(*Cursor) (T, error)) []T {
	var items []T
	for !c.Empty() {
		before := c.pos
		v, ok := rollback(p, c, item)
		if !ok || c.pos == before {
			break
		}
		items = append(items, v)
	}
	return items
}

// delimited parses the content of the group with delimiter d at the front
// of c. The whole content must be consumed by parse; c is advanced past the
// group only on success.
func delimited[T any](c *Cursor, d Delimiter, parse func(*Cursor) (T, error)) (T, Token, error) {
	var zero T
	tok := c.Peek()
	if !tok.IsGroup(d) {
		return zero, tok, mismatchf(tok.Span, "expected %s", d.Name())
	}
	inner := NewCursor(tok.Inner, tok.Close)
	v, err := parse(inner)
	if err != nil {
		return zero, tok, err
	}
	if !inner.Empty() {
		return zero, tok, mismatchf(inner.Span(), "found extra tokens inside %s", d.Name())
	}
	c.Next()
	return v, tok, nil
}
