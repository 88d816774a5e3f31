package mviewgen

// parseChildren reads children until the cursor is empty. It never fails:
// a stray `;` is reported and skipped, and any other unparseable child is
// reported and ends the block.
func (p *Parser) parseChildren(c *Cursor) (*Children, error) {
	var list []Child
	for !c.Empty() {
		list = append(list, parseRepeated(p, c, p.parseChild)...)

		if semi := c.Peek(); semi.IsPunct(";") {
			p.diags.Emit(semi.Span, "extra semi-colon found", "remove this semi-colon")
			c.Next()
			continue
		}
		if c.Empty() {
			break
		}

		// Parse the failed child again to report its error.
		child, err := p.parseChild(c)
		if err == nil {
			list = append(list, child)
			continue
		}
		p.diags.EmitError(err, c.Span())
		c.SkipRest()
	}
	return NewChildren(list), nil
}

// parseChild reads a value, a doctype, a slot or an element, in that order.
func (p *Parser) parseChild(c *Cursor) (Child, error) {
	if v, ok := rollback(p, c, p.parseValue); ok {
		if v.Kind == ValueLiteral && v.Lit.Kind != LitString {
			p.diags.Emit(v.Span, "only string literals are allowed in children", "")
			v = stringLiteral(`""`, v.Span)
		}
		return Child{Kind: ChildValue, Value: v}, nil
	}

	tok := c.Peek()
	switch {
	case tok.IsPunct("!"):
		return Child{Kind: ChildDoctype, Doctype: p.parseDoctype(c)}, nil

	case tok.IsIdent("slot") && c.Peek2().IsPunct(":"):
		c.Next()
		c.Next()
		el, err := p.parseElement(c)
		if err != nil {
			return Child{}, err
		}
		return Child{Kind: ChildSlot, Element: el, SlotSpan: tok.Span}, nil

	case tok.Type == TokenIdent:
		el, err := p.parseElement(c)
		if err != nil {
			return Child{}, err
		}
		return Child{Kind: ChildElement, Element: el}, nil
	}
	return Child{}, mismatchf(tok.Span, "invalid child: expected a literal, block, bracket or element")
}

// parseDoctype reads `!DOCTYPE html;`.
func (p *Parser) parseDoctype(c *Cursor) *Doctype {
	const hint = "write `!DOCTYPE html;`"

	bang := c.Next()
	d := &Doctype{Kind: "html", Span: bang.Span}

	kw := c.Peek()
	if !kw.IsIdent("DOCTYPE") {
		p.diags.Emit(kw.Span, "expected `DOCTYPE` after `!`", hint)
		return d
	}
	c.Next()
	d.Span = JoinSpans(d.Span, kw.Span)

	kind := c.Peek()
	if kind.Type != TokenIdent {
		p.diags.Emit(kind.Span, "expected a document type after `!DOCTYPE`", hint)
		return d
	}
	c.Next()
	d.Kind = kind.Literal
	d.Span = JoinSpans(d.Span, kind.Span)

	if semi := c.Peek(); semi.IsPunct(";") {
		c.Next()
	} else {
		p.diags.Emit(semi.Span, "expected `;` after the doctype", hint)
	}
	return d
}
