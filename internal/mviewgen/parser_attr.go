package mviewgen

import (
	"fmt"
	"slices"
	"strings"
)

// directiveNames lists the directives accepted before a `:`.
var directiveNames = []string{"class", "style", "attr", "on", "prop", "clone", "use"}

// parseAttr reads one attribute. The alternatives are tried in a fixed
// order and none of them consumes input when it does not apply:
//
//  1. an identifier followed by `:` is a directive, and anything wrong
//     after that point is fatal
//  2. an identifier starts a key-value or boolean attribute
//  3. a brace group holding only a kebab identifier is the {key} shorthand
//  4. a brace group starting with `..` is a spread
func (p *Parser) parseAttr(c *Cursor) (Attr, error) {
	tok := c.Peek()
	if tok.Type == TokenIdent && c.Peek2().IsPunct(":") {
		return Attr{Kind: AttrDirective, Directive: p.parseDirective(c)}, nil
	}
	if tok.Type == TokenIdent {
		return p.parseKvAttr(c)
	}
	if a, ok := rollback(p, c, p.parseKvAttr); ok {
		return a, nil
	}
	if s, ok := rollback(p, c, p.parseSpread); ok {
		return Attr{Kind: AttrSpread, Spread: s}, nil
	}
	return Attr{}, mismatchf(tok.Span, "no attribute found")
}

// parseKvAttr reads `key=value`, a bare `key`, or the `{key}` shorthand.
func (p *Parser) parseKvAttr(c *Cursor) (Attr, error) {
	if c.Peek().IsGroup(DelimBrace) {
		key, group, err := delimited(c, DelimBrace, parseKebabIdent)
		if err != nil {
			return Attr{}, err
		}
		return Attr{Kind: AttrKv, Key: key, Value: shorthandValue(key, group)}, nil
	}

	key, err := parseKebabIdent(c)
	if err != nil {
		return Attr{}, err
	}
	if eq := c.Peek(); eq.IsPunct("=") {
		c.Next()
		return Attr{Kind: AttrKv, Key: key, Value: p.parseValueOrEmit(c, eq.Span)}, nil
	}
	// The implied value has no span of its own.
	return Attr{Kind: AttrBool, Key: key, Value: Value{Kind: ValueLiteral, Lit: Literal{Kind: LitBool, Raw: "true"}}}, nil
}

// shorthandValue is the value of `{key}`: the key as a Go identifier.
func shorthandValue(key KebabIdent, group Token) Value {
	return Value{Kind: ValueBlock, Expr: key.GoIdent(), ExprStart: key.Span(), Span: group.Span}
}

// parseSpread reads `{..expr}`.
func (p *Parser) parseSpread(c *Cursor) (*Spread, error) {
	group := c.Peek()
	if !group.IsGroup(DelimBrace) || len(group.Inner) < 2 ||
		!group.Inner[0].IsPunct(".") || !group.Inner[0].Joint || !group.Inner[1].IsPunct(".") {
		return nil, mismatchf(group.Span, "expected a spread")
	}
	c.Next()

	dots := group.Inner[1]
	expr := strings.TrimSpace(group.Source[dots.Span.EndOffset-group.Open.EndOffset:])
	if expr == "" {
		p.diags.Emit(group.Span, "expected an expression after `..`", "")
	}
	return &Spread{Expr: expr, Span: group.Span}, nil
}

// parseDirective reads `dir:key[:modifier][=value]`. The caller has seen
// the identifier and the colon, so every failure here aborts.
func (p *Parser) parseDirective(c *Cursor) *Directive {
	name := c.Next()
	colon := c.Next()
	if !slices.Contains(directiveNames, name.Literal) {
		p.diags.Abort(name.Span, fmt.Sprintf("unknown directive `%s:`", name.Literal),
			"expected one of "+strings.Join(directiveNames, ", "))
	}

	d := &Directive{Name: name.Literal, NameSpan: name.Span}
	switch next := c.Peek(); {
	case next.IsGroup(DelimBrace):
		key, group, err := delimited(c, DelimBrace, parseKebabIdent)
		if err != nil {
			p.diags.Abort(next.Span, "expected a single identifier inside the braces", "")
		}
		v := shorthandValue(key, group)
		d.Key = DirectiveKey{Ident: key, Span: group.Span}
		d.Value = &v
		d.Braced = true

	case next.Type == TokenString || next.Type == TokenRawString:
		c.Next()
		d.Key = DirectiveKey{Str: next.Literal, IsStr: true, Span: next.Span}

	default:
		key, err := parseKebabIdent(c)
		if err != nil {
			p.diags.Abort(colon.Span, fmt.Sprintf("expected a key after `%s:`", name.Literal), "")
		}
		d.Key = DirectiveKey{Ident: key, Span: key.Span()}
	}

	if mc := c.Peek(); mc.IsPunct(":") {
		c.Next()
		mod := c.Peek()
		if mod.Type != TokenIdent {
			p.diags.Abort(mc.Span, "expected a modifier after `:`", "")
		}
		c.Next()
		d.Modifier = mod.Literal
		d.ModifierSpan = mod.Span
	}

	if eq := c.Peek(); !d.Braced && eq.IsPunct("=") {
		c.Next()
		v := p.parseValueOrEmit(c, eq.Span)
		d.Value = &v
	}
	return d
}
