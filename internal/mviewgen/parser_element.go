package mviewgen

import (
	"strings"
)

// parseTag reads an element tag. Component tags may carry a package
// qualifier (ui.Button) and type arguments (Table[Row]).
func (p *Parser) parseTag(c *Cursor) (Tag, error) {
	var tag Tag
	if pkg, dot, name := c.Peek(), c.Peek2(), c.PeekN(2); isQualifiedComponent(pkg, dot, name) {
		c.Next()
		c.Next()
		c.Next()
		tag = Tag{
			Kind:        TagComponent,
			Name:        NewKebabIdent(name.Literal, name.Span),
			Package:     pkg.Literal,
			PackageSpan: pkg.Span,
		}
	} else {
		name, err := parseKebabIdent(c)
		if err != nil {
			return Tag{}, err
		}
		tag = Tag{Kind: Classify(name.Repr()), Name: name}
	}

	if tag.Kind != TagComponent {
		return tag, nil
	}

	if colon := c.Peek(); colon.IsPunct(":") && colon.Joint && c.Peek2().IsPunct(":") {
		p.diags.Abort(JoinSpans(colon.Span, c.Peek2().Span), "unexpected `::` in component name",
			"use pkg.Name for qualified components")
	}
	if args := c.Peek(); args.IsGroup(DelimBracket) {
		c.Next()
		text := strings.TrimSpace(args.Source)
		if text == "" {
			p.diags.Abort(args.Span, "expected type arguments inside brackets", "")
		}
		tag.TypeArgs = text
		tag.TypeArgsSpan = args.Span
	}
	return tag, nil
}

// isQualifiedComponent reports whether the tokens spell pkg.Name with no
// whitespace. A known element name before the dot is a tag with a class
// selector instead: div.Wide.
func isQualifiedComponent(pkg, dot, name Token) bool {
	return pkg.Type == TokenIdent && dot.IsPunct(".") && name.Type == TokenIdent &&
		adjacent(pkg, dot) && adjacent(dot, name) &&
		Classify(name.Literal) == TagComponent &&
		Classify(pkg.Literal) != TagComponent &&
		!isKnownElement(pkg.Literal)
}

// parseSelector reads `.class` or `#id`.
func (p *Parser) parseSelector(c *Cursor) (Selector, error) {
	prefix := c.Peek()
	var kind SelectorKind
	switch {
	case prefix.IsPunct("."):
		kind = SelectorClass
	case prefix.IsPunct("#"):
		kind = SelectorID
	default:
		return Selector{}, mismatchf(prefix.Span, "expected `.` or `#`")
	}
	c.Next()

	name, err := parseKebabIdent(c)
	if err != nil {
		return Selector{}, err
	}
	return Selector{Kind: kind, Name: name, PrefixSpan: prefix.Span}, nil
}

// parseElement reads a tag, its selectors and attributes, and then one of
// the four endings: `;`, end of input, a children block, or closure
// arguments followed by a children block. Anything else is reported and
// the element is treated as terminated.
func (p *Parser) parseElement(c *Cursor) (*Element, error) {
	tag, err := p.parseTag(c)
	if err != nil {
		return nil, err
	}

	el := &Element{Tag: tag}
	el.Selectors = parseRepeated(p, c, p.parseSelector)
	el.Attrs = parseRepeated(p, c, p.parseAttr)

	switch next := c.Peek(); {
	case next.IsPunct(";"):
		c.Next()

	case c.Empty():
		p.diags.Emit(tag.Span(), "unterminated element", "add a `;` to terminate the element with no children")

	case next.IsGroup(DelimBrace):
		children, _, err := delimited(c, DelimBrace, p.parseChildren)
		if err != nil {
			return nil, err
		}
		el.Children = children

	case next.IsPunct("|"):
		args, err := p.parseClosureArgs(c)
		if err != nil {
			return nil, err
		}
		if !c.Peek().IsGroup(DelimBrace) {
			p.diags.Emit(args.Span, "expected children block after closure arguments", "")
			break
		}
		children, _, err := delimited(c, DelimBrace, p.parseChildren)
		if err != nil {
			return nil, err
		}
		el.ChildrenArgs = args
		el.Children = children

	default:
		p.diags.Emit(next.Span, "unknown attribute", "")
		p.diags.Emit(tag.Span(), "child elements not found", "add a `;` at the end to terminate the element")
	}
	return el, nil
}

// parseClosureArgs reads `|params|`, keeping the parameter text verbatim.
func (p *Parser) parseClosureArgs(c *Cursor) (*ClosureArgs, error) {
	open := c.Next()
	for !c.Empty() {
		tok := c.Next()
		if tok.IsPunct("|") {
			return &ClosureArgs{
				Params: strings.TrimSpace(p.text(open.Span.EndOffset, tok.Span.Offset)),
				Span:   JoinSpans(open.Span, tok.Span),
			}, nil
		}
	}
	return nil, NewErrorWithHint(open.Span, "closure arguments are not closed", "add a closing `|`")
}
