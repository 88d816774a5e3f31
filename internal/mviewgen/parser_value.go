package mviewgen

import (
	"go/parser"
	"strings"
)

// missingValue stands in for a value that failed to parse after `=`.
const missingValue = "MissingValueAfterEq"

// parseValue reads a literal, a {block}, a [bracket], a (paren) or a
// prefixed bracket such as f["%d", n].
func (p *Parser) parseValue(c *Cursor) (Value, error) {
	tok := c.Peek()
	switch {
	case tok.IsGroup(DelimBrace):
		c.Next()
		return Value{Kind: ValueBlock, Expr: tok.Source, ExprStart: tok.Open.End(), Span: tok.Span}, nil

	case tok.IsGroup(DelimBracket):
		c.Next()
		return p.exprValue(tok, ValueBracket, ""), nil

	case tok.IsGroup(DelimParen):
		c.Next()
		return p.exprValue(tok, ValueParen, ""), nil

	case tok.Type == TokenIdent && startsLower(tok.Literal) && c.Peek2().IsGroup(DelimBracket) && adjacent(tok, c.Peek2()):
		c.Next()
		group := c.Next()
		prefix := tok.Literal
		if prefix != "f" {
			p.diags.Emit(tok.Span, "unsupported prefix `"+prefix+"`", "only `f` is supported, as in f[\"%d items\", n]")
			prefix = ""
		}
		v := p.exprValue(group, ValueBracket, prefix)
		v.Span = JoinSpans(tok.Span, group.Span)
		return v, nil

	case tok.IsLiteral():
		c.Next()
		return Value{Kind: ValueLiteral, Lit: Literal{Kind: litKind(tok.Type), Raw: tok.Literal}, Span: tok.Span}, nil

	case tok.IsIdent("true"), tok.IsIdent("false"):
		c.Next()
		return Value{Kind: ValueLiteral, Lit: Literal{Kind: LitBool, Raw: tok.Literal}, Span: tok.Span}, nil
	}
	return Value{}, mismatchf(tok.Span, "invalid value: expected a literal, block, bracket or parenthesized expression")
}

// exprValue builds a bracket or paren value from its group. The content
// must be exactly one Go expression.
func (p *Parser) exprValue(group Token, kind ValueKind, prefix string) Value {
	if strings.TrimSpace(group.Source) == "" {
		p.diags.Abort(group.Span, "expected an expression inside "+group.Delim.Name(), "")
	}
	check := maskInvocations(group.Source)
	if prefix == "f" {
		check = "fmt.Sprintf(" + check + ")"
	}
	if _, err := parser.ParseExpr(check); err != nil {
		p.diags.Abort(group.Span, "expected a single expression inside "+group.Delim.Name(), "wrap tuple values in an extra pair of braces")
	}
	return Value{
		Kind:      kind,
		Expr:      group.Source,
		ExprStart: group.Open.End(),
		Prefix:    prefix,
		Span:      group.Span,
	}
}

// parseValueOrEmit reads the value after `=`. When none is found it reports
// the problem and returns a placeholder so parsing can continue.
func (p *Parser) parseValueOrEmit(c *Cursor, eq Span) Value {
	if v, ok := rollback(p, c, p.parseValue); ok {
		return v
	}

	span := eq
	hint := ""
	if next := c.Peek(); !c.Empty() {
		span = next.Span
		if next.Type == TokenIdent {
			hint = "you may have meant to wrap this in braces"
		}
	}
	p.diags.Emit(span, "expected value after =", hint)
	return Value{Kind: ValueBlock, Expr: missingValue, ExprStart: eq, Span: eq}
}

func litKind(t TokenType) LitKind {
	switch t {
	case TokenInt:
		return LitInt
	case TokenFloat:
		return LitFloat
	case TokenRune:
		return LitChar
	}
	return LitString
}
