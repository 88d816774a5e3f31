package mviewgen

import "strings"

// parseKebabIdent reads a dash-joined identifier. Segments are identifiers,
// integers and dashes; two consecutive non-dash segments end it, except
// that a lone leading dash may be followed directly by a segment. The
// cursor is untouched on failure.
func parseKebabIdent(c *Cursor) (KebabIdent, error) {
	var repr strings.Builder
	var spans []Span

	first := c.Peek()
	switch {
	case first.Type == TokenIdent:
		repr.WriteString(first.Literal)
	case first.IsPunct("-"):
		repr.WriteByte('-')
	default:
		return KebabIdent{}, mismatchf(first.Span, "expected a kebab-cased identifier")
	}
	c.Next()
	spans = append(spans, first.Span)

	second := true
	for {
		if dash := c.Peek(); dash.IsPunct("-") {
			c.Next()
			repr.WriteByte('-')
			spans = append(spans, dash.Span)
		} else if !(second && repr.String() == "-") {
			break
		}
		second = false

		if seg := c.Peek(); seg.Type == TokenIdent || seg.Type == TokenInt {
			c.Next()
			repr.WriteString(seg.Literal)
			spans = append(spans, seg.Span)
		}
	}

	return KebabIdent{repr: repr.String(), spans: spans}, nil
}
