package mviewgen

import "strings"

// InvocationName is the identifier that starts an invocation: mview! { ... }.
const InvocationName = "mview"

// invocation locates one `mview! { ... }` in Go source. Offsets are byte
// offsets into the scanned text.
type invocation struct {
	Start, End         int // whole invocation
	BodyStart, BodyEnd int // between the braces
}

// scanError is a problem found while looking for invocations.
type scanError struct {
	Offset int
	Msg    string
}

func (e *scanError) Error() string { return e.Msg }

// findInvocations returns every top-level invocation in src. Comments and
// string, raw string and rune literals are skipped, so an invocation
// written inside them is left alone. Invocations nested inside another are
// not returned; they are expanded together with their parent.
func findInvocations(src string) ([]invocation, *scanError) {
	var out []invocation
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			i = skipLineComment(src, i)
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			i = skipBlockComment(src, i)
		case c == '"' || c == '\'':
			i = skipQuoted(src, i)
		case c == '`':
			i = skipRawString(src, i)
		case isIdentByte(c):
			j := i
			for j < len(src) && isIdentByte(src[j]) {
				j++
			}
			if src[i:j] == InvocationName && j < len(src) && src[j] == '!' && !strings.HasPrefix(src[j:], "!=") {
				inv, err := matchInvocation(src, i, j+1)
				if err != nil {
					return nil, err
				}
				out = append(out, inv)
				j = inv.End
			}
			i = j
		default:
			i++
		}
	}
	return out, nil
}

// matchInvocation reads the brace block after `mview!`; bang is the offset
// just past the `!`.
func matchInvocation(src string, start, bang int) (invocation, *scanError) {
	open := bang
	for open < len(src) && isSpaceByte(src[open]) {
		open++
	}
	if open >= len(src) || src[open] != '{' {
		return invocation{}, &scanError{Offset: start, Msg: "expected `{` after " + InvocationName + "!"}
	}
	closeAt, err := matchBrace(src, open)
	if err != nil {
		return invocation{}, err
	}
	return invocation{Start: start, End: closeAt + 1, BodyStart: open + 1, BodyEnd: closeAt}, nil
}

// matchBrace returns the offset of the brace closing the one at open.
func matchBrace(src string, open int) (int, *scanError) {
	depth := 0
	for i := open; i < len(src); {
		switch c := src[i]; {
		case c == '{':
			depth++
			i++
		case c == '}':
			depth--
			if depth == 0 {
				return i, nil
			}
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			i = skipLineComment(src, i)
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			i = skipBlockComment(src, i)
		case c == '"' || c == '\'':
			i = skipQuoted(src, i)
		case c == '`':
			i = skipRawString(src, i)
		default:
			i++
		}
	}
	return 0, &scanError{Offset: open, Msg: "unterminated " + InvocationName + "! invocation: unmatched '{'"}
}

// skipQuoted skips a string or rune literal starting at i.
func skipQuoted(src string, i int) int {
	quote := src[i]
	i++ // opening quote
	for i < len(src) && src[i] != quote && src[i] != '\n' {
		if src[i] == '\\' {
			i++ // skip escape
		}
		i++
	}
	if i < len(src) && src[i] == quote {
		i++ // closing quote
	}
	return i
}

// skipRawString skips a raw string literal starting at i.
func skipRawString(src string, i int) int {
	end := strings.IndexByte(src[i+1:], '`')
	if end < 0 {
		return len(src)
	}
	return i + 1 + end + 1
}

func skipLineComment(src string, i int) int {
	end := strings.IndexByte(src[i:], '\n')
	if end < 0 {
		return len(src)
	}
	return i + end
}

func skipBlockComment(src string, i int) int {
	end := strings.Index(src[i+2:], "*/")
	if end < 0 {
		return len(src)
	}
	return i + 2 + end + 2
}

// isIdentByte reports whether c can be part of an identifier. Bytes of
// multi-byte runes count, so `xmview!` is never mistaken for an invocation.
func isIdentByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// maskInvocations replaces every invocation in src with `nil` so the text
// can be checked as a Go expression.
func maskInvocations(src string) string {
	invs, err := findInvocations(src)
	if err != nil || len(invs) == 0 {
		return src
	}
	var sb strings.Builder
	last := 0
	for _, inv := range invs {
		sb.WriteString(src[last:inv.Start])
		sb.WriteString("nil")
		last = inv.End
	}
	sb.WriteString(src[last:])
	return sb.String()
}

// advance returns the position reached after reading text from pos.
func advance(pos Span, text string) Span {
	for _, r := range text {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	pos.Offset += len(text)
	pos.EndLine = pos.Line
	pos.EndColumn = pos.Column
	pos.EndOffset = pos.Offset
	return pos
}
