package mviewgen

// Parser builds the AST of one invocation from its token tree.
//
// Productions take the cursor they read from. A production that does not
// apply returns a *mismatch and leaves the cursor where it was; callers try
// alternatives through rollback. Recoverable problems go to diags.Emit and
// parsing continues. Problems that leave no sensible way forward call
// diags.Abort, which unwinds to Parse.
type Parser struct {
	filename string
	source   string // text of the invocation body
	base     int    // file offset of source[0]
	diags    *Diagnostics
}

// newParser creates a parser for source, which begins at start in its file.
func newParser(start Span, source string) *Parser {
	return &Parser{
		filename: start.File,
		source:   source,
		base:     start.Offset,
		diags:    newDiagnostics(),
	}
}

// Parse parses the body of one invocation. It returns the parsed children
// and every non-fatal diagnostic. A fatal error is returned as the error,
// with no children.
func Parse(start Span, source string) (*Children, *ErrorList, error) {
	p := newParser(start, source)
	children, err := p.parseInvocation(start)
	if err != nil {
		return nil, p.diags.List(), err
	}
	return children, p.diags.List(), nil
}

func (p *Parser) parseInvocation(start Span) (children *Children, err error) {
	defer recoverAbort(&err)

	l := NewLexerAt(start, p.source)
	tokens, err := l.Tokenize()
	if err != nil {
		return nil, err
	}
	return p.parseChildren(NewCursor(tokens, l.EndSpan()))
}

// text returns the invocation source between two file offsets.
func (p *Parser) text(start, end int) string {
	start -= p.base
	end -= p.base
	if start < 0 {
		start = 0
	}
	if end > len(p.source) {
		end = len(p.source)
	}
	if start >= end {
		return ""
	}
	return p.source[start:end]
}

// startsLower reports whether s begins with a lower-case ASCII letter.
func startsLower(s string) bool {
	return s != "" && 'a' <= s[0] && s[0] <= 'z'
}
