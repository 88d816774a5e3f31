package mviewgen

import (
	"github.com/grindlemire/go-mview/internal/debug"
)

// Expansion is the result of expanding one invocation.
type Expansion struct {
	// Expr is the generated call chain and Code its rendering.
	Expr Expr
	Code string

	// Diagnostics holds the non-fatal errors and warnings.
	Diagnostics *ErrorList

	// UsesEvents and UsesFmt are set when Code refers to the event
	// package or to fmt.
	UsesEvents bool
	UsesFmt    bool
}

// Expand parses the body of one invocation and generates its Go expression.
// start is the position of the body in its file.
//
// A fatal problem returns a nil Expansion and an *Error. Otherwise the
// Expansion is always returned, and the error is non-nil when any
// non-fatal error was reported.
func Expand(start Span, source string, cfg Config) (*Expansion, error) {
	return expand(start, source, cfg, false)
}

func expand(start Span, source string, cfg Config, pretty bool) (*Expansion, error) {
	p := newParser(start, source)
	children, err := p.parseInvocation(start)
	if err != nil {
		debug.Log("expand %s: parse aborted: %v", start, err)
		return nil, err
	}

	g := newGenerator(cfg, p.diags)
	expr, err := g.generate(children)
	if err != nil {
		debug.Log("expand %s: generation aborted: %v", start, err)
		return nil, err
	}

	NewAnalyzer(p.diags).Analyze(children)

	exp := &Expansion{
		Expr:        expr,
		Diagnostics: p.diags.List(),
		UsesEvents:  g.usesEvents,
		UsesFmt:     g.usesFmt,
	}
	if pretty {
		exp.Code = RenderPretty(expr)
	} else {
		exp.Code = Render(expr)
	}
	debug.Log("expand %s: %d children, %d diagnostics", start, children.Len(), exp.Diagnostics.Len())
	return exp, exp.Diagnostics.Err()
}

// ExpandString expands a standalone invocation body, as found between the
// braces of mview! { ... }.
func ExpandString(filename, source string) (string, error) {
	exp, err := Expand(Span{File: filename, Line: 1, Column: 1}, source, DefaultConfig())
	if exp == nil {
		return "", err
	}
	return exp.Code, err
}
