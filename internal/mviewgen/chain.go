package mviewgen

import (
	"strconv"
	"strings"
)

// Expr is a node of generated Go code.
type Expr interface {
	render(w *exprWriter)
}

// Raw is Go source emitted as is.
type Raw string

func (r Raw) render(w *exprWriter) {
	w.WriteString(string(r))
}

// Quote is a Go string literal for s.
func Quote(s string) Raw {
	return Raw(strconv.Quote(s))
}

// Call is one method call of a builder chain.
type Call struct {
	Method string
	Args   []Expr
}

// Chain is a head expression followed by method calls: head.A(x).B().
type Chain struct {
	Head  Expr
	Calls []Call
}

// Add appends a method call.
func (c *Chain) Add(method string, args ...Expr) *Chain {
	c.Calls = append(c.Calls, Call{Method: method, Args: args})
	return c
}

func (c *Chain) render(w *exprWriter) {
	c.Head.render(w)
	breakLines := w.pretty && len(c.Calls) > 2
	if breakLines {
		w.depth++
	}
	for _, call := range c.Calls {
		w.WriteByte('.')
		if breakLines {
			w.newline()
		}
		w.WriteString(call.Method)
		writeArgs(w, call.Args)
	}
	if breakLines {
		w.depth--
	}
}

// Invoke is a function call: fn(args).
type Invoke struct {
	Fn   Expr
	Args []Expr
}

func (i *Invoke) render(w *exprWriter) {
	i.Fn.render(w)
	writeArgs(w, i.Args)
}

// Closure is a function literal returning Body. Prelude statements run
// before the return.
type Closure struct {
	Params  string
	Result  string
	Prelude []string
	Body    Expr
}

// Type returns the Go function type of the closure.
func (c *Closure) Type() string {
	return "func(" + c.Params + ") " + c.Result
}

func (c *Closure) render(w *exprWriter) {
	w.WriteString(c.Type())
	w.WriteString(" {")
	if !w.pretty {
		w.WriteByte(' ')
		for _, stmt := range c.Prelude {
			w.WriteString(stmt)
			w.WriteString("; ")
		}
		w.WriteString("return ")
		c.Body.render(w)
		w.WriteString(" }")
		return
	}
	w.depth++
	for _, stmt := range c.Prelude {
		w.newline()
		w.WriteString(stmt)
	}
	w.newline()
	w.WriteString("return ")
	c.Body.render(w)
	w.depth--
	w.newline()
	w.WriteByte('}')
}

func writeArgs(w *exprWriter, args []Expr) {
	w.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			w.WriteString(", ")
		}
		arg.render(w)
	}
	w.WriteByte(')')
}

// exprWriter accumulates rendered code. In pretty mode long chains and
// closures are broken across lines for gofmt to indent.
type exprWriter struct {
	strings.Builder
	pretty bool
	depth  int
}

func (w *exprWriter) newline() {
	w.WriteByte('\n')
	for range w.depth {
		w.WriteByte('\t')
	}
}

// Render returns the Go source of e on a single line.
func Render(e Expr) string {
	w := &exprWriter{}
	e.render(w)
	return w.String()
}

// RenderPretty returns the Go source of e with line breaks in long chains
// and closure bodies.
func RenderPretty(e Expr) string {
	w := &exprWriter{pretty: true}
	e.render(w)
	return w.String()
}
