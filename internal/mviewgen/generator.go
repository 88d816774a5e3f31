package mviewgen

import (
	"fmt"
	"strings"
)

// Config names the packages generated code refers to.
type Config struct {
	// ViewPkg is the package name of the runtime builder API.
	ViewPkg string
	// EventPkg is the package name of the typed event names.
	EventPkg string
}

// DefaultConfig returns the package names used by the bundled runtime.
func DefaultConfig() Config {
	return Config{ViewPkg: "view", EventPkg: "ev"}
}

// Generator lowers a parsed invocation into a builder call chain.
type Generator struct {
	cfg   Config
	diags *Diagnostics

	// usesEvents and usesFmt are set once generated code refers to the
	// event package or to fmt.
	usesEvents bool
	usesFmt    bool
}

func newGenerator(cfg Config, diags *Diagnostics) *Generator {
	return &Generator{cfg: cfg, diags: diags}
}

// generate lowers the children of an invocation, turning an abort into an error.
func (g *Generator) generate(children *Children) (expr Expr, err error) {
	defer recoverAbort(&err)
	return g.Root(children), nil
}

// Root emits the expression for the top level of an invocation: a single
// child as itself, anything else wrapped in a fragment.
func (g *Generator) Root(children *Children) Expr {
	for slot := range children.Slots() {
		g.diags.Abort(slot.Span(), "slots should be inside a parent that supports slots", "")
	}
	return g.fragment(children)
}

// fragment emits the node children of a block.
func (g *Generator) fragment(children *Children) Expr {
	var nodes []Expr
	for child := range children.Nodes() {
		nodes = append(nodes, g.node(child))
	}
	if len(nodes) == 1 {
		return nodes[0]
	}
	return &Invoke{Fn: g.view("Fragment"), Args: nodes}
}

func (g *Generator) node(child Child) Expr {
	switch child.Kind {
	case ChildValue:
		return g.value(child.Value)
	case ChildElement:
		return g.element(child.Element)
	case ChildDoctype:
		return &Invoke{Fn: g.view("Doctype"), Args: []Expr{Quote(child.Doctype.Kind)}}
	}
	panic(fmt.Sprintf("mviewgen: unexpected node child kind %d", child.Kind))
}

func (g *Generator) element(el *Element) Expr {
	if el.Tag.Kind == TagComponent {
		return g.component(el)
	}
	return g.markup(el)
}

// value renders an attribute or child value. Bracket and paren values
// become closures so the runtime can re-evaluate them.
func (g *Generator) value(v Value) Expr {
	switch v.Kind {
	case ValueBlock:
		return Raw(g.expr(v))
	case ValueBracket, ValueParen:
		if v.Prefix == "f" {
			g.usesFmt = true
			return &Closure{Result: "string", Body: Raw("fmt.Sprintf(" + g.expr(v) + ")")}
		}
		return &Closure{Result: "any", Body: Raw(g.expr(v))}
	}
	return Raw(v.Lit.Raw)
}

// expr returns the expression text of v with nested invocations expanded.
func (g *Generator) expr(v Value) string {
	return strings.TrimSpace(g.expandNested(v.Expr, v.ExprStart))
}

// expandNested expands every mview! invocation inside an opaque expression.
// Each nested invocation is independent: its problems are reported here and
// a fatal one leaves its text untouched.
func (g *Generator) expandNested(src string, start Span) string {
	invs, err := findInvocations(src)
	if err != nil {
		g.diags.Emit(advance(start, src[:err.Offset]), err.Msg, "")
		return src
	}
	if len(invs) == 0 {
		return src
	}

	var sb strings.Builder
	last := 0
	for _, inv := range invs {
		sb.WriteString(src[last:inv.Start])
		last = inv.End

		exp, err := expand(advance(start, src[:inv.BodyStart]), src[inv.BodyStart:inv.BodyEnd], g.cfg, false)
		if exp == nil {
			g.diags.EmitError(err, advance(start, src[:inv.Start]))
			sb.WriteString(src[inv.Start:inv.End])
			continue
		}
		g.diags.List().Merge(exp.Diagnostics)
		g.usesEvents = g.usesEvents || exp.UsesEvents
		g.usesFmt = g.usesFmt || exp.UsesFmt
		sb.WriteString(exp.Code)
	}
	sb.WriteString(src[last:])
	return sb.String()
}

func (g *Generator) view(name string) Raw {
	return Raw(g.cfg.ViewPkg + "." + name)
}

func (g *Generator) event(name string) Raw {
	g.usesEvents = true
	return Raw(g.cfg.EventPkg + "." + name)
}

// requireValue returns the directive's value, reporting its absence.
func (g *Generator) requireValue(d *Directive) Expr {
	if d.Value == nil {
		g.diags.Emit(d.Span(), fmt.Sprintf("`%s:` requires a value", d.Name), "add `={...}` after the key")
		return Raw(missingValue)
	}
	return g.value(*d.Value)
}

// valueOr returns the directive's value or def when it has none.
func (g *Generator) valueOr(d *Directive, def Expr) Expr {
	if d.Value == nil {
		return def
	}
	return g.value(*d.Value)
}

// checkModifier reports modifiers on directives that do not take any.
func (g *Generator) checkModifier(d *Directive) {
	if d.Modifier != "" && d.Name != "on" {
		g.diags.Emit(d.ModifierSpan, "unknown modifier: modifiers are only supported on `on:` directives", "")
	}
}

// directiveIdent returns the key of use: and clone: as a Go identifier.
func (g *Generator) directiveIdent(d *Directive) string {
	if d.Key.IsStr {
		g.diags.Emit(d.Key.Span, fmt.Sprintf("`%s:` expects an identifier, not a string", d.Name), "")
		return "_"
	}
	return d.Key.Ident.GoIdent()
}

// eventName returns the typed event for an on: directive.
func (g *Generator) eventName(d *Directive) Expr {
	if d.Key.IsStr {
		g.diags.Emit(d.Key.Span, "event type must be an identifier", "")
		return Raw(d.Key.Quoted())
	}
	ev := g.event(ExportedName(d.Key.Ident.Repr()))
	switch d.Modifier {
	case "":
		return ev
	case "undelegated":
		return &Invoke{Fn: g.event("Undelegated"), Args: []Expr{ev}}
	}
	g.diags.Emit(d.ModifierSpan, "unknown modifier", ":undelegated is the only known modifier")
	return ev
}
