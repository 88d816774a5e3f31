package mviewgen

import (
	"fmt"
	"strings"
)

// component emits view.Component(Name, NewNameProps()...Build()), followed
// by the event listeners and directives that apply to the built view.
func (g *Generator) component(el *Element) Expr {
	props, post := g.props(el, false)
	built := &Invoke{Fn: g.view("Component"), Args: []Expr{Raw(el.Tag.Path()), props}}
	if len(post) == 0 {
		return built
	}
	return &Chain{Head: built, Calls: post}
}

// props emits the props builder of a component or slot. Calls that apply to
// the built view rather than the props are returned separately.
func (g *Generator) props(el *Element, slot bool) (*Chain, []Call) {
	what := "components"
	if slot {
		what = "slots"
	}
	if len(el.Selectors) > 0 {
		msg := "selector shorthands are not supported on " + what
		if !slot {
			g.diags.Abort(el.Selectors[0].Span(), msg, "")
		}
		g.diags.Emit(el.Selectors[0].Span(), msg, "")
	}

	chain := &Chain{Head: &Invoke{Fn: Raw(propsConstructor(el.Tag))}}
	var post []Call
	var dynAttrs []string
	var clones []string

	for _, attr := range el.Attrs {
		switch attr.Kind {
		case AttrKv, AttrBool:
			chain.Add(ExportedName(attr.Key.Repr()), g.value(attr.Value))

		case AttrSpread:
			if !slot {
				g.diags.Abort(attr.Spread.Span, "spread attributes are not supported on components", "")
			}
			g.diags.Emit(attr.Spread.Span, "spread syntax is not supported on slots", "")

		case AttrDirective:
			d := attr.Directive
			g.checkModifier(d)
			if d.Name == "clone" {
				if d.Value != nil && !d.Braced {
					g.diags.Emit(d.Value.Span, "`clone:` does not take any values", "")
				}
				clones = append(clones, g.directiveIdent(d))
				continue
			}
			if slot {
				g.diags.Emit(d.NameSpan, fmt.Sprintf("`%s:` is not supported on slots", d.Name), "")
				continue
			}
			switch d.Name {
			case "on":
				post = append(post, Call{Method: "On", Args: []Expr{g.eventName(d), g.requireValue(d)}})
			case "use":
				post = append(post, Call{Method: "Directive", Args: []Expr{Raw(g.directiveIdent(d)), g.valueOr(d, Raw("nil"))}})
			case "attr":
				dynAttrs = append(dynAttrs, fmt.Sprintf("{Key: %s, Value: %s}", d.Key.Quoted(), Render(g.requireValue(d))))
			default:
				g.diags.Abort(d.NameSpan, fmt.Sprintf("`%s:` is not supported on components", d.Name), "")
			}
		}
	}

	if len(dynAttrs) > 0 {
		chain.Add("DynAttrs", Raw(fmt.Sprintf("[]%s.AttrPair{%s}", g.cfg.ViewPkg, strings.Join(dynAttrs, ", "))))
	}

	if hasNodes(el.Children) || el.ChildrenArgs != nil {
		chain.Add("Children", g.childrenFunc(el, clones))
	} else if len(clones) > 0 {
		g.diags.Warn(el.Tag.Span(), "`clone:` has no effect on a component without children", "")
	}

	chain.Calls = append(chain.Calls, g.slotCalls(el.Children)...)
	chain.Add("Build")
	return chain, post
}

// propsConstructor returns the props builder function of a component tag:
// NewNameProps, pkg.NewNameProps or NewNameProps[T].
func propsConstructor(tag Tag) string {
	var sb strings.Builder
	if tag.Package != "" {
		sb.WriteString(tag.Package)
		sb.WriteByte('.')
	}
	sb.WriteString("New")
	sb.WriteString(tag.Name.GoIdent())
	sb.WriteString("Props")
	if tag.TypeArgs != "" {
		sb.WriteByte('[')
		sb.WriteString(tag.TypeArgs)
		sb.WriteByte(']')
	}
	return sb.String()
}

// childrenFunc wraps a component's children in a closure. Cloned names are
// re-declared in a factory around it so each closure gets its own copy.
func (g *Generator) childrenFunc(el *Element, clones []string) Expr {
	params := ""
	if el.ChildrenArgs != nil {
		params = el.ChildrenArgs.Params
	}
	fn := &Closure{Params: params, Result: g.cfg.ViewPkg + ".View", Body: g.fragment(el.Children)}
	if len(clones) == 0 {
		return fn
	}

	prelude := make([]string, len(clones))
	for i, name := range clones {
		prelude[i] = name + " := " + name
	}
	return &Invoke{Fn: &Closure{Result: fn.Type(), Prelude: prelude, Body: fn}}
}

// slotCalls groups slot children by slot name in order of first appearance.
// A name used once is passed as is; a repeated name is passed as a list.
func (g *Generator) slotCalls(children *Children) []Call {
	var order []string
	groups := make(map[string][]Expr)

	for child := range children.Slots() {
		el := child.Element
		if el.Tag.Kind != TagComponent {
			g.diags.Abort(el.Tag.Span(), "slot elements must be components", "slot names are UpperCamelCase, as in slot:Fallback")
		}
		if el.Tag.Package != "" {
			g.diags.Emit(el.Tag.Span(), "slot name must be a single identifier", "")
			continue
		}

		name := el.Tag.Name.Repr()
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		props, _ := g.props(el, true)
		groups[name] = append(groups[name], props)
	}

	calls := make([]Call, 0, len(order))
	for _, name := range order {
		setter := ExportedName(UpperCamelToSnake(name))
		slots := groups[name]
		if len(slots) == 1 {
			calls = append(calls, Call{Method: setter, Args: slots})
			continue
		}
		calls = append(calls, Call{Method: setter, Args: []Expr{&Invoke{Fn: g.view("Slots"), Args: slots}}})
	}
	return calls
}

func hasNodes(children *Children) bool {
	for range children.Nodes() {
		return true
	}
	return false
}
