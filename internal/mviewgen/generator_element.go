package mviewgen

import (
	"fmt"
	"strings"
)

var markupConstructors = map[TagKind]string{
	TagHTML:         "HTML",
	TagSVG:          "SVG",
	TagMathML:       "MathML",
	TagWebComponent: "Custom",
}

// markup emits the builder chain of an HTML, SVG, MathML or custom element.
// Calls come in a fixed order: attributes, directives, selectors, spreads,
// children.
func (g *Generator) markup(el *Element) Expr {
	kind := el.Tag.Kind
	chain := &Chain{Head: &Invoke{Fn: g.view(markupConstructors[kind]), Args: []Expr{Raw(el.Tag.Name.Quoted())}}}

	var directives, spreads []Call
	for _, attr := range el.Attrs {
		switch attr.Kind {
		case AttrKv, AttrBool:
			chain.Calls = append(chain.Calls, g.markupAttr(kind, attr))
		case AttrDirective:
			if call, ok := g.markupDirective(attr.Directive); ok {
				directives = append(directives, call)
			}
		case AttrSpread:
			if attr.Spread.Expr != "" {
				spreads = append(spreads, Call{Method: "Attrs", Args: []Expr{Raw(attr.Spread.Expr)}})
			}
		}
	}
	chain.Calls = append(chain.Calls, directives...)
	chain.Calls = append(chain.Calls, g.selectorCalls(el.Selectors)...)
	chain.Calls = append(chain.Calls, spreads...)

	if el.ChildrenArgs != nil {
		g.diags.Emit(el.ChildrenArgs.Span, "closure arguments are only supported on components", "")
	}
	for _, child := range el.Children.All() {
		if child.IsSlot() {
			g.diags.Emit(child.Span(), "slots are only supported on components", "")
			continue
		}
		chain.Add("Child", g.node(child))
	}
	return chain.Add("Build")
}

// markupAttr emits a key-value attribute. Attributes the runtime knows get
// a named setter; the rest go through Attr.
func (g *Generator) markupAttr(kind TagKind, attr Attr) Call {
	key := attr.Key.Repr()
	v := g.value(attr.Value)
	switch {
	case key == "ref":
		return Call{Method: "NodeRef", Args: []Expr{v}}
	case uncheckedAttr(kind, key):
		return Call{Method: "Attr", Args: []Expr{Quote(key), v}}
	}
	return Call{Method: ExportedName(key), Args: []Expr{v}}
}

// uncheckedAttr reports whether key has no named setter on the tag kind.
func uncheckedAttr(kind TagKind, key string) bool {
	if kind == TagSVG || kind == TagWebComponent {
		return key != "class" && key != "style"
	}
	return strings.Contains(key, "-") && !strings.HasPrefix(key, "aria-")
}

func (g *Generator) markupDirective(d *Directive) (Call, bool) {
	g.checkModifier(d)
	key := Raw(d.Key.Quoted())
	switch d.Name {
	case "class":
		return Call{Method: "ClassIf", Args: []Expr{key, g.valueOr(d, Raw("true"))}}, true
	case "style":
		return Call{Method: "StyleProp", Args: []Expr{key, g.requireValue(d)}}, true
	case "prop":
		return Call{Method: "Prop", Args: []Expr{key, g.requireValue(d)}}, true
	case "on":
		return Call{Method: "On", Args: []Expr{g.eventName(d), g.requireValue(d)}}, true
	case "use":
		return Call{Method: "Directive", Args: []Expr{Raw(g.directiveIdent(d)), g.valueOr(d, Raw("nil"))}}, true
	}
	g.diags.Emit(d.NameSpan, fmt.Sprintf("`%s:` is not supported on elements", d.Name), "")
	return Call{}, false
}

// selectorCalls merges every class selector into one call and emits one
// call per id selector.
func (g *Generator) selectorCalls(sels []Selector) []Call {
	var classes []string
	var ids []Call
	for _, sel := range sels {
		switch sel.Kind {
		case SelectorClass:
			classes = append(classes, sel.Name.Repr())
		case SelectorID:
			ids = append(ids, Call{Method: "ID", Args: []Expr{Quote(sel.Name.Repr())}})
		}
	}
	if len(classes) == 0 {
		return ids
	}
	return append([]Call{{Method: "Classes", Args: []Expr{Quote(strings.Join(classes, " "))}}}, ids...)
}
