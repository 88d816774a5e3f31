package mviewgen

import (
	"strconv"
	"strings"

	"golang.org/x/net/html/atom"
)

// Analyzer reports likely mistakes in a parsed invocation as warnings.
// It never rejects input; code generation has already succeeded when it runs.
type Analyzer struct {
	diags *Diagnostics

	// ids maps each literal id to where it was first set.
	ids map[string]Span
}

// NewAnalyzer creates an analyzer that reports into diags.
func NewAnalyzer(diags *Diagnostics) *Analyzer {
	return &Analyzer{
		diags: diags,
		ids:   make(map[string]Span),
	}
}

// voidElements cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// attributeSimilar maps common mistakes to the intended spelling.
var attributeSimilar = map[string]string{
	"classname": "class",
	"htmlfor":   "for",
	"onclick":   "on:click",
	"oninput":   "on:input",
	"onchange":  "on:change",
	"onsubmit":  "on:submit",
	"onkeydown": "on:keydown",
}

// Analyze walks every element of the invocation.
func (a *Analyzer) Analyze(children *Children) {
	for _, child := range children.All() {
		if child.Kind == ChildElement || child.Kind == ChildSlot {
			a.analyzeElement(child.Element)
		}
	}
}

func (a *Analyzer) analyzeElement(el *Element) {
	name := el.Tag.Name.Repr()
	if el.Tag.Kind == TagHTML {
		if !isKnownElement(name) {
			a.diags.Warn(el.Tag.Span(), "unknown HTML element <"+name+">",
				"custom elements need a dash in their name, as in my-element")
		}
		if voidElements[name] && hasNodes(el.Children) {
			a.diags.Warn(el.Tag.Span(), "<"+name+"> is a void element and cannot have children", "")
		}
	}

	for _, sel := range el.Selectors {
		if sel.Kind == SelectorID {
			a.recordID(sel.Name.Repr(), sel.Span())
		}
	}
	for _, attr := range el.Attrs {
		a.analyzeAttr(el.Tag, attr)
	}

	a.Analyze(el.Children)
}

func (a *Analyzer) analyzeAttr(tag Tag, attr Attr) {
	if attr.Kind != AttrKv && attr.Kind != AttrBool {
		return
	}
	key := attr.Key.Repr()

	if key == "id" && attr.Value.IsStringLiteral() {
		if id, err := strconv.Unquote(attr.Value.Lit.Raw); err == nil {
			a.recordID(id, attr.Span())
		}
	}

	if tag.Kind != TagHTML || key == "ref" || strings.Contains(key, "-") {
		return
	}
	if similar, ok := attributeSimilar[strings.ToLower(key)]; ok {
		a.diags.Warn(attr.Key.Span(), "unknown attribute "+key, "did you mean "+similar+"?")
		return
	}
	if atom.Lookup([]byte(key)) == 0 {
		a.diags.Warn(attr.Key.Span(), "unknown attribute "+key, "use a data- attribute or attr: for custom attributes")
	}
}

// recordID warns when a literal id is set twice in one invocation.
func (a *Analyzer) recordID(id string, span Span) {
	if first, ok := a.ids[id]; ok {
		a.diags.Warn(span, "duplicate id "+strconv.Quote(id), "first set at "+first.String())
		return
	}
	a.ids[id] = span
}

// isKnownElement reports whether name is a standard HTML, SVG or MathML
// element name.
func isKnownElement(name string) bool {
	return atom.Lookup([]byte(name)) != 0 || isSVGTag(name) || isMathMLTag(name)
}
