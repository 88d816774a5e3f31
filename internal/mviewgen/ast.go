package mviewgen

import (
	"iter"
	"strconv"
	"strings"
)

// KebabIdent is a dash-joined identifier such as `aria-label` or `--var`.
type KebabIdent struct {
	repr  string
	spans []Span
}

// NewKebabIdent creates a single-segment identifier.
func NewKebabIdent(repr string, span Span) KebabIdent {
	return KebabIdent{repr: repr, spans: []Span{span}}
}

// Repr returns the identifier text with dashes.
func (k KebabIdent) Repr() string { return k.repr }

// Spans returns the span of every segment.
func (k KebabIdent) Spans() []Span { return k.spans }

// Span joins the first and last segment spans.
func (k KebabIdent) Span() Span {
	if len(k.spans) == 0 {
		return Span{}
	}
	return JoinSpans(k.spans[0], k.spans[len(k.spans)-1])
}

// Equal compares identifiers by text only.
func (k KebabIdent) Equal(o KebabIdent) bool { return k.repr == o.repr }

// GoIdent returns the identifier usable as a Go name: dashes become underscores.
func (k KebabIdent) GoIdent() string { return strings.ReplaceAll(k.repr, "-", "_") }

// Quoted returns the identifier as a Go string literal.
func (k KebabIdent) Quoted() string { return strconv.Quote(k.repr) }

// ValueKind discriminates Value.
type ValueKind int

const (
	ValueLiteral ValueKind = iota // "text", 1, 2.5, 'c', true
	ValueBlock                    // {expr}
	ValueBracket                  // [expr], f["fmt", args]
	ValueParen                    // (expr)
)

// LitKind is the scalar type of a literal value.
type LitKind int

const (
	LitString LitKind = iota
	LitInt
	LitFloat
	LitChar
	LitBool
)

// Literal is a scalar literal kept as its source text.
type Literal struct {
	Kind LitKind
	Raw  string
}

// Value is an attribute value or a child value.
type Value struct {
	Kind ValueKind
	Lit  Literal

	// Expr is the verbatim source between the delimiters of a block,
	// bracket or paren value. ExprStart is where that source begins.
	Expr      string
	ExprStart Span

	// Prefix is the identifier before a bracket value (`f` in f[...]).
	Prefix string

	// Span covers the whole value, delimiters included.
	Span Span
}

// IsStringLiteral reports whether v is a string literal.
func (v Value) IsStringLiteral() bool {
	return v.Kind == ValueLiteral && v.Lit.Kind == LitString
}

// stringLiteral builds a literal string value.
func stringLiteral(raw string, span Span) Value {
	return Value{Kind: ValueLiteral, Lit: Literal{Kind: LitString, Raw: raw}, Span: span}
}

// AttrKind discriminates Attr.
type AttrKind int

const (
	AttrKv        AttrKind = iota // key=value, {key}
	AttrBool                      // key
	AttrDirective                 // dir:key[:modifier][=value]
	AttrSpread                    // {..expr}
)

// Attr is one attribute of an element. Exactly the fields for its Kind are set.
type Attr struct {
	Kind AttrKind

	// Kv and Bool
	Key   KebabIdent
	Value Value

	Directive *Directive
	Spread    *Spread
}

// Span returns the span of the whole attribute.
func (a Attr) Span() Span {
	switch a.Kind {
	case AttrKv:
		return JoinSpans(a.Key.Span(), a.Value.Span)
	case AttrBool:
		return a.Key.Span()
	case AttrDirective:
		return a.Directive.Span()
	case AttrSpread:
		return a.Spread.Span
	}
	return Span{}
}

// DirectiveKey is the key of a directive: a kebab identifier or a string literal.
type DirectiveKey struct {
	Ident KebabIdent
	Str   string // raw string literal when IsStr
	IsStr bool
	Span  Span
}

// Repr returns the key text without quotes.
func (k DirectiveKey) Repr() string {
	if k.IsStr {
		if s, err := strconv.Unquote(k.Str); err == nil {
			return s
		}
		return strings.Trim(k.Str, "\"`")
	}
	return k.Ident.Repr()
}

// Quoted returns the key as a Go string literal.
func (k DirectiveKey) Quoted() string {
	if k.IsStr {
		return k.Str
	}
	return k.Ident.Quoted()
}

// Directive is a `dir:key` attribute.
type Directive struct {
	Name         string
	NameSpan     Span
	Key          DirectiveKey
	Modifier     string
	ModifierSpan Span
	Value        *Value
	// Braced is set for the {key} shorthand, whose value is the key itself.
	Braced bool
}

// Span covers the directive from its name to its value.
func (d *Directive) Span() Span {
	end := d.Key.Span
	if d.Modifier != "" {
		end = d.ModifierSpan
	}
	if d.Value != nil && !d.Braced {
		end = d.Value.Span
	}
	return JoinSpans(d.NameSpan, end)
}

// Spread is a `{..expr}` attribute.
type Spread struct {
	Expr string
	Span Span
}

// SelectorKind discriminates Selector.
type SelectorKind int

const (
	SelectorClass SelectorKind = iota // .name
	SelectorID                        // #name
)

// Selector is a `.class` or `#id` shorthand directly after a tag.
type Selector struct {
	Kind       SelectorKind
	Name       KebabIdent
	PrefixSpan Span
}

// Span covers the prefix and the name.
func (s Selector) Span() Span {
	return JoinSpans(s.PrefixSpan, s.Name.Span())
}

// TagKind is the classification of an element tag.
type TagKind int

const (
	TagHTML TagKind = iota
	TagSVG
	TagMathML
	TagWebComponent
	TagComponent
)

var tagKindNames = map[TagKind]string{
	TagHTML:         "Html",
	TagSVG:          "Svg",
	TagMathML:       "MathML",
	TagWebComponent: "WebComponent",
	TagComponent:    "Component",
}

func (k TagKind) String() string {
	return tagKindNames[k]
}

// Tag is an element tag.
type Tag struct {
	Kind TagKind
	Name KebabIdent

	// Component only
	Package      string // qualifier in pkg.Name
	PackageSpan  Span
	TypeArgs     string // verbatim text inside [ ]
	TypeArgsSpan Span
}

// Span covers the tag name including its qualifier and type arguments.
func (t Tag) Span() Span {
	span := t.Name.Span()
	if t.Package != "" {
		span = JoinSpans(t.PackageSpan, span)
	}
	if t.TypeArgs != "" {
		span = JoinSpans(span, t.TypeArgsSpan)
	}
	return span
}

// Path returns the Go expression naming a component: pkg.Name[T].
func (t Tag) Path() string {
	var sb strings.Builder
	if t.Package != "" {
		sb.WriteString(t.Package)
		sb.WriteByte('.')
	}
	sb.WriteString(t.Name.GoIdent())
	if t.TypeArgs != "" {
		sb.WriteByte('[')
		sb.WriteString(t.TypeArgs)
		sb.WriteByte(']')
	}
	return sb.String()
}

// ClosureArgs are the `|params|` before a component's children block.
type ClosureArgs struct {
	Params string
	Span   Span
}

// Element is a parsed element.
type Element struct {
	Tag          Tag
	Selectors    []Selector
	Attrs        []Attr
	ChildrenArgs *ClosureArgs // only set together with Children
	Children     *Children
}

// Span returns the span of the element's tag.
func (e *Element) Span() Span {
	return e.Tag.Span()
}

// ChildKind discriminates Child.
type ChildKind int

const (
	ChildValue ChildKind = iota
	ChildElement
	ChildSlot
	ChildDoctype
)

// Child is one entry of a children block.
type Child struct {
	Kind     ChildKind
	Value    Value    // ChildValue
	Element  *Element // ChildElement and ChildSlot
	SlotSpan Span     // the `slot` keyword
	Doctype  *Doctype // ChildDoctype
}

// IsSlot reports whether the child is a slot.
func (c Child) IsSlot() bool { return c.Kind == ChildSlot }

// Span returns the span of the child.
func (c Child) Span() Span {
	switch c.Kind {
	case ChildValue:
		return c.Value.Span
	case ChildElement:
		return c.Element.Span()
	case ChildSlot:
		return JoinSpans(c.SlotSpan, c.Element.Span())
	case ChildDoctype:
		return c.Doctype.Span
	}
	return Span{}
}

// Doctype is `!DOCTYPE html;`.
type Doctype struct {
	Kind string
	Span Span
}

// Children is an ordered list of children.
type Children struct {
	list []Child
}

// NewChildren wraps a child list.
func NewChildren(list []Child) *Children {
	return &Children{list: list}
}

// Len returns the number of children of every kind.
func (c *Children) Len() int {
	if c == nil {
		return 0
	}
	return len(c.list)
}

// All returns every child in source order.
func (c *Children) All() []Child {
	if c == nil {
		return nil
	}
	return c.list
}

// Nodes yields the non-slot children in source order.
func (c *Children) Nodes() iter.Seq[Child] {
	return func(yield func(Child) bool) {
		for _, child := range c.All() {
			if !child.IsSlot() && !yield(child) {
				return
			}
		}
	}
}

// Slots yields the slot children in source order.
func (c *Children) Slots() iter.Seq[Child] {
	return func(yield func(Child) bool) {
		for _, child := range c.All() {
			if child.IsSlot() && !yield(child) {
				return
			}
		}
	}
}
