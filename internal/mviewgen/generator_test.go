package mviewgen

import (
	"slices"
	"strings"
	"testing"
)

func TestExpand_Markup(t *testing.T) {
	type tc struct {
		input    string
		expected string
	}

	tests := map[string]tc{
		"nested elements": {
			input:    `div class="x" { "hi" span { "there" } }`,
			expected: `view.HTML("div").Class("x").Child("hi").Child(view.HTML("span").Child("there").Build()).Build()`,
		},
		"event listener": {
			input:    `button on:click={h};`,
			expected: `view.HTML("button").On(ev.Click, h).Build()`,
		},
		"undelegated event": {
			input:    `button on:click:undelegated={h};`,
			expected: `view.HTML("button").On(ev.Undelegated(ev.Click), h).Build()`,
		},
		"kebab event": {
			input:    `div on:pointer-down={h};`,
			expected: `view.HTML("div").On(ev.PointerDown, h).Build()`,
		},
		"call order": {
			input:    `div.a.b#main class:active={on} {..rest} title="t";`,
			expected: `view.HTML("div").Title("t").ClassIf("active", on).Classes("a b").ID("main").Attrs(rest).Build()`,
		},
		"selectors merged": {
			input:    `div.a.b #id1 .c #id2;`,
			expected: `view.HTML("div").Classes("a b c").ID("id1").ID("id2").Build()`,
		},
		"boolean attribute": {
			input:    `input type="text" disabled;`,
			expected: `view.HTML("input").Type("text").Disabled(true).Build()`,
		},
		"unchecked attributes": {
			input:    `div data-index=3 aria-label="x";`,
			expected: `view.HTML("div").Attr("data-index", 3).AriaLabel("x").Build()`,
		},
		"id and ref": {
			input:    `div id="x" ref={el};`,
			expected: `view.HTML("div").ID("x").NodeRef(el).Build()`,
		},
		"svg": {
			input:    `svg viewBox="0 0 1 1" class="icon" { circle r=5; }`,
			expected: `view.SVG("svg").Attr("viewBox", "0 0 1 1").Class("icon").Child(view.SVG("circle").Attr("r", 5).Build()).Build()`,
		},
		"mathml": {
			input:    `math { mi { "x" } }`,
			expected: `view.MathML("math").Child(view.MathML("mi").Child("x").Build()).Build()`,
		},
		"aria on svg": {
			input:    `svg aria-label="x";`,
			expected: `view.SVG("svg").Attr("aria-label", "x").Build()`,
		},
		"aria on web component": {
			input:    `my-el aria-hidden="true";`,
			expected: `view.Custom("my-el").Attr("aria-hidden", "true").Build()`,
		},
		"web component": {
			input:    `my-el foo="x";`,
			expected: `view.Custom("my-el").Attr("foo", "x").Build()`,
		},
		"fragment": {
			input:    `"a" "b"`,
			expected: `view.Fragment("a", "b")`,
		},
		"empty invocation": {
			input:    ``,
			expected: `view.Fragment()`,
		},
		"single child": {
			input:    `"a"`,
			expected: `"a"`,
		},
		"block child": {
			input:    `p { {name} }`,
			expected: `view.HTML("p").Child(name).Build()`,
		},
		"bracket child": {
			input:    `p { [count()] }`,
			expected: `view.HTML("p").Child(func() any { return count() }).Build()`,
		},
		"paren value": {
			input:    `p title=(label());`,
			expected: `view.HTML("p").Title(func() any { return label() }).Build()`,
		},
		"format value": {
			input:    `p title=f["%d items", n];`,
			expected: `view.HTML("p").Title(func() string { return fmt.Sprintf("%d items", n) }).Build()`,
		},
		"style and prop": {
			input:    `input style:color="red" prop:value={v};`,
			expected: `view.HTML("input").StyleProp("color", "red").Prop("value", v).Build()`,
		},
		"string style key": {
			input:    `div style:"background-color"={bg};`,
			expected: `view.HTML("div").StyleProp("background-color", bg).Build()`,
		},
		"class directives": {
			input:    `div class:{active} class:big class:red={isRed};`,
			expected: `view.HTML("div").ClassIf("active", active).ClassIf("big", true).ClassIf("red", isRed).Build()`,
		},
		"use directive": {
			input:    `div use:tooltip={cfg} use:focus;`,
			expected: `view.HTML("div").Directive(tooltip, cfg).Directive(focus, nil).Build()`,
		},
		"doctype": {
			input:    `!DOCTYPE html; html { body; }`,
			expected: `view.Fragment(view.Doctype("html"), view.HTML("html").Child(view.HTML("body").Build()).Build())`,
		},
		"element with upper-case class": {
			input:    `div.Wide;`,
			expected: `view.HTML("div").Classes("Wide").Build()`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			exp, err := Expand(testStart, tt.input, DefaultConfig())
			if err != nil {
				t.Fatalf("Expand(%q) failed: %v", tt.input, err)
			}
			if exp.Code != tt.expected {
				t.Errorf("code mismatch\ngot:  %s\nwant: %s", exp.Code, tt.expected)
			}
		})
	}
}

func TestExpand_Components(t *testing.T) {
	type tc struct {
		input    string
		expected string
	}

	tests := map[string]tc{
		"props and post calls": {
			input:    `Button label="x" on:click={h} use:ripple;`,
			expected: `view.Component(Button, NewButtonProps().Label("x").Build()).On(ev.Click, h).Directive(ripple, nil)`,
		},
		"boolean prop": {
			input:    `Toggle checked;`,
			expected: `view.Component(Toggle, NewToggleProps().Checked(true).Build())`,
		},
		"dynamic attributes": {
			input:    `Card attr:data-x="1" attr:title={t};`,
			expected: `view.Component(Card, NewCardProps().DynAttrs([]view.AttrPair{{Key: "data-x", Value: "1"}, {Key: "title", Value: t}}).Build())`,
		},
		"children": {
			input:    `Card { "hi" }`,
			expected: `view.Component(Card, NewCardProps().Children(func() view.View { return "hi" }).Build())`,
		},
		"several children": {
			input:    `Card { "a" b; }`,
			expected: `view.Component(Card, NewCardProps().Children(func() view.View { return view.Fragment("a", view.HTML("b").Build()) }).Build())`,
		},
		"closure arguments": {
			input:    `For each={items} key={k} |item Item| { span { {item} } }`,
			expected: `view.Component(For, NewForProps().Each(items).Key(k).Children(func(item Item) view.View { return view.HTML("span").Child(item).Build() }).Build())`,
		},
		"clone": {
			input:    `Show clone:msg { {msg} }`,
			expected: `view.Component(Show, NewShowProps().Children(func() func() view.View { msg := msg; return func() view.View { return msg } }()).Build())`,
		},
		"generic": {
			input:    `Table[Row] rows={rs};`,
			expected: `view.Component(Table[Row], NewTableProps[Row]().Rows(rs).Build())`,
		},
		"qualified": {
			input:    `ui.Button;`,
			expected: `view.Component(ui.Button, ui.NewButtonProps().Build())`,
		},
		"slots": {
			input: `SlotIf cond={a} {
				slot:Then { "a" }
				slot:ElseIf cond={b} { "b" }
				slot:ElseIf cond={c} { "c" }
				slot:Fallback { "d" }
			}`,
			expected: `view.Component(SlotIf, NewSlotIfProps().Cond(a)` +
				`.Then(NewThenProps().Children(func() view.View { return "a" }).Build())` +
				`.ElseIf(view.Slots(` +
				`NewElseIfProps().Cond(b).Children(func() view.View { return "b" }).Build(), ` +
				`NewElseIfProps().Cond(c).Children(func() view.View { return "c" }).Build()))` +
				`.Fallback(NewFallbackProps().Children(func() view.View { return "d" }).Build())` +
				`.Build())`,
		},
		"slots after children": {
			input:    `Show { slot:Fallback; "x" }`,
			expected: `view.Component(Show, NewShowProps().Children(func() view.View { return "x" }).Fallback(NewFallbackProps().Build()).Build())`,
		},
		"nested invocation": {
			input:    `Show when={ok} fallback={mview! { span; }};`,
			expected: `view.Component(Show, NewShowProps().When(ok).Fallback(view.HTML("span").Build()).Build())`,
		},
		"nested invocation in bracket": {
			input:    `p { [pick(mview! { b { "x" } })] }`,
			expected: `view.HTML("p").Child(func() any { return pick(view.HTML("b").Child("x").Build()) }).Build()`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			exp, err := Expand(testStart, tt.input, DefaultConfig())
			if err != nil {
				t.Fatalf("Expand(%q) failed: %v", tt.input, err)
			}
			if exp.Code != tt.expected {
				t.Errorf("code mismatch\ngot:  %s\nwant: %s", exp.Code, tt.expected)
			}
		})
	}
}

func TestExpand_FatalErrors(t *testing.T) {
	type tc struct {
		input   string
		message string
	}

	tests := map[string]tc{
		"slot at root":           {input: `slot:Fallback;`, message: "slots should be inside a parent that supports slots"},
		"selector on component":  {input: `Button.x;`, message: "selector shorthands are not supported on components"},
		"spread on component":    {input: `Button {..rest};`, message: "spread attributes are not supported on components"},
		"class on component":     {input: `Button class:x;`, message: "`class:` is not supported on components"},
		"markup slot":            {input: `Show { slot:div; }`, message: "slot elements must be components"},
		"parse error propagates": {input: `div { span class: }`, message: "expected a key after `class:`"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			exp, err := Expand(testStart, tt.input, DefaultConfig())
			if err == nil {
				t.Fatalf("Expand(%q) succeeded with %q, want error", tt.input, exp.Code)
			}
			if exp != nil {
				t.Errorf("Expansion returned alongside a fatal error")
			}
			e, ok := err.(*Error)
			if !ok {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if e.Message != tt.message {
				t.Errorf("Message = %q, want %q", e.Message, tt.message)
			}
		})
	}
}

func TestExpand_NonFatalErrors(t *testing.T) {
	type tc struct {
		input    string
		messages []string
	}

	tests := map[string]tc{
		"clone on element":       {input: `div clone:x;`, messages: []string{"`clone:` is not supported on elements"}},
		"closure on element":     {input: `div |x| { "a" }`, messages: []string{"closure arguments are only supported on components"}},
		"slot on element":        {input: `div { slot:Then; }`, messages: []string{"slots are only supported on components"}},
		"unknown event modifier": {input: `button on:click:capture={h};`, messages: []string{"unknown modifier"}},
		"modifier off on:":       {input: `div class:x:y;`, messages: []string{"unknown modifier: modifiers are only supported on `on:` directives"}},
		"event without value":    {input: `button on:click;`, messages: []string{"`on:` requires a value"}},
		"string event name":      {input: `button on:"click"={h};`, messages: []string{"event type must be an identifier"}},
		"clone with value":       {input: `Show clone:x={y} { "a" }`, messages: []string{"`clone:` does not take any values"}},
		"selector on slot":       {input: `Show { slot:Then.x; }`, messages: []string{"selector shorthands are not supported on slots"}},
		"spread on slot":         {input: `Show { slot:Then {..x}; }`, messages: []string{"spread syntax is not supported on slots"}},
		"directive on slot":      {input: `Show { slot:Then on:click={h}; }`, messages: []string{"`on:` is not supported on slots"}},
		"qualified slot":         {input: `Show { slot:ui.Then; }`, messages: []string{"slot name must be a single identifier"}},
		"fatal nested invocation": {
			input:    `Show fallback={mview! { span bogus:x; }};`,
			messages: []string{"unknown directive `bogus:`"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			exp, err := Expand(testStart, tt.input, DefaultConfig())
			if exp == nil {
				t.Fatalf("Expand(%q) aborted: %v", tt.input, err)
			}
			if err == nil {
				t.Fatalf("Expand(%q) reported no error", tt.input)
			}
			var got []string
			for _, e := range exp.Diagnostics.Errors() {
				if e.Severity == SeverityError {
					got = append(got, e.Message)
				}
			}
			if !slices.Equal(got, tt.messages) {
				t.Errorf("messages = %q, want %q", got, tt.messages)
			}
		})
	}
}

func TestExpand_Warnings(t *testing.T) {
	exp, err := Expand(testStart, `Show clone:x;`, DefaultConfig())
	if err != nil {
		t.Fatalf("warnings must not fail expansion: %v", err)
	}
	warnings := exp.Diagnostics.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "clone:") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestExpand_NestedErrorPosition(t *testing.T) {
	src := "Show fallback={mview! {\n  span bogus:x;\n}};"
	exp, _ := Expand(testStart, src, DefaultConfig())
	if exp == nil {
		t.Fatal("nested failure must not abort the outer invocation")
	}
	errs := exp.Diagnostics.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(errs))
	}
	if errs[0].Span.Line != 2 || errs[0].Span.Column != 8 {
		t.Errorf("position = %d:%d, want 2:8", errs[0].Span.Line, errs[0].Span.Column)
	}
}

func TestExpand_Config(t *testing.T) {
	cfg := Config{ViewPkg: "v", EventPkg: "events"}
	exp, err := Expand(testStart, `Card on:click={h} { "x" }`, cfg)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	want := `v.Component(Card, NewCardProps().Children(func() v.View { return "x" }).Build()).On(events.Click, h)`
	if exp.Code != want {
		t.Errorf("got  %s\nwant %s", exp.Code, want)
	}
}

func TestExpand_UsageFlags(t *testing.T) {
	type tc struct {
		input  string
		events bool
		fmt    bool
	}

	tests := map[string]tc{
		"plain":  {input: `div;`},
		"events": {input: `div on:click={h};`, events: true},
		"format": {input: `p { f["%d", n] }`, fmt: true},
		"nested": {input: `Show fallback={mview! { b on:click={h}; }};`, events: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			exp, err := Expand(testStart, tt.input, DefaultConfig())
			if err != nil {
				t.Fatalf("Expand failed: %v", err)
			}
			if exp.UsesEvents != tt.events {
				t.Errorf("UsesEvents = %v, want %v", exp.UsesEvents, tt.events)
			}
			if exp.UsesFmt != tt.fmt {
				t.Errorf("UsesFmt = %v, want %v", exp.UsesFmt, tt.fmt)
			}
		})
	}
}

func TestExpand_Deterministic(t *testing.T) {
	src := `SlotIf cond={a} { slot:Then { "a" } slot:ElseIf cond={b}; slot:Fallback; slot:ElseIf cond={c}; }`
	first, err := Expand(testStart, src, DefaultConfig())
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	for range 20 {
		again, err := Expand(testStart, src, DefaultConfig())
		if err != nil {
			t.Fatalf("Expand failed: %v", err)
		}
		if again.Code != first.Code {
			t.Fatalf("output changed between runs:\n%s\n%s", first.Code, again.Code)
		}
	}
	if !strings.Contains(first.Code, ".Then(") || strings.Index(first.Code, ".ElseIf(") > strings.Index(first.Code, ".Fallback(") {
		t.Errorf("slot groups out of first-appearance order: %s", first.Code)
	}
}

func TestExpandString(t *testing.T) {
	code, err := ExpandString("page.mview", `p { "x" }`)
	if err != nil {
		t.Fatalf("ExpandString failed: %v", err)
	}
	if code != `view.HTML("p").Child("x").Build()` {
		t.Errorf("code = %s", code)
	}

	if _, err := ExpandString("page.mview", `p bogus:x;`); err == nil || !strings.HasPrefix(err.Error(), "page.mview:1:3:") {
		t.Errorf("err = %v, want a positioned error", err)
	}
}
