package mviewgen

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// svgTags must stay sorted; lookups use binary search.
var svgTags = []string{
	"animate",
	"animateMotion",
	"animateTransform",
	"circle",
	"clipPath",
	"defs",
	"desc",
	"discard",
	"ellipse",
	"feBlend",
	"feColorMatrix",
	"feComponentTransfer",
	"feComposite",
	"feConvolveMatrix",
	"feDiffuseLighting",
	"feDisplacementMap",
	"feDistantLight",
	"feDropShadow",
	"feFlood",
	"feFuncA",
	"feFuncB",
	"feFuncG",
	"feFuncR",
	"feGaussianBlur",
	"feImage",
	"feMerge",
	"feMergeNode",
	"feMorphology",
	"feOffset",
	"fePointLight",
	"feSpecularLighting",
	"feSpotLight",
	"feTile",
	"feTurbulence",
	"filter",
	"foreignObject",
	"g",
	"hatch",
	"hatchpath",
	"image",
	"line",
	"linearGradient",
	"marker",
	"mask",
	"metadata",
	"mpath",
	"path",
	"pattern",
	"polygon",
	"polyline",
	"radialGradient",
	"rect",
	"set",
	"stop",
	"svg",
	"switch",
	"symbol",
	"text",
	"textPath",
	"tspan",
	"use",
	"view",
}

// mathMLTags must stay sorted; lookups use binary search.
var mathMLTags = []string{
	"annotation",
	"maction",
	"math",
	"menclose",
	"merror",
	"mfenced",
	"mfrac",
	"mi",
	"mmultiscripts",
	"mn",
	"mo",
	"mover",
	"mpadded",
	"mphantom",
	"mprescripts",
	"mroot",
	"mrow",
	"ms",
	"mspace",
	"msqrt",
	"mstyle",
	"msub",
	"msubsup",
	"msup",
	"mtable",
	"mtd",
	"mtext",
	"mtr",
	"munder",
	"munderover",
	"semantics",
}

// Classify returns the kind of a tag name. The checks run in a fixed order:
// an upper-case first letter is a component, then the SVG set, then a dash
// makes a web component, then the MathML set, and anything else is HTML.
func Classify(name string) TagKind {
	first, _ := utf8.DecodeRuneInString(name)
	switch {
	case unicode.IsUpper(first):
		return TagComponent
	case isSVGTag(name):
		return TagSVG
	case strings.Contains(name, "-"):
		return TagWebComponent
	case isMathMLTag(name):
		return TagMathML
	default:
		return TagHTML
	}
}

func isSVGTag(name string) bool {
	_, found := slices.BinarySearch(svgTags, name)
	return found
}

func isMathMLTag(name string) bool {
	_, found := slices.BinarySearch(mathMLTags, name)
	return found
}
