package mviewgen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// UpperCamelToSnake converts an UpperCamelCase name to snake_case by
// inserting an underscore before every upper-case letter except the first
// and lower-casing the result: ElseIf becomes else_if.
func UpperCamelToSnake(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// initialisms are words written in all capitals in Go names.
var initialisms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"uri":  "URI",
	"html": "HTML",
	"http": "HTTP",
	"css":  "CSS",
	"svg":  "SVG",
	"xml":  "XML",
	"json": "JSON",
	"api":  "API",
}

// ExportedName converts a kebab or snake name into an exported Go
// identifier: aria-label becomes AriaLabel and id becomes ID.
func ExportedName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	})
	var sb strings.Builder
	for _, w := range words {
		if up, ok := initialisms[strings.ToLower(w)]; ok {
			sb.WriteString(up)
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(w[size:])
	}
	out := sb.String()
	if out == "" {
		return "X"
	}
	if first, _ := utf8.DecodeRuneInString(out); !unicode.IsLetter(first) {
		return "X" + out
	}
	return out
}
