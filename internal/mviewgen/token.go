package mviewgen

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Special tokens
	TokenEOF   TokenType = iota // end of input
	TokenError                  // lexer error

	// Literals
	TokenIdent     // identifier
	TokenInt       // integer literal: 123, 0xff
	TokenFloat     // float literal: 1.23
	TokenString    // string literal: "..."
	TokenRawString // raw string literal: `...`
	TokenRune      // rune literal: 'x'

	// TokenPunct is any single punctuation character.
	TokenPunct

	// Delimiters, only seen before grouping
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLBracket // [
	TokenRBracket // ]
	TokenLParen   // (
	TokenRParen   // )

	// TokenGroup is a delimited group owning its inner tokens.
	TokenGroup
)

var tokenNames = map[TokenType]string{
	TokenEOF:       "EOF",
	TokenError:     "Error",
	TokenIdent:     "Ident",
	TokenInt:       "Int",
	TokenFloat:     "Float",
	TokenString:    "String",
	TokenRawString: "RawString",
	TokenRune:      "Rune",
	TokenPunct:     "Punct",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenLBracket:  "[",
	TokenRBracket:  "]",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenGroup:     "Group",
}

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// Delimiter identifies the bracket pair of a group token.
type Delimiter int

const (
	DelimNone Delimiter = iota
	DelimBrace
	DelimBracket
	DelimParen
)

// Name returns the plural noun used in diagnostics ("braces").
func (d Delimiter) Name() string {
	switch d {
	case DelimBrace:
		return "braces"
	case DelimBracket:
		return "brackets"
	case DelimParen:
		return "parentheses"
	}
	return "tokens"
}

func (d Delimiter) open() string {
	switch d {
	case DelimBrace:
		return "{"
	case DelimBracket:
		return "["
	case DelimParen:
		return "("
	}
	return ""
}

// Span is a source range. Line and Column are 1-based; offsets are byte
// offsets into the file.
type Span struct {
	File      string
	Line      int
	Column    int
	Offset    int
	EndLine   int
	EndColumn int
	EndOffset int
}

// String formats the span start as "file:line:col".
func (s Span) String() string {
	if s.File != "" {
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid reports whether the span points at a source location.
func (s Span) IsValid() bool {
	return s.Line > 0
}

// End returns an empty span positioned at the end of s.
func (s Span) End() Span {
	return Span{
		File:      s.File,
		Line:      s.EndLine,
		Column:    s.EndColumn,
		Offset:    s.EndOffset,
		EndLine:   s.EndLine,
		EndColumn: s.EndColumn,
		EndOffset: s.EndOffset,
	}
}

// JoinSpans returns the range from the start of a to the end of b. If the
// two cannot be joined, a is returned unchanged.
func JoinSpans(a, b Span) Span {
	if !a.IsValid() || !b.IsValid() || a.File != b.File || b.EndOffset < a.Offset {
		return a
	}
	a.EndLine = b.EndLine
	a.EndColumn = b.EndColumn
	a.EndOffset = b.EndOffset
	return a
}

// Token is a lexical token. Group tokens own the tokens between their
// delimiters.
type Token struct {
	Type    TokenType
	Literal string // identifier text, punctuation character or literal source text
	Span    Span

	// Joint is set on punctuation immediately followed by more punctuation.
	Joint bool

	// Group fields
	Delim  Delimiter
	Inner  []Token
	Open   Span
	Close  Span
	Source string // verbatim text between the delimiters
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Type == TokenGroup {
		return fmt.Sprintf("Group(%s, %d tokens) at %s", t.Delim.open(), len(t.Inner), t.Span)
	}
	return fmt.Sprintf("%s(%q) at %s", t.Type, t.Literal, t.Span)
}

// IsPunct reports whether t is the punctuation character ch.
func (t Token) IsPunct(ch string) bool {
	return t.Type == TokenPunct && t.Literal == ch
}

// IsIdent reports whether t is the identifier name.
func (t Token) IsIdent(name string) bool {
	return t.Type == TokenIdent && t.Literal == name
}

// IsGroup reports whether t is a group with delimiter d.
func (t Token) IsGroup(d Delimiter) bool {
	return t.Type == TokenGroup && t.Delim == d
}

// IsLiteral reports whether t is a scalar literal.
func (t Token) IsLiteral() bool {
	switch t.Type {
	case TokenInt, TokenFloat, TokenString, TokenRawString, TokenRune:
		return true
	}
	return false
}

// adjacent reports whether b starts exactly where a ends.
func adjacent(a, b Token) bool {
	return a.Span.IsValid() && b.Span.IsValid() && a.Span.EndOffset == b.Span.Offset
}
