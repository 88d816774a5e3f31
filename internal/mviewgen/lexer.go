package mviewgen

import (
	"unicode/utf8"
)

// Lexer tokenizes the body of one mview! invocation.
type Lexer struct {
	filename string
	source   string
	base     int  // file offset of source[0]
	pos      int  // current position in source
	readPos  int  // next position to read
	ch       rune // current character
	line     int  // current line (1-based)
	column   int  // current column (1-based)

	// Track the start position of current token
	tokenLine     int
	tokenColumn   int
	tokenStartPos int // byte offset where current token starts

	errors *ErrorList
}

// NewLexer creates a new Lexer for source starting at line 1, column 1.
func NewLexer(filename, source string) *Lexer {
	return NewLexerAt(Span{File: filename, Line: 1, Column: 1}, source)
}

// NewLexerAt creates a Lexer for source that begins at the given position of
// a larger file, so spans point into that file.
func NewLexerAt(start Span, source string) *Lexer {
	line, col := start.Line, start.Column
	if line <= 0 {
		line = 1
	}
	if col <= 0 {
		col = 1
	}
	l := &Lexer{
		filename: start.File,
		source:   source,
		base:     start.Offset,
		line:     line,
		column:   col - 1,
		errors:   NewErrorList(),
	}
	l.readChar()
	return l
}

// Errors returns any errors encountered during lexing.
func (l *Lexer) Errors() *ErrorList {
	return l.errors
}

// readChar advances to the next character in the source.
func (l *Lexer) readChar() {
	// Track if previous char was a newline for line counting
	prevWasNewline := l.ch == '\n'

	if l.readPos >= len(l.source) {
		l.ch = 0 // EOF
		l.pos = l.readPos
		if prevWasNewline {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		return
	}

	r, size := utf8.DecodeRuneInString(l.source[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size

	if prevWasNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.readPos:])
	return r
}

// startToken marks the beginning of a new token.
func (l *Lexer) startToken() {
	l.tokenLine = l.line
	l.tokenColumn = l.column
	l.tokenStartPos = l.pos
}

// span returns the span from the token start to the current position.
func (l *Lexer) span() Span {
	return Span{
		File:      l.filename,
		Line:      l.tokenLine,
		Column:    l.tokenColumn,
		Offset:    l.base + l.tokenStartPos,
		EndLine:   l.line,
		EndColumn: l.column,
		EndOffset: l.base + l.pos,
	}
}

// makeToken creates a token spanning from the token start to the current position.
func (l *Lexer) makeToken(typ TokenType, literal string) Token {
	return Token{
		Type:    typ,
		Literal: literal,
		Span:    l.span(),
	}
}

// Next returns the next flat token. Delimiters are returned individually;
// Tokenize groups them.
func (l *Lexer) Next() Token {
	l.skipWhitespaceAndComments()

	l.startToken()

	switch l.ch {
	case 0:
		return l.makeToken(TokenEOF, "")

	case '{':
		l.readChar()
		return l.makeToken(TokenLBrace, "{")

	case '}':
		l.readChar()
		return l.makeToken(TokenRBrace, "}")

	case '[':
		l.readChar()
		return l.makeToken(TokenLBracket, "[")

	case ']':
		l.readChar()
		return l.makeToken(TokenRBracket, "]")

	case '(':
		l.readChar()
		return l.makeToken(TokenLParen, "(")

	case ')':
		l.readChar()
		return l.makeToken(TokenRParen, ")")

	case '"':
		return l.readString()

	case '\'':
		return l.readRune()

	case '`':
		return l.readRawString()

	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}
		if isPunct(l.ch) {
			ch := l.ch
			l.readChar()
			tok := l.makeToken(TokenPunct, string(ch))
			tok.Joint = isPunct(l.ch)
			return tok
		}

		// Unknown character
		ch := l.ch
		l.readChar()
		l.errors.AddErrorf(l.span(), "unexpected character %q", ch)
		return l.makeToken(TokenError, string(ch))
	}
}

// Tokenize lexes the whole source and groups delimiters into group tokens.
// The first lexing or delimiter error is returned.
func (l *Lexer) Tokenize() ([]Token, error) {
	type frame struct {
		open   Token
		tokens []Token
	}
	stack := []frame{{}}

	for {
		tok := l.Next()
		switch tok.Type {
		case TokenEOF:
			if l.errors.HasErrors() {
				return nil, l.errors.Errors()[0]
			}
			if len(stack) > 1 {
				open := stack[len(stack)-1].open
				return nil, NewErrorWithHint(open.Span, "unclosed delimiter `"+open.Literal+"`", "add the matching closing delimiter")
			}
			return stack[0].tokens, nil

		case TokenLBrace, TokenLBracket, TokenLParen:
			stack = append(stack, frame{open: tok})

		case TokenRBrace, TokenRBracket, TokenRParen:
			if len(stack) == 1 {
				return nil, NewErrorf(tok.Span, "unexpected closing delimiter `%s`", tok.Literal)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			delim := delimiterOf(top.open.Type)
			if delimiterOf(tok.Type) != delim {
				return nil, NewErrorf(tok.Span, "mismatched closing delimiter `%s` for `%s`", tok.Literal, top.open.Literal)
			}
			group := Token{
				Type:    TokenGroup,
				Literal: top.open.Literal,
				Span:    JoinSpans(top.open.Span, tok.Span),
				Delim:   delim,
				Inner:   top.tokens,
				Open:    top.open.Span,
				Close:   tok.Span,
				Source:  l.source[top.open.Span.EndOffset-l.base : tok.Span.Offset-l.base],
			}
			parent := &stack[len(stack)-1]
			parent.tokens = append(parent.tokens, group)

		default:
			parent := &stack[len(stack)-1]
			parent.tokens = append(parent.tokens, tok)
		}
	}
}

// EndSpan returns an empty span at the current lexer position.
// After Tokenize it points at the end of the source.
func (l *Lexer) EndSpan() Span {
	return Span{
		File:      l.filename,
		Line:      l.line,
		Column:    l.column,
		Offset:    l.base + l.pos,
		EndLine:   l.line,
		EndColumn: l.column,
		EndOffset: l.base + l.pos,
	}
}

func delimiterOf(t TokenType) Delimiter {
	switch t {
	case TokenLBrace, TokenRBrace:
		return DelimBrace
	case TokenLBracket, TokenRBracket:
		return DelimBracket
	case TokenLParen, TokenRParen:
		return DelimParen
	}
	return DelimNone
}
