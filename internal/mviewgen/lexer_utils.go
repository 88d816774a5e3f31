package mviewgen

import (
	"strings"
	"unicode"
)

// skipWhitespaceAndComments skips whitespace, newlines and Go comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		case '/':
			switch l.peekChar() {
			case '/':
				l.skipLineComment()
			case '*':
				l.skipBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

// skipLineComment skips a // comment up to the end of the line.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// skipBlockComment skips a /* */ comment.
func (l *Lexer) skipBlockComment() {
	l.startToken()
	l.readChar() // skip /
	l.readChar() // skip *

	for {
		if l.ch == 0 {
			l.errors.AddError(l.span(), "unterminated block comment")
			return
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // skip *
			l.readChar() // skip /
			return
		}
		l.readChar()
	}
}

// readIdentifier reads an identifier. Keywords are plain identifiers in
// markup, so `for` and `type` are valid attribute names.
func (l *Lexer) readIdentifier() Token {
	startPos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.makeToken(TokenIdent, l.source[startPos:l.pos])
}

// isLetter returns true if the rune is a letter or underscore.
func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

// isDigit returns true if the rune is a decimal digit.
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

const punctChars = "!#$%&*+,-./:;<=>?@\\^|~"

// isPunct returns true for characters lexed as single punctuation tokens.
func isPunct(ch rune) bool {
	return ch != 0 && ch < 0x80 && strings.ContainsRune(punctChars, ch)
}
