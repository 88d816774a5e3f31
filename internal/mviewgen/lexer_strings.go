package mviewgen

// The readers below keep the literal's source text, quotes included, as the
// token literal. Generated code copies literals byte-for-byte.

// readString reads a double-quoted string with escape sequences.
func (l *Lexer) readString() Token {
	l.readChar() // consume opening "

	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\n' {
			l.errors.AddError(l.span(), "unterminated string literal")
			return l.makeToken(TokenError, l.source[l.tokenStartPos:l.pos])
		}
		if l.ch == '\\' {
			l.readChar() // consume backslash
			if l.ch == 0 {
				break
			}
		}
		l.readChar()
	}

	if l.ch == 0 {
		l.errors.AddError(l.span(), "unterminated string literal")
		return l.makeToken(TokenError, l.source[l.tokenStartPos:l.pos])
	}

	l.readChar() // consume closing "
	return l.makeToken(TokenString, l.source[l.tokenStartPos:l.pos])
}

// readRune reads a single-quoted rune literal with escape sequences.
func (l *Lexer) readRune() Token {
	l.readChar() // consume opening '

	switch l.ch {
	case '\'', 0, '\n':
		l.errors.AddError(l.span(), "empty rune literal")
		return l.makeToken(TokenError, "")
	case '\\':
		l.readChar() // consume backslash
		if l.ch != 0 {
			l.readChar() // consume escaped character
		}
		// \x, \u, \U and octal escapes carry several characters
		for l.ch != '\'' && l.ch != 0 && l.ch != '\n' {
			l.readChar()
		}
	default:
		l.readChar()
	}

	if l.ch != '\'' {
		l.errors.AddError(l.span(), "unterminated rune literal")
		return l.makeToken(TokenError, l.source[l.tokenStartPos:l.pos])
	}

	l.readChar() // consume closing '
	return l.makeToken(TokenRune, l.source[l.tokenStartPos:l.pos])
}

// readRawString reads a backtick-quoted raw string.
func (l *Lexer) readRawString() Token {
	l.readChar() // consume opening `

	for l.ch != '`' && l.ch != 0 {
		l.readChar()
	}

	if l.ch == 0 {
		l.errors.AddError(l.span(), "unterminated raw string literal")
		return l.makeToken(TokenError, l.source[l.tokenStartPos:l.pos])
	}

	l.readChar() // consume closing `
	return l.makeToken(TokenRawString, l.source[l.tokenStartPos:l.pos])
}

// readNumber reads an integer or float literal.
func (l *Lexer) readNumber() Token {
	startPos := l.pos
	isFloat := false

	// 0x, 0o and 0b prefixes
	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			l.readChar()
			l.readChar()
			for isHexDigit(l.ch) || l.ch == '_' {
				l.readChar()
			}
			return l.makeToken(TokenInt, l.source[startPos:l.pos])
		}
	}

	// Read integer part
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	// A dot only belongs to the number when a digit follows, so `1.x`
	// stays an integer followed by punctuation.
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	// Check for exponent
	if l.ch == 'e' || l.ch == 'E' {
		isFloat = true
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	literal := l.source[startPos:l.pos]
	if isFloat {
		return l.makeToken(TokenFloat, literal)
	}
	return l.makeToken(TokenInt, literal)
}
