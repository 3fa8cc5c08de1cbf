package formula

import (
	"unicode"
	"unicode/utf8"
)

// lexer tokenizes formula source text.
type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

// tokenize scans the entire input. An unexpected character yields a
// tokenInvalid token; the parser treats that as a malformed formula.
func (l *lexer) tokenize() []token {
	var tokens []token
	for {
		tok := l.next()
		tokens = append(tokens, tok)
		if tok.Type == tokenEOF || tok.Type == tokenInvalid {
			return tokens
		}
	}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	return r
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r := l.peek()
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			l.advance()
		} else {
			break
		}
	}
}

func (l *lexer) next() token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return token{Type: tokenEOF, Pos: l.pos}
	}

	start := l.pos
	r := l.peek()

	if r >= '0' && r <= '9' || r == '.' {
		return l.scanNumber(start)
	}
	if isIdentStart(r) {
		return l.scanIdent(start)
	}

	l.advance()
	switch r {
	case '+':
		return token{Type: tokenPlus, Literal: "+", Pos: start}
	case '-':
		return token{Type: tokenMinus, Literal: "-", Pos: start}
	case '*':
		return token{Type: tokenStar, Literal: "*", Pos: start}
	case '/':
		return token{Type: tokenSlash, Literal: "/", Pos: start}
	case '(':
		return token{Type: tokenLParen, Literal: "(", Pos: start}
	case ')':
		return token{Type: tokenRParen, Literal: ")", Pos: start}
	}
	return token{Type: tokenInvalid, Literal: string(r), Pos: start}
}

func (l *lexer) scanNumber(start int) token {
	sawDot := false
	for l.pos < len(l.input) {
		r := l.peek()
		if r >= '0' && r <= '9' {
			l.advance()
		} else if r == '.' && !sawDot {
			sawDot = true
			l.advance()
		} else {
			break
		}
	}
	return token{Type: tokenNumber, Literal: l.input[start:l.pos], Pos: start}
}

func (l *lexer) scanIdent(start int) token {
	for l.pos < len(l.input) {
		if isIdentPart(l.peek()) {
			l.advance()
		} else {
			break
		}
	}
	return token{Type: tokenIdent, Literal: l.input[start:l.pos], Pos: start}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
