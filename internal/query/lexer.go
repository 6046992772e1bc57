package query

import (
	"fmt"
	"strings"
)

// Lexer tokenizes a query string. It never fails: malformed input is
// surfaced as a TokenInvalid carrying the reason, so the parser can
// report a positioned error.
type Lexer struct {
	input string
	pos   int
	line  int
	col   int
}

// NewLexer creates a lexer over the given query text.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Tokenize scans the whole input and returns the token stream,
// terminated by a TokenEOF. Comments are emitted as TokenComment and
// discarded by the parser.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for l.pos < len(l.input) {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			break
		}
		line, col := l.line, l.col
		ch := l.input[l.pos]
		switch {
		case ch == '\'' || ch == '"':
			tokens = append(tokens, l.readString(line, col))
		case ch == '=':
			tokens = append(tokens, Token{Type: TokenOperator, Value: "=", Line: line, Col: col})
			l.bump()
		case ch == ',':
			tokens = append(tokens, Token{Type: TokenOperator, Value: ",", Line: line, Col: col})
			l.bump()
		case ch == '/' && l.peek(1) == '/':
			tokens = append(tokens, l.readComment(line, col))
		case isDigit(ch):
			tokens = append(tokens, l.readNumber(line, col))
		case isIdentStart(ch):
			tokens = append(tokens, l.readIdentOrKeyword(line, col))
		default:
			tokens = append(tokens, Token{
				Type:  TokenInvalid,
				Value: fmt.Sprintf("unexpected character %q", ch),
				Line:  line,
				Col:   col,
			})
			l.bump()
		}
	}
	return append(tokens, Token{Type: TokenEOF, Line: l.line, Col: l.col})
}

// bump advances one byte, tracking line and column.
func (l *Lexer) bump() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) peek(offset int) byte {
	idx := l.pos + offset
	if idx < len(l.input) {
		return l.input[idx]
	}
	return 0
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.bump()
		default:
			return
		}
	}
}

// readString consumes a quoted literal. The literal ends at the first
// matching quote; a missing closing quote is an error at end of input,
// reported through an invalid token.
func (l *Lexer) readString(line, col int) Token {
	quote := l.input[l.pos]
	l.bump()
	var sb strings.Builder
	for l.pos < len(l.input) {
		if l.input[l.pos] == quote {
			l.bump()
			return Token{Type: TokenString, Value: sb.String(), Line: line, Col: col}
		}
		sb.WriteByte(l.input[l.pos])
		l.bump()
	}
	return Token{Type: TokenInvalid, Value: "unterminated string", Line: line, Col: col}
}

func (l *Lexer) readComment(line, col int) Token {
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.bump()
	}
	text := strings.TrimSpace(strings.TrimPrefix(l.input[start:l.pos], "//"))
	return Token{Type: TokenComment, Value: text, Line: line, Col: col}
}

func (l *Lexer) readNumber(line, col int) Token {
	start := l.pos
	for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '.') {
		l.bump()
	}
	return Token{Type: TokenNumber, Value: l.input[start:l.pos], Line: line, Col: col}
}

// readIdentOrKeyword reads a word and canonicalizes it: keywords to
// upper case, identifiers to lower case, so later comparisons never
// re-fold case.
func (l *Lexer) readIdentOrKeyword(line, col int) Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.bump()
	}
	word := l.input[start:l.pos]
	if upper := strings.ToUpper(word); keywords[upper] {
		return Token{Type: TokenKeyword, Value: upper, Line: line, Col: col}
	}
	return Token{Type: TokenIdent, Value: strings.ToLower(word), Line: line, Col: col}
}
