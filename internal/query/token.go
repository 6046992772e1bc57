// Package query implements the report query language: a lexer, a
// recursive-descent parser with a pluggable clause-handler registry,
// and an interpreter that folds the parsed clauses into a normalized
// Query value ready for execution.
//
// Grammar (informal EBNF):
//
//	query       := clause*
//	clause      := whereClause | showClause | viewClause | chartClause | periodClause | sizeClause
//	whereClause := "WHERE" predicate ("AND" predicate)*
//	predicate   := field ("=" value | "BETWEEN" value "AND" value)
//	showClause  := "SHOW" column ("," column)*
//	column      := field ("FORMAT" formatKind)? ("AS" string)?
//	viewClause  := "VIEW" ("summary"|"chart"|"table"|"full")
//	chartClause := "CHART" ("monthly"|"trend"|"budget")
//	periodClause:= "PERIOD" ("current-year"|"all-time"|"last-6-months"|"last-12-months")
//	sizeClause  := "SIZE" ("compact"|"normal"|"detailed")
//
// Keywords are case-insensitive, // starts a line comment, and string
// literals take matching single or double quotes.
package query

// TokenType classifies a lexical token.
type TokenType int

const (
	TokenKeyword TokenType = iota
	TokenIdent
	TokenNumber
	TokenString
	TokenOperator
	TokenComment
	TokenInvalid
	TokenEOF
)

// String returns a human-readable name for the token type, used in
// error messages.
func (t TokenType) String() string {
	switch t {
	case TokenKeyword:
		return "keyword"
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenOperator:
		return "operator"
	case TokenComment:
		return "comment"
	case TokenInvalid:
		return "invalid"
	case TokenEOF:
		return "end of input"
	}
	return "unknown"
}

// Token is a single lexical token. Keywords carry their canonical
// upper-case form in Value, identifiers their canonical lower-case
// form; string literals carry the unquoted text unchanged.
type Token struct {
	Type  TokenType
	Value string
	Line  int
	Col   int
}

// keywords maps the canonical upper-case spelling of every language
// keyword to itself. Clause values (view names, period names and so
// on) are ordinary identifiers, not keywords.
var keywords = map[string]bool{
	"WHERE":   true,
	"SHOW":    true,
	"VIEW":    true,
	"CHART":   true,
	"PERIOD":  true,
	"SIZE":    true,
	"AND":     true,
	"BETWEEN": true,
	"FORMAT":  true,
	"AS":      true,
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

// isIdentPart accepts '-' so that hyphenated clause values like
// "current-year" and "last-6-months" lex as one identifier. The
// grammar has no arithmetic, so '-' is unambiguous here.
func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '-'
}
