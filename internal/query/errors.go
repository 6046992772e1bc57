package query

import "fmt"

// Pos is a 1-based source position. The zero value means the position
// is unknown (for instance on a hand-built AST node).
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// IsZero reports whether the position is unknown.
func (p Pos) IsZero() bool { return p.Line == 0 && p.Col == 0 }

// SyntaxError is a lexing or parsing failure: an unknown keyword, an
// unterminated string, a missing operator or value, or an invalid
// enumerated clause value.
type SyntaxError struct {
	Msg string
	Pos Pos
}

func (e *SyntaxError) Error() string {
	if e.Pos.IsZero() {
		return "syntax error: " + e.Msg
	}
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
}

// SemanticError is an interpretation failure: the grammar is valid but
// the meaning is not, such as BETWEEN on a field that takes no range.
type SemanticError struct {
	Msg string
	Pos Pos
}

func (e *SemanticError) Error() string {
	if e.Pos.IsZero() {
		return "semantic error: " + e.Msg
	}
	return fmt.Sprintf("semantic error at %s: %s", e.Pos, e.Msg)
}

func syntaxErrorf(tok Token, format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Pos: Pos{Line: tok.Line, Col: tok.Col}}
}

func semanticErrorf(tok Token, format string, args ...any) error {
	return &SemanticError{Msg: fmt.Sprintf(format, args...), Pos: Pos{Line: tok.Line, Col: tok.Col}}
}
