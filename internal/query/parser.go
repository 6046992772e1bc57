package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parser consumes a token stream into an AST. Field names in WHERE
// predicates are resolved against the clause-handler registry during
// parsing, so an unknown field is a parse error, never a silent
// default.
type Parser struct {
	tokens   []Token
	pos      int
	registry *Registry
}

// NewParser creates a parser over the token stream. Comments are
// discarded here, before parsing begins. A nil registry means the
// built-in fields only.
func NewParser(tokens []Token, registry *Registry) *Parser {
	if registry == nil {
		registry = NewRegistry()
	}
	kept := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type != TokenComment {
			kept = append(kept, tok)
		}
	}
	return &Parser{tokens: kept, registry: registry}
}

// Parse parses the whole stream into the clause list.
func (p *Parser) Parse() (*AST, error) {
	ast := &AST{}
	for {
		tok := p.current()
		switch tok.Type {
		case TokenEOF:
			return ast, nil
		case TokenInvalid:
			return nil, syntaxErrorf(tok, "%s", tok.Value)
		case TokenKeyword:
			clause, err := p.parseClause(tok)
			if err != nil {
				return nil, err
			}
			ast.Clauses = append(ast.Clauses, clause)
		case TokenIdent:
			return nil, syntaxErrorf(tok, "unknown keyword %q", tok.Value)
		default:
			return nil, syntaxErrorf(tok, "expected a clause keyword, got %s", describe(tok))
		}
	}
}

func (p *Parser) parseClause(tok Token) (Clause, error) {
	switch tok.Value {
	case "WHERE":
		return p.parseWhere()
	case "SHOW":
		return p.parseShow()
	case "VIEW":
		return p.parseView()
	case "CHART":
		return p.parseChart()
	case "PERIOD":
		return p.parsePeriod()
	case "SIZE":
		return p.parseSize()
	}
	return nil, syntaxErrorf(tok, "unexpected keyword %q", tok.Value)
}

func (p *Parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Type: TokenEOF}
}

func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) acceptKeyword(kw string) bool {
	tok := p.current()
	if tok.Type == TokenKeyword && tok.Value == kw {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) acceptOperator(op string) bool {
	tok := p.current()
	if tok.Type == TokenOperator && tok.Value == op {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectKeyword(kw string) error {
	tok := p.current()
	if tok.Type != TokenKeyword || tok.Value != kw {
		return syntaxErrorf(tok, "expected %s, got %s", kw, describe(tok))
	}
	p.advance()
	return nil
}

func (p *Parser) parseWhere() (Clause, error) {
	p.advance()
	clause := &WhereClause{}
	for {
		pred, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		clause.Predicates = append(clause.Predicates, pred)
		if !p.acceptKeyword("AND") {
			return clause, nil
		}
	}
}

func (p *Parser) parsePredicate() (Predicate, error) {
	tok := p.current()
	if tok.Type != TokenIdent {
		if tok.Type == TokenInvalid {
			return Predicate{}, syntaxErrorf(tok, "%s", tok.Value)
		}
		return Predicate{}, syntaxErrorf(tok, "expected field name, got %s", describe(tok))
	}
	p.advance()
	if _, ok := p.registry.Lookup(tok.Value); !ok {
		return Predicate{}, syntaxErrorf(tok, "unknown field %q", tok.Value)
	}

	pred := Predicate{Field: tok.Value, Tok: tok}
	op := p.current()
	switch {
	case op.Type == TokenOperator && op.Value == "=":
		p.advance()
		v, err := p.parseValue()
		if err != nil {
			return Predicate{}, err
		}
		pred.Op = OpEq
		pred.Value = v
	case op.Type == TokenKeyword && op.Value == "BETWEEN":
		p.advance()
		lo, err := p.parseValue()
		if err != nil {
			return Predicate{}, err
		}
		if err := p.expectKeyword("AND"); err != nil {
			return Predicate{}, err
		}
		hi, err := p.parseValue()
		if err != nil {
			return Predicate{}, err
		}
		pred.Op = OpBetween
		pred.Value = lo
		pred.ValueTo = hi
	default:
		return Predicate{}, syntaxErrorf(op, "expected operator after field %q", tok.Value)
	}
	return pred, nil
}

// parseValue reads a literal operand. Quoted strings in YYYY-MM-DD
// form become date values here; the lexer does not know about dates.
func (p *Parser) parseValue() (Value, error) {
	tok := p.current()
	switch tok.Type {
	case TokenNumber:
		p.advance()
		n, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return Value{}, syntaxErrorf(tok, "invalid number %q", tok.Value)
		}
		return Value{Kind: ValueNumber, Num: n}, nil
	case TokenString:
		p.advance()
		if d, err := time.Parse("2006-01-02", tok.Value); err == nil {
			return Value{Kind: ValueDate, Date: d, Str: tok.Value}, nil
		}
		return Value{Kind: ValueString, Str: tok.Value}, nil
	case TokenInvalid:
		return Value{}, syntaxErrorf(tok, "%s", tok.Value)
	}
	return Value{}, syntaxErrorf(tok, "expected value, got %s", describe(tok))
}

func (p *Parser) parseShow() (Clause, error) {
	p.advance()
	clause := &ShowClause{}
	for {
		col, err := p.parseColumn()
		if err != nil {
			return nil, err
		}
		clause.Columns = append(clause.Columns, col)
		if !p.acceptOperator(",") {
			return clause, nil
		}
	}
}

func (p *Parser) parseColumn() (ColumnSpec, error) {
	tok := p.current()
	if tok.Type != TokenIdent {
		return ColumnSpec{}, syntaxErrorf(tok, "expected column name, got %s", describe(tok))
	}
	p.advance()
	col := ColumnSpec{Field: tok.Value, Tok: tok}

	if p.acceptKeyword("FORMAT") {
		ftok := p.current()
		if ftok.Type != TokenIdent {
			return ColumnSpec{}, syntaxErrorf(ftok, "expected format kind, got %s", describe(ftok))
		}
		p.advance()
		switch ftok.Value {
		case "currency":
			col.Format = FormatCurrency
		case "money":
			col.Format = FormatMoney
		case "percent":
			col.Format = FormatPercent
		default:
			return ColumnSpec{}, syntaxErrorf(ftok, "invalid format %q", ftok.Value)
		}
	}
	if p.acceptKeyword("AS") {
		atok := p.current()
		if atok.Type != TokenString {
			return ColumnSpec{}, syntaxErrorf(atok, "expected quoted alias after AS, got %s", describe(atok))
		}
		p.advance()
		col.Alias = atok.Value
	}
	return col, nil
}

// clauseValue reads the value of a VIEW/CHART/PERIOD/SIZE clause.
// Keywords are accepted alongside identifiers so that "VIEW chart"
// works even though CHART is a clause keyword.
func (p *Parser) clauseValue(what string) (string, Token, error) {
	tok := p.current()
	switch tok.Type {
	case TokenIdent, TokenKeyword:
		p.advance()
		return strings.ToLower(tok.Value), tok, nil
	case TokenInvalid:
		return "", tok, syntaxErrorf(tok, "%s", tok.Value)
	}
	return "", tok, syntaxErrorf(tok, "expected %s, got %s", what, describe(tok))
}

func (p *Parser) parseView() (Clause, error) {
	p.advance()
	v, tok, err := p.clauseValue("view type")
	if err != nil {
		return nil, err
	}
	switch View(v) {
	case ViewSummary, ViewChart, ViewTable, ViewFull:
		return &ViewClause{Value: View(v), Tok: tok}, nil
	}
	return nil, syntaxErrorf(tok, "invalid view type %q", v)
}

func (p *Parser) parseChart() (Clause, error) {
	p.advance()
	v, tok, err := p.clauseValue("chart type")
	if err != nil {
		return nil, err
	}
	switch Chart(v) {
	case ChartMonthly, ChartTrend, ChartBudget:
		return &ChartClause{Value: Chart(v), Tok: tok}, nil
	}
	return nil, syntaxErrorf(tok, "invalid chart type %q", v)
}

func (p *Parser) parsePeriod() (Clause, error) {
	p.advance()
	v, tok, err := p.clauseValue("period")
	if err != nil {
		return nil, err
	}
	switch Period(v) {
	case PeriodCurrentYear, PeriodAllTime, PeriodLast6Months, PeriodLast12Months:
		return &PeriodClause{Value: Period(v), Tok: tok}, nil
	}
	return nil, syntaxErrorf(tok, "invalid period %q", v)
}

func (p *Parser) parseSize() (Clause, error) {
	p.advance()
	v, tok, err := p.clauseValue("size")
	if err != nil {
		return nil, err
	}
	switch Size(v) {
	case SizeCompact, SizeNormal, SizeDetailed:
		return &SizeClause{Value: Size(v), Tok: tok}, nil
	}
	return nil, syntaxErrorf(tok, "invalid size %q", v)
}

func describe(tok Token) string {
	if tok.Type == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", tok.Type, tok.Value)
}
