package query

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/reportr/internal/core"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustParse(t *testing.T, input string) *AST {
	t.Helper()
	tokens := NewLexer(input).Tokenize()
	ast, err := NewParser(tokens, nil).Parse()
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return ast
}

func mustCompile(t *testing.T, input string) Query {
	t.Helper()
	q, err := Compile(input, nil)
	if err != nil {
		t.Fatalf("compile %q: %v", input, err)
	}
	return q
}

// ============================================================
// Lexer
// ============================================================

func TestLexerBasicTokens(t *testing.T) {
	tokens := NewLexer(`WHERE year = 2024`).Tokenize()

	want := []struct {
		typ TokenType
		val string
	}{
		{TokenKeyword, "WHERE"},
		{TokenIdent, "year"},
		{TokenOperator, "="},
		{TokenNumber, "2024"},
		{TokenEOF, ""},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(tokens), tokens)
	}
	for i, w := range want {
		if tokens[i].Type != w.typ || tokens[i].Value != w.val {
			t.Fatalf("token %d: got (%s, %q), want (%s, %q)", i, tokens[i].Type, tokens[i].Value, w.typ, w.val)
		}
	}
}

func TestLexerKeywordCaseInsensitive(t *testing.T) {
	for _, input := range []string{"where", "Where", "WHERE", "wHeRe"} {
		tokens := NewLexer(input).Tokenize()
		if tokens[0].Type != TokenKeyword || tokens[0].Value != "WHERE" {
			t.Fatalf("%q: got (%s, %q), want canonical keyword WHERE", input, tokens[0].Type, tokens[0].Value)
		}
	}
}

func TestLexerIdentCanonicalLower(t *testing.T) {
	tokens := NewLexer("YEAR Month proJect").Tokenize()
	for i, want := range []string{"year", "month", "project"} {
		if tokens[i].Type != TokenIdent || tokens[i].Value != want {
			t.Fatalf("token %d: got (%s, %q), want identifier %q", i, tokens[i].Type, tokens[i].Value, want)
		}
	}
}

func TestLexerStringsBothQuoteStyles(t *testing.T) {
	tokens := NewLexer(`"double" 'single'`).Tokenize()
	if tokens[0].Type != TokenString || tokens[0].Value != "double" {
		t.Fatalf("double-quoted: %+v", tokens[0])
	}
	if tokens[1].Type != TokenString || tokens[1].Value != "single" {
		t.Fatalf("single-quoted: %+v", tokens[1])
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	tokens := NewLexer(`WHERE project = "oops`).Tokenize()
	// Never fails; the bad literal becomes an invalid-marker token.
	last := tokens[len(tokens)-2]
	if last.Type != TokenInvalid {
		t.Fatalf("expected invalid token, got %+v", last)
	}
	if last.Value != "unterminated string" {
		t.Fatalf("expected unterminated string marker, got %q", last.Value)
	}
	if last.Col != 17 {
		t.Fatalf("expected column 17, got %d", last.Col)
	}
}

func TestLexerComments(t *testing.T) {
	tokens := NewLexer("// header comment\nWHERE year = 2024 // trailing").Tokenize()
	if tokens[0].Type != TokenComment || tokens[0].Value != "header comment" {
		t.Fatalf("expected leading comment token, got %+v", tokens[0])
	}
	last := tokens[len(tokens)-2]
	if last.Type != TokenComment || last.Value != "trailing" {
		t.Fatalf("expected trailing comment token, got %+v", last)
	}
}

func TestLexerLineAndColumn(t *testing.T) {
	tokens := NewLexer("WHERE year = 2024\nVIEW table").Tokenize()
	var view Token
	for _, tok := range tokens {
		if tok.Value == "VIEW" {
			view = tok
		}
	}
	if view.Line != 2 || view.Col != 1 {
		t.Fatalf("expected VIEW at 2:1, got %d:%d", view.Line, view.Col)
	}
	if tokens[0].Line != 1 || tokens[0].Col != 1 {
		t.Fatalf("expected WHERE at 1:1, got %d:%d", tokens[0].Line, tokens[0].Col)
	}
}

func TestLexerHyphenatedIdent(t *testing.T) {
	tokens := NewLexer("PERIOD last-6-months").Tokenize()
	if tokens[1].Type != TokenIdent || tokens[1].Value != "last-6-months" {
		t.Fatalf("expected one identifier for hyphenated value, got %+v", tokens[1])
	}
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	tokens := NewLexer("WHERE year < 2024").Tokenize()
	found := false
	for _, tok := range tokens {
		if tok.Type == TokenInvalid {
			found = true
			if !strings.Contains(tok.Value, "unexpected character") {
				t.Fatalf("invalid token should name the character: %q", tok.Value)
			}
		}
	}
	if !found {
		t.Fatal("expected an invalid token for '<'")
	}
}

func TestLexerDecimalNumber(t *testing.T) {
	tokens := NewLexer("utilization = 0.8").Tokenize()
	if tokens[2].Type != TokenNumber || tokens[2].Value != "0.8" {
		t.Fatalf("expected number 0.8, got %+v", tokens[2])
	}
}

// ============================================================
// Parser
// ============================================================

func TestParseErrorScenarios(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{`INVALID year = 2024`, "unknown keyword"},
		{`WHERE year 2024`, "expected operator"},
		{`VIEW invalid_view`, "invalid view type"},
		{`WHERE project = "unterminated`, "unterminated string"},
		{`WHERE year =`, "expected value"},
	}
	for _, c := range cases {
		tokens := NewLexer(c.input).Tokenize()
		_, err := NewParser(tokens, nil).Parse()
		if err == nil {
			t.Fatalf("%q: expected error", c.input)
		}
		var syn *SyntaxError
		if !errors.As(err, &syn) {
			t.Fatalf("%q: expected SyntaxError, got %T: %v", c.input, err, err)
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Fatalf("%q: error %q should contain %q", c.input, err.Error(), c.want)
		}
	}
}

func TestParseWhereEquality(t *testing.T) {
	ast := mustParse(t, `WHERE year = 2024`)
	if len(ast.Clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(ast.Clauses))
	}
	where, ok := ast.Clauses[0].(*WhereClause)
	if !ok {
		t.Fatalf("expected WhereClause, got %T", ast.Clauses[0])
	}
	if len(where.Predicates) != 1 {
		t.Fatalf("expected 1 predicate, got %d", len(where.Predicates))
	}
	pred := where.Predicates[0]
	if pred.Field != "year" || pred.Op != OpEq {
		t.Fatalf("unexpected predicate: %+v", pred)
	}
	if pred.Value.Kind != ValueNumber || pred.Value.Num != 2024 {
		t.Fatalf("unexpected value: %+v", pred.Value)
	}
}

func TestParseWhereBetweenDates(t *testing.T) {
	ast := mustParse(t, `WHERE date BETWEEN "2024-01-01" AND "2024-01-31"`)
	where := ast.Clauses[0].(*WhereClause)
	pred := where.Predicates[0]
	if pred.Op != OpBetween {
		t.Fatalf("expected BETWEEN, got %v", pred.Op)
	}
	if pred.Value.Kind != ValueDate || pred.ValueTo.Kind != ValueDate {
		t.Fatalf("expected date bounds, got %v and %v", pred.Value.Kind, pred.ValueTo.Kind)
	}
	if !pred.Value.Date.Equal(date(2024, 1, 1)) || !pred.ValueTo.Date.Equal(date(2024, 1, 31)) {
		t.Fatalf("wrong bounds: %v to %v", pred.Value.Date, pred.ValueTo.Date)
	}
}

func TestParseWhereAndChain(t *testing.T) {
	ast := mustParse(t, `WHERE year = 2024 AND month = 12 AND project = "Acme"`)
	where := ast.Clauses[0].(*WhereClause)
	if len(where.Predicates) != 3 {
		t.Fatalf("expected 3 predicates, got %d", len(where.Predicates))
	}
	if where.Predicates[2].Field != "project" || where.Predicates[2].Value.Str != "Acme" {
		t.Fatalf("unexpected third predicate: %+v", where.Predicates[2])
	}
}

func TestParseBetweenThenAndPredicate(t *testing.T) {
	// The AND inside BETWEEN must not swallow the one joining predicates.
	ast := mustParse(t, `WHERE date BETWEEN "2024-01-01" AND "2024-06-30" AND month = 3`)
	where := ast.Clauses[0].(*WhereClause)
	if len(where.Predicates) != 2 {
		t.Fatalf("expected 2 predicates, got %d", len(where.Predicates))
	}
	if where.Predicates[1].Field != "month" {
		t.Fatalf("expected month predicate, got %+v", where.Predicates[1])
	}
}

func TestParseUnknownField(t *testing.T) {
	tokens := NewLexer(`WHERE frobnicate = 1`).Tokenize()
	_, err := NewParser(tokens, nil).Parse()
	if err == nil || !strings.Contains(err.Error(), `unknown field "frobnicate"`) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestParseShowColumns(t *testing.T) {
	ast := mustParse(t, `SHOW date AS "Date", project AS "Work Order", hours AS "Hours"`)
	show := ast.Clauses[0].(*ShowClause)
	if len(show.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(show.Columns))
	}
	if show.Columns[1].Field != "project" || show.Columns[1].Alias != "Work Order" {
		t.Fatalf("unexpected column: %+v", show.Columns[1])
	}
}

func TestParseShowFormats(t *testing.T) {
	ast := mustParse(t, `SHOW invoiced FORMAT currency, rate FORMAT money, utilization FORMAT percent AS "Util"`)
	show := ast.Clauses[0].(*ShowClause)
	if show.Columns[0].Format != FormatCurrency {
		t.Fatalf("expected currency format, got %v", show.Columns[0].Format)
	}
	if show.Columns[1].Format != FormatMoney {
		t.Fatalf("expected money format, got %v", show.Columns[1].Format)
	}
	if show.Columns[2].Format != FormatPercent || show.Columns[2].Alias != "Util" {
		t.Fatalf("unexpected column: %+v", show.Columns[2])
	}
}

func TestParseShowInvalidFormat(t *testing.T) {
	tokens := NewLexer(`SHOW hours FORMAT bogus`).Tokenize()
	_, err := NewParser(tokens, nil).Parse()
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Fatalf("expected invalid format error, got %v", err)
	}
}

func TestParseViewChartValueIsKeyword(t *testing.T) {
	// "chart" doubles as the CHART clause keyword.
	ast := mustParse(t, `VIEW chart`)
	view := ast.Clauses[0].(*ViewClause)
	if view.Value != ViewChart {
		t.Fatalf("expected chart view, got %v", view.Value)
	}
}

func TestParseMultiClauseQuery(t *testing.T) {
	ast := mustParse(t, "WHERE date BETWEEN \"2024-01-01\" AND \"2024-06-30\"\nVIEW chart\nCHART trend\nPERIOD last-6-months")
	if len(ast.Clauses) != 4 {
		t.Fatalf("expected 4 clauses, got %d", len(ast.Clauses))
	}
	if _, ok := ast.Clauses[0].(*WhereClause); !ok {
		t.Fatalf("clause 0: %T", ast.Clauses[0])
	}
	if c := ast.Clauses[2].(*ChartClause); c.Value != ChartTrend {
		t.Fatalf("expected trend chart, got %v", c.Value)
	}
	if c := ast.Clauses[3].(*PeriodClause); c.Value != PeriodLast6Months {
		t.Fatalf("expected last-6-months, got %v", c.Value)
	}
}

func TestParseCommentsDiscarded(t *testing.T) {
	ast := mustParse(t, "// restrict to last year\nWHERE year = 2024 // the busy one")
	if len(ast.Clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(ast.Clauses))
	}
}

func TestParseMultilinePredicates(t *testing.T) {
	ast := mustParse(t, "WHERE year = 2024\nAND month = 3")
	where := ast.Clauses[0].(*WhereClause)
	if len(where.Predicates) != 2 {
		t.Fatalf("expected predicate list to continue across lines, got %d predicates", len(where.Predicates))
	}
}

func TestParseBetweenMissingAnd(t *testing.T) {
	tokens := NewLexer(`WHERE date BETWEEN "2024-01-01" "2024-01-31"`).Tokenize()
	_, err := NewParser(tokens, nil).Parse()
	if err == nil || !strings.Contains(err.Error(), "expected AND") {
		t.Fatalf("expected missing AND error, got %v", err)
	}
}

func TestParseErrorPosition(t *testing.T) {
	tokens := NewLexer("VIEW table\nWHERE year").Tokenize()
	_, err := NewParser(tokens, nil).Parse()
	var syn *SyntaxError
	if !errors.As(err, &syn) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if syn.Pos.Line != 2 {
		t.Fatalf("expected error on line 2, got %+v", syn.Pos)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "// just a comment"} {
		tokens := NewLexer(input).Tokenize()
		ast, err := NewParser(tokens, nil).Parse()
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if len(ast.Clauses) != 0 {
			t.Fatalf("%q: expected no clauses, got %d", input, len(ast.Clauses))
		}
	}
}

func TestParseRegisteredCustomField(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(Handler{
		Name: "client",
		Validate: func(v Value) error {
			if v.Kind != ValueString {
				return errors.New("client expects a quoted string value")
			}
			return nil
		},
		Match: func(p Predicate, _ core.Settings) func(core.Entry) bool {
			want := p.Value.Str
			return func(e core.Entry) bool { return strings.EqualFold(e.Client, want) }
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	tokens := NewLexer(`WHERE client = "Initech"`).Tokenize()
	ast, err := NewParser(tokens, reg).Parse()
	if err != nil {
		t.Fatalf("custom field should parse: %v", err)
	}
	where := ast.Clauses[0].(*WhereClause)
	if where.Predicates[0].Field != "client" {
		t.Fatalf("unexpected predicate: %+v", where.Predicates[0])
	}
}

// ============================================================
// Interpreter
// ============================================================

func TestInterpretDefaults(t *testing.T) {
	q := mustCompile(t, "")
	if q.View != ViewSummary || q.Chart != ChartMonthly || q.Period != PeriodCurrentYear || q.Size != SizeNormal {
		t.Fatalf("unexpected defaults: %+v", q)
	}
	if q.PeriodExplicit {
		t.Fatal("defaulted period should not be marked explicit")
	}
}

func TestInterpretLastClauseWins(t *testing.T) {
	q := mustCompile(t, "VIEW table\nSIZE compact\nVIEW full\nSIZE detailed")
	if q.View != ViewFull {
		t.Fatalf("expected last VIEW to win, got %v", q.View)
	}
	if q.Size != SizeDetailed {
		t.Fatalf("expected last SIZE to win, got %v", q.Size)
	}
}

func TestInterpretWhereClausesConcatenate(t *testing.T) {
	q := mustCompile(t, "WHERE year = 2024\nWHERE month = 3")
	if len(q.Where) != 2 {
		t.Fatalf("expected 2 predicates, got %d", len(q.Where))
	}
	if q.Where[0].Field != "year" || q.Where[1].Field != "month" {
		t.Fatalf("predicate order not preserved: %+v", q.Where)
	}
}

func TestInterpretBetweenOnNonRangeField(t *testing.T) {
	_, err := Compile(`WHERE project BETWEEN "a" AND "b"`, nil)
	var sem *SemanticError
	if !errors.As(err, &sem) {
		t.Fatalf("expected SemanticError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "does not support BETWEEN") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestInterpretChartRequiresChartView(t *testing.T) {
	_, err := Compile("CHART trend", nil)
	var sem *SemanticError
	if !errors.As(err, &sem) {
		t.Fatalf("CHART with summary view should fail semantically, got %v", err)
	}

	if _, err := Compile("VIEW chart\nCHART trend", nil); err != nil {
		t.Fatalf("VIEW chart + CHART trend should pass: %v", err)
	}
	if _, err := Compile("VIEW full\nCHART budget", nil); err != nil {
		t.Fatalf("VIEW full + CHART budget should pass: %v", err)
	}
	// Folding happens before the check, so clause order is free.
	if _, err := Compile("CHART trend\nVIEW chart", nil); err != nil {
		t.Fatalf("CHART before VIEW should pass after folding: %v", err)
	}
}

func TestInterpretValueValidation(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{`WHERE month = 13`, "between 1 and 12"},
		{`WHERE year = "abc"`, "numeric value"},
		{`WHERE date = "not-a-date"`, "YYYY-MM-DD"},
		{`WHERE project = 42`, "quoted string"},
		{`WHERE utilization = "high"`, "numeric value"},
	}
	for _, c := range cases {
		_, err := Compile(c.input, nil)
		var sem *SemanticError
		if !errors.As(err, &sem) {
			t.Fatalf("%q: expected SemanticError, got %T: %v", c.input, err, err)
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Fatalf("%q: error %q should contain %q", c.input, err.Error(), c.want)
		}
	}
}

func TestInterpretTotalForValidQueries(t *testing.T) {
	valid := []string{
		"",
		"WHERE year = 2024 AND month = 12\nSHOW date AS \"Date\", project AS \"Work Order\", hours AS \"Hours\"\nVIEW table\nSIZE compact",
		"WHERE date BETWEEN \"2024-01-01\" AND \"2024-06-30\"\nVIEW chart\nCHART trend\nPERIOD last-6-months",
		"WHERE utilization BETWEEN 0.5 AND 1.2",
		"WHERE service = \"support\" AND category = \"consulting\"",
		"PERIOD all-time\nVIEW summary",
	}
	for _, input := range valid {
		q, err := Compile(input, nil)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		switch q.View {
		case ViewSummary, ViewChart, ViewTable, ViewFull:
		default:
			t.Fatalf("%q: view %q not in enumeration", input, q.View)
		}
		switch q.Period {
		case PeriodCurrentYear, PeriodAllTime, PeriodLast6Months, PeriodLast12Months:
		default:
			t.Fatalf("%q: period %q not in enumeration", input, q.Period)
		}
	}
}

func TestInterpretUnregisteredFieldInHandBuiltAST(t *testing.T) {
	ast := &AST{Clauses: []Clause{
		&WhereClause{Predicates: []Predicate{{Field: "mystery", Op: OpEq, Value: Value{Kind: ValueNumber, Num: 1}}}},
	}}
	_, err := NewInterpreter(nil).Interpret(ast)
	var sem *SemanticError
	if !errors.As(err, &sem) {
		t.Fatalf("expected SemanticError, got %v", err)
	}
	if !strings.Contains(err.Error(), "unregistered field") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestInterpretExplicitPeriod(t *testing.T) {
	q := mustCompile(t, "PERIOD all-time")
	if q.Period != PeriodAllTime || !q.PeriodExplicit {
		t.Fatalf("expected explicit all-time period, got %+v", q)
	}
}

// ============================================================
// Registry matchers
// ============================================================

func TestRegistryBuiltinFields(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"year", "month", "project", "date", "service", "category", "utilization", "value"} {
		if _, ok := reg.Lookup(name); !ok {
			t.Fatalf("missing built-in field %q", name)
		}
	}
	if len(reg.Fields()) != 8 {
		t.Fatalf("expected 8 built-ins, got %d", len(reg.Fields()))
	}
}

func TestRegistryRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(Handler{Name: "year"})
	if err == nil {
		t.Fatal("expected error registering over a built-in")
	}
}

func TestRegistryServiceMatchesProjectAndNotes(t *testing.T) {
	reg := NewRegistry()
	h, _ := reg.Lookup("service")
	pred := Predicate{Field: "service", Op: OpEq, Value: Value{Kind: ValueString, Str: "Support"}}
	match := h.Match(pred, core.DefaultSettings())

	if !match(core.Entry{Project: "Acme support retainer"}) {
		t.Fatal("should match project substring case-insensitively")
	}
	if !match(core.Entry{Project: "Acme", Notes: "ad-hoc SUPPORT call"}) {
		t.Fatal("should match notes substring case-insensitively")
	}
	if match(core.Entry{Project: "Acme", Notes: "development"}) {
		t.Fatal("should not match unrelated entry")
	}
}

func TestRegistryCategoryMatch(t *testing.T) {
	reg := NewRegistry()
	h, _ := reg.Lookup("category")
	pred := Predicate{Field: "category", Op: OpEq, Value: Value{Kind: ValueString, Str: "consult"}}
	match := h.Match(pred, core.DefaultSettings())

	if !match(core.Entry{Category: "Consulting"}) {
		t.Fatal("should match category substring")
	}
	if match(core.Entry{Category: "development"}) {
		t.Fatal("should not match different category")
	}
}

func TestRegistryUtilizationThreshold(t *testing.T) {
	reg := NewRegistry()
	h, _ := reg.Lookup("utilization")
	settings := core.Settings{HoursPerWorkday: 8}

	pred := Predicate{Field: "utilization", Op: OpEq, Value: Value{Kind: ValueNumber, Num: 0.7}}
	match := h.Match(pred, settings)
	if !match(core.Entry{Hours: 6}) { // 6/8 = 0.75
		t.Fatal("0.75 should pass a 0.7 threshold")
	}
	if match(core.Entry{Hours: 5}) { // 5/8 = 0.625
		t.Fatal("0.625 should fail a 0.7 threshold")
	}

	between := Predicate{
		Field: "utilization", Op: OpBetween,
		Value:   Value{Kind: ValueNumber, Num: 0.5},
		ValueTo: Value{Kind: ValueNumber, Num: 0.7},
	}
	match = h.Match(between, settings)
	if !match(core.Entry{Hours: 4.8}) { // 0.6
		t.Fatal("0.6 should fall inside [0.5, 0.7]")
	}
	if match(core.Entry{Hours: 6.4}) { // 0.8
		t.Fatal("0.8 should fall outside [0.5, 0.7]")
	}
}

func TestRegistryUtilizationZeroWorkday(t *testing.T) {
	reg := NewRegistry()
	h, _ := reg.Lookup("utilization")
	pred := Predicate{Field: "utilization", Op: OpEq, Value: Value{Kind: ValueNumber, Num: 0}}
	match := h.Match(pred, core.Settings{HoursPerWorkday: 0})
	// Degenerate ratio resolves to 0, which still passes a 0 threshold.
	if !match(core.Entry{Hours: 8}) {
		t.Fatal("zero workday hours should yield ratio 0, not an error")
	}
}

func TestRegistryValueThreshold(t *testing.T) {
	reg := NewRegistry()
	h, _ := reg.Lookup("value")
	pred := Predicate{Field: "value", Op: OpEq, Value: Value{Kind: ValueNumber, Num: 100}}
	match := h.Match(pred, core.DefaultSettings())

	if !match(core.Entry{Rate: 120}) {
		t.Fatal("rate 120 should pass a 100 threshold")
	}
	if match(core.Entry{Rate: 80}) {
		t.Fatal("rate 80 should fail a 100 threshold")
	}
}

func TestRegistryDateMatchers(t *testing.T) {
	reg := NewRegistry()
	h, _ := reg.Lookup("date")

	eq := Predicate{Field: "date", Op: OpEq, Value: Value{Kind: ValueDate, Date: date(2024, 1, 2)}}
	match := h.Match(eq, core.DefaultSettings())
	if !match(core.Entry{Date: date(2024, 1, 2)}) {
		t.Fatal("same day should match")
	}
	if match(core.Entry{Date: date(2024, 1, 3)}) {
		t.Fatal("different day should not match")
	}

	between := Predicate{
		Field: "date", Op: OpBetween,
		Value:   Value{Kind: ValueDate, Date: date(2024, 1, 1)},
		ValueTo: Value{Kind: ValueDate, Date: date(2024, 1, 31)},
	}
	match = h.Match(between, core.DefaultSettings())
	if !match(core.Entry{Date: date(2024, 1, 31)}) {
		t.Fatal("range bounds are inclusive")
	}
	if match(core.Entry{Date: date(2024, 2, 1)}) {
		t.Fatal("day after the range should not match")
	}
}

func TestRegistryYearMonthMatchers(t *testing.T) {
	reg := NewRegistry()
	yh, _ := reg.Lookup("year")
	mh, _ := reg.Lookup("month")

	ymatch := yh.Match(Predicate{Field: "year", Op: OpEq, Value: Value{Kind: ValueNumber, Num: 2024}}, core.DefaultSettings())
	if !ymatch(core.Entry{Date: date(2024, 6, 15)}) || ymatch(core.Entry{Date: date(2023, 6, 15)}) {
		t.Fatal("year equality matcher wrong")
	}

	mmatch := mh.Match(Predicate{
		Field: "month", Op: OpBetween,
		Value:   Value{Kind: ValueNumber, Num: 1},
		ValueTo: Value{Kind: ValueNumber, Num: 3},
	}, core.DefaultSettings())
	if !mmatch(core.Entry{Date: date(2024, 2, 1)}) || mmatch(core.Entry{Date: date(2024, 4, 1)}) {
		t.Fatal("month range matcher wrong")
	}
}
