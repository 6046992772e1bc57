package query

import "time"

// Clause is the interface implemented by all parsed clause nodes.
type Clause interface {
	clauseNode()
}

// AST is the parse result: the query's clauses in source order.
// Folding repeated clauses is the interpreter's job, not the parser's.
type AST struct {
	Clauses []Clause
}

// Operator is a predicate comparison operator.
type Operator int

const (
	OpEq Operator = iota
	OpBetween
)

func (op Operator) String() string {
	if op == OpBetween {
		return "BETWEEN"
	}
	return "="
}

// ValueKind tags a literal predicate value.
type ValueKind int

const (
	ValueNumber ValueKind = iota
	ValueString
	ValueDate
)

// Value is a literal operand: a number, a quoted string, or a date.
// Dates are quoted strings in YYYY-MM-DD form, recognized by the
// parser and normalized to UTC midnight.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Date time.Time
}

// Predicate is one WHERE condition. For OpBetween, Value and ValueTo
// hold the inclusive range bounds; for OpEq only Value is set.
type Predicate struct {
	Field   string
	Op      Operator
	Value   Value
	ValueTo Value
	Tok     Token
}

// Format is a SHOW column formatting directive.
type Format int

const (
	FormatNone Format = iota
	FormatCurrency
	FormatMoney
	FormatPercent
)

// ColumnSpec is one SHOW column: a field with an optional alias and
// an optional format directive. MONEY renders identically to CURRENCY.
type ColumnSpec struct {
	Field  string
	Alias  string
	Format Format
	Tok    Token
}

// View selects the result presentation.
type View string

const (
	ViewSummary View = "summary"
	ViewChart   View = "chart"
	ViewTable   View = "table"
	ViewFull    View = "full"
)

// Chart selects which chart a chart-capable view draws.
type Chart string

const (
	ChartMonthly Chart = "monthly"
	ChartTrend   Chart = "trend"
	ChartBudget  Chart = "budget"
)

// Period is a named relative time window.
type Period string

const (
	PeriodCurrentYear  Period = "current-year"
	PeriodAllTime      Period = "all-time"
	PeriodLast6Months  Period = "last-6-months"
	PeriodLast12Months Period = "last-12-months"
)

// Size controls how much detail renderers emit.
type Size string

const (
	SizeCompact  Size = "compact"
	SizeNormal   Size = "normal"
	SizeDetailed Size = "detailed"
)

// WhereClause holds a conjunction of predicates.
type WhereClause struct {
	Predicates []Predicate
}

// ShowClause holds the requested display columns.
type ShowClause struct {
	Columns []ColumnSpec
}

// ViewClause selects the view. Tok is kept for positioned semantic
// errors.
type ViewClause struct {
	Value View
	Tok   Token
}

// ChartClause selects the chart type.
type ChartClause struct {
	Value Chart
	Tok   Token
}

// PeriodClause selects the time window.
type PeriodClause struct {
	Value Period
	Tok   Token
}

// SizeClause selects the detail level.
type SizeClause struct {
	Value Size
	Tok   Token
}

func (*WhereClause) clauseNode()  {}
func (*ShowClause) clauseNode()   {}
func (*ViewClause) clauseNode()   {}
func (*ChartClause) clauseNode()  {}
func (*PeriodClause) clauseNode() {}
func (*SizeClause) clauseNode()   {}

// Query is the normalized, immutable result of interpretation: every
// field holds exactly one effective value, with defaults applied for
// omitted clauses. It is created once per execution and discarded.
type Query struct {
	Where  []Predicate
	Show   []ColumnSpec
	View   View
	Chart  Chart
	Period Period
	Size   Size

	// PeriodExplicit records whether the period came from the query
	// text rather than the default. Only an explicit period narrows
	// the retrieval window.
	PeriodExplicit bool
}

var (
	_ Clause = (*WhereClause)(nil)
	_ Clause = (*ShowClause)(nil)
	_ Clause = (*ViewClause)(nil)
	_ Clause = (*ChartClause)(nil)
	_ Clause = (*PeriodClause)(nil)
	_ Clause = (*SizeClause)(nil)
)
