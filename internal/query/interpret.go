package query

// Interpreter folds a parsed AST into a normalized Query, applying
// defaults for omitted clauses and validating the semantic constraints
// the grammar cannot express.
type Interpreter struct {
	registry *Registry
}

// NewInterpreter creates an interpreter. A nil registry means the
// built-in fields only.
func NewInterpreter(registry *Registry) *Interpreter {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Interpreter{registry: registry}
}

// Interpret walks the clause list. Repeated VIEW/CHART/PERIOD/SIZE
// clauses fold last-one-wins; repeated WHERE and SHOW clauses
// concatenate in source order, preserving left-to-right predicate
// evaluation. Every Query field holds exactly one effective value
// afterwards.
func (in *Interpreter) Interpret(ast *AST) (Query, error) {
	q := Query{
		View:   ViewSummary,
		Chart:  ChartMonthly,
		Period: PeriodCurrentYear,
		Size:   SizeNormal,
	}
	var chartTok Token
	chartExplicit := false

	for _, clause := range ast.Clauses {
		switch c := clause.(type) {
		case *WhereClause:
			for _, pred := range c.Predicates {
				if err := in.checkPredicate(pred); err != nil {
					return Query{}, err
				}
				q.Where = append(q.Where, pred)
			}
		case *ShowClause:
			for _, col := range c.Columns {
				if col.Field == "" {
					return Query{}, semanticErrorf(col.Tok, "column alias %q has no field", col.Alias)
				}
				q.Show = append(q.Show, col)
			}
		case *ViewClause:
			q.View = c.Value
		case *ChartClause:
			q.Chart = c.Value
			chartTok = c.Tok
			chartExplicit = true
		case *PeriodClause:
			q.Period = c.Value
			q.PeriodExplicit = true
		case *SizeClause:
			q.Size = c.Value
		}
	}

	if chartExplicit && q.View != ViewChart && q.View != ViewFull {
		return Query{}, semanticErrorf(chartTok, "CHART requires VIEW chart or full")
	}
	return q, nil
}

// checkPredicate validates a predicate against its handler. The parser
// already rejects unknown fields; the unregistered check here covers
// hand-built ASTs that never went through it.
func (in *Interpreter) checkPredicate(pred Predicate) error {
	h, ok := in.registry.Lookup(pred.Field)
	if !ok {
		return semanticErrorf(pred.Tok, "unregistered field %q", pred.Field)
	}
	if pred.Op == OpBetween {
		if !h.Ranged {
			return semanticErrorf(pred.Tok, "field %q does not support BETWEEN", pred.Field)
		}
		if pred.Value.Kind != pred.ValueTo.Kind {
			return semanticErrorf(pred.Tok, "BETWEEN bounds on %q must have the same type", pred.Field)
		}
		if h.Validate != nil {
			if err := h.Validate(pred.ValueTo); err != nil {
				return semanticErrorf(pred.Tok, "%s", err)
			}
		}
	}
	if h.Validate != nil {
		if err := h.Validate(pred.Value); err != nil {
			return semanticErrorf(pred.Tok, "%s", err)
		}
	}
	return nil
}

// Compile runs the front half of the pipeline in one call: tokenize,
// parse, interpret. Callers that do not need the AST use this.
func Compile(text string, registry *Registry) (Query, error) {
	tokens := NewLexer(text).Tokenize()
	ast, err := NewParser(tokens, registry).Parse()
	if err != nil {
		return Query{}, err
	}
	return NewInterpreter(registry).Interpret(ast)
}
