package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sadopc/reportr/internal/core"
	"github.com/sadopc/reportr/internal/log"
	"github.com/sadopc/reportr/internal/query"
)

// ExecutionError wraps a data source failure. The engine never retries
// and never swallows parse or interpret errors.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string { return fmt.Sprintf("execution failed: %v", e.Err) }
func (e *ExecutionError) Unwrap() error { return e.Err }

// Engine resolves queries against a data source. It performs no
// locking and expects at most one in-flight Execute per instance; the
// data source call is the only suspension point.
type Engine struct {
	source   core.Source
	settings core.Settings
	registry *query.Registry
	logger   *log.Logger

	// Now anchors PERIOD ranges and the current-year summary.
	// Overridden in tests.
	Now func() time.Time
}

// New creates an engine. A nil registry means the built-in fields; a
// nil logger discards.
func New(source core.Source, settings core.Settings, registry *query.Registry, logger *log.Logger) *Engine {
	if registry == nil {
		registry = query.NewRegistry()
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Engine{
		source:   source,
		settings: settings,
		registry: registry,
		logger:   logger.WithComponent("report"),
		Now:      time.Now,
	}
}

// Settings returns the engine's current settings.
func (e *Engine) Settings() core.Settings { return e.settings }

// SetSettings replaces the settings used by later executions, after
// the user edits the configuration.
func (e *Engine) SetSettings(s core.Settings) { e.settings = s }

// Execute runs the full back half of the pipeline: coarse retrieval,
// residual filtering, monthly aggregation, trend derivation and the
// three summary rollups. Data source failures wrap into an
// ExecutionError; an empty result set is not an error.
func (e *Engine) Execute(ctx context.Context, q query.Query) (*ProcessedData, error) {
	started := time.Now()

	opts := e.pushdown(q)
	entries, err := e.source.Query(ctx, opts)
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}

	filtered := e.applyPredicates(entries, q.Where)
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Date.Before(filtered[j].Date) })

	perDay := e.settings.HoursPerWorkday
	budget := e.budgetFor(q)

	monthly := aggregateMonthly(filtered, perDay, budget)
	trend := deriveTrend(monthly, q)

	year := e.Now().Year()
	var yearEntries []core.Entry
	for _, entry := range filtered {
		if entry.Date.Year() == year {
			yearEntries = append(yearEntries, entry)
		}
	}

	// The all-time rollup covers the unfiltered pool; the source
	// serves it from its cache after the first execution.
	allEntries, err := e.source.Query(ctx, core.Options{})
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}

	data := &ProcessedData{
		Entries:        filtered,
		Monthly:        monthly,
		Trend:          trend,
		Summary:        summarize(filtered, perDay, budget),
		YearSummary:    summarize(yearEntries, perDay, budget),
		AllTimeSummary: summarize(allEntries, perDay, 0),
	}

	e.logger.DebugContext(ctx, "query executed",
		"entries", len(filtered),
		"months", len(monthly),
		"took", time.Since(started).String(),
	)
	return data, nil
}

// pushdown translates the coarse-filterable predicates (year, month,
// project, date BETWEEN) and an explicit PERIOD into source options.
// Every predicate is re-applied in memory afterwards, so a source
// returning a superset stays correct.
func (e *Engine) pushdown(q query.Query) core.Options {
	var opts core.Options
	for _, pred := range q.Where {
		h, ok := e.registry.Lookup(pred.Field)
		if !ok || !h.Pushdown {
			continue
		}
		switch pred.Field {
		case "year":
			if pred.Op == query.OpEq {
				y := int(pred.Value.Num)
				opts.Year = &y
			} else {
				from := time.Date(int(pred.Value.Num), time.January, 1, 0, 0, 0, 0, time.UTC)
				to := time.Date(int(pred.ValueTo.Num), time.December, 31, 0, 0, 0, 0, time.UTC)
				mergeRange(&opts, &from, &to)
			}
		case "month":
			if pred.Op == query.OpEq {
				m := int(pred.Value.Num)
				opts.Month = &m
			}
		case "project":
			if pred.Op == query.OpEq && opts.Project == "" {
				opts.Project = pred.Value.Str
			}
		case "date":
			if pred.Op == query.OpEq {
				d := pred.Value.Date
				mergeRange(&opts, &d, &d)
			} else {
				from, to := pred.Value.Date, pred.ValueTo.Date
				mergeRange(&opts, &from, &to)
			}
		}
	}
	if q.PeriodExplicit {
		from, to := periodRange(q.Period, e.Now())
		mergeRange(&opts, from, to)
	}
	return opts
}

// mergeRange narrows the options to the intersection of the existing
// and the new date range.
func mergeRange(opts *core.Options, from, to *time.Time) {
	if from != nil && (opts.From == nil || from.After(*opts.From)) {
		f := *from
		opts.From = &f
	}
	if to != nil && (opts.To == nil || to.Before(*opts.To)) {
		t := *to
		opts.To = &t
	}
}

// periodRange maps a period to its date window anchored at now.
// all-time is unbounded.
func periodRange(p query.Period, now time.Time) (*time.Time, *time.Time) {
	switch p {
	case query.PeriodCurrentYear:
		from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		return &from, &to
	case query.PeriodLast6Months:
		return trailingMonths(now, 6)
	case query.PeriodLast12Months:
		return trailingMonths(now, 12)
	}
	return nil, nil
}

// trailingMonths returns the window covering the n calendar months
// ending with the month of now.
func trailingMonths(now time.Time, n int) (*time.Time, *time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := first.AddDate(0, -(n - 1), 0)
	to := first.AddDate(0, 1, -1)
	return &from, &to
}

// applyPredicates evaluates the full conjunction left to right and
// returns the survivors in a fresh slice; the input, which may belong
// to the source's cache, is never mutated.
func (e *Engine) applyPredicates(entries []core.Entry, preds []query.Predicate) []core.Entry {
	matchers := make([]func(core.Entry) bool, 0, len(preds))
	for _, pred := range preds {
		h, ok := e.registry.Lookup(pred.Field)
		if !ok || h.Match == nil {
			continue
		}
		matchers = append(matchers, h.Match(pred, e.settings))
	}

	kept := make([]core.Entry, 0, len(entries))
	for _, entry := range entries {
		ok := true
		for _, m := range matchers {
			if !m(entry) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, entry)
		}
	}
	return kept
}

// budgetFor resolves the configured hour budget when the query pins a
// single project; otherwise budget fields stay absent.
func (e *Engine) budgetFor(q query.Query) float64 {
	var name string
	for _, pred := range q.Where {
		if pred.Field != "project" || pred.Op != query.OpEq {
			continue
		}
		if name != "" && !strings.EqualFold(name, pred.Value.Str) {
			return 0
		}
		name = pred.Value.Str
	}
	if name == "" {
		return 0
	}
	return e.settings.BudgetFor(name)
}
