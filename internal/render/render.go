// Package render turns ProcessedData into terminal output for the four
// view types. The TUI and the one-shot CLI share it.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/reportr/internal/core"
	"github.com/sadopc/reportr/internal/query"
	"github.com/sadopc/reportr/internal/report"
)

// Renderer holds the settings and the target width. Zero width falls
// back to 80 columns.
type Renderer struct {
	settings core.Settings
	width    int
}

func New(settings core.Settings) *Renderer {
	return &Renderer{settings: settings, width: 80}
}

func (r *Renderer) SetWidth(w int) {
	if w > 0 {
		r.width = w
	}
}

func (r *Renderer) SetSettings(s core.Settings) { r.settings = s }

// Render dispatches on the query's view type.
func (r *Renderer) Render(q query.Query, data *report.ProcessedData) string {
	switch q.View {
	case query.ViewTable:
		return r.Table(q, data)
	case query.ViewChart:
		return r.Chart(q, data)
	case query.ViewFull:
		return r.Full(q, data)
	default:
		return r.Summary(data)
	}
}

// Summary renders the period, current-year and all-time cards side by
// side.
func (r *Renderer) Summary(data *report.ProcessedData) string {
	cards := []string{
		r.summaryCard("This period", data.Summary),
		r.summaryCard("This year", data.YearSummary),
		r.summaryCard("All time", data.AllTimeSummary),
	}
	if r.width < 84 {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (r *Renderer) summaryCard(title string, s report.SummaryData) string {
	sym := r.settings.CurrencySymbol

	lines := []string{
		cardTitleStyle.Render(title),
		"",
		fmt.Sprintf("%s %s", mutedStyle.Render("Hours      "), valueStyle.Render(formatHours(s.TotalHours))),
		fmt.Sprintf("%s %s", mutedStyle.Render("Invoiced   "), valueStyle.Render(formatCurrency(sym, s.TotalInvoiced))),
		fmt.Sprintf("%s %s", mutedStyle.Render("Rate       "), valueStyle.Render(formatCurrency(sym, s.Rate)+"/h")),
		fmt.Sprintf("%s %s", mutedStyle.Render("Utilization"), valueStyle.Render(formatPercent(s.Utilization))),
		fmt.Sprintf("%s %s", mutedStyle.Render("Months     "), valueStyle.Render(fmt.Sprintf("%d", s.Months))),
	}
	if s.BudgetProgress != nil && s.BudgetRemaining != nil {
		lines = append(lines,
			fmt.Sprintf("%s %s", mutedStyle.Render("Budget     "), valueStyle.Render(formatPercent(*s.BudgetProgress))),
			fmt.Sprintf("%s %s", mutedStyle.Render("Remaining  "), valueStyle.Render(formatHours(*s.BudgetRemaining)+"h")),
		)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// Table renders the surviving entries shaped by the SHOW columns, or
// by the size-dependent default column set.
func (r *Renderer) Table(q query.Query, data *report.ProcessedData) string {
	if len(data.Entries) == 0 {
		return mutedStyle.Render("No entries match this query")
	}

	cols := r.resolveColumns(q)
	maxRows := rowLimit(q.Size)

	var rows []string
	var header []string
	for _, c := range cols {
		header = append(header, pad(c.title, c.width, c.rightAlign))
	}
	rows = append(rows, mutedStyle.Render(strings.Join(header, "  ")))
	rows = append(rows, mutedStyle.Render(strings.Repeat("─", tableWidth(cols))))

	shown := data.Entries
	truncated := 0
	if maxRows > 0 && len(shown) > maxRows {
		truncated = len(shown) - maxRows
		shown = shown[:maxRows]
	}
	for _, e := range shown {
		var cells []string
		for _, c := range cols {
			cells = append(cells, pad(c.value(e), c.width, c.rightAlign))
		}
		rows = append(rows, strings.Join(cells, "  "))
	}
	if truncated > 0 {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("… and %d more", truncated)))
	}

	total := fmt.Sprintf("%d entries, %s hours, %s",
		len(data.Entries),
		formatHours(data.Summary.TotalHours),
		formatCurrency(r.settings.CurrencySymbol, data.Summary.TotalInvoiced))
	rows = append(rows, "", titleStyle.Render(total))

	return strings.Join(rows, "\n")
}

// Full stacks summary, chart and table.
func (r *Renderer) Full(q query.Query, data *report.ProcessedData) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		r.Summary(data),
		"",
		r.Chart(q, data),
		"",
		r.Table(q, data),
	)
}

type column struct {
	title      string
	width      int
	rightAlign bool
	value      func(core.Entry) string
}

// resolveColumns maps SHOW specs to table columns; with no SHOW clause
// the size decides the default set. Unmappable SHOW fields are
// skipped.
func (r *Renderer) resolveColumns(q query.Query) []column {
	if len(q.Show) == 0 {
		return r.defaultColumns(q.Size)
	}
	var cols []column
	for _, spec := range q.Show {
		if c, ok := r.columnFor(spec); ok {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return r.defaultColumns(q.Size)
	}
	return cols
}

func (r *Renderer) defaultColumns(size query.Size) []column {
	base := []query.ColumnSpec{
		{Field: "date"},
		{Field: "project"},
		{Field: "hours"},
		{Field: "rate", Format: query.FormatCurrency},
		{Field: "invoiced", Format: query.FormatCurrency},
	}
	switch size {
	case query.SizeCompact:
		base = base[:3]
	case query.SizeDetailed:
		base = append(base,
			query.ColumnSpec{Field: "client"},
			query.ColumnSpec{Field: "category"},
			query.ColumnSpec{Field: "notes"},
		)
	}
	var cols []column
	for _, spec := range base {
		if c, ok := r.columnFor(spec); ok {
			cols = append(cols, c)
		}
	}
	return cols
}

func (r *Renderer) columnFor(spec query.ColumnSpec) (column, bool) {
	sym := r.settings.CurrencySymbol
	perDay := r.settings.HoursPerWorkday

	numeric := func(v func(core.Entry) float64, width int) column {
		format := func(x float64) string { return formatHours(x) }
		switch spec.Format {
		case query.FormatCurrency, query.FormatMoney:
			format = func(x float64) string { return formatCurrency(sym, x) }
			width += 4
		case query.FormatPercent:
			format = formatPercent
		}
		return column{width: width, rightAlign: true, value: func(e core.Entry) string { return format(v(e)) }}
	}

	var c column
	switch spec.Field {
	case "date":
		c = column{width: 10, value: func(e core.Entry) string { return e.Date.Format("2006-01-02") }}
	case "month":
		c = column{width: 8, value: func(e core.Entry) string { return e.Date.Format("Jan 2006") }}
	case "year":
		c = column{width: 4, rightAlign: true, value: func(e core.Entry) string { return e.Date.Format("2006") }}
	case "project":
		c = column{width: 16, value: func(e core.Entry) string { return e.Project }}
	case "client":
		c = column{width: 16, value: func(e core.Entry) string { return e.Client }}
	case "category":
		c = column{width: 12, value: func(e core.Entry) string { return e.Category }}
	case "notes", "service":
		c = column{width: 24, value: func(e core.Entry) string { return e.Notes }}
	case "hours":
		c = numeric(func(e core.Entry) float64 { return e.Hours }, 6)
	case "rate", "value":
		c = numeric(func(e core.Entry) float64 { return e.Rate }, 7)
	case "invoiced":
		c = numeric(func(e core.Entry) float64 { return e.Invoiced() }, 10)
	case "utilization":
		if spec.Format == query.FormatNone {
			spec.Format = query.FormatPercent
		}
		c = numeric(func(e core.Entry) float64 {
			if perDay <= 0 {
				return 0
			}
			return e.Hours / perDay
		}, 7)
	default:
		return column{}, false
	}

	c.title = spec.Field
	if spec.Alias != "" {
		c.title = spec.Alias
	}
	if w := len(c.title); w > c.width {
		c.width = w
	}
	return c, true
}

func rowLimit(size query.Size) int {
	switch size {
	case query.SizeCompact:
		return 8
	case query.SizeDetailed:
		return 0
	default:
		return 20
	}
}

func tableWidth(cols []column) int {
	w := 0
	for _, c := range cols {
		w += c.width + 2
	}
	if w > 2 {
		w -= 2
	}
	return w
}

func pad(s string, width int, right bool) string {
	runes := []rune(s)
	if len(runes) > width {
		if width > 1 {
			return string(runes[:width-1]) + "…"
		}
		return string(runes[:width])
	}
	if right {
		return strings.Repeat(" ", width-len(runes)) + s
	}
	return s + strings.Repeat(" ", width-len(runes))
}
