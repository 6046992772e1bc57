package render

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/reportr/internal/query"
	"github.com/sadopc/reportr/internal/report"
)

// Chart renders the chart selected by the query: a monthly bar chart,
// a trend sparkline, or the budget progress bar.
func (r *Renderer) Chart(q query.Query, data *report.ProcessedData) string {
	switch q.Chart {
	case query.ChartTrend:
		return r.trendChart(q, data)
	case query.ChartBudget:
		return r.budgetChart(data)
	default:
		return r.monthlyChart(q, data)
	}
}

func (r *Renderer) chartSize(size query.Size) (int, int) {
	w := r.width - 8
	if w < 20 {
		w = 20
	}
	h := 12
	switch size {
	case query.SizeCompact:
		h = 8
	case query.SizeDetailed:
		h = 16
	}
	return w, h
}

func (r *Renderer) monthlyChart(q query.Query, data *report.ProcessedData) string {
	if len(data.Monthly) == 0 {
		return mutedStyle.Render("No entries match this query")
	}

	w, h := r.chartSize(q.Size)
	chart := barchart.New(w, h)

	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	var bars []barchart.BarData
	for _, m := range data.Monthly {
		bars = append(bars, barchart.BarData{
			Label: m.Month.String()[:3],
			Values: []barchart.BarValue{
				{Name: m.Label, Value: m.Hours, Style: barStyle},
			},
		})
	}
	chart.PushAll(bars)
	chart.Draw()

	header := titleStyle.Render("Hours per month")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", chart.View())
}

func (r *Renderer) trendChart(q query.Query, data *report.ProcessedData) string {
	if len(data.Trend.Hours) == 0 {
		return mutedStyle.Render("No entries match this query")
	}

	w, h := r.chartSize(q.Size)
	sl := sparkline.New(w, h, sparkline.WithStyle(lipgloss.NewStyle().Foreground(colorPrimary)))
	sl.PushAll(data.Trend.Hours)
	sl.Draw()

	span := data.Trend.Labels[0]
	if last := data.Trend.Labels[len(data.Trend.Labels)-1]; last != span {
		span = fmt.Sprintf("%s – %s", span, last)
	}

	header := titleStyle.Render("Hours trend")
	return lipgloss.JoinVertical(lipgloss.Left,
		header, "", sl.View(), mutedStyle.Render(span))
}

func (r *Renderer) budgetChart(data *report.ProcessedData) string {
	s := data.Summary
	if s.BudgetProgress == nil || s.BudgetRemaining == nil {
		return mutedStyle.Render("No budget configured for this query (needs a single fixed-billing project)")
	}

	progress := *s.BudgetProgress
	used := s.TotalHours
	budget := used + *s.BudgetRemaining

	barWidth := r.width - 20
	if barWidth < 10 {
		barWidth = 10
	}
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	fillStyle := successStyle
	switch {
	case progress > 1:
		fillStyle = overBudgetStyle
	case progress > 0.85:
		fillStyle = warningStyle
	}
	bar := fillStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))

	header := titleStyle.Render("Budget")
	detail := fmt.Sprintf("%s / %s hours (%s)",
		formatHours(used), formatHours(budget), formatPercent(progress))
	remaining := mutedStyle.Render(fmt.Sprintf("%s hours remaining", formatHours(*s.BudgetRemaining)))
	if *s.BudgetRemaining < 0 {
		remaining = overBudgetStyle.Render(fmt.Sprintf("%s hours over budget", formatHours(-*s.BudgetRemaining)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", bar, detail, remaining)
}
