// Package report executes a normalized query against a data source and
// aggregates the surviving entries into monthly buckets, trend series
// and summary rollups. Everything here is a pure function of
// (entries, query, settings) except the data source call itself.
package report

import (
	"time"

	"github.com/sadopc/reportr/internal/core"
)

// MonthlyDataPoint is one (year, month) aggregation bucket. Budget
// fields are nil unless the query resolves to a project with a
// configured hour budget.
type MonthlyDataPoint struct {
	Year            int        `json:"year"`
	Month           time.Month `json:"month"`
	Label           string     `json:"label"`
	Hours           float64    `json:"hours"`
	Invoiced        float64    `json:"invoiced"`
	Rate            float64    `json:"rate"`
	TargetHours     float64    `json:"targetHours"`
	Utilization     float64    `json:"utilization"`
	CumulativeHours float64    `json:"cumulativeHours"`
	BudgetProgress  *float64   `json:"budgetProgress,omitempty"`
	BudgetRemaining *float64   `json:"budgetRemaining,omitempty"`
}

// SummaryData is an aggregate over one entry set. Target hours sum the
// targets of every distinct month the set touches.
type SummaryData struct {
	TotalHours      float64  `json:"totalHours"`
	TotalInvoiced   float64  `json:"totalInvoiced"`
	Rate            float64  `json:"rate"`
	TargetHours     float64  `json:"targetHours"`
	Utilization     float64  `json:"utilization"`
	Months          int      `json:"months"`
	BudgetProgress  *float64 `json:"budgetProgress,omitempty"`
	BudgetRemaining *float64 `json:"budgetRemaining,omitempty"`
}

// TrendData holds parallel arrays over the chronologically sorted,
// optionally truncated monthly points.
type TrendData struct {
	Labels      []string  `json:"labels"`
	Hours       []float64 `json:"hours"`
	Utilization []float64 `json:"utilization"`
	Invoiced    []float64 `json:"invoiced"`
}

// ProcessedData is the full execution result: the filtered entries in
// date order plus every derived aggregate. It is recomputed from
// scratch on each execution and never mutated afterwards.
type ProcessedData struct {
	Entries        []core.Entry       `json:"entries"`
	Monthly        []MonthlyDataPoint `json:"monthlyData"`
	Trend          TrendData          `json:"trendData"`
	Summary        SummaryData        `json:"summary"`
	YearSummary    SummaryData        `json:"yearSummary"`
	AllTimeSummary SummaryData        `json:"allTimeSummary"`
}
