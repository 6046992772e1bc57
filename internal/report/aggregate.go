package report

import (
	"sort"
	"time"

	"github.com/sadopc/reportr/internal/core"
	"github.com/sadopc/reportr/internal/query"
)

type monthKey struct {
	year  int
	month time.Month
}

// aggregateMonthly groups entries into (year, month) buckets and
// derives the per-month figures plus the running cumulative total, in
// chronological order. Zero denominators resolve to 0, never NaN.
func aggregateMonthly(entries []core.Entry, hoursPerWorkday, budgetHours float64) []MonthlyDataPoint {
	type bucket struct {
		hours    float64
		invoiced float64
	}
	buckets := make(map[monthKey]*bucket)
	for _, e := range entries {
		k := monthKey{e.Date.Year(), e.Date.Month()}
		b := buckets[k]
		if b == nil {
			b = &bucket{}
			buckets[k] = b
		}
		b.hours += e.Hours
		b.invoiced += e.Invoiced()
	}

	keys := make([]monthKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	points := make([]MonthlyDataPoint, 0, len(keys))
	cumulative := 0.0
	for _, k := range keys {
		b := buckets[k]
		target := float64(Workdays(k.year, k.month)) * hoursPerWorkday
		p := MonthlyDataPoint{
			Year:        k.year,
			Month:       k.month,
			Label:       monthLabel(k.year, k.month),
			Hours:       b.hours,
			Invoiced:    b.invoiced,
			TargetHours: target,
		}
		if b.hours > 0 {
			p.Rate = b.invoiced / b.hours
		}
		if target > 0 {
			p.Utilization = b.hours / target
		}
		cumulative += b.hours
		p.CumulativeHours = cumulative
		if budgetHours > 0 {
			progress := cumulative / budgetHours
			remaining := budgetHours - cumulative
			p.BudgetProgress = &progress
			p.BudgetRemaining = &remaining
		}
		points = append(points, p)
	}
	return points
}

// summarize folds one entry set into a SummaryData. Target hours sum
// over the distinct months the set touches, so a partial month still
// counts its full target.
func summarize(entries []core.Entry, hoursPerWorkday, budgetHours float64) SummaryData {
	var s SummaryData
	months := make(map[monthKey]struct{})
	for _, e := range entries {
		s.TotalHours += e.Hours
		s.TotalInvoiced += e.Invoiced()
		months[monthKey{e.Date.Year(), e.Date.Month()}] = struct{}{}
	}
	for k := range months {
		s.TargetHours += float64(Workdays(k.year, k.month)) * hoursPerWorkday
	}
	s.Months = len(months)
	if s.TotalHours > 0 {
		s.Rate = s.TotalInvoiced / s.TotalHours
	}
	if s.TargetHours > 0 {
		s.Utilization = s.TotalHours / s.TargetHours
	}
	if budgetHours > 0 {
		progress := s.TotalHours / budgetHours
		remaining := budgetHours - s.TotalHours
		s.BudgetProgress = &progress
		s.BudgetRemaining = &remaining
	}
	return s
}

// deriveTrend trims the monthly series to the requested window and
// splits it into parallel arrays. PERIOD last-6-months and
// last-12-months keep the trailing 6 or 12 points; SIZE compact keeps
// the trailing 6 when no period truncation applies. Points arrive
// sorted ascending.
func deriveTrend(points []MonthlyDataPoint, q query.Query) TrendData {
	keep := 0
	switch q.Period {
	case query.PeriodLast6Months:
		keep = 6
	case query.PeriodLast12Months:
		keep = 12
	default:
		if q.Size == query.SizeCompact {
			keep = 6
		}
	}
	if keep > 0 && len(points) > keep {
		points = points[len(points)-keep:]
	}

	trend := TrendData{
		Labels:      make([]string, 0, len(points)),
		Hours:       make([]float64, 0, len(points)),
		Utilization: make([]float64, 0, len(points)),
		Invoiced:    make([]float64, 0, len(points)),
	}
	for _, p := range points {
		trend.Labels = append(trend.Labels, p.Label)
		trend.Hours = append(trend.Hours, p.Hours)
		trend.Utilization = append(trend.Utilization, p.Utilization)
		trend.Invoiced = append(trend.Invoiced, p.Invoiced)
	}
	return trend
}
