package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/reportr/internal/report"
)

type jsonExport struct {
	ExportedAt     string                    `json:"exportedAt"`
	Count          int                       `json:"count"`
	Entries        []jsonEntry               `json:"entries"`
	Monthly        []report.MonthlyDataPoint `json:"monthlyData"`
	Trend          report.TrendData          `json:"trendData"`
	Summary        report.SummaryData        `json:"summary"`
	YearSummary    report.SummaryData        `json:"yearSummary"`
	AllTimeSummary report.SummaryData        `json:"allTimeSummary"`
}

type jsonEntry struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Rate     float64 `json:"rate"`
	Project  string  `json:"project"`
	Client   string  `json:"client,omitempty"`
	Category string  `json:"category,omitempty"`
	Notes    string  `json:"notes,omitempty"`
	Invoiced float64 `json:"invoiced"`
}

// ToJSON writes the full execution result: the entries plus the
// derived monthly, trend and summary aggregates.
func ToJSON(data *report.ProcessedData, path string) error {
	out := jsonExport{
		ExportedAt:     time.Now().UTC().Format(time.RFC3339),
		Count:          len(data.Entries),
		Monthly:        data.Monthly,
		Trend:          data.Trend,
		Summary:        data.Summary,
		YearSummary:    data.YearSummary,
		AllTimeSummary: data.AllTimeSummary,
	}

	for _, e := range data.Entries {
		out.Entries = append(out.Entries, jsonEntry{
			ID:       e.ID,
			Date:     e.Date.Format("2006-01-02"),
			Hours:    e.Hours,
			Rate:     e.Rate,
			Project:  e.Project,
			Client:   e.Client,
			Category: e.Category,
			Notes:    e.Notes,
			Invoiced: e.Invoiced(),
		})
	}

	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
