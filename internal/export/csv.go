// Package export writes report results to CSV and JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/reportr/internal/report"
)

// ToCSV writes the filtered entries of a report as CSV. The column
// layout matches what the CSV importer expects, so an export can be
// loaded straight back into another database.
func ToCSV(data *report.ProcessedData, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"date", "hours", "rate", "project", "client", "category", "notes"}); err != nil {
		return err
	}

	for _, e := range data.Entries {
		row := []string{
			e.Date.Format("2006-01-02"),
			strconv.FormatFloat(e.Hours, 'f', -1, 64),
			strconv.FormatFloat(e.Rate, 'f', -1, 64),
			e.Project,
			e.Client,
			e.Category,
			e.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
