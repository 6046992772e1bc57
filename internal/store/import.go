package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/reportr/internal/core"
)

// ImportCSV loads entries from r. The expected columns are
// date,hours,rate,project,client,category,notes; a header row is
// detected and skipped, and trailing columns may be omitted. The whole
// file imports in one transaction, so a bad row imports nothing.
func (s *Store) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}

	start := 0
	if isHeaderRow(records[0]) {
		start = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (entry_date, hours, rate, project, client, category, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	count := 0
	for i := start; i < len(records); i++ {
		e, err := parseRow(records[i])
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		if _, err := stmt.ExecContext(ctx,
			e.Date.Format("2006-01-02"), e.Hours, e.Rate, e.Project, e.Client, e.Category, e.Notes,
		); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	s.cache.clear()
	return count, nil
}

func isHeaderRow(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "date")
}

func parseRow(row []string) (core.Entry, error) {
	var e core.Entry
	if len(row) < 4 {
		return e, fmt.Errorf("need at least date,hours,rate,project, got %d columns", len(row))
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
	if err != nil {
		return e, fmt.Errorf("bad date %q", row[0])
	}
	e.Date = date

	e.Hours, err = strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil || e.Hours <= 0 {
		return e, fmt.Errorf("bad hours %q", row[1])
	}

	if v := strings.TrimSpace(row[2]); v != "" {
		e.Rate, err = strconv.ParseFloat(v, 64)
		if err != nil || e.Rate < 0 {
			return e, fmt.Errorf("bad rate %q", row[2])
		}
	}

	e.Project = strings.TrimSpace(row[3])
	if e.Project == "" {
		return e, fmt.Errorf("project is required")
	}

	if len(row) > 4 {
		e.Client = strings.TrimSpace(row[4])
	}
	if len(row) > 5 {
		e.Category = strings.TrimSpace(row[5])
	}
	if len(row) > 6 {
		e.Notes = row[6]
	}
	return e, nil
}
