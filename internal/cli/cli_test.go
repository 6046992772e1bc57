package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestQueryTextJoinsArgs(t *testing.T) {
	runFile = ""
	got, err := queryText([]string{"WHERE", "year", "=", "2024"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "WHERE year = 2024" {
		t.Errorf("got %q", got)
	}
}

func TestQueryTextEmptyArgs(t *testing.T) {
	runFile = ""
	got, err := queryText(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected empty query, got %q", got)
	}
}

func TestQueryTextFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.rpt")
	if err := os.WriteFile(path, []byte("VIEW table\nSIZE compact\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runFile = path
	defer func() { runFile = "" }()

	got, err := queryText(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "VIEW table\nSIZE compact\n" {
		t.Errorf("got %q", got)
	}
}

func TestQueryTextMissingFile(t *testing.T) {
	runFile = filepath.Join(t.TempDir(), "absent.rpt")
	defer func() { runFile = "" }()

	if _, err := queryText(nil); err == nil {
		t.Fatal("expected error for missing query file")
	}
}

func TestDefaultExportName(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	if got := defaultExportName("csv", now); got != "reportr-export-2024-06-15.csv" {
		t.Errorf("got %q", got)
	}
	if got := defaultExportName("json", now); got != "reportr-export-2024-06-15.json" {
		t.Errorf("got %q", got)
	}
}
