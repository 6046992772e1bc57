package tui

import (
	"github.com/sadopc/reportr/internal/core"
	"github.com/sadopc/reportr/internal/query"
	"github.com/sadopc/reportr/internal/report"
)

// viewState represents the currently active view.
type viewState int

const (
	viewQuery viewState = iota
	viewEntries
	viewSettings
)

var viewNames = []string{"Query", "Entries", "Settings"}

// --- Messages ---

// resultsMsg carries a successful execution back to the query view.
type resultsMsg struct {
	query query.Query
	data  *report.ProcessedData
}

// queryErrMsg carries a compile or execution failure. The previous
// results stay on screen.
type queryErrMsg struct {
	err error
}

type entriesDataMsg struct {
	entries []core.Entry
}

type entryAddedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type settingsSavedMsg struct {
	settings core.Settings
}

type exportDoneMsg struct {
	path string
}
