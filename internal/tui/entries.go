package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/reportr/internal/core"
	"github.com/sadopc/reportr/internal/store"
)

const maxRecentEntries = 50

type entriesModel struct {
	store  *store.Store
	width  int
	height int

	entries []core.Entry
	cursor  int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formDate     *string
	formHours    *string
	formRate     *string
	formProject  *string
	formClient   *string
	formCategory *string
	formNotes    *string
}

func newEntriesModel(s *store.Store) entriesModel {
	date, hours, rate := "", "", ""
	project, client, category, notes := "", "", "", ""
	return entriesModel{
		store:        s,
		formDate:     &date,
		formHours:    &hours,
		formRate:     &rate,
		formProject:  &project,
		formClient:   &client,
		formCategory: &category,
		formNotes:    &notes,
	}
}

func (e *entriesModel) setSize(w, h int) {
	e.width = w
	e.height = h
}

func (e entriesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		all, err := e.store.Query(context.Background(), core.Options{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		// Newest first.
		recent := make([]core.Entry, 0, maxRecentEntries)
		for i := len(all) - 1; i >= 0 && len(recent) < maxRecentEntries; i-- {
			recent = append(recent, all[i])
		}
		return entriesDataMsg{entries: recent}
	}
}

func (e entriesModel) update(msg tea.Msg) (entriesModel, tea.Cmd) {
	if e.formActive && e.form != nil {
		return e.updateForm(msg)
	}

	switch msg := msg.(type) {
	case entriesDataMsg:
		e.entries = msg.entries
		if e.cursor >= len(e.entries) {
			e.cursor = max(0, len(e.entries)-1)
		}
		return e, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if e.cursor > 0 {
				e.cursor--
			}
		case key.Matches(msg, keys.Down):
			if e.cursor < len(e.entries)-1 {
				e.cursor++
			}
		case key.Matches(msg, keys.New):
			return e.showAddForm()
		case key.Matches(msg, keys.Delete):
			if len(e.entries) > 0 {
				id := e.entries[e.cursor].ID
				if err := e.store.Delete(context.Background(), id); err != nil {
					return e, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
				}
				return e, e.refresh()
			}
		case key.Matches(msg, keys.Refresh):
			return e, e.refresh()
		}
	}
	return e, nil
}

func (e entriesModel) showAddForm() (entriesModel, tea.Cmd) {
	*e.formDate = time.Now().Format("2006-01-02")
	*e.formHours = ""
	*e.formRate = ""
	*e.formProject = ""
	*e.formClient = ""
	*e.formCategory = ""
	*e.formNotes = ""

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(e.formDate).Validate(validDate),
			huh.NewInput().Title("Hours").Value(e.formHours).Validate(validHours),
			huh.NewInput().Title("Hourly Rate").Value(e.formRate).Validate(validRate),
			huh.NewInput().Title("Project").Value(e.formProject).Validate(validProject),
		),
		huh.NewGroup(
			huh.NewInput().Title("Client").Value(e.formClient),
			huh.NewInput().Title("Category").Value(e.formCategory),
			huh.NewInput().Title("Notes").Value(e.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	e.formActive = true
	return e, e.form.Init()
}

func (e entriesModel) updateForm(msg tea.Msg) (entriesModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			e.formActive = false
			e.form = nil
			return e, nil
		}
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		e.formActive = false
		return e, e.saveEntry()
	}

	return e, cmd
}

func (e entriesModel) saveEntry() tea.Cmd {
	date, _ := time.Parse("2006-01-02", *e.formDate)
	hours, _ := strconv.ParseFloat(*e.formHours, 64)
	rate := 0.0
	if *e.formRate != "" {
		rate, _ = strconv.ParseFloat(*e.formRate, 64)
	}
	entry := core.Entry{
		Date:     date,
		Hours:    hours,
		Rate:     rate,
		Project:  *e.formProject,
		Client:   *e.formClient,
		Category: *e.formCategory,
		Notes:    *e.formNotes,
	}
	return func() tea.Msg {
		if _, err := e.store.Add(context.Background(), entry); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return entryAddedMsg{}
	}
}

func validDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validHours(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("hours must be a positive number")
	}
	return nil
}

func validRate(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("rate must be zero or more")
	}
	return nil
}

func validProject(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("project is required")
	}
	return nil
}

func (e entriesModel) view() string {
	if e.formActive && e.form != nil {
		title := titleStyle.Render("New Entry")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", e.form.View())
		return panelStyle.Width(e.width - 4).Render(content)
	}
	return e.renderList()
}

func (e entriesModel) renderList() string {
	w := e.width - 4
	title := titleStyle.Render("Entries")

	if len(e.entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No entries yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-12s %-18s %8s %8s %10s", "Date", "Project", "Hours", "Rate", "Invoiced"))
	rows = append(rows, header)

	for i, entry := range e.entries {
		cursor := "  "
		style := normalItemStyle
		if i == e.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%-12s %-18s %8.1f %8.2f %10.2f",
			cursor,
			entry.Date.Format("2006-01-02"),
			truncate(entry.Project, 18),
			entry.Hours,
			entry.Rate,
			entry.Invoiced(),
		))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete  r: refresh"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
