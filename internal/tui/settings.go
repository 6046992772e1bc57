package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/reportr/internal/config"
	"github.com/sadopc/reportr/internal/core"
)

type settingsModel struct {
	cfg    *config.Config
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	currency    *string
	hoursPerDay *string

	// Per-project form values, rebuilt each time the form opens.
	projectRates    []*string
	projectBudgets  []*string
	projectBillings []*string
}

func newSettingsModel(cfg *config.Config) settingsModel {
	cur, hpd := "", ""
	return settingsModel{
		cfg:         cfg,
		currency:    &cur,
		hoursPerDay: &hpd,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	st := s.cfg.Settings
	*s.currency = st.CurrencySymbol
	*s.hoursPerDay = strconv.FormatFloat(st.HoursPerWorkday, 'f', -1, 64)

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().Title("Currency symbol").Value(s.currency).Validate(validCurrency),
			huh.NewInput().Title("Hours per workday").Value(s.hoursPerDay).Validate(validWorkday),
		).Title("General"),
	}

	s.projectRates = make([]*string, len(st.Projects))
	s.projectBudgets = make([]*string, len(st.Projects))
	s.projectBillings = make([]*string, len(st.Projects))
	for i, p := range st.Projects {
		rate := strconv.FormatFloat(p.HourlyRate, 'f', -1, 64)
		budget := strconv.FormatFloat(p.BudgetHours, 'f', -1, 64)
		billing := string(p.Billing)
		s.projectRates[i] = &rate
		s.projectBudgets[i] = &budget
		s.projectBillings[i] = &billing

		groups = append(groups, huh.NewGroup(
			huh.NewInput().Title("Hourly rate").Value(s.projectRates[i]).Validate(validRate),
			huh.NewInput().Title("Budget hours").Value(s.projectBudgets[i]).Validate(validRate),
			huh.NewSelect[string]().Title("Billing").
				Options(
					huh.NewOption("Hourly", string(core.BillingHourly)),
					huh.NewOption("Fixed", string(core.BillingFixed)),
					huh.NewOption("Retainer", string(core.BillingRetainer)),
				).Value(s.projectBillings[i]),
		).Title(p.Name))
	}

	s.form = huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.saveSettings()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() tea.Cmd {
	st := s.cfg.Settings
	st.CurrencySymbol = *s.currency
	if v, err := strconv.ParseFloat(*s.hoursPerDay, 64); err == nil && v > 0 {
		st.HoursPerWorkday = v
	}
	for i := range st.Projects {
		if i >= len(s.projectRates) {
			break
		}
		if v, err := strconv.ParseFloat(*s.projectRates[i], 64); err == nil && v >= 0 {
			st.Projects[i].HourlyRate = v
		}
		if v, err := strconv.ParseFloat(*s.projectBudgets[i], 64); err == nil && v >= 0 {
			st.Projects[i].BudgetHours = v
		}
		st.Projects[i].Billing = core.Billing(*s.projectBillings[i])
	}
	s.cfg.Settings = st

	return func() tea.Msg {
		if err := s.cfg.Save(); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return settingsSavedMsg{settings: st}
	}
}

func validCurrency(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("currency symbol is required")
	}
	return nil
}

func validWorkday(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || v > 24 {
		return fmt.Errorf("hours per workday must be between 0 and 24")
	}
	return nil
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	st := s.cfg.Settings
	title := titleStyle.Render("Settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, s.renderValue("Currency symbol", st.CurrencySymbol))
	rows = append(rows, s.renderValue("Hours per workday", strconv.FormatFloat(st.HoursPerWorkday, 'f', -1, 64)))
	rows = append(rows, s.renderValue("Config file", s.cfg.Path()))
	rows = append(rows, s.renderValue("Database", s.cfg.DBPath))
	rows = append(rows, "")

	if len(st.Projects) == 0 {
		rows = append(rows, mutedStyle.Render("  No projects configured. Edit the config file to add some."))
	} else {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-18s %-16s %8s %8s %-10s", "Project", "Client", "Rate", "Budget", "Billing")))
		for _, p := range st.Projects {
			rows = append(rows, normalItemStyle.Render(fmt.Sprintf("  %-18s %-16s %8.2f %8.1f %-10s",
				truncate(p.Name, 18),
				truncate(p.Client, 16),
				p.HourlyRate,
				p.BudgetHours,
				p.Billing,
			)))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s settingsModel) renderValue(label, value string) string {
	l := lipgloss.NewStyle().Width(20).Render(label)
	return fmt.Sprintf("  %s %s", l, highlightStyle.Render(value))
}
