package core

import (
	"testing"
	"time"
)

func TestEntryInvoiced(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		rate  float64
		want  float64
	}{
		{"standard", 8, 75, 600},
		{"fractional hours", 7.5, 80, 600},
		{"zero rate", 4, 0, 0},
		{"zero hours", 0, 90, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Entry{Hours: tt.hours, Rate: tt.rate}
			if got := e.Invoiced(); got != tt.want {
				t.Errorf("Invoiced() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptionsIsZero(t *testing.T) {
	if !(Options{}).IsZero() {
		t.Error("empty options should be zero")
	}

	year := 2024
	month := 3
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	nonZero := []Options{
		{Year: &year},
		{Month: &month},
		{Project: "acme"},
		{From: &day},
		{To: &day},
	}
	for i, o := range nonZero {
		if o.IsZero() {
			t.Errorf("options %d should not be zero", i)
		}
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.CurrencySymbol != "€" {
		t.Errorf("currency = %q, want €", s.CurrencySymbol)
	}
	if s.HoursPerWorkday != 8 {
		t.Errorf("hours per workday = %v, want 8", s.HoursPerWorkday)
	}
	if len(s.Projects) != 0 {
		t.Errorf("expected no default projects, got %d", len(s.Projects))
	}
}

func TestProjectByNameCaseInsensitive(t *testing.T) {
	s := Settings{Projects: []ProjectConfig{
		{Name: "Acme", HourlyRate: 75},
		{Name: "internal"},
	}}

	p, ok := s.ProjectByName("ACME")
	if !ok {
		t.Fatal("expected to find project regardless of case")
	}
	if p.HourlyRate != 75 {
		t.Errorf("rate = %v, want 75", p.HourlyRate)
	}

	if _, ok := s.ProjectByName("missing"); ok {
		t.Error("expected lookup miss for unknown project")
	}
}

func TestBudgetFor(t *testing.T) {
	s := Settings{Projects: []ProjectConfig{
		{Name: "fixed-with-budget", Billing: BillingFixed, BudgetHours: 120},
		{Name: "fixed-no-budget", Billing: BillingFixed},
		{Name: "hourly-with-budget", Billing: BillingHourly, BudgetHours: 80},
		{Name: "retainer", Billing: BillingRetainer, BudgetHours: 40},
	}}

	tests := []struct {
		name string
		want float64
	}{
		{"fixed-with-budget", 120},
		{"FIXED-WITH-BUDGET", 120},
		{"fixed-no-budget", 0},
		{"hourly-with-budget", 0},
		{"retainer", 0},
		{"unknown", 0},
	}

	for _, tt := range tests {
		if got := s.BudgetFor(tt.name); got != tt.want {
			t.Errorf("BudgetFor(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
