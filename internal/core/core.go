// Package core holds the domain types shared by the query engine, the
// store and the presentation layers. It has no dependencies on either
// side so every other package can import it.
package core

import (
	"context"
	"strings"
	"time"
)

// Entry is a single recorded unit of work. Hours and Rate are kept as
// recorded; derived figures (invoiced amounts, utilization) are computed
// by the report engine, never stored.
type Entry struct {
	ID       int64
	Date     time.Time
	Hours    float64
	Rate     float64
	Project  string
	Client   string
	Category string
	Notes    string
}

// Invoiced returns the billable amount of the entry.
func (e Entry) Invoiced() float64 {
	return e.Hours * e.Rate
}

// Options is the coarse filter pushed down to a Source. Nil pointer
// fields mean "no constraint". A Source may return a superset of the
// matching entries but never a subset; fine-grained predicates are
// applied by the engine afterwards.
type Options struct {
	Year    *int
	Month   *int
	Project string
	From    *time.Time
	To      *time.Time
}

// IsZero reports whether no constraint is set at all.
func (o Options) IsZero() bool {
	return o.Year == nil && o.Month == nil && o.Project == "" && o.From == nil && o.To == nil
}

// Source supplies entries to the report engine. Query is the only
// suspension point of an execution; implementations are expected to
// cache repeated identical option sets until ClearCache is called.
type Source interface {
	Query(ctx context.Context, opts Options) ([]Entry, error)
	ClearCache()
}

// Billing says how a project is invoiced.
type Billing string

const (
	BillingHourly   Billing = "hourly"
	BillingFixed    Billing = "fixed"
	BillingRetainer Billing = "retainer"
)

// ProjectConfig is the per-project configuration. BudgetHours only
// takes effect for fixed billing.
type ProjectConfig struct {
	Name        string
	Client      string
	HourlyRate  float64
	BudgetHours float64
	Billing     Billing
}

// Settings drive the engine's derived calculations and the currency
// formatting of every renderer.
type Settings struct {
	CurrencySymbol  string
	HoursPerWorkday float64
	Projects        []ProjectConfig
}

// DefaultSettings returns the settings used when no configuration file
// exists.
func DefaultSettings() Settings {
	return Settings{
		CurrencySymbol:  "€",
		HoursPerWorkday: 8,
	}
}

// ProjectByName looks up a configured project, matching
// case-insensitively like every other project comparison.
func (s Settings) ProjectByName(name string) (ProjectConfig, bool) {
	for _, p := range s.Projects {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return ProjectConfig{}, false
}

// BudgetFor returns the configured budget for a project, or 0 when the
// project is unknown, not fixed-billing, or has no budget set.
func (s Settings) BudgetFor(name string) float64 {
	p, ok := s.ProjectByName(name)
	if !ok || p.Billing != BillingFixed || p.BudgetHours <= 0 {
		return 0
	}
	return p.BudgetHours
}
