package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sadopc/reportr/internal/core"
)

// Handler describes one WHERE field: how to validate its values, and
// how to match an entry against a predicate on it. Pushdown marks
// fields the data source can narrow on; the engine still re-applies
// every predicate in memory, since sources may return a superset.
type Handler struct {
	Name     string
	Ranged   bool
	Pushdown bool
	Validate func(v Value) error
	Match    func(p Predicate, s core.Settings) func(core.Entry) bool
}

// Registry maps field names to their handlers. The parser consults it
// to reject unknown fields; the interpreter and engine consult it for
// validation and filtering. Optional fields are registered before
// parsing begins; the built-in eight are always present.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns a registry holding the built-in field handlers:
// year, month, project, date, service, category, utilization, value.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]Handler)}
	for _, h := range builtinHandlers() {
		r.handlers[h.Name] = h
	}
	return r
}

// Register adds a custom field handler. Registering over an existing
// field is an error.
func (r *Registry) Register(h Handler) error {
	name := strings.ToLower(h.Name)
	if name == "" {
		return fmt.Errorf("register: empty field name")
	}
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("register: field %q already registered", name)
	}
	h.Name = name
	r.handlers[name] = h
	return nil
}

// Lookup resolves a field name, case-insensitively.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[strings.ToLower(name)]
	return h, ok
}

// Fields returns the registered field names, sorted.
func (r *Registry) Fields() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtinHandlers() []Handler {
	return []Handler{
		{
			Name:     "year",
			Ranged:   true,
			Pushdown: true,
			Validate: validateInt("year", 1, 9999),
			Match: func(p Predicate, _ core.Settings) func(core.Entry) bool {
				return matchNumber(p, func(e core.Entry) float64 { return float64(e.Date.Year()) })
			},
		},
		{
			Name:     "month",
			Ranged:   true,
			Pushdown: true,
			Validate: validateInt("month", 1, 12),
			Match: func(p Predicate, _ core.Settings) func(core.Entry) bool {
				return matchNumber(p, func(e core.Entry) float64 { return float64(e.Date.Month()) })
			},
		},
		{
			Name:     "project",
			Pushdown: true,
			Validate: validateString("project"),
			Match: func(p Predicate, _ core.Settings) func(core.Entry) bool {
				want := p.Value.Str
				return func(e core.Entry) bool { return strings.EqualFold(e.Project, want) }
			},
		},
		{
			Name:     "date",
			Ranged:   true,
			Pushdown: true,
			Validate: validateDate("date"),
			Match: func(p Predicate, _ core.Settings) func(core.Entry) bool {
				if p.Op == OpBetween {
					from, to := p.Value.Date, p.ValueTo.Date
					return func(e core.Entry) bool {
						d := dayOf(e.Date)
						return !d.Before(from) && !d.After(to)
					}
				}
				want := p.Value.Date
				return func(e core.Entry) bool { return dayOf(e.Date).Equal(want) }
			},
		},
		{
			Name:     "service",
			Validate: validateString("service"),
			Match: func(p Predicate, _ core.Settings) func(core.Entry) bool {
				want := strings.ToLower(p.Value.Str)
				return func(e core.Entry) bool {
					return strings.Contains(strings.ToLower(e.Project), want) ||
						strings.Contains(strings.ToLower(e.Notes), want)
				}
			},
		},
		{
			Name:     "category",
			Validate: validateString("category"),
			Match: func(p Predicate, _ core.Settings) func(core.Entry) bool {
				want := strings.ToLower(p.Value.Str)
				return func(e core.Entry) bool {
					return strings.Contains(strings.ToLower(e.Category), want)
				}
			},
		},
		{
			Name:     "utilization",
			Ranged:   true,
			Validate: validateNumber("utilization"),
			Match: func(p Predicate, s core.Settings) func(core.Entry) bool {
				perDay := s.HoursPerWorkday
				return matchThreshold(p, func(e core.Entry) float64 {
					if perDay <= 0 {
						return 0
					}
					return e.Hours / perDay
				})
			},
		},
		{
			Name:     "value",
			Ranged:   true,
			Validate: validateNumber("value"),
			Match: func(p Predicate, _ core.Settings) func(core.Entry) bool {
				return matchThreshold(p, func(e core.Entry) float64 { return e.Rate })
			},
		},
	}
}

func validateNumber(field string) func(Value) error {
	return func(v Value) error {
		if v.Kind != ValueNumber {
			return fmt.Errorf("%s expects a numeric value", field)
		}
		return nil
	}
}

func validateInt(field string, min, max int) func(Value) error {
	return func(v Value) error {
		if v.Kind != ValueNumber {
			return fmt.Errorf("%s expects a numeric value", field)
		}
		n := int(v.Num)
		if float64(n) != v.Num || n < min || n > max {
			return fmt.Errorf("%s expects an integer between %d and %d", field, min, max)
		}
		return nil
	}
}

func validateString(field string) func(Value) error {
	return func(v Value) error {
		if v.Kind != ValueString {
			return fmt.Errorf("%s expects a quoted string value", field)
		}
		return nil
	}
}

func validateDate(field string) func(Value) error {
	return func(v Value) error {
		if v.Kind != ValueDate {
			return fmt.Errorf("%s expects a date in YYYY-MM-DD form", field)
		}
		return nil
	}
}

// matchNumber matches equality exactly and BETWEEN inclusively.
func matchNumber(p Predicate, get func(core.Entry) float64) func(core.Entry) bool {
	if p.Op == OpBetween {
		lo, hi := p.Value.Num, p.ValueTo.Num
		return func(e core.Entry) bool {
			n := get(e)
			return n >= lo && n <= hi
		}
	}
	want := p.Value.Num
	return func(e core.Entry) bool { return get(e) == want }
}

// matchThreshold treats equality as a minimum threshold: utilization
// and value predicates select entries at or above the given figure,
// while BETWEEN bounds both ends.
func matchThreshold(p Predicate, get func(core.Entry) float64) func(core.Entry) bool {
	if p.Op == OpBetween {
		lo, hi := p.Value.Num, p.ValueTo.Num
		return func(e core.Entry) bool {
			n := get(e)
			return n >= lo && n <= hi
		}
	}
	min := p.Value.Num
	return func(e core.Entry) bool { return get(e) >= min }
}

// dayOf truncates a timestamp to its UTC calendar day, the resolution
// every date comparison uses.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
