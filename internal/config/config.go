// Package config loads and persists the reportr configuration:
// defaults, then the YAML file, then environment overrides. A missing
// file is not an error; the defaults are usable as-is.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sadopc/reportr/internal/core"
)

// Config is everything reportr reads at startup. DBPath and LogFile
// may stay empty; callers fall back to their own defaults.
type Config struct {
	DBPath   string
	LogFile  string
	Settings core.Settings

	path string
}

type fileConfig struct {
	CurrencySymbol  string        `yaml:"currency_symbol,omitempty"`
	HoursPerWorkday float64       `yaml:"hours_per_workday,omitempty"`
	DBPath          string        `yaml:"db_path,omitempty"`
	LogFile         string        `yaml:"log_file,omitempty"`
	Projects        []fileProject `yaml:"projects,omitempty"`
}

type fileProject struct {
	Name        string  `yaml:"name"`
	Client      string  `yaml:"client,omitempty"`
	HourlyRate  float64 `yaml:"hourly_rate,omitempty"`
	BudgetHours float64 `yaml:"budget_hours,omitempty"`
	Billing     string  `yaml:"billing,omitempty"`
}

// DefaultPath returns ~/.config/reportr/config.yaml
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "reportr", "config.yaml"), nil
}

// Load reads .env, the config file and the environment, in that order.
// REPORTR_CONFIG moves the file, REPORTR_DB and REPORTR_LOG override
// the paths inside it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("REPORTR_CONFIG")
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
	}

	cfg := &Config{Settings: core.DefaultSettings(), path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run; defaults apply.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.apply(fc)
	}

	if v := os.Getenv("REPORTR_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("REPORTR_LOG"); v != "" {
		cfg.LogFile = v
	}
	return cfg, nil
}

func (c *Config) apply(fc fileConfig) {
	if fc.CurrencySymbol != "" {
		c.Settings.CurrencySymbol = fc.CurrencySymbol
	}
	if fc.HoursPerWorkday > 0 {
		c.Settings.HoursPerWorkday = fc.HoursPerWorkday
	}
	c.DBPath = fc.DBPath
	c.LogFile = fc.LogFile
	for _, p := range fc.Projects {
		billing := core.Billing(p.Billing)
		if billing == "" {
			billing = core.BillingHourly
		}
		c.Settings.Projects = append(c.Settings.Projects, core.ProjectConfig{
			Name:        p.Name,
			Client:      p.Client,
			HourlyRate:  p.HourlyRate,
			BudgetHours: p.BudgetHours,
			Billing:     billing,
		})
	}
}

// Path returns where Save will write.
func (c *Config) Path() string { return c.path }

// Save writes the configuration back as YAML, creating the directory
// if needed. The settings TUI persists edits through this.
func (c *Config) Save() error {
	fc := fileConfig{
		CurrencySymbol:  c.Settings.CurrencySymbol,
		HoursPerWorkday: c.Settings.HoursPerWorkday,
		DBPath:          c.DBPath,
		LogFile:         c.LogFile,
	}
	for _, p := range c.Settings.Projects {
		fc.Projects = append(fc.Projects, fileProject{
			Name:        p.Name,
			Client:      p.Client,
			HourlyRate:  p.HourlyRate,
			BudgetHours: p.BudgetHours,
			Billing:     string(p.Billing),
		})
	}

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the loaded configuration and returns every problem
// at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Settings.HoursPerWorkday <= 0 || c.Settings.HoursPerWorkday > 24 {
		problems = append(problems,
			fmt.Sprintf("invalid hours_per_workday %v: must be between 0 and 24", c.Settings.HoursPerWorkday))
	}
	if c.Settings.CurrencySymbol == "" {
		problems = append(problems, "currency_symbol cannot be empty")
	}

	seen := make(map[string]bool)
	for i, p := range c.Settings.Projects {
		if p.Name == "" {
			problems = append(problems, fmt.Sprintf("project %d: name is required", i+1))
			continue
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			problems = append(problems, fmt.Sprintf("project %q: duplicate name", p.Name))
		}
		seen[key] = true

		switch p.Billing {
		case core.BillingHourly, core.BillingFixed, core.BillingRetainer:
		default:
			problems = append(problems,
				fmt.Sprintf("project %q: invalid billing %q: must be hourly, fixed or retainer", p.Name, p.Billing))
		}
		if p.HourlyRate < 0 {
			problems = append(problems, fmt.Sprintf("project %q: negative hourly_rate", p.Name))
		}
		if p.BudgetHours < 0 {
			problems = append(problems, fmt.Sprintf("project %q: negative budget_hours", p.Name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
