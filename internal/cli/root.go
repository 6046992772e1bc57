// Package cli wires the command line surface: the interactive TUI by
// default, plus one-shot subcommands for scripting.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/reportr/internal/config"
	"github.com/sadopc/reportr/internal/log"
	"github.com/sadopc/reportr/internal/report"
	"github.com/sadopc/reportr/internal/store"
	"github.com/sadopc/reportr/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "reportr",
	Short: "Query-driven time reports in the terminal",
	Long: `reportr turns a database of tracked hours into reports through a
small query language.

Run without arguments to open the interactive TUI. Type a query,
press ctrl+r, and the report updates in place:

  WHERE project = "acme" SHOW date, hours, invoiced VIEW table
  PERIOD last-6-months CHART trend VIEW chart
  WHERE year = 2024 AND month = 3 VIEW full SIZE detailed

The same queries work one-shot via "reportr run".`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads the config and opens the database for one-shot commands.
// The caller closes the returned store.
func setup() (*config.Config, *store.Store, *report.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, nil, nil, err
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}

	logger := log.New(log.DefaultConfig())
	engine := report.New(s, cfg.Settings, nil, logger.WithComponent("report"))
	return cfg, s, engine, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The TUI owns the terminal, so engine logs go to a file or nowhere.
	logger := log.Discard()
	if cfg.LogFile != "" {
		handler, closer, err := log.FileHandler(cfg.LogFile, slog.LevelDebug)
		if err != nil {
			return err
		}
		defer closer.Close()
		logger = log.New(log.Config{Component: "reportr", Handler: handler})
		log.SetDefault(logger)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return err
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	engine := report.New(s, cfg.Settings, nil, logger.WithComponent("report"))

	app := tui.NewApp(s, engine, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
