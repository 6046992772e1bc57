package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/reportr/internal/core"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a time entry",
	Long: `Add a single time entry to the database.

When --rate or --client are omitted they default to the values
configured for the project, if any.

Examples:
  reportr add --project acme --hours 7.5
  reportr add --date 2024-03-04 --project acme --hours 8 --rate 85 --notes "sprint review"`,
	RunE: runAdd,
}

// Flags
var (
	addDate     string
	addHours    float64
	addRate     float64
	addProject  string
	addClient   string
	addCategory string
	addNotes    string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addDate, "date", "", "Entry date (YYYY-MM-DD, default today)")
	addCmd.Flags().Float64Var(&addHours, "hours", 0, "Hours worked")
	addCmd.Flags().Float64Var(&addRate, "rate", 0, "Hourly rate")
	addCmd.Flags().StringVarP(&addProject, "project", "p", "", "Project name")
	addCmd.Flags().StringVar(&addClient, "client", "", "Client name")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Free-form notes")
	addCmd.MarkFlagRequired("project")
	addCmd.MarkFlagRequired("hours")
}

func runAdd(cmd *cobra.Command, args []string) error {
	date := time.Now()
	if addDate != "" {
		var err error
		date, err = time.Parse("2006-01-02", addDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", addDate)
		}
	}

	cfg, s, _, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	rate := addRate
	client := addClient
	if pc, ok := cfg.Settings.ProjectByName(addProject); ok {
		if rate == 0 {
			rate = pc.HourlyRate
		}
		if client == "" {
			client = pc.Client
		}
	}

	id, err := s.Add(cmd.Context(), core.Entry{
		Date:     date,
		Hours:    addHours,
		Rate:     rate,
		Project:  addProject,
		Client:   client,
		Category: addCategory,
		Notes:    addNotes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added entry %d: %.1fh on %s for %s\n", id, addHours, date.Format("2006-01-02"), addProject)
	return nil
}
