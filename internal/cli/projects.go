package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects found in the database",
	Long: `List the distinct project names in the database, together with the
rate, budget and billing mode configured for each (if any).`,
	RunE: runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, args []string) error {
	cfg, s, _, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	names, err := s.ListProjects(cmd.Context())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No entries yet.")
		return nil
	}

	for _, name := range names {
		pc, ok := cfg.Settings.ProjectByName(name)
		if !ok {
			fmt.Println(name)
			continue
		}
		fmt.Printf("%-20s %s%.2f/h  budget %.0fh  %s\n",
			name, cfg.Settings.CurrencySymbol, pc.HourlyRate, pc.BudgetHours, pc.Billing)
	}
	return nil
}
