package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import entries from a CSV file",
	Long: `Import time entries from a CSV file.

The expected columns are date, hours, rate, project, client, category
and notes; only the first four are required. A header row is detected
and skipped. The import is transactional: nothing is written unless
every row parses.

Example:
  reportr import hours.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	_, s, _, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.ImportCSV(cmd.Context(), f)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d entries from %s\n", n, args[0])
	return nil
}
