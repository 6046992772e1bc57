package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/reportr/internal/export"
	"github.com/sadopc/reportr/internal/query"
)

var exportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Run a query and export the result to a file",
	Long: `Run a query and write the result to a CSV or JSON file.

CSV holds the filtered entries in the import column layout; JSON holds
the full report including monthly, trend and summary aggregates.

Examples:
  reportr export --out acme.csv 'WHERE project = "acme"'
  reportr export --format json --out report.json 'PERIOD last-12-months'`,
	RunE: runExportCmd,
}

// Flags
var (
	exportFormat string
	exportOut    string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (default reportr-export-<date>.<format>)")
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("unknown format %q, want csv or json", exportFormat)
	}

	_, s, engine, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	q, err := query.Compile(strings.Join(args, " "), nil)
	if err != nil {
		return err
	}

	data, err := engine.Execute(cmd.Context(), q)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = defaultExportName(exportFormat, time.Now())
	}

	if exportFormat == "csv" {
		err = export.ToCSV(data, out)
	} else {
		err = export.ToJSON(data, out)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d entries to %s\n", len(data.Entries), out)
	return nil
}

func defaultExportName(format string, now time.Time) string {
	return fmt.Sprintf("reportr-export-%s.%s", now.Format("2006-01-02"), format)
}
