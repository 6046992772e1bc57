package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/reportr/internal/query"
	"github.com/sadopc/reportr/internal/render"
)

var runCmd = &cobra.Command{
	Use:   "run [query]",
	Short: "Run a query and print the report",
	Long: `Run a single query and print the rendered report to stdout.

The query comes from the arguments, from a file via --file, or from
stdin when the argument is "-". An empty query renders the default
summary for the current year.

Examples:
  reportr run 'WHERE project = "acme" VIEW table'
  reportr run 'PERIOD last-6-months CHART trend VIEW chart'
  reportr run --file monthly.rpt
  echo 'VIEW full SIZE detailed' | reportr run -`,
	RunE: runRun,
}

// Flags
var (
	runFile  string
	runWidth int
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "Read the query from a file")
	runCmd.Flags().IntVar(&runWidth, "width", 100, "Render width in columns")
}

func runRun(cmd *cobra.Command, args []string) error {
	text, err := queryText(args)
	if err != nil {
		return err
	}

	cfg, s, engine, err := setup()
	if err != nil {
		return err
	}
	defer s.Close()

	q, err := query.Compile(text, nil)
	if err != nil {
		return err
	}

	data, err := engine.Execute(cmd.Context(), q)
	if err != nil {
		return err
	}

	renderer := render.New(cfg.Settings)
	renderer.SetWidth(runWidth)
	fmt.Println(renderer.Render(q, data))
	return nil
}

func queryText(args []string) (string, error) {
	if runFile != "" {
		b, err := os.ReadFile(runFile)
		if err != nil {
			return "", fmt.Errorf("read query file: %w", err)
		}
		return string(b), nil
	}
	if len(args) == 1 && args[0] == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	return strings.Join(args, " "), nil
}
