package cli

import (
	"fmt"

	"github.com/alexanderramin/vitals/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Backfill daily metrics from a JSON file",
		Long: `Load daily rows from a JSON file of the form

  {"rows": [{"table": "sleep", "day": "2024-01-01", "score": 81}, ...]}

The whole file is validated first and every problem is reported. Rows are
then written in one transaction, replacing rows already stored for the
same table and day.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.Import(commandContext(cmd), args[0], dryRun)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImport(res.RowsWritten, res.Window, res.DryRun))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without writing")
	return cmd
}
