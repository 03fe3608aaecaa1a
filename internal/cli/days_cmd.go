package cli

import (
	"fmt"

	"github.com/alexanderramin/vitals/internal/cli/formatter"
	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/spf13/cobra"
)

func newDaysCmd(app *App) *cobra.Command {
	table := tableFlag(domain.TableSleep)
	window := windowFlag(14)

	cmd := &cobra.Command{
		Use:   "days",
		Short: "List stored days for one metric",
		Example: `  vitals days
  vitals days --table activity --last 30d
  vitals days --table readiness --last 2w`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.Days.List(commandContext(cmd), domain.Table(table), int(window))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDays(domain.Table(table), int(window), rows))
			return nil
		},
	}

	cmd.Flags().Var(&table, "table", "sleep, activity or readiness")
	cmd.Flags().Var(&window, "last", "how far back to list, e.g. 14d, 2w, 1m")
	return cmd
}
