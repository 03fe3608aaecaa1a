package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/vitals/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	var (
		days    int
		history bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull recent daily metrics from the Oura API",
		Long: `Fetch daily sleep, activity and readiness for the last --days days
(today included) and store them, replacing any rows already stored for
those days. Every run is recorded; --history lists recent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			if history {
				runs, err := app.Sync.RecentRuns(ctx, 10)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatSyncRuns(runs, app.now()))
				return nil
			}

			if app.Config.Oura.Token == "" {
				return errors.New("no Oura token configured\nSet VITALS_OURA_TOKEN, or run 'vitals config init'")
			}

			var stop func()
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Syncing %d days…", days))
			}
			run, err := app.Sync.Sync(ctx, days)
			if stop != nil {
				stop()
			}
			if run != nil {
				fmt.Fprint(out, formatter.FormatSyncRun(run))
			}
			return err
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "number of days to fetch, today included")
	cmd.Flags().BoolVar(&history, "history", false, "list recent sync runs instead of syncing")
	return cmd
}
