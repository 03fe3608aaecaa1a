package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/vitals/internal/config"
	"github.com/alexanderramin/vitals/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Config config.Config

	Ask  service.AskService
	Sync service.SyncService
	Days service.DaysService

	Import service.ImportService

	// AskAt builds an AskService that treats today as the current date.
	// Used by --today; nil disables the flag.
	AskAt func(today time.Time) service.AskService

	// Verbose switches on use-case and LLM call logging.
	Verbose *VerboseObserver

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// Now is the wall clock; nil means time.Now.
	Now func() time.Time

	Version string
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "vitals" command. With no arguments on a
// terminal it opens the shell.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "vitals",
		Short:         "Ask questions about your sleep, readiness and activity history",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose && app.Verbose != nil {
				app.Verbose.Enable()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runShell(cmd.Context(), app, false)
			}
			return cmd.Help()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log service and LLM calls to stderr")

	root.AddCommand(
		newAskCmd(app),
		newShellCmd(app),
		newSyncCmd(app),
		newDaysCmd(app),
		newImportCmd(app),
		newConfigCmd(app),
		newMCPCmd(app),
	)
	return root
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
