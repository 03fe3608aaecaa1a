package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/vitals/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve vitals to agents over MCP (stdio)",
		Long: `Start a Model Context Protocol server on stdin/stdout.

TOOLS:

  ask        Answer a question with keyword rules
  ask_llm    Answer a question through the language model
  list_days  List stored rows of one metric table

RESOURCES:

  vitals://schema  Tables, fields, operations and keyword intents`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(commandContext(cmd))
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)
			go func() {
				select {
				case <-sigChan:
					cancel()
				case <-ctx.Done():
				}
			}()

			return mcp.NewServer(app.Ask, app.Days, app.Version).Serve(ctx)
		},
	}
}
