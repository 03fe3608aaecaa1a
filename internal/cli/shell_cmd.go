package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newShellCmd(app *App) *cobra.Command {
	var useLLM bool
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive question prompt",
		Long: `Start an interactive prompt. Each line is answered like 'vitals ask';
/llm switches between keyword rules and the language model.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(commandContext(cmd), app, useLLM)
		},
	}
	cmd.Flags().BoolVar(&useLLM, "llm", false, "start with model answering on")
	return cmd
}

func runShell(ctx context.Context, app *App, useLLM bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	m := newShellModel(ctx, app, useLLM && app.Config.LLM.Enabled)
	m.history = loadShellHistory()
	m.historyIdx = len(m.history)
	m.saveHistory = appendShellHistory

	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}
