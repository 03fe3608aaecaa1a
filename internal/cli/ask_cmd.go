package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/vitals/internal/cli/formatter"
	"github.com/alexanderramin/vitals/internal/llm"
	"github.com/alexanderramin/vitals/internal/query"
	"github.com/alexanderramin/vitals/internal/service"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	var (
		useLLM bool
		asJSON bool
		today  dateFlag
	)

	cmd := &cobra.Command{
		Use:   `ask "<question>"`,
		Short: "Answer a question about your stored metrics",
		Long: `Answer a question about stored sleep, readiness and activity data.

By default questions are matched against keyword rules ("average sleep
score last 30 days", "best readiness day", "total steps since 2024-01-01").
With --llm a language model turns the question into a query instead; the
query is checked against the known tables and fields before it runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app.Ask
			if today.set {
				if app.AskAt == nil {
					return errors.New("--today is not available in this build")
				}
				svc = app.AskAt(today.t)
			}

			var stop func()
			if useLLM && !asJSON && app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Asking the model…")
			}
			answer, err := askQuestion(commandContext(cmd), svc, strings.Join(args, " "), useLLM)
			if stop != nil {
				stop()
			}
			if err != nil {
				return explainAskError(err)
			}
			return writeAnswer(cmd.OutOrStdout(), answer, asJSON)
		},
	}

	cmd.Flags().BoolVar(&useLLM, "llm", false, "let the configured language model build the query")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the answer as JSON")
	cmd.Flags().Var(&today, "today", "treat this YYYY-MM-DD date as today for relative ranges")
	return cmd
}

func askQuestion(ctx context.Context, svc service.AskService, question string, useLLM bool) (*query.Answer, error) {
	if useLLM {
		return svc.AnswerLLM(ctx, question)
	}
	return svc.Answer(ctx, question)
}

func writeAnswer(w io.Writer, a *query.Answer, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprint(w, formatter.FormatAnswer(a))
		return err
	}
	out, err := formatter.FormatAnswerJSON(a)
	if err != nil {
		return fmt.Errorf("encoding answer: %w", err)
	}
	_, err = fmt.Fprint(w, out)
	return err
}

// explainAskError adds the setting to change for errors a user can fix.
func explainAskError(err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyQuestion):
		return fmt.Errorf("%w: ask something like \"average sleep score last 30 days\"", err)
	case errors.Is(err, service.ErrFeatureDisabled):
		return fmt.Errorf("%w\nEnable with: VITALS_LLM_ENABLED=true, or run 'vitals config init'", err)
	case errors.Is(err, llm.ErrTimeout):
		return fmt.Errorf("%w (raise VITALS_LLM_TIMEOUT_MS, e.g. 60000)", err)
	default:
		return err
	}
}
