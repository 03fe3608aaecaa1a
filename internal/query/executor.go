package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/alexanderramin/vitals/internal/repository"
	"github.com/dustin/go-humanize"
)

// Result is the raw outcome of a command: Value for avg/sum, Row for
// max/min. Both nil means there was no data in range.
type Result struct {
	Value *float64
	Row   *domain.MetricRow
}

func (r Result) Empty() bool { return r.Value == nil && r.Row == nil }

// Executor runs validated commands against the metric store and renders
// answers. It only reads.
type Executor struct {
	store repository.MetricStore
}

func NewExecutor(store repository.MetricStore) *Executor {
	return &Executor{store: store}
}

// Run executes cmd and returns the raw result.
func (e *Executor) Run(ctx context.Context, cmd Command) (Result, error) {
	switch cmd.Operation {
	case domain.OpAvg, domain.OpSum:
		v, err := e.store.Aggregate(ctx, cmd.Column, cmd.Operation, cmd.Range)
		if err != nil {
			return Result{}, fmt.Errorf("running %s of %s: %w", cmd.Operation, cmd.Column.Qualified(), err)
		}
		return Result{Value: v}, nil
	case domain.OpMax, domain.OpMin:
		dir := domain.Descending
		if cmd.Operation == domain.OpMin {
			dir = domain.Ascending
		}
		row, err := e.store.Extremum(ctx, cmd.Column, dir, cmd.Range)
		if err != nil {
			return Result{}, fmt.Errorf("running %s of %s: %w", cmd.Operation, cmd.Column.Qualified(), err)
		}
		return Result{Row: row}, nil
	default:
		return Result{}, fmt.Errorf("%q: %w", cmd.Operation, repository.ErrUnsupportedOperation)
	}
}

// Execute runs cmd and renders it in the generic "<op> of <table>.<field>"
// form used for model-produced commands.
func (e *Executor) Execute(ctx context.Context, cmd Command, intent string) (*Answer, error) {
	res, err := e.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return newAnswer(RenderGeneric(cmd, res), intent, cmd.Range), nil
}

// ExecuteHeuristic answers a classification in the heuristic phrasing.
func (e *Executor) ExecuteHeuristic(ctx context.Context, c Classification) (*Answer, error) {
	switch {
	case c.IsHelp():
		return &Answer{Text: HelpText, Intent: IntentHelp}, nil
	case c.Rejection != nil:
		return &Answer{Text: RenderRejection(*c.Rejection), Intent: string(c.Rejection.Reason)}, nil
	case c.Command == nil:
		return nil, fmt.Errorf("classification %q has no command", c.Intent)
	}

	res, err := e.Run(ctx, *c.Command)
	if err != nil {
		return nil, err
	}
	return newAnswer(RenderHeuristic(c.Intent, *c.Command, res), c.Intent, c.Command.Range), nil
}

func newAnswer(text, intent string, r domain.DateRange) *Answer {
	return &Answer{Text: text, Intent: intent, StartDate: r.StartString(), EndDate: r.EndString()}
}

// RenderGeneric renders "avg of daily_sleep.score: 75.00" or
// "max of daily_sleep.score: 91 on 2024-01-05".
func RenderGeneric(cmd Command, res Result) string {
	if res.Empty() {
		return fmt.Sprintf("No data found for %s in that range.", cmd.Column.Qualified())
	}
	if res.Row != nil {
		return fmt.Sprintf("%s of %s: %s on %s",
			cmd.Operation, cmd.Column.Qualified(),
			res.Row.FormatValue(cmd.Column.Field), res.Row.Day.Format(domain.DayLayout))
	}
	return fmt.Sprintf("%s of %s: %.2f", cmd.Operation, cmd.Column.Qualified(), *res.Value)
}

// RenderHeuristic renders a result in sentence form for a heuristic intent.
func RenderHeuristic(intent string, cmd Command, res Result) string {
	if intent == "total_steps" {
		var total int64
		if res.Value != nil {
			total = int64(*res.Value)
		}
		return fmt.Sprintf("Total steps: %s.", humanize.Comma(total))
	}
	if res.Empty() {
		return fmt.Sprintf("No data found for %s in that range.", cmd.Column.Label())
	}

	if res.Row != nil {
		word := "Best"
		if cmd.Operation == domain.OpMin {
			word = "Worst"
		}
		return fmt.Sprintf("%s %s day was %s with a %s of %s.",
			word, cmd.Column.Table.Metric(), res.Row.Day.Format(domain.DayLayout),
			strings.ReplaceAll(string(cmd.Column.Field), "_", " "), res.Row.FormatValue(cmd.Column.Field))
	}
	return fmt.Sprintf("Average %s is %.2f.", cmd.Column.Label(), *res.Value)
}

// RenderRejection describes why a command was refused.
func RenderRejection(r Rejection) string {
	if r.UnknownSchemaReference() {
		return fmt.Sprintf("The query referenced an unknown table or field: %s.", r.Message)
	}
	return fmt.Sprintf("The query could not be run: %s.", r.Message)
}
