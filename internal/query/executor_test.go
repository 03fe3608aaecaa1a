package query

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/alexanderramin/vitals/internal/repository"
	"github.com/alexanderramin/vitals/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore records every store call and delegates to an inner store.
type countingStore struct {
	inner repository.MetricStore
	calls int
	err   error
}

func (s *countingStore) FilterRange(ctx context.Context, table domain.Table, r domain.DateRange) ([]domain.MetricRow, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.inner.FilterRange(ctx, table, r)
}

func (s *countingStore) Aggregate(ctx context.Context, col domain.Column, op domain.Operation, r domain.DateRange) (*float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.inner.Aggregate(ctx, col, op, r)
}

func (s *countingStore) Extremum(ctx context.Context, col domain.Column, dir domain.Direction, r domain.DateRange) (*domain.MetricRow, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.inner.Extremum(ctx, col, dir, r)
}

func seededExecutor(t *testing.T, rows ...domain.MetricRow) (*Executor, *countingStore) {
	t.Helper()
	sqlStore := repository.NewSQLiteMetricStore(testutil.NewTestDB(t))
	for _, r := range rows {
		require.NoError(t, sqlStore.Upsert(context.Background(), r))
	}
	store := &countingStore{inner: sqlStore}
	return NewExecutor(store), store
}

func ask(t *testing.T, e *Executor, question string) *Answer {
	t.Helper()
	c := Classify(question, ExtractDateRange(question, today))
	a, err := e.ExecuteHeuristic(context.Background(), c)
	require.NoError(t, err)
	return a
}

func TestExecuteHeuristic_AverageSleep(t *testing.T) {
	e, _ := seededExecutor(t,
		testutil.NewSleepRow("2024-01-01", testutil.WithScore(70)),
		testutil.NewSleepRow("2024-01-02", testutil.WithScore(80)),
	)

	a := ask(t, e, "average sleep score")
	assert.Equal(t, "Average sleep score is 75.00.", a.Text)
	assert.Equal(t, "average_sleep", a.Intent)
	assert.Nil(t, a.StartDate)
	assert.Nil(t, a.EndDate)
}

func TestExecuteHeuristic_BestReadiness(t *testing.T) {
	e, _ := seededExecutor(t,
		testutil.NewReadinessRow("2024-01-04", testutil.WithScore(60)),
		testutil.NewReadinessRow("2024-01-05", testutil.WithScore(91)),
	)

	a := ask(t, e, "best readiness day")
	assert.Equal(t, "Best readiness day was 2024-01-05 with a score of 91.", a.Text)
	assert.Equal(t, "best_readiness", a.Intent)

	a = ask(t, e, "worst readiness day")
	assert.Equal(t, "Worst readiness day was 2024-01-04 with a score of 60.", a.Text)
}

func TestExecuteHeuristic_TotalStepsGroupsThousands(t *testing.T) {
	e, _ := seededExecutor(t,
		testutil.NewActivityRow("2024-01-01", testutil.WithSteps(10000)),
		testutil.NewActivityRow("2024-01-02", testutil.WithSteps(2345)),
		testutil.NewActivityRow("2024-04-01", testutil.WithSteps(99999)),
	)

	a := ask(t, e, "total steps from 2024-01-01 to 2024-03-31")
	assert.Equal(t, "Total steps: 12,345.", a.Text)
	assert.Equal(t, "total_steps", a.Intent)
	require.NotNil(t, a.StartDate)
	assert.Equal(t, "2024-01-01", *a.StartDate)
	assert.Equal(t, "2024-03-31", *a.EndDate)
}

func TestExecuteHeuristic_EmptyRange(t *testing.T) {
	e, _ := seededExecutor(t)

	a := ask(t, e, "total steps from 2024-01-01 to 2024-01-31")
	assert.Equal(t, "Total steps: 0.", a.Text)

	for _, q := range []string{
		"average activity from 2024-01-01 to 2024-01-31",
		"best activity from 2024-01-01 to 2024-01-31",
		"worst activity from 2024-01-01 to 2024-01-31",
	} {
		a := ask(t, e, q)
		assert.Equal(t, "No data found for activity score in that range.", a.Text, q)
	}
}

func TestExecuteHeuristic_Help(t *testing.T) {
	e, store := seededExecutor(t)

	a := ask(t, e, "tell me a joke")
	assert.Equal(t, HelpText, a.Text)
	assert.Equal(t, IntentHelp, a.Intent)
	assert.Zero(t, store.calls)
}

func TestExecuteHeuristic_RejectedWindowSkipsStore(t *testing.T) {
	e, store := seededExecutor(t)

	a := ask(t, e, "best sleep 2024-02-01 2024-01-01")
	assert.Equal(t, string(ReasonInvalidRange), a.Intent)
	assert.Contains(t, a.Text, "after end_date")
	assert.Zero(t, store.calls)
}

func TestExecute_GenericRendering(t *testing.T) {
	e, _ := seededExecutor(t,
		testutil.NewSleepRow("2024-01-01", testutil.WithScore(70), testutil.WithEfficiency(0.82)),
		testutil.NewSleepRow("2024-01-05", testutil.WithScore(91), testutil.WithEfficiency(0.9)),
	)
	ctx := context.Background()

	tests := []struct {
		c    Candidate
		want string
	}{
		{Candidate{Operation: "avg", Table: "daily_sleep", Field: "score"}, "avg of daily_sleep.score: 80.50"},
		{Candidate{Operation: "sum", Table: "daily_sleep", Field: "score"}, "sum of daily_sleep.score: 161.00"},
		{Candidate{Operation: "max", Table: "daily_sleep", Field: "score"}, "max of daily_sleep.score: 91 on 2024-01-05"},
		{Candidate{Operation: "min", Table: "daily_sleep", Field: "efficiency"}, "min of daily_sleep.efficiency: 0.82 on 2024-01-01"},
		{Candidate{Operation: "avg", Table: "daily_readiness", Field: "score"}, "No data found for daily_readiness.score in that range."},
		{Candidate{Operation: "sum", Table: "daily_activity", Field: "steps"}, "No data found for daily_activity.steps in that range."},
	}

	for _, tt := range tests {
		v := Validate(tt.c)
		require.True(t, v.Valid())
		a, err := e.Execute(ctx, *v.Command, "llm_query:"+tt.c.JSON())
		require.NoError(t, err)
		assert.Equal(t, tt.want, a.Text)
		assert.Equal(t, "llm_query:"+tt.c.JSON(), a.Intent)
	}
}

func TestExecute_Idempotent(t *testing.T) {
	e, _ := seededExecutor(t,
		testutil.NewActivityRow("2024-01-01", testutil.WithScore(60), testutil.WithSteps(8000)),
		testutil.NewActivityRow("2024-01-02", testutil.WithScore(75), testutil.WithSteps(12000)),
	)
	v := Validate(Candidate{Operation: "max", Table: "activity", Field: "steps",
		StartDate: strPtr("2024-01-01"), EndDate: strPtr("2024-01-31")})
	require.True(t, v.Valid())

	first, err := e.Execute(context.Background(), *v.Command, "x")
	require.NoError(t, err)
	second, err := e.Execute(context.Background(), *v.Command, "x")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "max of daily_activity.steps: 12000 on 2024-01-02", first.Text)
}

func TestExecute_StoreErrorIsWrapped(t *testing.T) {
	boom := errors.New("disk I/O error")
	e := NewExecutor(&countingStore{err: boom})
	v := Validate(Candidate{Operation: "avg", Table: "sleep", Field: "score"})
	require.True(t, v.Valid())

	_, err := e.Execute(context.Background(), *v.Command, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "daily_sleep.score")
}

func TestRenderRejection(t *testing.T) {
	assert.Equal(t,
		`The query referenced an unknown table or field: unknown field "nonexistent" for daily_sleep.`,
		RenderRejection(Rejection{Reason: ReasonUnknownField, Message: `unknown field "nonexistent" for daily_sleep`}))
	assert.Equal(t,
		"The query could not be run: start_date 2024-02-01 is after end_date 2024-01-01.",
		RenderRejection(Rejection{Reason: ReasonInvalidRange, Message: "start_date 2024-02-01 is after end_date 2024-01-01"}))
}
