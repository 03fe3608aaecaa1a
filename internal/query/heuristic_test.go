package query

import (
	"testing"

	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Intents(t *testing.T) {
	tests := []struct {
		question string
		intent   string
		op       domain.Operation
		table    domain.Table
		field    domain.Field
	}{
		{"average sleep score", "average_sleep", domain.OpAvg, domain.TableSleep, domain.FieldScore},
		{"What's my mean readiness?", "average_readiness", domain.OpAvg, domain.TableReadiness, domain.FieldScore},
		{"avg activity score", "average_activity", domain.OpAvg, domain.TableActivity, domain.FieldScore},
		{"total steps from 2024-01-01 to 2024-03-31", "total_steps", domain.OpSum, domain.TableActivity, domain.FieldSteps},
		{"sum of steps", "total_steps", domain.OpSum, domain.TableActivity, domain.FieldSteps},
		{"best sleep", "best_sleep", domain.OpMax, domain.TableSleep, domain.FieldScore},
		{"lowest sleep night", "worst_sleep", domain.OpMin, domain.TableSleep, domain.FieldScore},
		{"best readiness day", "best_readiness", domain.OpMax, domain.TableReadiness, domain.FieldScore},
		{"worst readiness", "worst_readiness", domain.OpMin, domain.TableReadiness, domain.FieldScore},
		{"highest activity day", "best_activity", domain.OpMax, domain.TableActivity, domain.FieldScore},
		{"most steps? max steps", "best_activity", domain.OpMax, domain.TableActivity, domain.FieldScore},
		{"worst activity", "worst_activity", domain.OpMin, domain.TableActivity, domain.FieldScore},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			c := Classify(tt.question, domain.AllTime())
			assert.Equal(t, tt.intent, c.Intent)
			require.NotNil(t, c.Command)
			assert.Equal(t, tt.op, c.Command.Operation)
			assert.Equal(t, tt.table, c.Command.Column.Table)
			assert.Equal(t, tt.field, c.Command.Column.Field)
		})
	}
}

func TestClassify_AverageBeatsBest(t *testing.T) {
	c := Classify("average of my best sleep", domain.AllTime())
	assert.Equal(t, "average_sleep", c.Intent)
}

func TestClassify_AverageBeatsStepsTotal(t *testing.T) {
	c := Classify("average total steps", domain.AllTime())
	assert.Equal(t, "average_activity", c.Intent)
}

func TestClassify_SleepTargetWinsOverReadiness(t *testing.T) {
	c := Classify("best sleep or readiness", domain.AllTime())
	assert.Equal(t, "best_sleep", c.Intent)
}

func TestClassify_BareScoreDefaultsToReadiness(t *testing.T) {
	c := Classify("what was my best score", domain.AllTime())
	assert.Equal(t, "best_readiness", c.Intent)

	c = Classify("average score", domain.AllTime())
	assert.Equal(t, "average_readiness", c.Intent)
}

func TestClassify_Help(t *testing.T) {
	for _, q := range []string{"", "hello there", "how is my heart rate", "sleep"} {
		c := Classify(q, domain.AllTime())
		assert.True(t, c.IsHelp(), q)
		assert.Nil(t, c.Command)
	}
}

func TestClassify_CarriesWindow(t *testing.T) {
	window := ExtractDateRange("from 2024-01-01 to 2024-01-31", today)
	c := Classify("total steps from 2024-01-01 to 2024-01-31", window)
	require.NotNil(t, c.Command)
	assert.Equal(t, "2024-01-01", *c.Command.Range.StartString())
	assert.Equal(t, "2024-01-31", *c.Command.Range.EndString())
}

func TestClassify_ReversedWindowIsRejected(t *testing.T) {
	window := ExtractDateRange("2024-02-01 2024-01-01", today)
	c := Classify("best sleep 2024-02-01 2024-01-01", window)
	assert.Equal(t, "best_sleep", c.Intent)
	assert.Nil(t, c.Command)
	require.NotNil(t, c.Rejection)
	assert.Equal(t, ReasonInvalidRange, c.Rejection.Reason)
}

func TestRuleIntents_Order(t *testing.T) {
	assert.Equal(t, []string{
		"average_sleep", "average_readiness", "average_activity",
		"total_steps",
		"best_sleep", "worst_sleep",
		"best_readiness", "worst_readiness",
		"best_activity", "worst_activity",
	}, RuleIntents())
}
