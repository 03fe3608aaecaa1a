package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTable_AcceptsCanonicalAndShortNames(t *testing.T) {
	cases := map[string]Table{
		"daily_sleep":      TableSleep,
		"sleep":            TableSleep,
		" Daily_Activity ": TableActivity,
		"activity":         TableActivity,
		"READINESS":        TableReadiness,
		"daily_readiness":  TableReadiness,
	}
	for in, want := range cases {
		got, ok := LookupTable(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

func TestLookupTable_RejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "users", "sqlite_master", "daily_sleep; DROP TABLE daily_sleep"} {
		_, ok := LookupTable(in)
		assert.False(t, ok, in)
	}
}

func TestLookupColumn_Whitelist(t *testing.T) {
	for _, table := range Tables() {
		for _, f := range Fields(table) {
			c, ok := LookupColumn(table, string(f))
			require.True(t, ok, "%s.%s", table, f)
			assert.Equal(t, table, c.Table)
			assert.Equal(t, f, c.Field)
		}
	}

	_, ok := LookupColumn(TableSleep, "nonexistent")
	assert.False(t, ok)
	_, ok = LookupColumn(TableReadiness, "steps")
	assert.False(t, ok, "steps belongs to activity only")
	_, ok = LookupColumn(Table("users"), "score")
	assert.False(t, ok)
}

func TestColumns_EfficiencyIsReal(t *testing.T) {
	c, ok := LookupColumn(TableSleep, "efficiency")
	require.True(t, ok)
	assert.Equal(t, KindReal, c.Kind)
	assert.Equal(t, "daily_sleep.efficiency", c.Qualified())
	assert.Equal(t, "sleep efficiency", c.Label())
}

func TestIsValidOperation(t *testing.T) {
	for _, op := range Operations() {
		assert.True(t, IsValidOperation(op))
	}
	assert.False(t, IsValidOperation("count"))
	assert.False(t, IsValidOperation("AVG"))
}

func TestMetricRow_ValueAndFormat(t *testing.T) {
	row := MetricRow{Table: TableSleep, Day: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, row.SetField(FieldScore, 81))
	require.NoError(t, row.SetField(FieldEfficiency, 0.87))

	v, ok := row.Value(FieldScore)
	require.True(t, ok)
	assert.Equal(t, 81.0, v)
	assert.Equal(t, "81", row.FormatValue(FieldScore))
	assert.Equal(t, "0.87", row.FormatValue(FieldEfficiency))

	_, ok = row.Value(FieldTotalSleepDuration)
	assert.False(t, ok)
	assert.Equal(t, "n/a", row.FormatValue(FieldTotalSleepDuration))

	assert.Error(t, row.SetField(Field("bogus"), 1))
}

func TestDateRange_Strings(t *testing.T) {
	r := Between(time.Date(2024, 1, 1, 15, 4, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, r.StartString())
	assert.Equal(t, "2024-01-01", *r.StartString())
	assert.Equal(t, "2024-01-31", *r.EndString())

	assert.True(t, AllTime().IsUnbounded())
	assert.Nil(t, AllTime().StartString())
}
