package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_MapsFieldsOntoRows(t *testing.T) {
	schema := &ImportSchema{Rows: []RowImport{
		{Table: "sleep", Day: "2024-01-01", Score: ptrInt(81), TotalSleepDurationMinutes: ptrInt(452), Efficiency: ptrFloat(0.91)},
		{Table: "daily_activity", Day: "2024-01-02", Steps: ptrInt(9100)},
	}}

	rows, err := Convert(schema)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	sleep := rows[0]
	assert.Equal(t, domain.TableSleep, sleep.Table)
	assert.Equal(t, "2024-01-01", sleep.Day.Format(domain.DayLayout))
	assert.Equal(t, "81", sleep.FormatValue(domain.FieldScore))
	assert.Equal(t, "452", sleep.FormatValue(domain.FieldTotalSleepDuration))
	assert.Equal(t, "0.91", sleep.FormatValue(domain.FieldEfficiency))

	activity := rows[1]
	assert.Equal(t, domain.TableActivity, activity.Table)
	assert.Nil(t, activity.Score)
	assert.Nil(t, activity.CaloriesTotal)
	require.NotNil(t, activity.Steps)
	assert.Equal(t, 9100, *activity.Steps)
}

func TestConvert_RejectsUnparseableDay(t *testing.T) {
	_, err := Convert(&ImportSchema{Rows: []RowImport{{Table: "sleep", Day: "yesterday", Score: ptrInt(1)}}})
	assert.Error(t, err)
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backfill.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeFile(t, `{"source":"manual","rows":[
		{"table":"readiness","day":"2024-02-01","score":88},
		{"table":"sleep","day":"2024-02-01","efficiency":0.9}
	]}`)

	rows, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.TableReadiness, rows[0].Table)
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	path := writeFile(t, `{"rows":[
		{"table":"sleep","day":"2024-02-01","score":180},
		{"table":"mood","day":"2024-02-01","score":3}
	]}`)

	_, err := Load(path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errs, 2)
	assert.Contains(t, err.Error(), "import file has 2 problem(s):")
}

func TestLoad_UnknownKeyIsParseError(t *testing.T) {
	path := writeFile(t, `{"rows":[{"table":"sleep","day":"2024-02-01","scroe":80}]}`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing import file")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
