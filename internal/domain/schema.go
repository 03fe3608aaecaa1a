package domain

import "strings"

type Table string

const (
	TableSleep     Table = "daily_sleep"
	TableActivity  Table = "daily_activity"
	TableReadiness Table = "daily_readiness"
)

type Field string

const (
	FieldScore              Field = "score"
	FieldTotalSleepDuration Field = "total_sleep_duration_minutes"
	FieldEfficiency         Field = "efficiency"
	FieldSteps              Field = "steps"
	FieldCaloriesTotal      Field = "calories_total"
)

type Operation string

const (
	OpAvg Operation = "avg"
	OpSum Operation = "sum"
	OpMax Operation = "max"
	OpMin Operation = "min"
)

// Direction orders rows for an extremum lookup.
type Direction string

const (
	Descending Direction = "desc"
	Ascending  Direction = "asc"
)

type ColumnKind int

const (
	KindInteger ColumnKind = iota
	KindReal
)

// Column describes one whitelisted scalar column. SQL identifiers used by the
// store are taken from here and nowhere else.
type Column struct {
	Table Table
	Field Field
	Kind  ColumnKind
}

// tableOrder and fieldOrder keep prompt and listing output stable.
var tableOrder = []Table{TableSleep, TableActivity, TableReadiness}

var fieldOrder = map[Table][]Field{
	TableSleep:     {FieldScore, FieldTotalSleepDuration, FieldEfficiency},
	TableActivity:  {FieldScore, FieldSteps, FieldCaloriesTotal},
	TableReadiness: {FieldScore},
}

var schema = map[Table]map[Field]Column{
	TableSleep: {
		FieldScore:              {Table: TableSleep, Field: FieldScore, Kind: KindInteger},
		FieldTotalSleepDuration: {Table: TableSleep, Field: FieldTotalSleepDuration, Kind: KindInteger},
		FieldEfficiency:         {Table: TableSleep, Field: FieldEfficiency, Kind: KindReal},
	},
	TableActivity: {
		FieldScore:         {Table: TableActivity, Field: FieldScore, Kind: KindInteger},
		FieldSteps:         {Table: TableActivity, Field: FieldSteps, Kind: KindInteger},
		FieldCaloriesTotal: {Table: TableActivity, Field: FieldCaloriesTotal, Kind: KindInteger},
	},
	TableReadiness: {
		FieldScore: {Table: TableReadiness, Field: FieldScore, Kind: KindInteger},
	},
}

// tableAliases maps the short metric names used in questions and by models
// onto canonical table names.
var tableAliases = map[string]Table{
	"daily_sleep":     TableSleep,
	"sleep":           TableSleep,
	"daily_activity":  TableActivity,
	"activity":        TableActivity,
	"daily_readiness": TableReadiness,
	"readiness":       TableReadiness,
}

var validOperations = map[Operation]bool{
	OpAvg: true, OpSum: true, OpMax: true, OpMin: true,
}

// Tables returns every whitelisted table in display order.
func Tables() []Table {
	out := make([]Table, len(tableOrder))
	copy(out, tableOrder)
	return out
}

// Fields returns the whitelisted fields of t in display order.
func Fields(t Table) []Field {
	fs := fieldOrder[t]
	out := make([]Field, len(fs))
	copy(out, fs)
	return out
}

// Columns returns the whitelisted column descriptors of t in display order.
func Columns(t Table) []Column {
	fs := fieldOrder[t]
	out := make([]Column, 0, len(fs))
	for _, f := range fs {
		out = append(out, schema[t][f])
	}
	return out
}

// LookupTable resolves a table name or alias. Matching ignores case and
// surrounding whitespace.
func LookupTable(name string) (Table, bool) {
	t, ok := tableAliases[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// LookupColumn returns the descriptor for field on table t, if whitelisted.
func LookupColumn(t Table, field string) (Column, bool) {
	fields, ok := schema[t]
	if !ok {
		return Column{}, false
	}
	c, ok := fields[Field(strings.ToLower(strings.TrimSpace(field)))]
	return c, ok
}

// IsValidOperation reports whether op is one of the supported aggregates.
func IsValidOperation(op Operation) bool {
	return validOperations[op]
}

// Operations returns the supported aggregates in display order.
func Operations() []Operation {
	return []Operation{OpAvg, OpSum, OpMax, OpMin}
}

// Metric is the short English name of the table ("sleep", "activity", "readiness").
func (t Table) Metric() string {
	return strings.TrimPrefix(string(t), "daily_")
}

// Qualified renders the column as "<table>.<field>".
func (c Column) Qualified() string {
	return string(c.Table) + "." + string(c.Field)
}

// Label renders the column for sentences, e.g. "sleep score".
func (c Column) Label() string {
	return c.Table.Metric() + " " + strings.ReplaceAll(string(c.Field), "_", " ")
}
