package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/dustin/go-humanize"
)

// FormatDays renders stored rows of one table, oldest first.
func FormatDays(table domain.Table, days int, rows []domain.MetricRow) string {
	title := fmt.Sprintf("%s · last %d days", table.Metric(), days)
	if len(rows) == 0 {
		return Header(title) + "\n" + Dim(fmt.Sprintf("No stored days for %s. Run 'vitals sync' first.", table)) + "\n"
	}

	fields := domain.Fields(table)
	headers := []string{"DAY"}
	align := []Align{AlignLeft}
	for _, f := range fields {
		headers = append(headers, strings.ToUpper(strings.ReplaceAll(string(f), "_", " ")))
		align = append(align, AlignRight)
	}

	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := []string{row.Day.Format(domain.DayLayout)}
		for _, f := range fields {
			cells = append(cells, FormatField(row, f))
		}
		body = append(body, cells)
	}

	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n")
	b.WriteString(RenderTable(headers, body, align...))
	b.WriteString(Dim(fmt.Sprintf("%d of %d days stored", len(rows), days)))
	b.WriteString("\n")
	return b.String()
}

// FormatField renders one value for display: scores as bars, durations as
// hours and minutes, efficiency as a percentage and counts with separators.
func FormatField(row domain.MetricRow, f domain.Field) string {
	v, ok := row.Value(f)
	if !ok {
		return Dim("–")
	}
	switch f {
	case domain.FieldScore:
		return RenderScoreBar(int(v), 10)
	case domain.FieldTotalSleepDuration:
		return FormatMinutes(int(v))
	case domain.FieldEfficiency:
		return FormatPercent(v)
	default:
		return humanize.Comma(int64(v))
	}
}
