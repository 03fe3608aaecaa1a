package formatter

import (
	"fmt"

	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/dustin/go-humanize"
)

// FormatImport renders the outcome of a backfill.
func FormatImport(rows int, window domain.DateRange, dryRun bool) string {
	label := StyleGreen.Render("✔ Imported")
	if dryRun {
		label = StyleYellow.Render("✔ Valid")
	}
	return fmt.Sprintf("%s %s %s\n",
		label,
		Bold(humanize.Comma(int64(rows))+" "+pluralRows(rows)),
		Dim("("+RangeLabel(window.StartString(), window.EndString())+")"))
}

func pluralRows(n int) string {
	if n == 1 {
		return "row"
	}
	return "rows"
}
