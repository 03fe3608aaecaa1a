package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/dustin/go-humanize"
)

// FormatSyncRun renders the outcome of one sync.
func FormatSyncRun(run *domain.SyncRun) string {
	window := RangeLabel(run.Window.StartString(), run.Window.EndString())
	took := run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)
	if run.Status == domain.SyncFailed {
		return StyleRed.Render("✖ Sync failed") + Dim(" ("+window+")") + "\n  " + run.Error + "\n"
	}
	return fmt.Sprintf("%s %s %s\n",
		StyleGreen.Render("✔ Synced"),
		Bold(humanize.Comma(int64(run.RowsWritten))+" rows"),
		Dim(fmt.Sprintf("(%s, %s)", window, took)))
}

// FormatSyncRuns renders the sync history, newest first. now anchors the
// relative timestamps.
func FormatSyncRuns(runs []*domain.SyncRun, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No syncs recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		status := StyleGreen.Render("ok")
		if r.Status == domain.SyncFailed {
			status = StyleRed.Render("failed")
		}
		rows = append(rows, []string{
			humanize.RelTime(r.StartedAt, now, "ago", "from now"),
			RangeLabel(r.Window.StartString(), r.Window.EndString()),
			humanize.Comma(int64(r.RowsWritten)),
			status,
			truncate(r.Error, 48),
		})
	}
	return RenderTable([]string{"WHEN", "WINDOW", "ROWS", "STATUS", "ERROR"}, rows,
		AlignLeft, AlignLeft, AlignRight)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
