package query

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/vitals/internal/domain"
)

var (
	isoDatePattern = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	sincePattern   = regexp.MustCompile(`\bsince\s+(\d{4}-\d{2}-\d{2})\b`)
	lastNPattern   = regexp.MustCompile(`\blast\s+(\d+)\s+(days?|weeks?|months?)\b`)
)

// unitDays is fixed: a month is always 30 days.
var unitDays = map[string]int{
	"day":   1,
	"week":  7,
	"month": 30,
}

// ExtractDateRange pulls an inclusive day window out of free text. It never
// fails: text without a recognizable window, or with a date token that is not
// a real calendar date, yields the unbounded range.
//
// First match wins:
//   - two or more dates: the first two are start and end
//   - "since DATE": DATE through today
//   - exactly one date: that single day
//   - "last N days|weeks|months": N units back from today through today
func ExtractDateRange(text string, today time.Time) domain.DateRange {
	text = strings.ToLower(text)
	today = domain.TruncateDay(today)

	tokens := isoDatePattern.FindAllString(text, -1)
	if len(tokens) >= 2 {
		start, err1 := domain.ParseDay(tokens[0])
		end, err2 := domain.ParseDay(tokens[1])
		if err1 != nil || err2 != nil {
			return domain.AllTime()
		}
		return domain.DateRange{Start: &start, End: &end}
	}

	if m := sincePattern.FindStringSubmatch(text); m != nil {
		start, err := domain.ParseDay(m[1])
		if err != nil {
			return domain.AllTime()
		}
		return domain.DateRange{Start: &start, End: &today}
	}

	if len(tokens) == 1 {
		day, err := domain.ParseDay(tokens[0])
		if err != nil {
			return domain.AllTime()
		}
		return domain.SingleDay(day)
	}

	if m := lastNPattern.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return domain.AllTime()
		}
		days := n * unitDays[strings.TrimSuffix(m[2], "s")]
		start := today.AddDate(0, 0, -days)
		return domain.DateRange{Start: &start, End: &today}
	}

	return domain.AllTime()
}
