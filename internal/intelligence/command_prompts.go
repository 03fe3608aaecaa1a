package intelligence

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/vitals/internal/domain"
)

// commandExample is one worked question -> command pair shown to the model.
type commandExample struct {
	question string
	command  string
}

var commandExamples = []commandExample{
	{
		question: "What was my average sleep score last week?",
		command:  `{"operation":"avg","table":"daily_sleep","field":"score","start_date":"2024-03-08","end_date":"2024-03-15"}`,
	},
	{
		question: "How many steps did I take in January 2024?",
		command:  `{"operation":"sum","table":"daily_activity","field":"steps","start_date":"2024-01-01","end_date":"2024-01-31"}`,
	},
	{
		question: "Which day had my highest readiness?",
		command:  `{"operation":"max","table":"daily_readiness","field":"score","start_date":null,"end_date":null}`,
	},
	{
		question: "What was my lowest sleep efficiency since 2024-02-01?",
		command:  `{"operation":"min","table":"daily_sleep","field":"efficiency","start_date":"2024-02-01","end_date":"2024-03-15"}`,
	},
}

// commandSystemPrompt is built once from the whitelist so the prompt and the
// validator can never disagree about what exists.
var commandSystemPrompt = buildCommandSystemPrompt()

func buildCommandSystemPrompt() string {
	var b strings.Builder
	b.WriteString(`You translate questions about a person's wearable health data into a single query command.

You must output ONLY a JSON object with these exact fields:
- operation: one of [`)
	ops := make([]string, 0, 4)
	for _, op := range domain.Operations() {
		ops = append(ops, string(op))
	}
	b.WriteString(strings.Join(ops, ", "))
	b.WriteString(`]
- table: one of the tables below
- field: a field of that table
- start_date: "YYYY-MM-DD" or null (inclusive)
- end_date: "YYYY-MM-DD" or null (inclusive)

Tables and fields:
`)
	for _, t := range domain.Tables() {
		fields := make([]string, 0, 3)
		for _, f := range domain.Fields(t) {
			fields = append(fields, string(f))
		}
		fmt.Fprintf(&b, "- %s: %s\n", t, strings.Join(fields, ", "))
	}
	b.WriteString(`
Field notes: score is 0-100; total_sleep_duration_minutes is minutes asleep; efficiency is a 0-1 fraction.
Use max/min for "best"/"worst"/"highest"/"lowest" questions and avg or sum for totals and averages.
Resolve relative dates ("last week", "this month") against the date given as Today.
Use null dates when the question covers all history.

Examples (Today: 2024-03-15):
`)
	for _, ex := range commandExamples {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", ex.question, ex.command)
	}
	b.WriteString(`
Output ONLY the JSON object, no markdown, no explanation.`)
	return b.String()
}

// buildCommandUserPrompt prefixes the question with today's date.
func buildCommandUserPrompt(question string, today time.Time) string {
	return fmt.Sprintf("Today: %s\nQuestion: %s", today.Format(domain.DayLayout), strings.TrimSpace(question))
}
