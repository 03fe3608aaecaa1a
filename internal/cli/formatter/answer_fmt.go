package formatter

import (
	"encoding/json"
	"strings"

	"github.com/alexanderramin/vitals/internal/query"
)

// FormatAnswer renders an answer for the terminal: the sentence, then a
// dimmed line with the date window and intent tag. Raw model output is
// shown only for unparseable replies.
func FormatAnswer(a *query.Answer) string {
	var b strings.Builder
	b.WriteString(Bold(a.Text))
	b.WriteString("\n")

	meta := []string{RangeLabel(a.StartDate, a.EndDate)}
	if a.Intent != "" {
		meta = append(meta, "intent "+intentLabel(a.Intent))
	}
	b.WriteString(Dim("  " + strings.Join(meta, " · ")))
	b.WriteString("\n")

	if a.Intent == query.IntentLLMUnparseable && a.Raw != "" {
		b.WriteString(Dim("  model replied: ") + StyleYellow.Render(strings.TrimSpace(a.Raw)))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatAnswerJSON renders the answer as indented JSON for --json.
func FormatAnswerJSON(a *query.Answer) (string, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// RangeLabel renders an inclusive window: "2024-01-01 → 2024-01-31",
// "on 2024-01-05", "since 2024-01-01" or "all time".
func RangeLabel(start, end *string) string {
	switch {
	case start == nil && end == nil:
		return "all time"
	case start != nil && end != nil && *start == *end:
		return "on " + *start
	case start != nil && end != nil:
		return *start + " → " + *end
	case start != nil:
		return "since " + *start
	default:
		return "until " + *end
	}
}

// intentLabel shortens model intents; the embedded command is long and
// already reflected in the answer text.
func intentLabel(intent string) string {
	if strings.HasPrefix(intent, query.IntentLLMQueryPrefix) {
		return "llm_query"
	}
	return intent
}
