package formatter

import (
	"fmt"
	"strings"
)

// FormatShellWelcome renders the banner shown on shell startup.
func FormatShellWelcome(llmMode bool) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(StylePurple.Render("  vitals") + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n\n")
	b.WriteString(StyleDim.Render("  Ask about your sleep, readiness and activity history.") + "\n\n")
	for _, ex := range []string{
		"average sleep score last 30 days",
		"best readiness day since 2024-01-01",
		"total steps from 2024-01-01 to 2024-01-31",
	} {
		b.WriteString("  " + StyleGreen.Render(ex) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  /llm toggles model answering, /help lists commands, /quit exits.") + "\n")
	b.WriteString("  " + ModeBadge(llmMode) + "\n")
	return b.String()
}

// ModeBadge shows which answer path the shell is using.
func ModeBadge(llmMode bool) string {
	if llmMode {
		return StylePurple.Render("● LLM") + Dim(" answers go through the model")
	}
	return StyleGreen.Render("● KEYWORDS") + Dim(" answers use keyword rules")
}

// FormatShellHelp lists shell slash commands.
func FormatShellHelp() string {
	var b strings.Builder
	b.WriteString("\n " + StyleHeader.Render("SHELL COMMANDS") + "\n")
	for _, c := range [][]string{
		{"<question>", "Answer a question"},
		{"/llm", "Toggle model answering"},
		{"/help", "Show this list"},
		{"/quit", "Leave the shell (also /exit, Ctrl+C)"},
	} {
		b.WriteString(fmt.Sprintf("  %-24s %s\n", StyleGreen.Render(c[0]), StyleDim.Render(c[1])))
	}
	return b.String()
}
