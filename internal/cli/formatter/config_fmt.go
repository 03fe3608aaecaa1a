package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/vitals/internal/config"
	"github.com/alexanderramin/vitals/internal/llm"
)

// FormatConfig renders the effective configuration. Pass a redacted copy.
func FormatConfig(cfg config.Config) string {
	var b strings.Builder
	line := func(k, v string) {
		if v == "" {
			v = Dim("(unset)")
		}
		b.WriteString(fmt.Sprintf("  %-14s %s\n", StyleBlue.Render(k), v))
	}

	b.WriteString(Header("config"))
	b.WriteString("\n")
	line("file", cfg.Path)
	line("database", cfg.DBPath)

	b.WriteString("\n" + Bold("llm") + "\n")
	enabled := StyleRed.Render("disabled")
	if cfg.LLM.Enabled {
		enabled = StyleGreen.Render("enabled")
	}
	line("status", enabled)
	line("provider", string(cfg.LLM.Provider))
	line("endpoint", cfg.LLM.Endpoint)
	line("model", cfg.LLM.Model)
	line("api key", cfg.LLM.APIKey)
	line("timeout", fmt.Sprintf("%d ms", cfg.LLM.TaskTimeout(llm.TaskCommand)))
	line("retries", fmt.Sprintf("%d", cfg.LLM.MaxRetries))

	b.WriteString("\n" + Bold("oura") + "\n")
	line("token", cfg.Oura.Token)
	line("endpoint", cfg.Oura.Endpoint)
	return b.String()
}
