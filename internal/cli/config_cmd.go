package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/vitals/internal/cli/formatter"
	"github.com/alexanderramin/vitals/internal/config"
	"github.com/alexanderramin/vitals/internal/llm"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the vitals config file",
	}
	cmd.AddCommand(newConfigInitCmd(app), newConfigShowCmd(app))
	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the config file, asking for settings on a terminal",
		Long: `Write the config file (default ~/.vitals/config.yaml, override with
VITALS_CONFIG). On a terminal a short form asks for the LLM and Oura
settings; otherwise the current effective settings are written as-is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if app.interactive() {
				values := newConfigFormValues(cfg)
				if err := configForm(values).Run(); err != nil {
					return fmt.Errorf("config form: %w", err)
				}
				cfg = values.apply(cfg)
			}
			if err := config.Save(cfg.Path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("✔ Wrote"), cfg.Path)
			return nil
		},
	}
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatConfig(app.Config.Redacted()))
			return nil
		},
	}
}

// configFormValues holds form state as strings, the way huh binds inputs.
type configFormValues struct {
	llmEnabled bool
	provider   string
	model      string
	apiKey     string
	ouraToken  string
	dbPath     string
}

func newConfigFormValues(cfg config.Config) *configFormValues {
	return &configFormValues{
		llmEnabled: cfg.LLM.Enabled,
		provider:   string(cfg.LLM.Provider),
		model:      cfg.LLM.Model,
		apiKey:     cfg.LLM.APIKey,
		ouraToken:  cfg.Oura.Token,
		dbPath:     cfg.DBPath,
	}
}

// apply copies the form answers onto cfg. Blank answers keep the current
// value; a provider change moves default endpoint and model along.
func (v *configFormValues) apply(cfg config.Config) config.Config {
	cfg.LLM.Enabled = v.llmEnabled
	if p := strings.TrimSpace(v.provider); p != "" {
		cfg.LLM.SetProvider(llm.Provider(p))
	}
	if m := strings.TrimSpace(v.model); m != "" {
		cfg.LLM.Model = m
	}
	cfg.LLM.APIKey = strings.TrimSpace(v.apiKey)
	cfg.Oura.Token = strings.TrimSpace(v.ouraToken)
	if p := strings.TrimSpace(v.dbPath); p != "" {
		cfg.DBPath = p
	}
	return cfg
}

func configForm(v *configFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Oura personal access token").
				Description("cloud.ouraring.com → Personal Access Tokens").
				EchoMode(huh.EchoModePassword).
				Value(&v.ouraToken),
			huh.NewInput().
				Title("Database path").
				Value(&v.dbPath),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Answer questions with a language model (--llm)?").
				Affirmative("Yes").
				Negative("No").
				Value(&v.llmEnabled),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Provider").
				Options(
					huh.NewOption("OpenAI-compatible chat completions", string(llm.ProviderOpenAI)),
					huh.NewOption("Ollama (local)", string(llm.ProviderOllama)),
				).
				Value(&v.provider),
			huh.NewInput().
				Title("Model").
				Placeholder("gpt-4o-mini").
				Value(&v.model),
			huh.NewInput().
				Title("API key (blank for Ollama)").
				EchoMode(huh.EchoModePassword).
				Value(&v.apiKey),
		).WithHideFunc(func() bool { return !v.llmEnabled }),
	).WithTheme(vitalsHuhTheme()).WithShowHelp(false)
}

func vitalsHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
