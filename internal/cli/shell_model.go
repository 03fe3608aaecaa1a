package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/vitals/internal/cli/formatter"
	"github.com/alexanderramin/vitals/internal/query"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// answerMsg carries the result of one question back into the update loop.
type answerMsg struct {
	answer *query.Answer
	err    error
}

// shellModel is the bubbletea Model for the interactive prompt. Questions
// run as commands so the spinner keeps turning while the model thinks.
type shellModel struct {
	input   textinput.Model
	spinner spinner.Model
	width   int

	ctx     context.Context
	app     *App
	llmMode bool
	busy    bool

	history     []string
	historyIdx  int
	saveHistory func(string)

	// lastOutput is the most recent printed block, kept for tests.
	lastOutput string
	quitting   bool
}

func newShellModel(ctx context.Context, app *App, llmMode bool) shellModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Placeholder = "average sleep score last 30 days"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return shellModel{
		input:   ti,
		spinner: sp,
		ctx:     ctx,
		app:     app,
		llmMode: llmMode,
	}
}

func (m shellModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.Println(formatter.FormatShellWelcome(m.llmMode)),
	)
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len("vitals ❯ ") - 1
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (msg.Type == tea.KeyCtrlD && m.input.Value() == "") {
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		return m.updatePrompt(msg)

	case answerMsg:
		m.busy = false
		if msg.err != nil {
			return m.print(shellError(explainAskError(msg.err)))
		}
		return m.print(formatter.FormatAnswer(msg.answer))

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}
	if m.busy {
		return "  " + m.spinner.View() + " " + formatter.Dim("thinking…")
	}
	return m.promptPrefix() + m.input.View()
}

func (m shellModel) promptPrefix() string {
	name := formatter.StylePurple.Render("vitals")
	if m.llmMode {
		name += formatter.Dim("(") + formatter.StylePurple.Render("llm") + formatter.Dim(")")
	}
	return name + " " + formatter.Dim("❯") + " "
}

func (m shellModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if line == "" {
			return m, nil
		}
		m.addHistory(line)
		echo := tea.Println(m.promptPrefix() + line)

		if strings.HasPrefix(line, "/") {
			next, cmd := m.handleSlash(line)
			return next, tea.Sequence(echo, cmd)
		}

		m.busy = true
		return m, tea.Sequence(echo, tea.Batch(m.spinner.Tick, m.askCmd(line)))

	case tea.KeyUp:
		m.historyUp()
		return m, nil

	case tea.KeyDown:
		m.historyDown()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m shellModel) handleSlash(line string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case "/quit", "/exit", "/q":
		m.quitting = true
		return m, tea.Quit
	case "/help", "/?":
		return m.print(formatter.FormatShellHelp())
	case "/llm":
		if !m.app.Config.LLM.Enabled {
			return m.print(formatter.StyleYellow.Render("LLM answering is disabled.") +
				formatter.Dim(" Enable with VITALS_LLM_ENABLED=true or 'vitals config init'."))
		}
		m.llmMode = !m.llmMode
		return m.print(formatter.ModeBadge(m.llmMode))
	default:
		return m.print(shellError(unknownSlashError(line)))
	}
}

// askCmd captures the question and mode now; the model value may change
// before the command runs.
func (m shellModel) askCmd(question string) tea.Cmd {
	ctx, svc, useLLM := m.ctx, m.app.Ask, m.llmMode
	return func() tea.Msg {
		a, err := askQuestion(ctx, svc, question, useLLM)
		return answerMsg{answer: a, err: err}
	}
}

func (m shellModel) print(output string) (tea.Model, tea.Cmd) {
	m.lastOutput = output
	return m, tea.Println(output)
}

func (m *shellModel) addHistory(line string) {
	m.history = append(m.history, line)
	m.historyIdx = len(m.history)
	if m.saveHistory != nil {
		m.saveHistory(line)
	}
}

func (m *shellModel) historyUp() {
	if m.historyIdx > 0 {
		m.historyIdx--
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
	}
}

func (m *shellModel) historyDown() {
	if m.historyIdx < len(m.history)-1 {
		m.historyIdx++
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
		return
	}
	m.historyIdx = len(m.history)
	m.input.Reset()
}

func shellError(err error) string {
	return formatter.StyleRed.Render("Error: ") + err.Error()
}

type unknownSlashError string

func (e unknownSlashError) Error() string {
	return "unknown command " + strings.Fields(string(e))[0] + " (try /help)"
}
