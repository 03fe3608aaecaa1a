package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type pingMsg struct{}

// counter counts pings and key presses; enter fans out into two pings.
type counter struct {
	pings, keys int
	width       int
}

func (c counter) Init() tea.Cmd {
	return func() tea.Msg { return pingMsg{} }
}

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ping := func() tea.Msg { return pingMsg{} }
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case pingMsg:
		c.pings++
	case tea.KeyMsg:
		c.keys++
		switch msg.Type {
		case tea.KeyEnter:
			return c, tea.Sequence(ping, tea.Batch(ping, nil))
		case tea.KeyCtrlC:
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c counter) View() string { return "" }

func TestDriver_DrainsInitAndNestedCommands(t *testing.T) {
	d := New(t, counter{}, WithSize(80, 24))
	d.DrainInit()
	assert.Equal(t, 80, d.Model.(counter).width)
	assert.Equal(t, 1, d.Model.(counter).pings)

	d.PressEnter()
	assert.Equal(t, 3, d.Model.(counter).pings)
	assert.Equal(t, 1, d.Model.(counter).keys)
}

func TestDriver_QuitStopsSends(t *testing.T) {
	d := New(t, counter{})
	d.Type("ab")
	d.PressCtrlC()
	assert.True(t, d.Quitting)

	d.PressEnter()
	assert.Equal(t, 3, d.Model.(counter).keys)
}

func TestDriver_SkipDropsMessages(t *testing.T) {
	d := New(t, counter{}, WithSkip(func(msg tea.Msg) bool {
		_, ok := msg.(pingMsg)
		return ok
	}))
	d.DrainInit()
	d.PressEnter()
	assert.Zero(t, d.Model.(counter).pings)
}
