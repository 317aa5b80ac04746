// Package cmdline is the one-line command prompt opened with the command key.
package cmdline

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ripple/internal/ui/styles"
)

const historySize = 100

// Model wraps a text input with submit/cancel semantics and a history of
// submitted lines.
type Model struct {
	input   textinput.Model
	active  bool
	history []string
	browse  int // index into history while browsing, len(history) otherwise
	draft   string
}

// New creates a closed command line showing prompt while open.
func New(prompt string) Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.CharLimit = 1024
	ti.PromptStyle = styles.T().S().Key
	ti.TextStyle = styles.T().S().Base
	return Model{input: ti}
}

// Open shows the prompt with prefill as initial text.
func (m *Model) Open(prefill string) tea.Cmd {
	m.active = true
	m.browse = len(m.history)
	m.input.SetValue(prefill)
	m.input.CursorEnd()
	return m.input.Focus()
}

// Close hides the prompt and drops the text.
func (m *Model) Close() {
	m.active = false
	m.input.Blur()
	m.input.SetValue("")
}

// Active reports whether the prompt is open.
func (m Model) Active() bool {
	return m.active
}

// Value returns the current text.
func (m Model) Value() string {
	return m.input.Value()
}

// SetWidth sets the width available to the prompt.
func (m *Model) SetWidth(width int) {
	m.input.Width = max(width-len(m.input.Prompt)-1, 1)
}

// Update handles a message while open. Enter submits, Esc cancels, and
// backspace on an empty line cancels too.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			text := m.input.Value()
			m.remember(text)
			m.Close()
			return m, func() tea.Msg { return ActionMsg(Submit{Text: text}) }
		case "esc", "ctrl+c":
			m.Close()
			return m, func() tea.Msg { return ActionMsg(Cancel{}) }
		case "backspace":
			if m.input.Value() == "" {
				m.Close()
				return m, func() tea.Msg { return ActionMsg(Cancel{}) }
			}
		case "up":
			m.recall(-1)
			return m, nil
		case "down":
			m.recall(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt line, or "" when closed.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	return m.input.View()
}

func (m *Model) remember(text string) {
	if text == "" || (len(m.history) > 0 && m.history[len(m.history)-1] == text) {
		return
	}
	m.history = append(m.history, text)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

// recall steps through history; stepping past the newest entry brings back
// the line being typed.
func (m *Model) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	if m.browse == len(m.history) {
		m.draft = m.input.Value()
	}
	m.browse = min(max(m.browse+step, 0), len(m.history))
	if m.browse == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[m.browse])
	}
	m.input.CursorEnd()
}
