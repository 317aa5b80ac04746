// internal/app/update.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ripple/internal/command"
	"github.com/llehouerou/ripple/internal/ui/action"
	"github.com/llehouerou/ripple/internal/ui/cmdline"
	"github.com/llehouerou/ripple/internal/ui/confirm"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case action.Msg:
		return m.handleAction(msg)

	case CommandMsg:
		return m.execute(msg.Commands)

	case ExecDoneMsg:
		return m.handleExecDone(msg), nil

	case PlaybackMessage:
		return m.handlePlaybackMessage(msg)

	case LoadingMessage:
		return m.handleLoadingMessage(msg)
	}

	// Cursor blink and other textinput internals.
	if m.CmdLine.Active() {
		var cmd tea.Cmd
		m.CmdLine, cmd = m.CmdLine.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.Confirm.Active() {
		m.Confirm, cmd = m.Confirm.Update(msg)
		return m, cmd
	}
	if m.CmdLine.Active() {
		m.CmdLine, cmd = m.CmdLine.Update(msg)
		return m, cmd
	}

	key := msg.String()
	switch key {
	case m.CommandKey:
		m.clearMessage()
		return m, m.CmdLine.Open("")
	case "/":
		m.clearMessage()
		return m, m.CmdLine.Open("jump ")
	}

	cmds := m.Keys.Resolve(key)
	if len(cmds) == 0 {
		if key == "ctrl+c" {
			return m.execute([]command.Command{command.Quit{}})
		}
		return m, nil
	}
	m.clearMessage()
	return m.execute(cmds)
}

func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case cmdline.Submit:
		cmds, err := command.Parse(a.Text)
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		return m.execute(cmds)

	case cmdline.Cancel:
		return m, nil

	case confirm.Result:
		if !a.Confirmed {
			return m, nil
		}
		if _, ok := a.Context.(clearQueueContext); ok {
			m.Queue.Clear()
			m.syncLists()
			m.SaveQueueState()
		}
	}
	return m, nil
}
