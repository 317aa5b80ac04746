// internal/app/commands.go
package app

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/ripple/internal/command"
	"github.com/llehouerou/ripple/internal/config"
	"github.com/llehouerou/ripple/internal/errmsg"
	"github.com/llehouerou/ripple/internal/playback"
)

// restartThreshold is how far into a track previous restarts it instead
// of going back.
const restartThreshold = 5 * time.Second

type clearQueueContext struct{}

// execute dispatches cmds in order. Nothing runs after quit or logout.
func (m Model) execute(cmds []command.Command) (Model, tea.Cmd) {
	var batch []tea.Cmd
	for _, c := range cmds {
		batch = append(batch, m.dispatch(c))
		if m.Quitting {
			break
		}
	}
	m.syncLists()
	return m, tea.Batch(batch...)
}

// dispatch offers c to the active view, then applies the default.
func (m *Model) dispatch(c command.Command) tea.Cmd {
	m.Logger.Debug("command", zap.String("command", c.String()))
	if handled, cmd := m.handleInView(c); handled {
		return cmd
	}
	return m.handleDefault(c)
}

//nolint:gocyclo // one case per command
func (m *Model) handleDefault(c command.Command) tea.Cmd {
	switch c := c.(type) {
	case command.Noop:
		return nil

	case command.Quit:
		return m.quit()

	case command.Redraw:
		return tea.ClearScreen

	case command.Stop:
		m.Queue.Stop()

	case command.Previous:
		if m.Controller.Progress() < restartThreshold {
			m.Queue.Previous()
		} else {
			m.Controller.Seek(0)
		}

	case command.Next:
		m.Queue.Next(true)

	case command.Clear:
		if m.Queue.Len() > 0 {
			m.Confirm.Show("Clear queue", fmt.Sprintf("Remove all %d tracks from the queue?", m.Queue.Len()), clearQueueContext{})
		}

	case command.UpdateLibrary:
		m.setMessage("Refreshing starred songs…")
		return m.loadLibrary()

	case command.TogglePlay:
		m.Queue.TogglePlayback()

	case command.Shuffle:
		on := !m.Queue.Shuffle()
		if c.On != nil {
			on = *c.On
		}
		m.Queue.SetShuffle(on)

	case command.Repeat:
		mode := m.Queue.Repeat().Next()
		if c.Mode != nil {
			mode = *c.Mode
		}
		m.Queue.SetRepeat(mode)

	case command.Seek:
		switch d := c.Direction.(type) {
		case command.SeekRelative:
			m.Controller.SeekRelative(d.Millis)
		case command.SeekAbsolute:
			m.Controller.Seek(d.Millis)
		}

	case command.VolumeUp:
		m.Controller.SetVolume(playback.VolumeUp(m.Controller.Volume(), c.Amount))

	case command.VolumeDown:
		m.Controller.SetVolume(playback.VolumeDown(m.Controller.Volume(), c.Amount))

	case command.Help:
		m.pushHelp()

	case command.Search:
		if err := m.focus(config.ScreenSearch); err != nil {
			m.setError(err.Error())
			return nil
		}
		if c.Query == "" {
			return nil
		}
		m.SearchQuery = c.Query
		m.SaveNavigationState()
		m.setMessage("Searching " + c.Query + "…")
		return m.runSearch(c.Query)

	case command.Focus:
		if err := m.focus(c.Target); err != nil {
			m.setError(err.Error())
		}

	case command.Back:
		m.popLayer()

	case command.Logout:
		return m.logout()

	case command.Execute:
		return m.runShell(c.Cmdline)

	case command.Reconnect:
		m.setMessage("Reconnecting…")
		m.Controller.Shutdown()

	default:
		m.setError(fmt.Sprintf("The command %q is unsupported in this view", c.Name()))
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.saveState()
	m.Controller.Shutdown()
	m.Quitting = true
	m.Logger.Info("quitting")
	return tea.Quit
}

func (m *Model) logout() tea.Cmd {
	m.saveState()
	m.Controller.Shutdown()
	if m.Credentials != nil {
		if err := m.Credentials.Remove(); err != nil {
			m.Logger.Error("remove credentials", zap.Error(err))
			m.setError(errmsg.Format(errmsg.OpLogout, err))
			return nil
		}
	}
	m.Quitting = true
	m.Logger.Info("logged out")
	return tea.Quit
}

// runShell runs cmdline through sh without attaching the terminal.
func (m *Model) runShell(cmdline string) tea.Cmd {
	if cmdline == "" {
		return nil
	}
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		err := exec.CommandContext(ctx, "sh", "-c", cmdline).Run()
		msg := ExecDoneMsg{Cmdline: cmdline}
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			msg.ExitCode = exitErr.ExitCode()
		case err != nil:
			msg.ExitCode = -1
			msg.Err = err
		}
		return msg
	}
}

func (m Model) handleExecDone(msg ExecDoneMsg) Model {
	if msg.Err != nil {
		m.Logger.Error("exec failed", zap.String("cmdline", msg.Cmdline), zap.Error(msg.Err))
		m.setError(errmsg.FormatWith(errmsg.OpExecute, msg.Cmdline, msg.Err))
		return m
	}
	m.Logger.Info("exec finished", zap.String("cmdline", msg.Cmdline), zap.Int("exit_code", msg.ExitCode))
	text := fmt.Sprintf("%q exited with code %d", msg.Cmdline, msg.ExitCode)
	if msg.ExitCode != 0 {
		m.setError(text)
	} else {
		m.setMessage(text)
	}
	return m
}
