// internal/app/events.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/ripple/internal/playback"
)

// waitForEvents blocks off the update loop until the event queue signals.
func (m Model) waitForEvents() tea.Cmd {
	q := m.Events
	if q == nil {
		return nil
	}
	return func() tea.Msg {
		<-q.Ready()
		return EventsReadyMsg{}
	}
}

// drainEvents applies at most maxEventsPerBatch pending events and re-arms
// the wait. Leftovers re-signal the queue, so they are picked up on the
// next iteration after any pending key presses.
func (m *Model) drainEvents() tea.Cmd {
	for _, e := range m.Events.Drain(maxEventsPerBatch) {
		m.Logger.Debug("playback event", zap.String("event", playback.EventName(e)))
		switch e := e.(type) {
		case playback.FinishedTrack:
			m.Controller.UpdateStatus(e)
			m.Queue.Next(false)
		case playback.PlayerEvent:
			m.Controller.UpdateStatus(e)
		case playback.SessionDied:
			if m.Quitting {
				continue
			}
			m.Logger.Info("session died, starting a new worker")
			m.Controller.StartWorker(nil)
		}
	}
	m.syncLists()

	cmds := []tea.Cmd{m.waitForEvents()}
	if _, playing := m.Controller.Status().(playback.Playing); playing && !m.Ticking {
		m.Ticking = true
		cmds = append(cmds, TickCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) handlePlaybackMessage(msg PlaybackMessage) (Model, tea.Cmd) {
	switch msg.(type) {
	case EventsReadyMsg:
		cmd := m.drainEvents()
		return m, cmd
	case TickMsg:
		if _, playing := m.Controller.Status().(playback.Playing); playing {
			return m, TickCmd()
		}
		m.Ticking = false
	}
	return m, nil
}
