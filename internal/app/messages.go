// Package app is the bubbletea program: screens, the command dispatcher and
// the loop applying playback events.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ripple/internal/command"
	"github.com/llehouerou/ripple/internal/errmsg"
	"github.com/llehouerou/ripple/internal/playback"
)

// Message category interfaces for type-based routing in Update().
// External messages (from other packages) cannot implement these interfaces,
// so they are handled separately in the Update() switch.

// PlaybackMessage is implemented by messages related to audio playback.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// LoadingMessage is implemented by results of background catalog requests.
type LoadingMessage interface {
	tea.Msg
	loadingMessage()
}

// TickMsg is sent every second while playing to refresh the progress bar.
type TickMsg time.Time

func (TickMsg) playbackMessage() {}

// EventsReadyMsg is sent when the playback event queue has pending events.
type EventsReadyMsg struct{}

func (EventsReadyMsg) playbackMessage() {}

// CommandMsg carries commands from outside the program, e.g. MPRIS.
type CommandMsg struct {
	Commands []command.Command
}

// listTarget says where loaded tracks go.
type listTarget int

const (
	targetSearch listTarget = iota
	targetLibrary
	targetLayer
)

// TracksLoadedMsg is the result of a catalog request.
type TracksLoadedMsg struct {
	target listTarget
	Title  string
	Op     errmsg.Op
	Tracks []playback.Track
	Err    error
}

func (TracksLoadedMsg) loadingMessage() {}

// ExecDoneMsg is sent when a command started with exec exits.
type ExecDoneMsg struct {
	Cmdline  string
	ExitCode int
	Err      error
}

// TickCmd schedules the next progress refresh.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
