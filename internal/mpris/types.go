// Package mpris exposes playback on D-Bus through the MPRIS interface so
// desktop media keys and widgets can drive the player.
package mpris

import (
	"time"

	"github.com/llehouerou/ripple/internal/command"
	"github.com/llehouerou/ripple/internal/playback"
)

// Player is the playback state the adapter reports.
type Player interface {
	Status() playback.PlayerEvent
	Progress() time.Duration
	Volume() uint16
}

// Queue is the queue state the adapter reports.
type Queue interface {
	Current() (playback.Track, bool)
	Len() int
	Repeat() playback.RepeatMode
	Shuffle() bool
}

// Dispatch hands commands to the application loop. It must not block.
type Dispatch func(cmds ...command.Command)
