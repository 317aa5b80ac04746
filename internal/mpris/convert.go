//go:build linux

package mpris

import (
	"math"

	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/ripple/internal/command"
	"github.com/llehouerou/ripple/internal/playback"
)

func playbackStatus(e playback.PlayerEvent) types.PlaybackStatus {
	switch e.(type) {
	case playback.Playing:
		return types.PlaybackStatusPlaying
	case playback.Paused:
		return types.PlaybackStatusPaused
	default:
		return types.PlaybackStatusStopped
	}
}

func loopStatus(mode playback.RepeatMode) types.LoopStatus {
	switch mode {
	case playback.RepeatTrack:
		return types.LoopStatusTrack
	case playback.RepeatPlaylist:
		return types.LoopStatusPlaylist
	default:
		return types.LoopStatusNone
	}
}

func repeatMode(status types.LoopStatus) playback.RepeatMode {
	switch status {
	case types.LoopStatusTrack:
		return playback.RepeatTrack
	case types.LoopStatusPlaylist:
		return playback.RepeatPlaylist
	default:
		return playback.RepeatNone
	}
}

// volumeCommand turns an absolute MPRIS volume (0..1) into the volup or
// voldown command reaching it, in whole percents. nil when already there.
func volumeCommand(current uint16, v float64) command.Command {
	target := math.Round(min(max(v, 0), 1) * math.MaxUint16)
	steps := math.Round((target - float64(current)) / playback.VolumePercent)
	switch {
	case steps > 0:
		return command.VolumeUp{Amount: uint16(steps)}
	case steps < 0:
		return command.VolumeDown{Amount: uint16(-steps)}
	default:
		return nil
	}
}
