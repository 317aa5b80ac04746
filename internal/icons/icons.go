// Package icons selects the glyphs used for player state and modes.
package icons

import "github.com/llehouerou/ripple/internal/playback"

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the glyphs of one style.
type Icons struct {
	Playing     string
	Paused      string
	Stopped     string
	Shuffle     string
	RepeatList  string
	RepeatTrack string
	Volume      string
	Muted       string
}

var (
	nerdIcons = Icons{
		Playing:     "󰐊", // nf-md-play
		Paused:      "󰏤", // nf-md-pause
		Stopped:     "󰓛", // nf-md-stop
		Shuffle:     "󰒟", // nf-md-shuffle
		RepeatList:  "󰑖", // nf-md-repeat
		RepeatTrack: "󰑘", // nf-md-repeat_once
		Volume:      "󰕾", // nf-md-volume_high
		Muted:       "󰝟", // nf-md-volume_off
	}

	unicodeIcons = Icons{
		Playing:     "▶",
		Paused:      "⏸",
		Stopped:     "■",
		Shuffle:     "🔀",
		RepeatList:  "🔁",
		RepeatTrack: "🔂",
		Volume:      "🔊",
		Muted:       "🔇",
	}

	noneIcons = Icons{
		Playing:     ">",
		Paused:      "||",
		Stopped:     "[]",
		Shuffle:     "[S]",
		RepeatList:  "[R]",
		RepeatTrack: "[1]",
		Volume:      "vol",
		Muted:       "mute",
	}

	current = unicodeIcons
)

// Init selects the icon style. Unknown styles fall back to unicode.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	default:
		current = unicodeIcons
	}
}

// State returns the glyph for a player status.
func State(status playback.PlayerEvent) string {
	switch status.(type) {
	case playback.Playing:
		return current.Playing
	case playback.Paused:
		return current.Paused
	default:
		return current.Stopped
	}
}

// Shuffle returns the shuffle glyph.
func Shuffle() string {
	return current.Shuffle
}

// Repeat returns the glyph for a repeat mode, or "" when not repeating.
func Repeat(mode playback.RepeatMode) string {
	switch mode {
	case playback.RepeatPlaylist:
		return current.RepeatList
	case playback.RepeatTrack:
		return current.RepeatTrack
	default:
		return ""
	}
}

// Volume returns the volume glyph.
func Volume(muted bool) string {
	if muted {
		return current.Muted
	}
	return current.Volume
}
