// Package statusbar renders the player status line and the message line
// under the list.
package statusbar

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/ripple/internal/icons"
	"github.com/llehouerou/ripple/internal/playback"
	"github.com/llehouerou/ripple/internal/ui"
	"github.com/llehouerou/ripple/internal/ui/render"
	"github.com/llehouerou/ripple/internal/ui/styles"
)

// State holds everything needed to render the status line.
type State struct {
	Status   playback.PlayerEvent
	Track    playback.Track
	HasTrack bool
	Position time.Duration
	Volume   uint16
	Repeat   playback.RepeatMode
	Shuffle  bool
	// User is empty while no session is connected.
	User string
}

// VolumePercent converts a volume level to a rounded percentage.
func VolumePercent(v uint16) int {
	return int(math.Round(float64(v) * 100 / math.MaxUint16))
}

// Render returns the status line, exactly width columns wide:
//
//	▶ Artist - Title   ━━━━────   1:23 / 3:58   🔁 🔀   🔊 80%   alice
func Render(s State, width int) string {
	if width <= 0 {
		return ""
	}
	t := styles.T().S()
	sep := "   "

	var right []string
	if modes := renderModes(s); modes != "" {
		right = append(right, t.Warning.Render(modes))
	}
	right = append(right, t.Muted.Render(fmt.Sprintf("%s %d%%", icons.Volume(s.Volume == 0), VolumePercent(s.Volume))))
	if s.User != "" {
		right = append(right, t.Subtle.Render(s.User))
	} else {
		right = append(right, t.Error.Render("offline"))
	}
	rightText := strings.Join(right, sep)

	left := icons.State(s.Status) + " "
	if !s.HasTrack {
		return fit(render.Row(t.Muted.Render(left+"Nothing playing"), rightText, width), width)
	}

	timeText := render.Duration(s.Position) + " / " + render.Duration(s.Track.Duration)
	fixed := lipgloss.Width(left) + lipgloss.Width(timeText) + lipgloss.Width(rightText) + 3*len(sep)
	avail := width - fixed

	titleWidth := lipgloss.Width(s.Track.DisplayTitle())
	barWidth := 0
	if avail-titleWidth >= ui.MinProgressBarWidth*2 {
		barWidth = avail - titleWidth
	} else if avail > ui.MinProgressBarWidth*3 {
		barWidth = ui.MinProgressBarWidth * 2
		titleWidth = avail - barWidth
	} else {
		titleWidth = max(avail, 0)
	}

	var b strings.Builder
	b.WriteString(t.Playing.Render(left + render.Truncate(s.Track.DisplayTitle(), titleWidth)))
	b.WriteString(sep)
	if barWidth > 0 {
		b.WriteString(renderProgress(s.Position, s.Track.Duration, barWidth))
		b.WriteString(sep)
	}
	b.WriteString(t.Muted.Render(timeText))

	return fit(render.Row(b.String(), rightText, width), width)
}

// RenderMessage renders the message line; errors stand out.
func RenderMessage(text string, isErr bool, width int) string {
	if width <= 0 || text == "" {
		return ""
	}
	style := styles.T().S().Base
	if isErr {
		style = styles.T().S().Error
	}
	return style.Render(render.Truncate(text, width))
}

func renderModes(s State) string {
	var parts []string
	if r := icons.Repeat(s.Repeat); r != "" {
		parts = append(parts, r)
	}
	if s.Shuffle {
		parts = append(parts, icons.Shuffle())
	}
	return strings.Join(parts, " ")
}

func renderProgress(position, duration time.Duration, width int) string {
	var ratio float64
	if duration > 0 {
		ratio = min(float64(position)/float64(duration), 1)
	}
	filled := int(float64(width) * ratio)
	return styles.T().S().Playing.Render(strings.Repeat("━", filled)) +
		styles.T().S().Subtle.Render(strings.Repeat("─", width-filled))
}

// fit cuts styled text that overflows width.
func fit(line string, width int) string {
	if lipgloss.Width(line) <= width {
		return line
	}
	return ansi.Truncate(line, width, "…")
}
