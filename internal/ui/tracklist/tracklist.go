// Package tracklist renders a scrollable list of tracks with a cursor, the
// playing marker and jump-to-match.
package tracklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/ripple/internal/command"
	"github.com/llehouerou/ripple/internal/playback"
	"github.com/llehouerou/ripple/internal/ui"
	"github.com/llehouerou/ripple/internal/ui/cursor"
	"github.com/llehouerou/ripple/internal/ui/render"
	"github.com/llehouerou/ripple/internal/ui/styles"
)

const playingSymbol = "\u25B6" // ▶

// Model is a list of tracks. The height set through SetSize includes the
// title line.
type Model struct {
	ui.Base
	title   string
	empty   string
	tracks  []playback.Track
	cursor  cursor.Cursor
	playing int // -1 when no row is playing
	query   string
}

// New creates an empty list. empty is shown when there are no tracks.
func New(title, empty string) Model {
	return Model{
		title:   title,
		empty:   empty,
		cursor:  cursor.New(ui.ScrollMargin),
		playing: -1,
	}
}

// SetTitle replaces the title line.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// Title returns the title line.
func (m Model) Title() string {
	return m.title
}

// SetTracks replaces the rows. The cursor stays on its row when possible.
func (m *Model) SetTracks(tracks []playback.Track) {
	m.tracks = tracks
	m.cursor.Clamp(len(tracks), m.listHeight())
}

// Reset replaces the rows and moves the cursor back to the top.
func (m *Model) Reset(tracks []playback.Track) {
	m.tracks = tracks
	m.cursor.Reset()
}

// Tracks returns the rows.
func (m Model) Tracks() []playback.Track {
	return m.tracks
}

// Len returns the number of rows.
func (m Model) Len() int {
	return len(m.tracks)
}

// SetPlaying marks row i as playing; -1 clears the marker.
func (m *Model) SetPlaying(i int) {
	m.playing = i
}

// Playing returns the row marked as playing, or -1.
func (m Model) Playing() int {
	return m.playing
}

// SetSize sets the dimensions and keeps the cursor visible.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.cursor.Clamp(len(m.tracks), m.listHeight())
}

// Selected returns the track under the cursor.
func (m Model) Selected() (playback.Track, bool) {
	if len(m.tracks) == 0 {
		return playback.Track{}, false
	}
	return m.tracks[m.cursor.Pos()], true
}

// SelectedIndex returns the cursor row, or -1 for an empty list.
func (m Model) SelectedIndex() int {
	if len(m.tracks) == 0 {
		return -1
	}
	return m.cursor.Pos()
}

// Select moves the cursor to row i.
func (m *Model) Select(i int) {
	m.cursor.Jump(i, len(m.tracks), m.listHeight())
}

// Move applies a move command. Left and right do nothing in a single
// column list, but are still consumed.
func (m *Model) Move(cmd command.Move) {
	n, h := len(m.tracks), m.listHeight()
	sign := 1
	switch cmd.Mode {
	case command.MoveLeft, command.MoveRight:
		return
	case command.MovePlaying:
		if m.playing >= 0 {
			m.cursor.Jump(m.playing, n, h)
		}
		return
	case command.MoveUp:
		sign = -1
	}
	switch cmd.Amount.Kind {
	case command.AmountExtreme:
		if sign < 0 {
			m.cursor.First()
		} else {
			m.cursor.Last(n, h)
		}
	case command.AmountPages:
		m.cursor.MovePages(float32(sign)*cmd.Amount.Pages, n, h)
	default:
		m.cursor.Move(sign*int(cmd.Amount.Integer), n, h)
	}
}

// Jump sets the jump query and selects the first match at or after the
// cursor. It reports whether anything matched.
func (m *Model) Jump(query string) bool {
	m.query = strings.ToLower(strings.TrimSpace(query))
	return m.jumpFrom(m.cursor.Pos(), 1)
}

// JumpNext selects the next match after the cursor, wrapping around.
func (m *Model) JumpNext() bool {
	return m.jumpFrom(m.cursor.Pos()+1, 1)
}

// JumpPrevious selects the previous match before the cursor, wrapping around.
func (m *Model) JumpPrevious() bool {
	return m.jumpFrom(m.cursor.Pos()-1, -1)
}

func (m *Model) jumpFrom(start, step int) bool {
	n := len(m.tracks)
	if m.query == "" || n == 0 {
		return false
	}
	for k := range n {
		i := ((start+step*k)%n + n) % n
		if m.matches(i) {
			m.cursor.Jump(i, n, m.listHeight())
			return true
		}
	}
	return false
}

func (m Model) matches(i int) bool {
	if m.query == "" {
		return false
	}
	t := m.tracks[i]
	for _, field := range []string{t.Title, t.Artist, t.Album} {
		if strings.Contains(strings.ToLower(field), m.query) {
			return true
		}
	}
	return false
}

func (m Model) listHeight() int {
	return m.ListHeight(1)
}

// View renders the title line followed by the visible rows.
func (m Model) View() string {
	width, height := m.Size()
	if width == 0 || height == 0 {
		return ""
	}
	t := styles.T().S()

	title := m.title
	if len(m.tracks) > 0 {
		title = fmt.Sprintf("%s (%d/%d)", m.title, m.cursor.Pos()+1, len(m.tracks))
	}
	lines := make([]string, 0, height)
	lines = append(lines, t.Title.Render(render.TruncateAndPad(title, width)))

	listHeight := m.listHeight()
	if len(m.tracks) == 0 {
		lines = append(lines, t.Muted.Render(render.TruncateAndPad(m.empty, width)))
	}
	start, end := m.cursor.VisibleRange(len(m.tracks), listHeight)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(i, width))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderRow lays out: marker, title, artist, album, duration.
func (m Model) renderRow(i, width int) string {
	track := m.tracks[i]

	prefix := "  "
	if i == m.playing {
		prefix = playingSymbol + " "
	}
	duration := " " + render.Duration(track.Duration)
	content := width - lipgloss.Width(prefix) - lipgloss.Width(duration)

	var line string
	if content >= 30 {
		titleW := content * 2 / 5
		artistW := content * 3 / 10
		albumW := content - titleW - artistW
		line = prefix +
			render.TruncateAndPad(track.Title, titleW) +
			render.TruncateAndPad(track.Artist, artistW) +
			render.TruncateAndPad(track.Album, albumW) +
			duration
	} else {
		line = prefix + render.TruncateAndPad(track.DisplayTitle(), width-lipgloss.Width(prefix))
	}

	return m.rowStyle(i).Render(line)
}

func (m Model) rowStyle(i int) lipgloss.Style {
	t := styles.T().S()
	isCursor := i == m.cursor.Pos() && m.IsFocused()
	isPlaying := i == m.playing

	switch {
	case isCursor && isPlaying:
		return t.Cursor.Inherit(t.Playing)
	case isCursor:
		return t.Cursor
	case isPlaying:
		return t.Playing
	case m.matches(i):
		return t.Match
	default:
		return t.Base
	}
}
