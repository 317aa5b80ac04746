// internal/app/views.go
package app

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ripple/internal/command"
	"github.com/llehouerou/ripple/internal/config"
	"github.com/llehouerou/ripple/internal/playback"
	"github.com/llehouerou/ripple/internal/ui"
	"github.com/llehouerou/ripple/internal/ui/helpbindings"
	"github.com/llehouerou/ripple/internal/ui/tracklist"
)

func searchTitle(query string) string {
	return "Search: " + query
}

// top returns the topmost pushed view, or nil on a bare screen.
func (m *Model) top() *layer {
	if len(m.Stack) == 0 {
		return nil
	}
	return &m.Stack[len(m.Stack)-1]
}

func (m *Model) screenList() *tracklist.Model {
	switch m.Screen {
	case config.ScreenSearch:
		return &m.SearchList
	case config.ScreenLibrary:
		return &m.LibraryList
	default:
		return &m.QueueList
	}
}

// activeList returns the list commands act on, or nil when the help view is
// on top.
func (m *Model) activeList() *tracklist.Model {
	if l := m.top(); l != nil {
		return l.tracks
	}
	return m.screenList()
}

func (m *Model) onQueueScreen() bool {
	return len(m.Stack) == 0 && m.Screen == config.ScreenQueue
}

func (m *Model) pushTracks(title string, tracks []playback.Track) {
	list := tracklist.New(title, "No tracks")
	list.SetSize(m.Width, max(m.Height-ui.ChromeHeight, 0))
	list.Reset(tracks)
	m.Stack = append(m.Stack, layer{tracks: &list})
	m.syncLists()
}

func (m *Model) pushHelp() {
	if l := m.top(); l != nil && l.help != nil {
		return
	}
	help := helpbindings.New(m.Keys.All())
	help.SetSize(m.Width, max(m.Height-ui.ChromeHeight, 0))
	m.Stack = append(m.Stack, layer{help: &help})
}

// popLayer closes the topmost view and reports whether there was one.
func (m *Model) popLayer() bool {
	if len(m.Stack) == 0 {
		return false
	}
	m.Stack = m.Stack[:len(m.Stack)-1]
	return true
}

// focus switches screen, closing every pushed view.
func (m *Model) focus(screen string) error {
	switch screen {
	case config.ScreenQueue, config.ScreenSearch, config.ScreenLibrary:
	default:
		return fmt.Errorf("unknown screen %q", screen)
	}
	m.Stack = nil
	if m.Screen != screen {
		m.Screen = screen
		m.SaveNavigationState()
	}
	return nil
}

// syncLists refreshes the queue rows and the playing marker of every list.
func (m *Model) syncLists() {
	m.QueueList.SetTracks(m.Queue.Tracks())
	m.QueueList.SetPlaying(m.Queue.CurrentIndex())

	current, ok := m.Queue.Current()
	markPlaying(&m.SearchList, current, ok)
	markPlaying(&m.LibraryList, current, ok)
	for _, l := range m.Stack {
		if l.tracks != nil {
			markPlaying(l.tracks, current, ok)
		}
	}
}

func markPlaying(list *tracklist.Model, current playback.Track, ok bool) {
	idx := -1
	if ok {
		idx = slices.IndexFunc(list.Tracks(), func(t playback.Track) bool { return t.ID == current.ID })
	}
	list.SetPlaying(idx)
}

// handleInView gives the active view first refusal on c.
//
//nolint:gocyclo // one case per command
func (m *Model) handleInView(c command.Command) (bool, tea.Cmd) {
	if l := m.top(); l != nil && l.help != nil {
		if mv, ok := c.(command.Move); ok {
			l.help.Move(mv)
			return true, nil
		}
		return false, nil
	}

	list := m.activeList()
	switch c := c.(type) {
	case command.Move:
		list.Move(c)
		return true, nil

	case command.Play:
		if m.onQueueScreen() {
			if i := list.SelectedIndex(); i >= 0 {
				m.Queue.Play(i)
			}
			return true, nil
		}
		if t, ok := list.Selected(); ok {
			m.Queue.Play(m.Queue.InsertNext(t))
		}
		return true, nil

	case command.Queue:
		if t, ok := list.Selected(); ok {
			m.Queue.Append(t)
			m.setMessage("Queued: " + t.DisplayTitle())
		}
		return true, nil

	case command.PlayNext:
		if t, ok := list.Selected(); ok {
			m.Queue.InsertNext(t)
			m.setMessage("Playing next: " + t.DisplayTitle())
		}
		return true, nil

	case command.Shift:
		if !m.onQueueScreen() {
			return false, nil
		}
		i := list.SelectedIndex()
		if i < 0 {
			return true, nil
		}
		delta := 1
		if c.Amount != nil {
			delta = int(*c.Amount)
		}
		if c.Mode == command.ShiftUp {
			delta = -delta
		}
		to := m.Queue.Shift(i, delta)
		m.syncLists()
		list.Select(to)
		return true, nil

	case command.Sort:
		if !m.onQueueScreen() {
			return false, nil
		}
		m.Queue.Sort(trackComparator(c.Key, c.Direction))
		return true, nil

	case command.Jump:
		var found bool
		switch c.Kind {
		case command.JumpNext:
			found = list.JumpNext()
		case command.JumpPrevious:
			found = list.JumpPrevious()
		default:
			found = list.Jump(c.Query)
		}
		if !found && c.Query != "" {
			m.setError(fmt.Sprintf("No match for %q", c.Query))
		}
		return true, nil

	case command.Goto:
		t, ok := list.Selected()
		if !ok {
			return true, nil
		}
		if c.Mode == command.GotoArtist {
			return true, m.openArtist(t)
		}
		return true, m.openAlbum(t)

	case command.Open:
		t, ok := m.target(list, c.Target)
		if !ok {
			return true, nil
		}
		return true, m.openAlbum(t)

	case command.ShowRecommendations:
		t, ok := m.target(list, c.Target)
		if !ok {
			return true, nil
		}
		return true, m.openSimilar(t)
	}
	return false, nil
}

// target resolves the track open and similar act on.
func (m *Model) target(list *tracklist.Model, mode command.TargetMode) (playback.Track, bool) {
	if mode == command.TargetCurrent {
		t, ok := m.Queue.Current()
		if !ok {
			m.setError("Nothing is playing")
		}
		return t, ok
	}
	return list.Selected()
}

// trackComparator orders tracks on key. Text keys compare case-insensitively.
func trackComparator(key command.SortKey, dir command.SortDirection) func(a, b playback.Track) int {
	var compare func(a, b playback.Track) int
	switch key {
	case command.SortTitle:
		compare = func(a, b playback.Track) int { return compareFold(a.Title, b.Title) }
	case command.SortDuration:
		compare = func(a, b playback.Track) int { return cmp.Compare(a.Duration, b.Duration) }
	case command.SortArtist:
		compare = func(a, b playback.Track) int { return compareFold(a.Artist, b.Artist) }
	case command.SortAlbum:
		compare = func(a, b playback.Track) int { return compareFold(a.Album, b.Album) }
	case command.SortAdded:
		compare = func(a, b playback.Track) int { return a.Added.Compare(b.Added) }
	default:
		compare = func(playback.Track, playback.Track) int { return 0 }
	}
	if dir == command.Descending {
		return func(a, b playback.Track) int { return compare(b, a) }
	}
	return compare
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
