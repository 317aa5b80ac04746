// internal/app/view.go
package app

import (
	"strings"

	"github.com/llehouerou/ripple/internal/config"
	"github.com/llehouerou/ripple/internal/ui"
	"github.com/llehouerou/ripple/internal/ui/headerbar"
	"github.com/llehouerou/ripple/internal/ui/popup"
	"github.com/llehouerou/ripple/internal/ui/statusbar"
)

var screenTabs = []headerbar.Tab{
	{Name: "Queue", Screen: config.ScreenQueue},
	{Name: "Search", Screen: config.ScreenSearch},
	{Name: "Library", Screen: config.ScreenLibrary},
}

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 || m.Quitting {
		return ""
	}

	header := headerbar.Render(m.tabs(), m.Screen, m.Width)
	body := padLines(m.renderBody(), max(m.Height-ui.ChromeHeight, 0))
	status := statusbar.Render(m.statusState(), m.Width)

	bottom := statusbar.RenderMessage(m.Message, m.MessageErr, m.Width)
	if m.CmdLine.Active() {
		bottom = m.CmdLine.View()
	}

	view := strings.Join([]string{header, body, status, bottom}, "\n")
	if m.Confirm.Active() {
		view = popup.Compose(view, m.Confirm.View(m.Width, m.Height), m.Width)
	}
	return view
}

// tabs labels each screen with the first key focusing it.
func (m Model) tabs() []headerbar.Tab {
	tabs := make([]headerbar.Tab, len(screenTabs))
	for i, tab := range screenTabs {
		if keys := m.Keys.KeysFor("focus " + tab.Screen); len(keys) > 0 {
			tab.Key = keys[0]
		}
		tabs[i] = tab
	}
	return tabs
}

func (m Model) renderBody() string {
	if n := len(m.Stack); n > 0 {
		top := m.Stack[n-1]
		if top.help != nil {
			return top.help.View()
		}
		return top.tracks.View()
	}
	return m.screenList().View()
}

func (m Model) statusState() statusbar.State {
	track, ok := m.Queue.Current()
	user := m.Controller.User()
	if !m.Controller.Live() {
		user = ""
	}
	return statusbar.State{
		Status:   m.Controller.Status(),
		Track:    track,
		HasTrack: ok,
		Position: m.Controller.Progress(),
		Volume:   m.Controller.Volume(),
		Repeat:   m.Queue.Repeat(),
		Shuffle:  m.Queue.Shuffle(),
		User:     user,
	}
}

// padLines cuts or pads s to exactly height lines.
func padLines(s string, height int) string {
	if height == 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
