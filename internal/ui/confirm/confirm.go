// Package confirm provides a yes/no confirmation dialog.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ripple/internal/ui/popup"
)

// Model is a yes/no confirmation dialog. The context given to Show comes
// back in the Result so the caller knows what was confirmed.
type Model struct {
	title   string
	message string
	context any
	active  bool
}

// New creates an inactive confirmation.
func New() Model {
	return Model{}
}

// Show activates the dialog.
func (m *Model) Show(title, message string, context any) {
	m.title = title
	m.message = message
	m.context = context
	m.active = true
}

// Active reports whether the dialog is shown.
func (m Model) Active() bool {
	return m.active
}

// Update handles a key while the dialog is shown. Any key other than the
// answers is swallowed.
func (m Model) Update(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	var confirmed bool
	switch msg.String() {
	case "enter", "y", "Y":
		confirmed = true
	case "esc", "n", "N", "q":
	default:
		return m, nil
	}
	m.active = false
	ctx := m.context
	m.context = nil
	return m, func() tea.Msg {
		return ActionMsg(Result{Confirmed: confirmed, Context: ctx})
	}
}

// View renders the dialog centered in width x height, or "" when inactive.
func (m Model) View(width, height int) string {
	if !m.active || width == 0 || height == 0 {
		return ""
	}
	return popup.Dialog{
		Title:   m.title,
		Content: m.message,
		Footer:  "Enter/Y: confirm, Esc/N: cancel",
	}.Render(width, height)
}
