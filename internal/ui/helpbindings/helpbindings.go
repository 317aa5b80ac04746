// Package helpbindings renders the help view: every key binding with its
// command text and description.
package helpbindings

import (
	"strings"

	"github.com/llehouerou/ripple/internal/command"
	"github.com/llehouerou/ripple/internal/keymap"
	"github.com/llehouerou/ripple/internal/ui"
	"github.com/llehouerou/ripple/internal/ui/cursor"
	"github.com/llehouerou/ripple/internal/ui/render"
	"github.com/llehouerou/ripple/internal/ui/styles"
)

type row struct {
	keys        string
	command     string
	description string
}

// Model is a scrollable list of bindings, one row per command text.
type Model struct {
	ui.Base
	rows   []row
	cursor cursor.Cursor
}

// New builds the rows from resolved bindings, merging the keys bound to the
// same command text.
func New(bindings []keymap.KeyBinding) Model {
	var rows []row
	for _, b := range bindings {
		if n := len(rows); n > 0 && rows[n-1].command == b.Command {
			rows[n-1].keys += ", " + b.Key
			continue
		}
		rows = append(rows, row{keys: b.Key, command: b.Command, description: keymap.Description(b.Command)})
	}
	return Model{rows: rows, cursor: cursor.New(0)}
}

// Len returns the number of rows.
func (m Model) Len() int {
	return len(m.rows)
}

// Move scrolls the list.
func (m *Model) Move(cmd command.Move) {
	n, h := len(m.rows), m.ListHeight(1)
	switch {
	case cmd.Mode == command.MoveUp && cmd.Amount.Kind == command.AmountExtreme:
		m.cursor.First()
	case cmd.Mode == command.MoveDown && cmd.Amount.Kind == command.AmountExtreme:
		m.cursor.Last(n, h)
	case cmd.Mode == command.MoveUp && cmd.Amount.Kind == command.AmountPages:
		m.cursor.MovePages(-cmd.Amount.Pages, n, h)
	case cmd.Mode == command.MoveDown && cmd.Amount.Kind == command.AmountPages:
		m.cursor.MovePages(cmd.Amount.Pages, n, h)
	case cmd.Mode == command.MoveUp:
		m.cursor.Move(-int(cmd.Amount.Integer), n, h)
	case cmd.Mode == command.MoveDown:
		m.cursor.Move(int(cmd.Amount.Integer), n, h)
	}
}

// View renders the title line and the visible rows.
func (m Model) View() string {
	width, height := m.Size()
	if width == 0 || height == 0 {
		return ""
	}
	t := styles.T().S()

	keyWidth, cmdWidth := 0, 0
	for _, r := range m.rows {
		keyWidth = max(keyWidth, len(r.keys))
		cmdWidth = max(cmdWidth, len(r.command))
	}
	keyWidth = min(keyWidth, width/4)
	cmdWidth = min(cmdWidth, width/3)
	descWidth := max(width-keyWidth-cmdWidth-4, 0)

	lines := []string{t.Title.Render(render.TruncateAndPad("Help (backspace to close)", width))}
	start, end := m.cursor.VisibleRange(len(m.rows), m.ListHeight(1))
	for i := start; i < end; i++ {
		r := m.rows[i]
		left := render.TruncateAndPad(r.keys, keyWidth) + "  " + render.TruncateAndPad(r.command, cmdWidth)
		style := t.Base
		if i == m.cursor.Pos() {
			style = t.Cursor
		}
		line := style.Render(left) + "  " + t.Muted.Render(render.Truncate(r.description, descWidth))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
