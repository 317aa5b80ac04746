// Package headerbar renders the logo and the screen tabs.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/ripple/internal/ui/render"
	"github.com/llehouerou/ripple/internal/ui/styles"
)

// Height is the header line plus its separator.
const Height = 2

const logo = "ripple"

// Tab is one screen selector.
type Tab struct {
	Key    string // key bound to focus the screen, may be empty
	Name   string
	Screen string
}

func activeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary).Bold(true)
}

// Render returns the header for the given width. current is the Screen of
// the active tab.
func Render(tabs []Tab, current string, width int) string {
	if width <= 0 {
		return ""
	}
	t := styles.T()

	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		keyStyle, nameStyle := t.S().Subtle, t.S().Muted
		if tab.Screen == current {
			keyStyle, nameStyle = activeStyle(), activeStyle()
		}
		part := nameStyle.Render(tab.Name)
		if tab.Key != "" {
			part = keyStyle.Render(tab.Key) + " " + part
		}
		parts = append(parts, part)
	}
	tabsLine := strings.Join(parts, t.S().Subtle.Render(" │ "))

	line := styles.Gradient(logo, t.Primary, t.Secondary)
	if lipgloss.Width(line)+lipgloss.Width(tabsLine)+1 <= width {
		line = render.Row(line, tabsLine, width)
	}
	return line + "\n" + t.S().Subtle.Render(render.Separator(width))
}
