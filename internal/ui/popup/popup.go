// Package popup renders centered dialogs and composes them over a view.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/ripple/internal/ui/render"
	"github.com/llehouerou/ripple/internal/ui/styles"
)

// Dialog is a bordered box with a title, content lines and a footer hint.
type Dialog struct {
	Title   string
	Content string
	Footer  string
}

// Render returns the dialog centered in a termWidth x termHeight area,
// ready to be passed to Compose.
func (d Dialog) Render(termWidth, termHeight int) string {
	t := styles.T()

	inner := maxLineWidth(d.Content)
	inner = max(inner, lipgloss.Width(d.Title), lipgloss.Width(d.Footer))
	inner = min(inner+2, max(termWidth-4, 1))

	var lines []string
	if d.Title != "" {
		lines = append(lines, center(t.S().Title.Render(d.Title), inner), "")
	}
	for line := range strings.SplitSeq(d.Content, "\n") {
		if lipgloss.Width(line) > inner {
			line = ansi.Truncate(line, inner, "…")
		}
		lines = append(lines, render.Pad(line, inner))
	}
	if d.Footer != "" {
		lines = append(lines, "", center(t.S().Subtle.Render(d.Footer), inner))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
	return Center(box, termWidth, termHeight)
}

// Center pads pre-rendered content so it sits in the middle of the area.
func Center(content string, termWidth, termHeight int) string {
	lines := strings.Split(content, "\n")
	padTop := max((termHeight-len(lines))/2, 0)
	padLeft := max((termWidth-maxLineWidth(content))/2, 0)

	var b strings.Builder
	for range padTop {
		b.WriteString("\n")
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat(" ", padLeft))
		b.WriteString(line)
	}
	return b.String()
}

// Compose draws overlay on top of base. Each overlay line replaces the base
// between its first and last visible column; blank overlay lines leave the
// base untouched. ANSI styling on both sides is preserved.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(overlay, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}
		startCol := len(plain) - len(strings.TrimLeft(plain, " "))
		endCol := ansi.StringWidth(strings.TrimRight(plain, " "))

		baseLine := baseLines[i]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}
		prefix := ansi.Cut(baseLine, 0, startCol)
		// A wide rune cut in half leaves the prefix short.
		if w := ansi.StringWidth(prefix); w < startCol {
			prefix += strings.Repeat(" ", startCol-w)
		}
		out := prefix + ansi.Cut(line, startCol, endCol)
		if endCol < width {
			suffix := ansi.Cut(baseLine, endCol, width)
			if w := ansi.StringWidth(suffix); w < width-endCol {
				suffix += strings.Repeat(" ", width-endCol-w)
			}
			out += suffix
		}
		baseLines[i] = out
	}
	return strings.Join(baseLines, "\n")
}

func maxLineWidth(s string) int {
	w := 0
	for line := range strings.SplitSeq(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	pad := (width - w) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-w-pad)
}
