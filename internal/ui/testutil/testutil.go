// Package testutil provides helpers for asserting on rendered views.
package testutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences so rendered output can be compared as
// plain text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// Lines returns the plain-text lines of a rendered view, without trailing
// blank lines.
func Lines(view string) []string {
	lines := strings.Split(StripANSI(view), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// FindLine returns the first plain-text line containing substr, or "".
func FindLine(view, substr string) string {
	for _, line := range Lines(view) {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// ContainsLine reports whether any line of view contains substr.
func ContainsLine(view, substr string) bool {
	return FindLine(view, substr) != ""
}
